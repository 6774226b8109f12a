package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	mailtpl "github.com/oksasatya/go-user-management/pkg/mailer/templates"
)

// ErrPoison marks a message that will never succeed; it must not be requeued.
var ErrPoison = errors.New("undeliverable email job")

// Worker turns queued EmailJob payloads into sent emails.
type Worker struct {
	Sender      Sender
	Logger      logrus.FieldLogger
	SendTimeout time.Duration
}

// Process decodes, renders and sends one message body. Failures wrapping
// ErrPoison are permanent; any other error is worth a retry.
func (w *Worker) Process(ctx context.Context, body []byte) error {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrPoison, err)
	}
	if err := job.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrPoison, err)
	}
	EnsureRecipient(&job)

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		s, t, h, err := mailtpl.Render(job.Template, job.Data)
		if err != nil {
			return fmt.Errorf("%w: render %s: %v", ErrPoison, job.Template, err)
		}
		subject, text, html = s, t, h
	}

	timeout := w.SendTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	c, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := w.Sender.Send(c, job.To, subject, text, html); err != nil {
		return fmt.Errorf("send to %s: %w", job.To, err)
	}
	if w.Logger != nil {
		w.Logger.WithFields(logrus.Fields{"template": job.Template}).Info("email sent")
	}
	return nil
}
