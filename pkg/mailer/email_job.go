package mailer

import (
	"fmt"
	"strings"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Html is optional; Text is recommended as fallback.
// You can also use a template by specifying Template and Data.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "welcome"
	Data     map[string]any `json:"data,omitempty"`
}

// EnsureRecipient copies To into the template data when the job left the
// recipient fields empty.
func EnsureRecipient(job *EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	for _, k := range []string{"Email", "RecipientEmail"} {
		if v, ok := job.Data[k]; !ok || v == nil || fmt.Sprintf("%v", v) == "" {
			job.Data[k] = job.To
		}
	}
}

// Validate rejects jobs that can never be delivered.
func (j EmailJob) Validate() error {
	if strings.TrimSpace(j.To) == "" {
		return fmt.Errorf("email job has no recipient")
	}
	if j.Template == "" && j.Text == "" && j.HTML == "" {
		return fmt.Errorf("email job to %s has no body", j.To)
	}
	return nil
}
