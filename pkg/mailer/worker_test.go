package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	mailtpl "github.com/oksasatya/go-user-management/pkg/mailer/templates"
)

type senderMock struct{ mock.Mock }

func (m *senderMock) Send(ctx context.Context, to, subject, text, html string) error {
	return m.Called(ctx, to, subject, text, html).Error(0)
}

func encode(t *testing.T, job EmailJob) []byte {
	t.Helper()
	b, err := json.Marshal(job)
	require.NoError(t, err)
	return b
}

func TestWorker_ProcessWelcome(t *testing.T) {
	s := &senderMock{}
	s.On("Send", mock.Anything, "a@x.com", "Welcome to Users",
		mock.MatchedBy(func(text string) bool { return strings.Contains(text, "Hi Ann,") }),
		mock.AnythingOfType("string"),
	).Return(nil).Once()

	w := &Worker{Sender: s}
	job := EmailJob{
		To:       "a@x.com",
		Template: mailtpl.Welcome,
		Data:     mailtpl.NewWelcomeData(mailtpl.Branding{AppName: "Users"}, "Ann", "a@x.com"),
	}

	require.NoError(t, w.Process(context.Background(), encode(t, job)))
	s.AssertExpectations(t)
}

func TestWorker_ProcessPlainBody(t *testing.T) {
	s := &senderMock{}
	s.On("Send", mock.Anything, "a@x.com", "hi", "body", "").Return(nil).Once()

	w := &Worker{Sender: s}
	require.NoError(t, w.Process(context.Background(), encode(t, EmailJob{To: "a@x.com", Subject: "hi", Text: "body"})))
	s.AssertExpectations(t)
}

func TestWorker_PoisonMessages(t *testing.T) {
	w := &Worker{Sender: &senderMock{}}
	ctx := context.Background()

	assert.ErrorIs(t, w.Process(ctx, []byte("{not json")), ErrPoison)
	assert.ErrorIs(t, w.Process(ctx, encode(t, EmailJob{Text: "no recipient"})), ErrPoison)
	assert.ErrorIs(t, w.Process(ctx, encode(t, EmailJob{To: "a@x.com"})), ErrPoison)
	assert.ErrorIs(t, w.Process(ctx, encode(t, EmailJob{To: "a@x.com", Template: "nope"})), ErrPoison)
}

func TestWorker_SendFailureIsRetryable(t *testing.T) {
	s := &senderMock{}
	s.On("Send", mock.Anything, "a@x.com", "hi", "body", "").Return(errors.New("503")).Once()

	err := (&Worker{Sender: s}).Process(context.Background(), encode(t, EmailJob{To: "a@x.com", Subject: "hi", Text: "body"}))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPoison)
}

func TestEnsureRecipient(t *testing.T) {
	job := EmailJob{To: "a@x.com", Data: map[string]any{"Email": "kept@x.com"}}
	EnsureRecipient(&job)
	assert.Equal(t, "kept@x.com", job.Data["Email"])
	assert.Equal(t, "a@x.com", job.Data["RecipientEmail"])
}
