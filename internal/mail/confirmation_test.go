package mail

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stepupp/account-server-go/internal/model"
)

type fakeSender struct {
	sent []Message
	err  error
}

func (f *fakeSender) Send(ctx context.Context, msg Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func TestConfirmationMailer(t *testing.T) {
	t.Run("builds the confirmation URL from the frontend base", func(t *testing.T) {
		m := NewConfirmationMailer(&fakeSender{}, "https://stepupp.example.com")
		url := m.ConfirmationURL("tok-123")
		assert.Equal(t, "https://stepupp.example.com/confirm-email?token=tok-123", url)
	})

	t.Run("sends the link to the signup address", func(t *testing.T) {
		sender := &fakeSender{}
		m := NewConfirmationMailer(sender, "http://localhost:3000")

		err := m.Send(context.Background(), "a@x.com", "tok-123", model.UserTypeIndividual)
		require.NoError(t, err)
		require.Len(t, sender.sent, 1)

		msg := sender.sent[0]
		assert.Equal(t, "a@x.com", msg.To)
		assert.Equal(t, "Confirm Your StepUpp Account", msg.Subject)
		assert.Contains(t, msg.HTML, "http://localhost:3000/confirm-email?token=tok-123")
		assert.Contains(t, msg.HTML, "job seeker")
	})

	t.Run("business signups get business copy", func(t *testing.T) {
		sender := &fakeSender{}
		m := NewConfirmationMailer(sender, "http://localhost:3000")

		err := m.Send(context.Background(), "b@x.com", "tok-456", model.UserTypeBusiness)
		require.NoError(t, err)
		require.Len(t, sender.sent, 1)
		assert.Contains(t, sender.sent[0].HTML, "signing up as a business")
	})

	t.Run("propagates transport failure", func(t *testing.T) {
		sender := &fakeSender{err: errors.New("connection refused")}
		m := NewConfirmationMailer(sender, "http://localhost:3000")

		err := m.Send(context.Background(), "a@x.com", "tok-123", model.UserTypeIndividual)
		assert.Error(t, err)
	})
}
