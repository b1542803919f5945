package mail

import (
	"context"
	"fmt"

	"github.com/stepupp/account-server-go/internal/model"
)

const confirmationSubject = "Confirm Your StepUpp Account"

// ConfirmationMailer builds and sends the email-verification message.
// The link points at the externally visible frontend, which calls back
// into the confirm endpoint with the embedded token.
type ConfirmationMailer struct {
	sender      Sender
	frontendURL string
}

func NewConfirmationMailer(sender Sender, frontendURL string) *ConfirmationMailer {
	return &ConfirmationMailer{sender: sender, frontendURL: frontendURL}
}

// ConfirmationURL returns the link a user follows to confirm their
// address.
func (m *ConfirmationMailer) ConfirmationURL(token string) string {
	return fmt.Sprintf("%s/confirm-email?token=%s", m.frontendURL, token)
}

func (m *ConfirmationMailer) Send(ctx context.Context, email, token string, userType model.UserType) error {
	url := m.ConfirmationURL(token)

	audience := "job seeker"
	if userType == model.UserTypeBusiness {
		audience = "business"
	}

	html := fmt.Sprintf(`
      <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
        <h2 style="color: #3b82f6;">Welcome to StepUpp!</h2>
        <p>Thank you for signing up as a %s.</p>
        <p>Please click the button below to confirm your email address:</p>
        <a href="%s"
           style="display: inline-block; background-color: #3b82f6; color: white; padding: 12px 24px; text-decoration: none; border-radius: 8px; margin: 20px 0;">
          Confirm Email
        </a>
        <p>Or copy and paste this link in your browser:</p>
        <p style="color: #6b7280; word-break: break-all;">%s</p>
        <p>This link will expire in 24 hours.</p>
        <hr style="margin: 30px 0; border: none; border-top: 1px solid #e5e7eb;">
        <p style="color: #6b7280; font-size: 14px;">
          If you didn't create an account, please ignore this email.
        </p>
      </div>
    `, audience, url, url)

	return m.sender.Send(ctx, Message{
		To:      email,
		Subject: confirmationSubject,
		HTML:    html,
	})
}
