package audit

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type EventType string

const (
	EventSignup          EventType = "signup"
	EventSignupConflict  EventType = "signup_conflict"
	EventEmailConfirmed  EventType = "email_confirmed"
	EventConfirmFailure  EventType = "confirm_failure"
	EventResend          EventType = "resend_confirmation"
	EventSigninSuccess   EventType = "signin_success"
	EventSigninFailure   EventType = "signin_failure"
	EventDeliveryFailure EventType = "delivery_failure"
	EventPendingExpired  EventType = "pending_expired"
)

type Event struct {
	Type    EventType
	UserID  string
	Email   string
	Details map[string]interface{}
}

func Log(ctx context.Context, event Event) {
	logger := log.With().
		Str("audit", "account").
		Str("event_type", string(event.Type)).
		Time("timestamp", time.Now()).
		Logger()

	if event.UserID != "" {
		logger = logger.With().Str("user_id", event.UserID).Logger()
	}
	if event.Email != "" {
		logger = logger.With().Str("email", event.Email).Logger()
	}

	logEvent := logger.Info()
	for k, v := range event.Details {
		logEvent = addField(logEvent, k, v)
	}
	logEvent.Msg("account audit event")
}

func addField(e *zerolog.Event, key string, value interface{}) *zerolog.Event {
	switch v := value.(type) {
	case string:
		return e.Str(key, v)
	case int:
		return e.Int(key, v)
	case int64:
		return e.Int64(key, v)
	case bool:
		return e.Bool(key, v)
	default:
		return e.Interface(key, v)
	}
}
