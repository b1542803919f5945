package service

import (
	"context"
	"regexp"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/stepupp/account-server-go/internal/audit"
	apperrors "github.com/stepupp/account-server-go/internal/errors"
	"github.com/stepupp/account-server-go/internal/mail"
	"github.com/stepupp/account-server-go/internal/model"
	"github.com/stepupp/account-server-go/internal/store"
	"github.com/stepupp/account-server-go/internal/util"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLength = 6

// RegistrationService drives the signup lifecycle: absent -> pending ->
// confirmed, with expiry back to absent and token rotation on resend.
//
// All mutating operations run under a single mutex. The store rewrites
// whole snapshots per save, so interleaved read-modify-write cycles
// would violate the one-pending-record-per-email invariant; the mutex
// serializes them.
type RegistrationService struct {
	mu            sync.Mutex
	store         store.Store
	mailer        *mail.ConfirmationMailer
	emailDisabled bool
	tokenTTL      time.Duration
}

func NewRegistrationService(
	st store.Store,
	mailer *mail.ConfirmationMailer,
	emailDisabled bool,
	tokenTTL time.Duration,
) *RegistrationService {
	return &RegistrationService{
		store:         st,
		mailer:        mailer,
		emailDisabled: emailDisabled,
		tokenTTL:      tokenTTL,
	}
}

type SignupResult struct {
	Email     string
	Delivered bool
	// ConfirmationToken is only populated when email delivery is
	// disabled, as the operational bypass for environments without
	// outbound mail.
	ConfirmationToken string
}

func (s *RegistrationService) Signup(ctx context.Context, params model.SignupParams) (*SignupResult, error) {
	if err := validateSignup(&params); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.store.LoadUsers(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.store.LoadPending(ctx)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if u.Email == params.Email {
			audit.Log(ctx, audit.Event{Type: audit.EventSignupConflict, Email: params.Email})
			return nil, apperrors.EmailConflict("User already exists and is confirmed", false)
		}
	}
	for _, p := range pending {
		if p.Email == params.Email {
			audit.Log(ctx, audit.Event{Type: audit.EventSignupConflict, Email: params.Email})
			return nil, apperrors.EmailConflict(
				"Confirmation email already sent. Please check your inbox or try resending.", true)
		}
	}

	hash, err := util.HashPassword(params.Password)
	if err != nil {
		return nil, apperrors.Internal("Failed to process password").WithCause(err)
	}

	token, err := util.GenerateToken()
	if err != nil {
		return nil, apperrors.Internal("Failed to generate confirmation token").WithCause(err)
	}

	now := time.Now().UTC()
	newUser := model.PendingUser{
		ID:                uuid.NewString(),
		Email:             params.Email,
		PasswordHash:      hash,
		UserType:          params.UserType,
		FirstName:         params.FirstName,
		LastName:          params.LastName,
		Phone:             params.Phone,
		Individual:        params.Individual,
		Business:          params.Business,
		ConfirmationToken: token,
		CreatedAt:         now,
		ExpiresAt:         now.Add(s.tokenTTL),
	}

	if err := s.store.SavePending(ctx, append(pending, newUser)); err != nil {
		return nil, err
	}

	if s.emailDisabled {
		log.Info().
			Str("email", params.Email).
			Str("confirmationUrl", s.mailer.ConfirmationURL(token)).
			Msg("email disabled: confirmation link for signup")
		audit.Log(ctx, audit.Event{Type: audit.EventSignup, UserID: newUser.ID, Email: params.Email,
			Details: map[string]interface{}{"delivered": false}})
		return &SignupResult{Email: params.Email, ConfirmationToken: token}, nil
	}

	if err := s.mailer.Send(ctx, params.Email, token, params.UserType); err != nil {
		// Compensating delete: a pending record whose confirmation link
		// was never delivered is unreachable by the user.
		if saveErr := s.store.SavePending(ctx, pending); saveErr != nil {
			log.Error().Err(saveErr).Str("email", params.Email).
				Msg("failed to remove pending registration after delivery failure")
		}
		audit.Log(ctx, audit.Event{Type: audit.EventDeliveryFailure, Email: params.Email})
		return nil, apperrors.DeliveryFailed(err)
	}

	audit.Log(ctx, audit.Event{Type: audit.EventSignup, UserID: newUser.ID, Email: params.Email,
		Details: map[string]interface{}{"delivered": true}})

	return &SignupResult{Email: params.Email, Delivered: true}, nil
}

// Confirm consumes a confirmation token, promoting the pending
// registration to a confirmed account. Tokens are single-use: the
// pending record is removed on success, so a second attempt with the
// same token finds nothing.
func (s *RegistrationService) Confirm(ctx context.Context, token string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending, err := s.store.LoadPending(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, p := range pending {
		if p.ConfirmationToken == token {
			idx = i
			break
		}
	}
	if idx == -1 {
		audit.Log(ctx, audit.Event{Type: audit.EventConfirmFailure,
			Details: map[string]interface{}{"reason": "unknown_token"}})
		return nil, apperrors.InvalidToken("Invalid or expired confirmation token")
	}

	record := pending[idx]
	now := time.Now().UTC()
	remaining := append(pending[:idx:idx], pending[idx+1:]...)

	if record.Expired(now) {
		// The expired registration must not stay reachable for a later
		// attempt with the same token.
		if err := s.store.SavePending(ctx, remaining); err != nil {
			return nil, err
		}
		audit.Log(ctx, audit.Event{Type: audit.EventConfirmFailure, Email: record.Email,
			Details: map[string]interface{}{"reason": "expired"}})
		return nil, apperrors.TokenExpired("Confirmation token has expired")
	}

	users, err := s.store.LoadUsers(ctx)
	if err != nil {
		return nil, err
	}

	confirmed := record.Promote(now)

	// The confirmed snapshot is written first: a crash between the two
	// writes leaves a duplicate pending record rather than a lost
	// account.
	if err := s.store.SaveUsers(ctx, append(users, confirmed)); err != nil {
		return nil, err
	}
	if err := s.store.SavePending(ctx, remaining); err != nil {
		return nil, err
	}

	audit.Log(ctx, audit.Event{Type: audit.EventEmailConfirmed, UserID: confirmed.ID, Email: confirmed.Email})

	return &confirmed, nil
}

// Resend rotates the confirmation token and resets the expiry window
// for an existing pending registration. The previous token stops
// matching any record, which invalidates it by construction.
func (s *RegistrationService) Resend(ctx context.Context, email string) (*SignupResult, error) {
	if email == "" {
		return nil, apperrors.MissingRequired("Email")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.store.LoadUsers(ctx)
	if err != nil {
		return nil, err
	}
	// Pending and confirmed are mutually exclusive per email; check
	// rather than assume.
	for _, u := range users {
		if u.Email == email {
			return nil, apperrors.EmailConflict("User already exists and is confirmed", false)
		}
	}

	pending, err := s.store.LoadPending(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, p := range pending {
		if p.Email == email {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, apperrors.New(apperrors.ErrCodeNotFound, "No pending confirmation found for this email")
	}

	token, err := util.GenerateToken()
	if err != nil {
		return nil, apperrors.Internal("Failed to generate confirmation token").WithCause(err)
	}

	pending[idx].ConfirmationToken = token
	pending[idx].ExpiresAt = time.Now().UTC().Add(s.tokenTTL)

	if err := s.store.SavePending(ctx, pending); err != nil {
		return nil, err
	}

	audit.Log(ctx, audit.Event{Type: audit.EventResend, UserID: pending[idx].ID, Email: email})

	if s.emailDisabled {
		log.Info().
			Str("email", email).
			Str("confirmationUrl", s.mailer.ConfirmationURL(token)).
			Msg("email disabled: rotated confirmation link")
		return &SignupResult{Email: email, ConfirmationToken: token}, nil
	}

	// The old token is already invalid, so a delivery failure here is
	// not rolled back.
	if err := s.mailer.Send(ctx, email, token, pending[idx].UserType); err != nil {
		audit.Log(ctx, audit.Event{Type: audit.EventDeliveryFailure, Email: email})
		return nil, apperrors.DeliveryFailed(err)
	}

	return &SignupResult{Email: email, Delivered: true}, nil
}

// PurgeExpired removes pending registrations whose confirmation window
// has passed. Driven by the background cleanup job.
func (s *RegistrationService) PurgeExpired(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending, err := s.store.LoadPending(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	kept := pending[:0:0]
	var removed int64
	for _, p := range pending {
		if p.Expired(now) {
			audit.Log(ctx, audit.Event{Type: audit.EventPendingExpired, UserID: p.ID, Email: p.Email})
			removed++
			continue
		}
		kept = append(kept, p)
	}

	if removed == 0 {
		return 0, nil
	}
	if err := s.store.SavePending(ctx, kept); err != nil {
		return 0, err
	}
	return removed, nil
}

func validateSignup(params *model.SignupParams) error {
	if params.Email == "" || params.Password == "" || params.UserType == "" {
		return apperrors.ValidationError("Email, password, and user type are required")
	}
	if !emailRegex.MatchString(params.Email) {
		return apperrors.InvalidInput("email", "please enter a valid email address")
	}
	if len(params.Password) < minPasswordLength {
		return apperrors.InvalidInput("password", "must be at least 6 characters long")
	}
	if !params.UserType.Valid() {
		return apperrors.InvalidInput("userType", "must be 'individual' or 'business'")
	}

	// Keep only the profile variant matching the account kind.
	switch params.UserType {
	case model.UserTypeIndividual:
		params.Business = nil
		if params.Individual == nil {
			params.Individual = &model.IndividualProfile{}
		}
	case model.UserTypeBusiness:
		params.Individual = nil
		if params.Business == nil {
			params.Business = &model.BusinessProfile{}
		}
		if params.Business.BusinessType == "" {
			params.Business.BusinessType = model.BusinessTypeStartup
		}
	}

	return nil
}
