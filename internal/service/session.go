package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/stepupp/account-server-go/internal/audit"
	"github.com/stepupp/account-server-go/internal/auth"
	apperrors "github.com/stepupp/account-server-go/internal/errors"
	"github.com/stepupp/account-server-go/internal/model"
	"github.com/stepupp/account-server-go/internal/store"
	"github.com/stepupp/account-server-go/internal/util"
)

// SessionService signs users in and resolves session credentials back
// to accounts. It only reads the store; sessions themselves are
// stateless JWTs.
type SessionService struct {
	store  store.Store
	issuer *auth.Issuer
}

func NewSessionService(st store.Store, issuer *auth.Issuer) *SessionService {
	return &SessionService{store: st, issuer: issuer}
}

type SignInResult struct {
	Token string
	User  model.PublicUser
}

func (s *SessionService) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	if email == "" || password == "" {
		return nil, apperrors.ValidationError("Email and password are required")
	}

	users, err := s.store.LoadUsers(ctx)
	if err != nil {
		return nil, err
	}

	var user *model.User
	for i := range users {
		if users[i].Email == email {
			user = &users[i]
			break
		}
	}

	// Unknown email and wrong password are indistinguishable to the
	// caller, to avoid account enumeration.
	if user == nil {
		audit.Log(ctx, audit.Event{Type: audit.EventSigninFailure, Email: email,
			Details: map[string]interface{}{"reason": "unknown_email"}})
		return nil, apperrors.Unauthorized("Invalid credentials")
	}

	if !user.EmailConfirmed {
		audit.Log(ctx, audit.Event{Type: audit.EventSigninFailure, Email: email,
			Details: map[string]interface{}{"reason": "unconfirmed"}})
		return nil, apperrors.Unauthorized("Please confirm your email before signing in")
	}

	if !util.CheckPasswordHash(password, user.PasswordHash) {
		audit.Log(ctx, audit.Event{Type: audit.EventSigninFailure, Email: email,
			Details: map[string]interface{}{"reason": "bad_password"}})
		return nil, apperrors.Unauthorized("Invalid credentials")
	}

	token, err := s.issuer.Issue(user.ID, user.Email, user.UserType)
	if err != nil {
		return nil, apperrors.Internal("Failed to issue session token").WithCause(err)
	}

	audit.Log(ctx, audit.Event{Type: audit.EventSigninSuccess, UserID: user.ID, Email: user.Email})

	return &SignInResult{Token: token, User: user.Public()}, nil
}

// GetProfile verifies a session credential and returns the account it
// was issued for, minus the password hash.
func (s *SessionService) GetProfile(ctx context.Context, token string) (*model.PublicUser, error) {
	claims, err := s.issuer.Verify(token)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			log.Debug().Msg("profile request with expired session token")
			return nil, apperrors.Unauthorized("Session expired")
		}
		return nil, apperrors.Unauthorized("Invalid token")
	}

	users, err := s.store.LoadUsers(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].ID == claims.UserID {
			public := users[i].Public()
			return &public, nil
		}
	}

	return nil, apperrors.NotFound("User")
}
