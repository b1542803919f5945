package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/stepupp/account-server-go/internal/model"
)

var (
	// ErrTokenExpired means the credential was well-formed and correctly
	// signed but its validity window has passed.
	ErrTokenExpired = errors.New("session token expired")
	// ErrTokenInvalid covers malformed tokens and bad signatures.
	ErrTokenInvalid = errors.New("session token invalid")
)

// Claims is the set of assertions carried by a session credential.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string         `json:"userId"`
	Email    string         `json:"email"`
	UserType model.UserType `json:"userType"`
}

// Issuer signs and verifies stateless session credentials with a
// server-held secret. The secret is loaded once at startup and never
// changes for the life of the process.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// Issue produces a signed token binding the user identity for the
// configured validity window.
func (i *Issuer) Issue(userID, email string, userType model.UserType) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		UserID:   userID,
		Email:    email,
		UserType: userType,
	})

	return token.SignedString(i.secret)
}

// Verify checks the signature and validity window. Expired and invalid
// tokens are distinguishable for diagnostics; callers reject both.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
