package model

import (
	"time"
)

// IndividualProfile holds the job-seeker specific signup fields.
type IndividualProfile struct {
	Experience string `json:"experience"`
	Skills     string `json:"skills"`
}

// BusinessProfile holds the business specific signup fields.
type BusinessProfile struct {
	CompanyName  string       `json:"companyName"`
	CompanySize  string       `json:"companySize"`
	Industry     string       `json:"industry"`
	Description  string       `json:"description"`
	BusinessType BusinessType `json:"businessType"`
}

// PendingUser is a signup awaiting email confirmation. Exactly one of
// Individual or Business is set, selected by UserType.
type PendingUser struct {
	ID                string             `json:"id"`
	Email             string             `json:"email"`
	PasswordHash      string             `json:"password"`
	UserType          UserType           `json:"userType"`
	FirstName         string             `json:"firstName"`
	LastName          string             `json:"lastName"`
	Phone             string             `json:"phone"`
	Individual        *IndividualProfile `json:"individual,omitempty"`
	Business          *BusinessProfile   `json:"business,omitempty"`
	ConfirmationToken string             `json:"confirmationToken"`
	CreatedAt         time.Time          `json:"createdAt"`
	ExpiresAt         time.Time          `json:"expiresAt"`
}

func (u PendingUser) Expired(now time.Time) bool {
	return now.After(u.ExpiresAt)
}

// User is a confirmed, sign-in-capable account. Created exactly once by
// promotion from a PendingUser and never deleted by this service.
type User struct {
	ID             string             `json:"id"`
	Email          string             `json:"email"`
	PasswordHash   string             `json:"password"`
	UserType       UserType           `json:"userType"`
	FirstName      string             `json:"firstName"`
	LastName       string             `json:"lastName"`
	Phone          string             `json:"phone"`
	Individual     *IndividualProfile `json:"individual,omitempty"`
	Business       *BusinessProfile   `json:"business,omitempty"`
	EmailConfirmed bool               `json:"emailConfirmed"`
	CreatedAt      time.Time          `json:"createdAt"`
	ConfirmedAt    time.Time          `json:"confirmedAt"`
}

// Promote builds the confirmed account for a pending registration,
// dropping the confirmation token and expiry.
func (u PendingUser) Promote(now time.Time) User {
	return User{
		ID:             u.ID,
		Email:          u.Email,
		PasswordHash:   u.PasswordHash,
		UserType:       u.UserType,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Phone:          u.Phone,
		Individual:     u.Individual,
		Business:       u.Business,
		EmailConfirmed: true,
		CreatedAt:      u.CreatedAt,
		ConfirmedAt:    now,
	}
}

// PublicUser is the API view of a User: everything except the password
// hash.
type PublicUser struct {
	ID             string             `json:"id"`
	Email          string             `json:"email"`
	UserType       UserType           `json:"userType"`
	FirstName      string             `json:"firstName"`
	LastName       string             `json:"lastName"`
	Phone          string             `json:"phone"`
	Individual     *IndividualProfile `json:"individual,omitempty"`
	Business       *BusinessProfile   `json:"business,omitempty"`
	EmailConfirmed bool               `json:"emailConfirmed"`
	CreatedAt      time.Time          `json:"createdAt"`
	ConfirmedAt    time.Time          `json:"confirmedAt"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:             u.ID,
		Email:          u.Email,
		UserType:       u.UserType,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Phone:          u.Phone,
		Individual:     u.Individual,
		Business:       u.Business,
		EmailConfirmed: u.EmailConfirmed,
		CreatedAt:      u.CreatedAt,
		ConfirmedAt:    u.ConfirmedAt,
	}
}

// SignupParams is the validated input to the signup operation.
type SignupParams struct {
	Email      string             `json:"email"`
	Password   string             `json:"password"`
	UserType   UserType           `json:"userType"`
	FirstName  string             `json:"firstName"`
	LastName   string             `json:"lastName"`
	Phone      string             `json:"phone"`
	Individual *IndividualProfile `json:"individual,omitempty"`
	Business   *BusinessProfile   `json:"business,omitempty"`
}
