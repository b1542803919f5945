package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	apperrors "github.com/stepupp/account-server-go/internal/errors"
	"github.com/stepupp/account-server-go/internal/middleware"
	"github.com/stepupp/account-server-go/internal/model"
	"github.com/stepupp/account-server-go/internal/service"
)

// AccountHandler exposes the registration and session workflows over
// HTTP.
type AccountHandler struct {
	registration  *service.RegistrationService
	sessions      *service.SessionService
	authHandler   func(http.Handler) http.Handler
	emailDisabled bool
}

func NewAccountHandler(
	registration *service.RegistrationService,
	sessions *service.SessionService,
	authHandler func(http.Handler) http.Handler,
	emailDisabled bool,
) *AccountHandler {
	return &AccountHandler{
		registration:  registration,
		sessions:      sessions,
		authHandler:   authHandler,
		emailDisabled: emailDisabled,
	}
}

func (h *AccountHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/signup", h.Signup)
	r.Get("/confirm-email/{token}", h.ConfirmEmail)
	r.Post("/signin", h.SignIn)
	r.Post("/resend-confirmation", h.ResendConfirmation)

	r.Group(func(r chi.Router) {
		r.Use(h.authHandler)
		r.Get("/profile", h.Profile)
	})

	return r
}

// signupRequest is the flat wire shape: kind-specific fields arrive at
// the top level and are folded into the matching profile variant.
type signupRequest struct {
	Email     string         `json:"email"`
	Password  string         `json:"password"`
	UserType  model.UserType `json:"userType"`
	FirstName string         `json:"firstName"`
	LastName  string         `json:"lastName"`
	Phone     string         `json:"phone"`

	// individual
	Experience string `json:"experience"`
	Skills     string `json:"skills"`

	// business
	CompanyName  string             `json:"companyName"`
	CompanySize  string             `json:"companySize"`
	Industry     string             `json:"industry"`
	Description  string             `json:"description"`
	BusinessType model.BusinessType `json:"businessType"`
}

func (req signupRequest) params() model.SignupParams {
	params := model.SignupParams{
		Email:     req.Email,
		Password:  req.Password,
		UserType:  req.UserType,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	}

	switch req.UserType {
	case model.UserTypeIndividual:
		params.Individual = &model.IndividualProfile{
			Experience: req.Experience,
			Skills:     req.Skills,
		}
	case model.UserTypeBusiness:
		params.Business = &model.BusinessProfile{
			CompanyName:  req.CompanyName,
			CompanySize:  req.CompanySize,
			Industry:     req.Industry,
			Description:  req.Description,
			BusinessType: req.BusinessType,
		}
	}

	return params
}

func (h *AccountHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}

	result, err := h.registration.Signup(r.Context(), req.params())
	if err != nil {
		logServerError(err, "signup failed")
		writeError(w, err)
		return
	}

	response := map[string]any{
		"message":       "User registered successfully. Please check your email to confirm your account.",
		"email":         result.Email,
		"delivered":     result.Delivered,
		"emailDisabled": h.emailDisabled,
	}
	if h.emailDisabled {
		response["message"] = "User registered successfully. Email delivery is disabled; use the returned confirmation token."
		response["confirmationToken"] = result.ConfirmationToken
	}

	writeJSON(w, http.StatusCreated, response)
}

func (h *AccountHandler) ConfirmEmail(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		writeError(w, apperrors.MissingRequired("Confirmation token"))
		return
	}

	if _, err := h.registration.Confirm(r.Context(), token); err != nil {
		logServerError(err, "email confirmation failed")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Email confirmed successfully. You can now sign in.",
	})
}

func (h *AccountHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}

	result, err := h.sessions.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		logServerError(err, "signin failed")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Sign in successful",
		"token":   result.Token,
		"user":    result.User,
	})
}

func (h *AccountHandler) ResendConfirmation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}

	result, err := h.registration.Resend(r.Context(), req.Email)
	if err != nil {
		logServerError(err, "resend confirmation failed")
		writeError(w, err)
		return
	}

	response := map[string]any{
		"message": "Confirmation email resent successfully",
	}
	if h.emailDisabled {
		response["message"] = "New confirmation link generated."
		response["confirmationToken"] = result.ConfirmationToken
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *AccountHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		writeError(w, apperrors.Unauthorized("Not authenticated"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

// logServerError logs errors that are not the caller's fault with
// enough context to diagnose. Client errors are left to the response.
func logServerError(err error, msg string) {
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeStorage, apperrors.ErrCodeInternal, apperrors.ErrCodeDeliveryFailed:
		log.Error().Err(err).Msg(msg)
	}
}
