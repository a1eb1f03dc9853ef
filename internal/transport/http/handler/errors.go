package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-anon-inbox/internal/domain"
)

// httpStatus maps a domain error onto an HTTP status code.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrGone):
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage returns the client-facing text for err. Unknown errors get a
// generic message so storage details never reach the client.
func publicMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrUsernameTaken):
		return "Username is already taken"
	case errors.Is(err, domain.ErrEmailTaken):
		return "User already exists with this email"
	case errors.Is(err, domain.ErrInvalidCode):
		return "Invalid verification code."
	case errors.Is(err, domain.ErrCodeExpired):
		return "Verification code has expired. Please sign up again to receive a new one."
	case errors.Is(err, domain.ErrNotAccepting):
		return "This user is not accepting messages."
	case errors.Is(err, domain.ErrNotVerified):
		return "Account not verified. Please check your email."
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, domain.ErrDelivery):
		return "Failed to send verification email. Please try again."
	case errors.Is(err, domain.ErrNotFound):
		return "User not found"
	case errors.Is(err, domain.ErrBadRequest):
		return strings.TrimSuffix(err.Error(), ": "+domain.ErrBadRequest.Error())
	default:
		return "Internal server error"
	}
}

// httpError writes err as a {success:false,message} response.
func httpError(w http.ResponseWriter, r *http.Request, err error) {
	status := httpStatus(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	writeError(w, status, publicMessage(err))
}
