package handler

import (
	"net/http"
	"time"

	"github.com/go-anon-inbox/internal/application/session"
	"github.com/go-anon-inbox/internal/domain"
	"github.com/go-anon-inbox/internal/pkg/validate"
	"github.com/go-anon-inbox/internal/transport/http/middleware"
)

// CookieOptions controls the session cookie written at sign-in.
type CookieOptions struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

// SessionHandler handles sign-in, sign-out and the current session.
type SessionHandler struct {
	svc    session.Service
	cookie CookieOptions
}

func NewSessionHandler(svc session.Service, cookie CookieOptions) *SessionHandler {
	return &SessionHandler{svc: svc, cookie: cookie}
}

func (h *SessionHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req domain.SignInRequest
	if !decode(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := h.svc.SignIn(r.Context(), req.Identifier, req.Password)
	if err != nil {
		httpError(w, r, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    res.Token,
		Path:     "/",
		MaxAge:   int(h.cookie.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, SessionEnvelope{
		Success: true,
		Message: "Signed in successfully",
		Token:   res.Token,
		Session: &res.Session,
	})
}

func (h *SessionHandler) SignOut(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	writeOK(w, http.StatusOK, "Signed out")
}

func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	view := session.DeriveSession(*claims)
	writeJSON(w, http.StatusOK, SessionEnvelope{Success: true, Session: &view})
}
