package handler

import (
	"errors"
	"net/http"

	"github.com/go-anon-inbox/internal/application/account"
	"github.com/go-anon-inbox/internal/application/verification"
	"github.com/go-anon-inbox/internal/domain"
	"github.com/go-anon-inbox/internal/pkg/validate"
)

// AccountHandler handles signup, username availability and code verification.
type AccountHandler struct {
	accounts account.Service
	verify   verification.Service
}

func NewAccountHandler(accounts account.Service, verify verification.Service) *AccountHandler {
	return &AccountHandler{accounts: accounts, verify: verify}
}

func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if !decode(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.accounts.Register(r.Context(), req); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// Signup reports taken names as a plain validation failure.
			writeError(w, http.StatusBadRequest, publicMessage(err))
			return
		}
		httpError(w, r, err)
		return
	}
	writeOK(w, http.StatusCreated, "User registered successfully. Please verify your email.")
}

func (h *AccountHandler) CheckUsername(w http.ResponseWriter, r *http.Request) {
	if err := h.accounts.CheckUsername(r.Context(), r.URL.Query().Get("username")); err != nil {
		httpError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Username is available")
}

func (h *AccountHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyCodeRequest
	if !decode(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.verify.SubmitCode(r.Context(), req.Username, req.Code); err != nil {
		httpError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Account verified successfully")
}
