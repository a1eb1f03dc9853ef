package handler

import (
	"errors"
	"net/http"

	"github.com/go-anon-inbox/internal/application/message"
	"github.com/go-anon-inbox/internal/domain"
	"github.com/go-anon-inbox/internal/pkg/validate"
	"github.com/go-anon-inbox/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
)

// MessageHandler handles the inbox, sending, acceptance and public profile endpoints.
type MessageHandler struct {
	svc message.Service
}

func NewMessageHandler(svc message.Service) *MessageHandler { return &MessageHandler{svc: svc} }

func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req domain.SendMessageRequest
	if !decode(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.Send(r.Context(), req.Username, req.Content); err != nil {
		httpError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Message sent successfully")
}

func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	msgs, err := h.svc.List(r.Context(), claims.AccountID)
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessagesEnvelope{Success: true, Messages: msgs})
}

func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	err := h.svc.Delete(r.Context(), claims.AccountID, chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Message not found or already deleted")
		return
	}
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Message deleted")
}

func (h *MessageHandler) GetAcceptance(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	accepts, err := h.svc.GetAcceptance(r.Context(), claims.AccountID)
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, AcceptanceEnvelope{Success: true, IsAcceptingMessages: accepts})
}

func (h *MessageHandler) SetAcceptance(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	var req domain.AcceptMessagesRequest
	if !decode(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.SetAcceptance(r.Context(), claims.AccountID, *req.AcceptMessages); err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, AcceptanceEnvelope{
		Success:             true,
		Message:             "Message acceptance status updated successfully",
		IsAcceptingMessages: *req.AcceptMessages,
	})
}

func (h *MessageHandler) Profile(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Profile(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ProfileEnvelope{Success: true, Profile: p})
}

func (h *MessageHandler) Suggest(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, SuggestionsEnvelope{Success: true, Suggestions: h.svc.Suggest()})
}
