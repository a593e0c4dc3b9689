package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/finbridge-app/advisory-service/internal/domain"
	"github.com/finbridge-app/advisory-service/internal/usecase"
)

const maxBodyBytes = 1 << 20

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ok, msg := h.svc.Check(r.Context(), "")
	status := http.StatusOK
	if !ok {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{"healthy": ok, "message": msg})
}

func (h *Handler) handleAdvice(w http.ResponseWriter, r *http.Request) {
	var req domain.AdviceRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.svc.Advise(r.Context(), req)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", req.UserID).Msg("advice failed")
		writeError(w, http.StatusInternalServerError, "Error generating advice")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleTransactions(w http.ResponseWriter, r *http.Request) {
	ledger, err := h.svc.Transactions(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		writeError(w, http.StatusNotFound, "No transactions found")
	case err != nil:
		h.log.Error().Err(err).Msg("load transactions failed")
		writeError(w, http.StatusInternalServerError, "Failed to fetch transactions")
	default:
		writeJSON(w, http.StatusOK, ledger)
	}
}

type translateRequest struct {
	Text       *string  `json:"text"`
	Texts      []string `json:"texts"`
	TargetLang string   `json:"targetLang"`
}

// handleTranslate answers with a string for "text" and an array for "texts".
func (h *Handler) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.TargetLang) == "" {
		writeError(w, http.StatusBadRequest, "targetLang is required for translation")
		return
	}

	switch {
	case req.Texts != nil:
		out, err := h.svc.Translate(r.Context(), req.Texts, req.TargetLang)
		if err != nil {
			h.translateFailed(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"translated": out})
	case req.Text != nil:
		if *req.Text == "" {
			writeJSON(w, http.StatusOK, map[string]any{"translated": ""})
			return
		}
		out, err := h.svc.Translate(r.Context(), []string{*req.Text}, req.TargetLang)
		if err != nil || len(out) != 1 {
			h.translateFailed(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"translated": out[0]})
	default:
		writeError(w, http.StatusBadRequest, "Provide either text or texts for translation")
	}
}

func (h *Handler) translateFailed(w http.ResponseWriter, err error) {
	if errors.Is(err, usecase.ErrInvalidArgument) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.log.Error().Err(err).Msg("translation failed")
	writeError(w, http.StatusInternalServerError, "Translation failed")
}

func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	prefs, err := h.svc.User(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "User not found"})
	case err != nil:
		h.log.Error().Err(err).Msg("get user failed")
		writeError(w, http.StatusInternalServerError, "Failed to fetch user data")
	default:
		writeJSON(w, http.StatusOK, prefs)
	}
}

func (h *Handler) handlePutUser(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Language string `json:"language"`
		Culture  string `json:"culture"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.svc.SaveUser(r.Context(), domain.UserPreferences{
		UserID:   chi.URLParam(r, "id"),
		Language: body.Language,
		Culture:  body.Culture,
	})
	switch {
	case errors.Is(err, usecase.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		h.log.Error().Err(err).Msg("update user failed")
		writeError(w, http.StatusInternalServerError, "Failed to update user data")
	default:
		writeJSON(w, http.StatusOK, map[string]string{"message": "User updated successfully"})
	}
}
