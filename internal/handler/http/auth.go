package http

import (
	"net/http"

	"github.com/MKhiriev/go-zk-vault/internal/app"
	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/internal/utils"
	"github.com/MKhiriev/go-zk-vault/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var registration models.Registration
	if err := utils.DecodeJSON(r, &registration); err != nil {
		log.Err(err).Msg(app.MsgInvalidJSON)
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	account, err := h.services.AuthService.Register(r.Context(), registration)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Info().Int64("account_id", account.AccountID).Msg("account registered")
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) params(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.ParamsRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		log.Err(err).Msg(app.MsgInvalidJSON)
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	params, err := h.services.AuthService.Params(r.Context(), req.Identifier)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if _, err = utils.WriteJSON(w, params, http.StatusOK); err != nil {
		log.Err(err).Msg("writing auth params failed")
	}
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var credentials models.Credentials
	if err := utils.DecodeJSON(r, &credentials); err != nil {
		log.Err(err).Msg(app.MsgInvalidJSON)
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	account, err := h.services.AuthService.Login(ctx, credentials)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, account)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Debug().Int64("account_id", account.AccountID).Msg("account logged in")
	w.Header().Set("Authorization", utils.BearerHeader(token.String()))
	w.WriteHeader(http.StatusOK)
}
