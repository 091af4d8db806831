package http

import (
	"net/http"

	"github.com/MKhiriev/go-zk-vault/internal/app"
	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/internal/utils"
	"github.com/MKhiriev/go-zk-vault/models"
)

func (h *Handler) fetchVault(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, ok := utils.GetAccountIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no account id in request context")
		http.Error(w, app.MsgUnauthorized, http.StatusUnauthorized)
		return
	}

	envelope, err := h.services.VaultService.Fetch(ctx, accountID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if _, err = utils.WriteJSON(w, envelope, http.StatusOK); err != nil {
		log.Err(err).Msg("writing vault failed")
	}
}

func (h *Handler) saveVault(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, ok := utils.GetAccountIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no account id in request context")
		http.Error(w, app.MsgUnauthorized, http.StatusUnauthorized)
		return
	}

	var envelope models.VaultEnvelope
	if err := utils.DecodeJSON(r, &envelope); err != nil {
		log.Err(err).Msg(app.MsgInvalidJSON)
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	if err := h.services.VaultService.Save(ctx, accountID, envelope); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
