package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-zk-vault/internal/app"
	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/internal/service"
	"github.com/MKhiriev/go-zk-vault/internal/store"
)

// errorStatus pairs a sentinel with its response status and body. The list
// is ordered: the first match wins.
type errorStatus struct {
	err    error
	status int
	msg    string
}

var errorStatuses = []errorStatus{
	{service.ErrInvalidDataProvided, http.StatusBadRequest, app.MsgInvalidDataProvided},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, app.MsgInvalidCredentials},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, app.MsgUnauthorized},

	{store.ErrIdentifierAlreadyExists, http.StatusConflict, app.MsgIdentifierTaken},
	{store.ErrAccountNotFound, http.StatusNotFound, app.MsgAccountNotFound},
	{store.ErrVaultNotFound, http.StatusNotFound, app.MsgAccountNotFound},
	{store.ErrUnavailable, http.StatusServiceUnavailable, app.MsgStorageUnavailable},
}

func statusFromError(err error) (int, string) {
	for _, es := range errorStatuses {
		if errors.Is(err, es.err) {
			return es.status, es.msg
		}
	}
	return http.StatusInternalServerError, app.MsgInternalServerError
}

// writeError logs err and answers with its status. Internal details only
// reach the log.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Warn().Err(err).Int("status", status).Msg("request rejected")
	}

	http.Error(w, msg, status)
}
