package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// statusErrors maps a response status to a sentinel per endpoint group.
// Statuses absent from the map become ErrStorageUnavailable.
type statusErrors map[int]error

var (
	registerErrors = statusErrors{
		http.StatusBadRequest: ErrInvalidInput,
		http.StatusConflict:   ErrDuplicateIdentifier,
	}
	paramsErrors = statusErrors{
		http.StatusBadRequest: ErrInvalidInput,
		http.StatusNotFound:   ErrAccountNotFound,
	}
	loginErrors = statusErrors{
		http.StatusBadRequest:   ErrInvalidInput,
		http.StatusUnauthorized: ErrInvalidCredentials,
	}
	vaultErrors = statusErrors{
		http.StatusBadRequest:   ErrInvalidInput,
		http.StatusUnauthorized: ErrUnauthorized,
		http.StatusForbidden:    ErrUnauthorized,
		http.StatusNotFound:     ErrNotFound,
	}
)

func mapHTTPError(resp *resty.Response, known statusErrors) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(code)
	}

	if sentinel, ok := known[code]; ok {
		return fmt.Errorf("%w: %s", sentinel, body)
	}
	return fmt.Errorf("%w: http %d: %s", ErrStorageUnavailable, code, body)
}
