package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-app-state-sync/internal/app"
	"github.com/MKhiriev/go-app-state-sync/internal/service"
)

type errorResponse struct {
	status  int
	message string
}

var errorResponses = map[error]errorResponse{
	service.ErrInvalidQuery:            {http.StatusBadRequest, app.MsgInvalidQuery},
	service.ErrUnknownNamespace:        {http.StatusBadRequest, app.MsgUnknownNamespace},
	service.ErrEmptyDeviceID:           {http.StatusBadRequest, app.MsgEmptyDeviceID},
	service.ErrTokenIsExpired:          {http.StatusUnauthorized, app.MsgTokenIsExpired},
	service.ErrTokenIsExpiredOrInvalid: {http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid},
	service.ErrBlobNotFound:            {http.StatusNotFound, app.MsgBlobNotFound},
	service.ErrTokenCreationFailed:     {http.StatusInternalServerError, app.MsgTokenCreationFailed},
}

func responseFromError(err error) errorResponse {
	for target, resp := range errorResponses {
		if errors.Is(err, target) {
			return resp
		}
	}
	return errorResponse{http.StatusInternalServerError, app.MsgInternalServerError}
}

func statusFromError(err error) int {
	return responseFromError(err).status
}

func writeError(w http.ResponseWriter, err error) {
	resp := responseFromError(err)
	http.Error(w, resp.message, resp.status)
}
