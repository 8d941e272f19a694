package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-app-state-sync/internal/app"
	"github.com/MKhiriev/go-app-state-sync/internal/logger"
	"github.com/MKhiriev/go-app-state-sync/internal/utils"
	"github.com/MKhiriev/go-app-state-sync/models"
)

// registerDevice issues a device token. The token is returned in the
// Authorization response header, the body echoes the registered device.
func (h *Handler) registerDevice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var registration models.DeviceRegistration
	if err := json.NewDecoder(r.Body).Decode(&registration); err != nil {
		log.Err(err).Str("func", "*Handler.registerDevice").Msg("invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	token, err := h.services.AuthService.RegisterDevice(ctx, registration.DeviceID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.registerDevice").Msg("device registration failed")
		writeError(w, err)
		return
	}

	w.Header().Set("Authorization", "Bearer "+token.SignedString)
	if _, err = utils.WriteJSON(w, registration, http.StatusOK); err != nil {
		log.Err(err).Str("func", "*Handler.registerDevice").Msg("failed to write response")
	}
}
