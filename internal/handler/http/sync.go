package http

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-app-state-sync/internal/app"
	"github.com/MKhiriev/go-app-state-sync/internal/logger"
	"github.com/MKhiriev/go-app-state-sync/internal/metrics"
	"github.com/MKhiriev/go-app-state-sync/internal/utils"
)

const (
	contentTypeProtobuf    = "application/x-protobuf"
	contentTypeOctetStream = "application/octet-stream"

	// maxQueryBytes bounds a single query frame. Large mutation lists go
	// through external blobs, so real queries stay far below this.
	maxQueryBytes = 16 << 20
)

func (h *Handler) submitQuery(w http.ResponseWriter, r *http.Request) {
	defer metrics.ObserveQuery("http", time.Now())

	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, foundAccount := utils.GetAccountIDFromContext(ctx)
	deviceID, foundDevice := utils.GetDeviceIDFromContext(ctx)
	if !foundAccount || !foundDevice {
		log.Error().Str("func", "*Handler.submitQuery").Msg("no device in context")
		http.Error(w, app.MsgNoDeviceInContext, http.StatusUnauthorized)
		return
	}

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxQueryBytes))
	if err != nil {
		log.Err(err).Str("func", "*Handler.submitQuery").Msg("failed to read query body")
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, app.MsgInvalidQuery, http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	namespace := chi.URLParam(r, "namespace")
	response, err := h.services.RelayService.Submit(ctx, accountID, deviceID, namespace, payload)
	if err != nil {
		log.Err(err).
			Str("func", "*Handler.submitQuery").
			Str("namespace", namespace).
			Msg("query failed")
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypeProtobuf)
	w.WriteHeader(http.StatusOK)
	w.Write(response)
}

func (h *Handler) downloadBlob(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	path := chi.URLParam(r, "path")
	data, err := h.services.RelayService.FetchBlob(r.Context(), path)
	if err != nil {
		log.Err(err).Str("func", "*Handler.downloadBlob").Str("path", path).Msg("blob download failed")
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypeOctetStream)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
