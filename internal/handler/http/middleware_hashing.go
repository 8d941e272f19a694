package http

import (
	"bytes"
	"crypto/hmac"
	"encoding/hex"
	"io"
	"net/http"

	"github.com/MKhiriev/go-app-state-sync/internal/app"
	"github.com/MKhiriev/go-app-state-sync/internal/logger"
	"github.com/MKhiriev/go-app-state-sync/internal/utils"
)

// hashHeader carries the hex HMAC-SHA256 of the request body under the
// shared hash key.
const hashHeader = "HashSHA256"

// checkHash verifies the HashSHA256 header against the raw request body.
// It is a pass-through when the handler has no hash key.
func (h *Handler) checkHash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.hashKey == "" {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		hashFromHeader := r.Header.Get(hashHeader)
		if hashFromHeader == "" {
			log.Err(ErrMissingHash).Str("func", "*Handler.checkHash").Send()
			http.Error(w, ErrMissingHash.Error(), http.StatusBadRequest)
			return
		}

		expected, err := hex.DecodeString(hashFromHeader)
		if err != nil {
			log.Err(err).Str("func", "*Handler.checkHash").Msg("hash header is not hex")
			http.Error(w, app.MsgIntegrityCheckFailed, http.StatusBadRequest)
			return
		}

		// read bytes from body
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxQueryBytes))
		if err != nil {
			log.Err(err).Str("func", "*Handler.checkHash").Msg("failed to read request body")
			http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
			return
		}
		// restore request body
		r.Body = io.NopCloser(bytes.NewReader(body))

		if !hmac.Equal(expected, utils.Hash(body)) {
			log.Error().Str("func", "*Handler.checkHash").
				Str("hash from request", hashFromHeader).
				Int("body size", len(body)).
				Msg("hashes are not equal")
			http.Error(w, app.MsgIntegrityCheckFailed, http.StatusBadRequest)
			return
		}

		next.ServeHTTP(w, r)
	})
}
