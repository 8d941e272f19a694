// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gzipped(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func gunzipped(t *testing.T, data []byte) []byte {
	t.Helper()
	zr, err := gzip.NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	out, err := io.ReadAll(zr)
	require.NoError(t, err)
	return out
}

// echo writes the request body back without an explicit WriteHeader.
var echo = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	w.Write(body)
})

func TestWithGZip(t *testing.T) {
	frame := []byte{0x0a, 0x04, 0x08, 0x01, 0x10, 0x02}

	tests := []struct {
		name            string
		acceptEncoding  string
		contentEncoding string
		body            []byte
		wantGzipped     bool
	}{
		{name: "plain in plain out", body: frame},
		{name: "compress response", acceptEncoding: "gzip", body: frame, wantGzipped: true},
		{name: "accept list with quality", acceptEncoding: "br;q=1.0, gzip;q=0.8", body: frame, wantGzipped: true},
		{name: "inflate request", contentEncoding: "gzip", body: gzipped(t, frame)},
		{name: "inflate request and compress response", acceptEncoding: "gzip", contentEncoding: "gzip", body: gzipped(t, frame), wantGzipped: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/sync/app_state", bytes.NewReader(tt.body))
			req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			req.Header.Set("Content-Encoding", tt.contentEncoding)
			rr := httptest.NewRecorder()

			withGZip(echo).ServeHTTP(rr, req)

			require.Equal(t, http.StatusOK, rr.Code)
			if tt.wantGzipped {
				assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
				assert.Equal(t, frame, gunzipped(t, rr.Body.Bytes()))
				return
			}
			assert.Empty(t, rr.Header().Get("Content-Encoding"))
			assert.Equal(t, frame, rr.Body.Bytes())
		})
	}
}

func TestWithGZip_InvalidRequestBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/sync/app_state", bytes.NewReader([]byte("not gzip")))
	req.Header.Set("Content-Encoding", "gzip")
	rr := httptest.NewRecorder()

	withGZip(echo).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestWithGZip_BlobsPassThrough(t *testing.T) {
	blob := []byte{0xde, 0xad, 0xbe, 0xef}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentTypeOctetStream)
		w.Write(blob)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/blobs/x", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()

	withGZip(handler).ServeHTTP(rr, req)

	assert.Empty(t, rr.Header().Get("Content-Encoding"))
	assert.Equal(t, "Accept-Encoding", rr.Header().Get("Vary"))
	assert.Equal(t, blob, rr.Body.Bytes())
}

func TestWithGZip_EmptyResponse(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()

	withGZip(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).ServeHTTP(rr, req)

	// без записи не должно быть пустого gzip-потока
	assert.Empty(t, rr.Body.Bytes())
	assert.Empty(t, rr.Header().Get("Content-Encoding"))
}
