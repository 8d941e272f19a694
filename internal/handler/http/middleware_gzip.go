package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

var gzipWriterPool = sync.Pool{
	New: func() any {
		return gzip.NewWriter(io.Discard)
	},
}

var gzipReaderPool = sync.Pool{
	New: func() any {
		return new(gzip.Reader)
	},
}

// withGZip inflates gzip query bodies and compresses responses for clients
// that accept gzip. Blobs are sealed and go out as they are.
func withGZip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.Header.Get("Content-Encoding"), "gzip") && r.Body != nil {
			zr := gzipReaderPool.Get().(*gzip.Reader)
			if err := zr.Reset(r.Body); err != nil {
				gzipReaderPool.Put(zr)
				http.Error(w, "invalid gzip body", http.StatusBadRequest)
				return
			}
			r.Body = &pooledGzipReader{Reader: zr, body: r.Body}
			r.Header.Del("Content-Encoding")
		}

		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		zw := gzipWriterPool.Get().(*gzip.Writer)
		zw.Reset(w)
		gw := &gzipResponseWriter{ResponseWriter: w, gzipWriter: zw}

		next.ServeHTTP(gw, r)

		gw.finish()
		zw.Reset(io.Discard)
		gzipWriterPool.Put(zw)
	})
}

// pooledGzipReader returns its reader to the pool on Close.
type pooledGzipReader struct {
	*gzip.Reader
	body io.ReadCloser
}

func (p *pooledGzipReader) Close() error {
	p.Reader.Close()
	gzipReaderPool.Put(p.Reader)
	return p.body.Close()
}

type gzipResponseWriter struct {
	http.ResponseWriter
	gzipWriter  *gzip.Writer
	wroteHeader bool
	compress    bool
}

func (w *gzipResponseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true

	w.Header().Add("Vary", "Accept-Encoding")
	if w.Header().Get("Content-Type") != contentTypeOctetStream && statusCode != http.StatusNoContent {
		w.compress = true
		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Del("Content-Length")
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *gzipResponseWriter) Write(data []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	if !w.compress {
		return w.ResponseWriter.Write(data)
	}
	return w.gzipWriter.Write(data)
}

// finish terminates the gzip stream. Nothing is written when the response
// was not compressed.
func (w *gzipResponseWriter) finish() {
	if w.compress {
		w.gzipWriter.Close()
	}
}
