package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
)

// GzipRequest inflates gzip encoded request bodies. Response compression is
// left to chi's Compress middleware.
func GzipRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Content-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		gzReader, err := gzip.NewReader(r.Body)
		if err != nil {
			http.Error(w, "Invalid gzip body", http.StatusBadRequest)
			return
		}
		defer gzReader.Close()

		r.Body = &gzipBody{Reader: gzReader, orig: r.Body}
		r.Header.Del("Content-Encoding")
		r.Header.Del("Content-Length")
		r.ContentLength = -1

		next.ServeHTTP(w, r)
	})
}

type gzipBody struct {
	io.Reader
	orig io.ReadCloser
}

func (b *gzipBody) Close() error {
	return b.orig.Close()
}
