package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mmeshcher/shops-admin/internal/models"
)

const maxFormBody = 1 << 20

var errInvalidID = errors.New("invalid shop id")

// decodeShopForm reads title and url from a form or JSON body. Fields
// absent from the body stay nil.
func decodeShopForm(r *http.Request) (models.UpdateShopRequest, error) {
	var req models.UpdateShopRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		decoder := json.NewDecoder(io.LimitReader(r.Body, maxFormBody))
		if err := decoder.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			return req, fmt.Errorf("decode json body: %w", err)
		}
		return req, nil
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxFormBody); err != nil {
			return req, fmt.Errorf("parse multipart form: %w", err)
		}
	default:
		r.Body = http.MaxBytesReader(nil, r.Body, maxFormBody)
		if err := r.ParseForm(); err != nil {
			return req, fmt.Errorf("parse form: %w", err)
		}
	}

	req.Title = formValue(r, "title")
	req.URL = formValue(r, "url")
	return req, nil
}

func formValue(r *http.Request, key string) *string {
	values, ok := r.PostForm[key]
	if !ok || len(values) == 0 {
		return nil
	}
	value := values[0]
	return &value
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func shopIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}
