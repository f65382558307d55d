package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmeshcher/shops-admin/internal/repository"
)

func TestVisitHandler(t *testing.T) {
	type want struct {
		statusCode int
		location   string
	}

	tests := []struct {
		name    string
		request string
		role    string
		want    want
	}{
		{
			name:    "positive test",
			request: "/shops/1/visit",
			role:    "viewer",
			want: want{
				statusCode: http.StatusTemporaryRedirect,
				location:   "https://comus.ru",
			},
		},
		{
			name:    "missing shop",
			request: "/shops/7/visit",
			role:    "viewer",
			want: want{
				statusCode: http.StatusNotFound,
			},
		},
		{
			name:    "role without access",
			request: "/shops/1/visit",
			role:    "guest",
			want: want{
				statusCode: http.StatusForbidden,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := repository.NewMemoryRepository()
			seedShop(t, repo, "Комус", "https://comus.ru")
			router := newTestRouter(t, repo)

			result := serve(router, httptest.NewRequest(http.MethodGet, tt.request, nil), tt.role)
			defer result.Body.Close()

			assert.Equal(t, tt.want.statusCode, result.StatusCode)
			assert.Equal(t, tt.want.location, result.Header.Get("Location"))
		})
	}
}
