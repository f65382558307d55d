package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mmeshcher/shops-admin/internal/policy"
)

func TestAuthMiddleware(t *testing.T) {
	auth := NewAuthMiddleware("test-secret-key", "viewer", zap.NewNop())

	type want struct {
		statusCode int
		role       string
		id         string
		setsCookie bool
	}

	tests := []struct {
		name   string
		cookie *http.Cookie
		want   want
	}{
		{
			name:   "positive: new visitor gets default role",
			cookie: nil,
			want: want{
				statusCode: http.StatusOK,
				role:       "viewer",
				setsCookie: true,
			},
		},
		{
			name: "positive: signed cookie",
			cookie: &http.Cookie{
				Name:  CookieName,
				Value: auth.Sign(policy.Actor{ID: "user-1", Role: "admin"}),
			},
			want: want{
				statusCode: http.StatusOK,
				role:       "admin",
				id:         "user-1",
				setsCookie: false,
			},
		},
		{
			name: "negative: tampered role",
			cookie: &http.Cookie{
				Name:  CookieName,
				Value: "user-1.admin." + auth.signature("user-1.viewer"),
			},
			want: want{
				statusCode: http.StatusUnauthorized,
			},
		},
		{
			name: "negative: malformed cookie",
			cookie: &http.Cookie{
				Name:  CookieName,
				Value: "garbage",
			},
			want: want{
				statusCode: http.StatusUnauthorized,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got policy.Actor
			var ok bool
			handler := auth.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got, ok = ActorFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/shops", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			result := w.Result()
			defer result.Body.Close()

			assert.Equal(t, tt.want.statusCode, result.StatusCode)
			if tt.want.statusCode != http.StatusOK {
				assert.False(t, ok)
				return
			}

			require.True(t, ok)
			assert.Equal(t, tt.want.role, got.Role)
			if tt.want.id != "" {
				assert.Equal(t, tt.want.id, got.ID)
			} else {
				assert.NotEmpty(t, got.ID)
			}
			assert.Equal(t, tt.want.setsCookie, len(result.Cookies()) > 0)
		})
	}
}
