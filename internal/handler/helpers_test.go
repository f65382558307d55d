package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mmeshcher/shops-admin/internal/middleware"
	"github.com/mmeshcher/shops-admin/internal/models"
	"github.com/mmeshcher/shops-admin/internal/policy"
	"github.com/mmeshcher/shops-admin/internal/repository"
	"github.com/mmeshcher/shops-admin/internal/service"
)

const testSecret = "test-secret-key"

var errConnection = errors.New("connection refused")

type brokenRepository struct {
	*repository.MemoryRepository
}

func (b brokenRepository) Create(context.Context, *models.Shop) error {
	return errConnection
}

func (b brokenRepository) Update(context.Context, *models.Shop) error {
	return errConnection
}

func (b brokenRepository) Delete(context.Context, int64) error {
	return errConnection
}

type testPage struct {
	Component string                     `json:"component"`
	Props     map[string]json.RawMessage `json:"props"`
	URL       string                     `json:"url"`
}

func (p testPage) fieldErrors(t *testing.T) map[string][]string {
	t.Helper()

	var errs map[string][]string
	require.NoError(t, json.Unmarshal(p.Props["errors"], &errs))
	return errs
}

func newTestRouter(t *testing.T, repo repository.ShopRepository) *chi.Mux {
	t.Helper()

	logger := zap.NewNop()
	auth := middleware.NewAuthMiddleware(testSecret, "viewer", logger)
	svc := service.NewShopService(repo, logger)
	h := NewHandler(svc, logger, auth, policy.NewRolePolicy(policy.DefaultGrants()), Options{
		ShopRoles:   map[string]string{"admin": "Админ"},
		TeamRoles:   []string{"admin"},
		PerPage:     25,
		CORSOrigins: []string{"http://localhost:5173"},
	})

	return h.SetupRouter()
}

func seedShop(t *testing.T, repo repository.ShopRepository, title, url string) models.Shop {
	t.Helper()

	shop := &models.Shop{Title: title, URL: url}
	require.NoError(t, repo.Create(context.Background(), shop))
	return *shop
}

func createTestCookie(role string) *http.Cookie {
	auth := middleware.NewAuthMiddleware(testSecret, "viewer", zap.NewNop())
	return &http.Cookie{
		Name:  middleware.CookieName,
		Value: auth.Sign(policy.Actor{ID: "test-user-" + role, Role: role}),
	}
}

func serve(router http.Handler, req *http.Request, role string) *http.Response {
	if role != "" {
		req.AddCookie(createTestCookie(role))
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Result()
}

func decodePage(t *testing.T, result *http.Response) testPage {
	t.Helper()

	body, err := io.ReadAll(result.Body)
	require.NoError(t, err)

	var page testPage
	require.NoError(t, json.Unmarshal(body, &page), "body: %s", body)
	return page
}
