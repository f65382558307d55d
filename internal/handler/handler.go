package handler

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/mmeshcher/shops-admin/internal/middleware"
	"github.com/mmeshcher/shops-admin/internal/models"
	"github.com/mmeshcher/shops-admin/internal/policy"
	"github.com/mmeshcher/shops-admin/internal/render"
	"github.com/mmeshcher/shops-admin/internal/service"
)

type ShopService interface {
	GetByID(ctx context.Context, id int64) (models.ShopDto, error)
	List(ctx context.Context, params service.ListParams) (models.PaginatedList[models.ShopDto], error)
	Create(ctx context.Context, title, shopURL string) (models.ShopDto, error)
	Update(ctx context.Context, id int64, title, shopURL *string) (models.ShopDto, error)
	Delete(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}

// Options carries the settings the views need besides service data.
type Options struct {
	ShopRoles   map[string]string
	TeamRoles   []string
	PerPage     int
	CORSOrigins []string
	Registry    *prometheus.Registry
}

type Handler struct {
	service  ShopService
	logger   *zap.Logger
	auth     *middleware.AuthMiddleware
	policy   policy.Policy
	renderer *render.Renderer
	metrics  *middleware.Metrics
	registry *prometheus.Registry
	opts     Options
}

func NewHandler(service ShopService, logger *zap.Logger, auth *middleware.AuthMiddleware, pol policy.Policy, opts Options) *Handler {
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}

	return &Handler{
		service:  service,
		logger:   logger,
		auth:     auth,
		policy:   pol,
		renderer: render.NewRenderer(logger),
		metrics:  middleware.NewMetrics(opts.Registry),
		registry: opts.Registry,
		opts:     opts,
	}
}

// authorize aborts with 403 unless the current actor may perform action.
func (h *Handler) authorize(rw http.ResponseWriter, r *http.Request, action policy.Action, subject any) bool {
	actor, ok := middleware.ActorFromContext(r.Context())
	if ok && h.policy.Can(actor, action, subject) {
		return true
	}

	h.logger.Info("Access denied",
		zap.String("actor", actor.ID),
		zap.String("role", actor.Role),
		zap.String("action", string(action)))
	http.Error(rw, http.StatusText(http.StatusForbidden), http.StatusForbidden)
	return false
}
