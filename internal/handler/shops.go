package handler

import (
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/mmeshcher/shops-admin/internal/models"
	"github.com/mmeshcher/shops-admin/internal/policy"
	"github.com/mmeshcher/shops-admin/internal/render"
	"github.com/mmeshcher/shops-admin/internal/service"
	"github.com/mmeshcher/shops-admin/internal/validation"
)

const shopsIndexPath = "/shops"

// IndexHandler lists shops. GET /shops
func (h *Handler) IndexHandler(rw http.ResponseWriter, r *http.Request) {
	if !h.authorize(rw, r, policy.ViewAny, nil) {
		return
	}

	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))

	filter := make(map[string]string)
	linksQuery := make(map[string][]string)
	for _, key := range []string{"role", "q"} {
		if query.Has(key) {
			filter[key] = query.Get(key)
			linksQuery[key] = []string{query.Get(key)}
		}
	}

	shops, err := h.service.List(r.Context(), service.ListParams{
		Role:        query.Get("role"),
		SearchQuery: query.Get("q"),
		PerPage:     h.opts.PerPage,
		Page:        page,
		Path:        shopsIndexPath,
		LinksQuery:  linksQuery,
	})
	if err != nil {
		h.internalError(rw, "Failed to list shops", err)
		return
	}

	h.renderer.Render(rw, r, http.StatusOK, "Shops/Index", render.Props{
		"shops": models.MapPaginatedList(shops, func(shop models.ShopDto) models.ShopListItem {
			return models.ShopListItem{
				ID:        shop.ID,
				Title:     shop.Title,
				URL:       shop.URL,
				CreatedAt: shop.CreatedAt,
			}
		}),
		"initialFilter": filter,
	})
}

// CreateHandler shows the creation form. GET /shops/create
func (h *Handler) CreateHandler(rw http.ResponseWriter, r *http.Request) {
	if !h.authorize(rw, r, policy.Create, nil) {
		return
	}

	h.renderCreateForm(rw, r, http.StatusOK, models.CreateShopRequest{}, nil)
}

// StoreHandler saves a new shop. POST /shops
func (h *Handler) StoreHandler(rw http.ResponseWriter, r *http.Request) {
	if !h.authorize(rw, r, policy.Create, nil) {
		return
	}

	form, err := decodeShopForm(r)
	if err != nil {
		h.logger.Warn("Failed to decode shop form", zap.Error(err))
		http.Error(rw, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	req := models.CreateShopRequest{Title: deref(form.Title), URL: deref(form.URL)}

	var verr *validation.ValidationError
	if err := validation.Struct(req); err != nil {
		if errors.As(err, &verr) {
			h.renderCreateForm(rw, r, http.StatusUnprocessableEntity, req, verr.Messages)
			return
		}
		h.internalError(rw, "Failed to validate shop request", err)
		return
	}

	if _, err := h.service.Create(r.Context(), req.Title, req.URL); err != nil {
		switch {
		case errors.As(err, &verr):
			h.renderCreateForm(rw, r, http.StatusUnprocessableEntity, req, verr.Messages)
		case errors.Is(err, service.ErrNotCreated):
			h.renderCreateForm(rw, r, http.StatusUnprocessableEntity, req, map[string][]string{
				"title": {"Unable to create shop: " + service.Cause(err).Error()},
			})
		default:
			h.internalError(rw, "Failed to create shop", err)
		}
		return
	}

	h.renderer.Redirect(rw, r, shopsIndexPath)
}

// ShowHandler renders a single shop. GET /shops/{id}
func (h *Handler) ShowHandler(rw http.ResponseWriter, r *http.Request) {
	shop, ok := h.loadShop(rw, r)
	if !ok || !h.authorize(rw, r, policy.View, shop) {
		return
	}

	h.renderer.Render(rw, r, http.StatusOK, "Shops/Show", render.Props{
		"shop": shop,
	})
}

// EditHandler shows the edit form. GET /shops/{id}/edit
func (h *Handler) EditHandler(rw http.ResponseWriter, r *http.Request) {
	shop, ok := h.loadShop(rw, r)
	if !ok || !h.authorize(rw, r, policy.Update, shop) {
		return
	}

	h.renderEditForm(rw, r, http.StatusOK, shop, nil)
}

// UpdateHandler saves changes to a shop. PUT /shops/{id}
func (h *Handler) UpdateHandler(rw http.ResponseWriter, r *http.Request) {
	shop, ok := h.loadShop(rw, r)
	if !ok || !h.authorize(rw, r, policy.Update, shop) {
		return
	}

	form, err := decodeShopForm(r)
	if err != nil {
		h.logger.Warn("Failed to decode shop form", zap.Error(err))
		http.Error(rw, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	submitted := shop
	if form.Title != nil {
		submitted.Title = *form.Title
	}
	if form.URL != nil {
		submitted.URL = *form.URL
	}

	if _, err := h.service.Update(r.Context(), shop.ID, form.Title, form.URL); err != nil {
		var verr *validation.ValidationError
		switch {
		case errors.Is(err, service.ErrNotFound):
			http.Error(rw, "Not Found", http.StatusNotFound)
		case errors.As(err, &verr):
			h.renderEditForm(rw, r, http.StatusUnprocessableEntity, submitted, verr.Messages)
		case errors.Is(err, service.ErrNotUpdated):
			h.renderEditForm(rw, r, http.StatusUnprocessableEntity, submitted, map[string][]string{
				"url": {"Unable to update shop: " + service.Cause(err).Error()},
			})
		default:
			h.internalError(rw, "Failed to update shop", err)
		}
		return
	}

	h.renderer.Redirect(rw, r, shopsIndexPath)
}

// DestroyHandler removes a shop. DELETE /shops/{id}
func (h *Handler) DestroyHandler(rw http.ResponseWriter, r *http.Request) {
	shop, ok := h.loadShop(rw, r)
	if !ok || !h.authorize(rw, r, policy.Delete, shop) {
		return
	}

	if err := h.service.Delete(r.Context(), shop.ID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			http.Error(rw, "Not Found", http.StatusNotFound)
		case errors.Is(err, service.ErrNotDeleted):
			h.renderEditForm(rw, r, http.StatusUnprocessableEntity, shop, map[string][]string{
				"id": {"Unable to delete shop: " + service.Cause(err).Error()},
			})
		default:
			h.internalError(rw, "Failed to delete shop", err)
		}
		return
	}

	h.renderer.Redirect(rw, r, shopsIndexPath)
}

func (h *Handler) loadShop(rw http.ResponseWriter, r *http.Request) (models.ShopDto, bool) {
	id, err := shopIDParam(r)
	if err != nil {
		http.Error(rw, "Not Found", http.StatusNotFound)
		return models.ShopDto{}, false
	}

	shop, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			http.Error(rw, "Not Found", http.StatusNotFound)
			return models.ShopDto{}, false
		}
		h.internalError(rw, "Failed to load shop", err)
		return models.ShopDto{}, false
	}

	return shop, true
}

func (h *Handler) renderCreateForm(rw http.ResponseWriter, r *http.Request, status int, values models.CreateShopRequest, errs map[string][]string) {
	props := render.Props{
		"values":    values,
		"userRoles": h.opts.ShopRoles,
		"teamRoles": h.opts.TeamRoles,
	}
	if errs != nil {
		props["errors"] = errs
	}

	h.renderer.Render(rw, r, status, "Shops/Create", props)
}

func (h *Handler) renderEditForm(rw http.ResponseWriter, r *http.Request, status int, shop models.ShopDto, errs map[string][]string) {
	props := render.Props{
		"id":        shop.ID,
		"values":    shop,
		"userRoles": h.opts.ShopRoles,
		"teamRoles": h.opts.TeamRoles,
	}
	if errs != nil {
		props["errors"] = errs
	}

	h.renderer.Render(rw, r, status, "Shops/Edit", props)
}

func (h *Handler) internalError(rw http.ResponseWriter, msg string, err error) {
	h.logger.Error(msg, zap.Error(err))
	http.Error(rw, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
