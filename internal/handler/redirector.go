package handler

import (
	"net/http"

	"github.com/mmeshcher/shops-admin/internal/policy"
)

// VisitHandler sends the browser to the shop's own site. GET /shops/{id}/visit
func (h *Handler) VisitHandler(rw http.ResponseWriter, r *http.Request) {
	shop, ok := h.loadShop(rw, r)
	if !ok || !h.authorize(rw, r, policy.View, shop) {
		return
	}

	rw.Header().Set("Location", shop.URL)
	rw.WriteHeader(http.StatusTemporaryRedirect)
}
