package models

import (
	"time"
)

type Shop struct {
	ID        int64     `db:"id"`
	Title     string    `db:"title"`
	URL       string    `db:"url"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ShopDto is the read projection of a Shop handed out by the service layer.
type ShopDto struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewShopDto(shop Shop) ShopDto {
	return ShopDto{
		ID:        shop.ID,
		Title:     shop.Title,
		URL:       shop.URL,
		CreatedAt: shop.CreatedAt,
		UpdatedAt: shop.UpdatedAt,
	}
}

type ShopListItem struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateShopRequest struct {
	Title string `json:"title" form:"title"`
	URL   string `json:"url" form:"url" validate:"required,url"`
}

type UpdateShopRequest struct {
	Title *string `json:"title" form:"title"`
	URL   *string `json:"url" form:"url"`
}
