package models

import (
	"net/url"
	"strconv"
)

const (
	linkWindow = 3
	ellipsis   = "..."
)

type PageLink struct {
	URL    string `json:"url"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// PaginatedList is one page of T plus what the frontend needs to draw
// navigation. Empty URLs mean the link does not exist.
type PaginatedList[T any] struct {
	Items        []T        `json:"data"`
	Total        int        `json:"total"`
	PerPage      int        `json:"per_page"`
	CurrentPage  int        `json:"current_page"`
	LastPage     int        `json:"last_page"`
	From         int        `json:"from"`
	To           int        `json:"to"`
	Path         string     `json:"path"`
	FirstPageURL string     `json:"first_page_url"`
	LastPageURL  string     `json:"last_page_url"`
	PrevPageURL  string     `json:"prev_page_url"`
	NextPageURL  string     `json:"next_page_url"`
	Links        []PageLink `json:"links"`
}

func NewPaginatedList[T any](items []T, total, perPage, page int, path string, query url.Values) PaginatedList[T] {
	if items == nil {
		items = []T{}
	}

	lastPage := 1
	if perPage > 0 && total > 0 {
		lastPage = (total + perPage - 1) / perPage
	}

	list := PaginatedList[T]{
		Items:       items,
		Total:       total,
		PerPage:     perPage,
		CurrentPage: page,
		LastPage:    lastPage,
		Path:        path,
	}

	if len(items) > 0 {
		list.From = (page-1)*perPage + 1
		list.To = list.From + len(items) - 1
	}

	list.FirstPageURL = pageURL(path, query, 1)
	list.LastPageURL = pageURL(path, query, lastPage)
	if page > 1 {
		list.PrevPageURL = pageURL(path, query, page-1)
	}
	if page < lastPage {
		list.NextPageURL = pageURL(path, query, page+1)
	}

	list.Links = append(list.Links, PageLink{URL: list.PrevPageURL, Label: "&laquo; Previous"})
	for _, p := range linkPages(page, lastPage) {
		if p == 0 {
			list.Links = append(list.Links, PageLink{Label: ellipsis})
			continue
		}
		list.Links = append(list.Links, PageLink{
			URL:    pageURL(path, query, p),
			Label:  strconv.Itoa(p),
			Active: p == page,
		})
	}
	list.Links = append(list.Links, PageLink{URL: list.NextPageURL, Label: "Next &raquo;"})

	return list
}

// MapPaginatedList projects every item of the page and keeps the metadata.
func MapPaginatedList[T, U any](list PaginatedList[T], fn func(T) U) PaginatedList[U] {
	items := make([]U, 0, len(list.Items))
	for _, item := range list.Items {
		items = append(items, fn(item))
	}

	return PaginatedList[U]{
		Items:        items,
		Total:        list.Total,
		PerPage:      list.PerPage,
		CurrentPage:  list.CurrentPage,
		LastPage:     list.LastPage,
		From:         list.From,
		To:           list.To,
		Path:         list.Path,
		FirstPageURL: list.FirstPageURL,
		LastPageURL:  list.LastPageURL,
		PrevPageURL:  list.PrevPageURL,
		NextPageURL:  list.NextPageURL,
		Links:        list.Links,
	}
}

// linkPages lists the page numbers to link: the first and last pages plus
// linkWindow pages on each side of the current one. Zero marks a gap.
func linkPages(page, lastPage int) []int {
	pages := []int{1}

	start := max(2, page-linkWindow)
	end := min(lastPage-1, page+linkWindow)
	if start <= end {
		if start > 2 {
			pages = append(pages, 0)
		}
		for p := start; p <= end; p++ {
			pages = append(pages, p)
		}
		if end < lastPage-1 {
			pages = append(pages, 0)
		}
	} else if lastPage > 2 {
		pages = append(pages, 0)
	}

	if lastPage > 1 {
		pages = append(pages, lastPage)
	}

	return pages
}

func pageURL(path string, query url.Values, page int) string {
	values := url.Values{}
	for key, vals := range query {
		if key == "page" {
			continue
		}
		values[key] = append([]string(nil), vals...)
	}
	values.Set("page", strconv.Itoa(page))

	return path + "?" + values.Encode()
}
