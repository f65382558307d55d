package render

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Header marks responses carrying a page object for the frontend router.
const Header = "X-Page"

type Props map[string]any

// Page is what the server-driven frontend receives instead of HTML: the
// component to mount and the props to mount it with.
type Page struct {
	Component string `json:"component"`
	Props     Props  `json:"props"`
	URL       string `json:"url"`
}

type Renderer struct {
	logger *zap.Logger
}

func NewRenderer(logger *zap.Logger) *Renderer {
	return &Renderer{logger: logger}
}

func (rn *Renderer) Render(rw http.ResponseWriter, r *http.Request, status int, component string, props Props) {
	if props == nil {
		props = Props{}
	}
	if _, ok := props["errors"]; !ok {
		props["errors"] = map[string][]string{}
	}

	page := Page{
		Component: component,
		Props:     props,
		URL:       r.URL.RequestURI(),
	}

	rw.Header().Set("Content-Type", "application/json")
	rw.Header().Set(Header, "true")
	rw.Header().Set("Vary", Header)
	rw.WriteHeader(status)

	if err := json.NewEncoder(rw).Encode(page); err != nil {
		rn.logger.Error("Failed to encode page",
			zap.String("component", component),
			zap.Error(err))
	}
}

// Redirect answers with 303 so the browser follows up with GET whatever
// verb the form was submitted with.
func (rn *Renderer) Redirect(rw http.ResponseWriter, r *http.Request, location string) {
	http.Redirect(rw, r, location, http.StatusSeeOther)
}
