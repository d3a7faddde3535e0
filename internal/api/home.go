package api

import (
	"embed"
	"html/template"
	"net/http"
)

//go:embed home.html
var homeFS embed.FS

// homeTemplate is parsed once at startup; a malformed embedded page is a
// programmer error.
var homeTemplate = template.Must(template.ParseFS(homeFS, "home.html"))

// homeData carries the values injected into the home page.
type homeData struct {
	// BasePath is the ingress prefix the page's script prepends to its
	// API calls, taken from the X-Ingress-Path header.
	BasePath string

	// UserID is the identity the page registers devices under.
	UserID string
}

// handleHome renders the interactive device-management page.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	data := homeData{
		BasePath: r.Header.Get("X-Ingress-Path"),
		UserID:   s.defaultUserID,
	}

	w.Header().Set("Content-Type", "text/html")
	if err := homeTemplate.Execute(w, data); err != nil {
		s.logger.Error("rendering home page", "error", err)
	}
}
