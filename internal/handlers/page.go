package handlers

import "net/http"

// PageHandler serves the single-page web client.
type PageHandler struct {
	page []byte
}

// NewPageHandler creates a PageHandler serving page as HTML.
func NewPageHandler(page []byte) *PageHandler {
	return &PageHandler{page: page}
}

func (h *PageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(h.page)
}
