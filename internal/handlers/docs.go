package handlers

import (
	"bytes"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"

	"certbook/internal/i18n"
	"certbook/internal/logger"
)

// RegisterDocsRoutes serves the embedded user guide, rendered from markdown in
// the resolved UI language with an English fallback.
func RegisterDocsRoutes(router chi.Router, webFS fs.FS) {
	router.Get("/ui/docs", func(w http.ResponseWriter, r *http.Request) {
		language := i18n.ResolveLanguage(r)
		filename := fmt.Sprintf("docs/guide.%s.md", language)

		mdContent, err := fs.ReadFile(webFS, filename)
		if err != nil {
			filename = "docs/guide.en.md"
			mdContent, err = fs.ReadFile(webFS, filename)
			if err != nil {
				http.Error(w, "Documentation not found", http.StatusNotFound)
				return
			}
		}

		var buf bytes.Buffer
		if err := goldmark.Convert(mdContent, &buf); err != nil {
			http.Error(w, "Failed to render documentation", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(buf.Bytes()); err != nil {
			logger.Get().Error().Err(err).Msg("failed to write documentation response")
		}
	})
}
