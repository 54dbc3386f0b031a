package httpx

import (
	"bytes"
	"errors"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	squidword "github.com/squidword/squidword"
)

// Page template names.
const (
	PageIndex = "index"
	PageHome  = "home"
)

// PageData is the view model shared by all pages.
type PageData struct {
	Title     string
	AuthLink  string
	FirstName string
	Role      string
}

// TemplateRenderer renders HTML templates for UI responses.
type TemplateRenderer struct {
	t      *template.Template
	logger *slog.Logger
}

// TemplateRendererConfig holds configuration for creating a TemplateRenderer.
type TemplateRendererConfig struct {
	TemplateFS fs.FS        // Filesystem containing templates (required)
	Logger     *slog.Logger // Logger for template errors (optional)
}

// NewTemplateRenderer constructs a renderer by parsing templates from the provided config.
func NewTemplateRenderer(cfg TemplateRendererConfig) (*TemplateRenderer, error) {
	if cfg.TemplateFS == nil {
		return nil, errors.New("TemplateFS is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	t, err := template.New("root").ParseFS(cfg.TemplateFS, "*.tmpl")
	if err != nil {
		logger.Error("template parsing failed",
			slog.Any("error", err),
			slog.String("phase", "initialization"),
		)
		return nil, err
	}
	return &TemplateRenderer{t: t, logger: logger}, nil
}

// DefaultTemplateFS returns the embedded templates, or the on-disk copy in dev mode.
func DefaultTemplateFS(isDev bool) fs.FS {
	if isDev {
		if _, err := os.Stat(squidword.TemplatePathFromRoot); err == nil {
			return os.DirFS(squidword.TemplatePathFromRoot)
		}
	}
	sub, err := fs.Sub(squidword.TemplateFS, squidword.TemplatePathFromRoot)
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(err)
	}
	return sub
}

// Render executes the named page into a buffer and writes it with status 200.
func (r *TemplateRenderer) Render(w http.ResponseWriter, page string, data PageData) error {
	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, page, data); err != nil {
		r.logger.Error("template execution failed",
			slog.String("template", page),
			slog.Any("error", err),
		)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		r.logger.Error("failed to write rendered template",
			slog.String("template", page),
			slog.Any("error", err),
		)
		return err
	}
	return nil
}
