package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/squidword/squidword/config"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth     AuthServiceInterface // Required
	Sessions *SessionCookies      // Required
	Renderer *TemplateRenderer    // Optional; built from DefaultTemplateFS when nil
	Ready    HealthCheck          // Optional; probed by /healthz
	IsDev    bool
	Logger   *slog.Logger
}

// NewRouter creates the HTTP router wrapped in recovery and request logging.
func NewRouter(services RouterServices) (http.Handler, error) {
	if services.Auth == nil {
		return nil, errors.New("auth service is required")
	}
	if services.Sessions == nil || services.Sessions.Store == nil {
		return nil, errors.New("session store is required")
	}
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	renderer := services.Renderer
	if renderer == nil {
		var err error
		renderer, err = NewTemplateRenderer(TemplateRendererConfig{
			TemplateFS: DefaultTemplateFS(services.IsDev),
			Logger:     logger,
		})
		if err != nil {
			return nil, err
		}
	}

	auth := &AuthHandlers{
		Svc:      services.Auth,
		Sessions: services.Sessions,
		Renderer: renderer,
		Logger:   logger,
	}

	mux := http.NewServeMux()
	registerAuthRoutes(mux, auth)
	health := healthHandler{check: services.Ready, logger: logger}
	mux.Handle("GET /healthz", health)
	mux.Handle("HEAD /healthz", health)
	mux.HandleFunc("/", notFound)

	return Recover(logger)(Logging(logger)(mux)), nil
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("GET "+config.CallbackPath, h.Callback)
	mux.Handle("GET "+HomePath, RequireSignedIn(h.Sessions)(http.HandlerFunc(h.Home)))
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusNotFound, "404 page not found")
}
