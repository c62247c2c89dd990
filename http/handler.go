package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sagarc03/assetry"
)

type Service interface {
	Resolve(ctx context.Context, host, requestPath, acceptEncoding string) (assetry.Asset, error)
}

type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled" yaml:"enabled,omitempty"`
	AllowedOrigins   []string `mapstructure:"allowed_origins" yaml:"allowed_origins,omitempty"`
	AllowedMethods   []string `mapstructure:"allowed_methods" yaml:"allowed_methods,omitempty"`
	AllowedHeaders   []string `mapstructure:"allowed_headers" yaml:"allowed_headers,omitempty"`
	ExposedHeaders   []string `mapstructure:"exposed_headers" yaml:"exposed_headers,omitempty"`
	AllowCredentials bool     `mapstructure:"allow_credentials" yaml:"allow_credentials,omitempty"`
	MaxAge           int      `mapstructure:"max_age" yaml:"max_age,omitempty"`
}

type HandlerConfig struct {
	// Production hides internal error details from the logs.
	Production    bool
	CachePolicies []CachePolicy
	CORS          CORSConfig
	AccessLog     bool
}

// Handler serves assets resolved by a Service.
type Handler struct {
	config  HandlerConfig
	service Service
}

// NewHandler creates a new Handler with the given configuration and service.
func NewHandler(config *HandlerConfig, service Service) *Handler {
	return &Handler{
		config:  *config,
		service: service,
	}
}

// Router returns an http.Handler that serves GET and HEAD on every path.
// Path cache policies run before the asset handler.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(RecoverMiddleware(h.config.Production))
	if h.config.AccessLog {
		r.Use(LoggingMiddleware)
	}

	if h.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.CORS.AllowedOrigins,
			AllowedMethods:   h.config.CORS.AllowedMethods,
			AllowedHeaders:   h.config.CORS.AllowedHeaders,
			ExposedHeaders:   h.config.CORS.ExposedHeaders,
			AllowCredentials: h.config.CORS.AllowCredentials,
			MaxAge:           h.config.CORS.MaxAge,
		}))
	}

	r.Use(middleware.GetHead)
	r.Use(CacheControlMiddleware(h.config.CachePolicies))

	r.Get("/*", h.handleGet)
	r.NotFound(NotFoundHandler())
	r.MethodNotAllowed(NotFoundHandler())

	return r
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	asset, err := h.service.Resolve(r.Context(), r.Host, r.URL.EscapedPath(), r.Header.Get("Accept-Encoding"))
	if err != nil {
		HandleError(w, r, err, h.config.Production)
		return
	}

	WriteAsset(w, r, asset)
}
