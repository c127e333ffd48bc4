// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/mwhitfield/placard/internal/config"
	"github.com/mwhitfield/placard/internal/infrastructure"
	"github.com/mwhitfield/placard/pkg/formatting"
	"github.com/mwhitfield/placard/pkg/middleware"
	"github.com/mwhitfield/placard/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	registerRoutes(mux, domain, cfg)

	runtime.Logger.Info(
		"api module configured",
		"base_path", cfg.API.BasePath,
		"max_upload_size", formatting.FormatBytes(cfg.API.MaxUploadSizeBytes(), 0),
	)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Infrastructure.Logger))

	return m, nil
}
