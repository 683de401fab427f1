package api

import (
	"net/http"

	"github.com/submitez/submitez/internal/config"
	"github.com/submitez/submitez/internal/workflow"
	"github.com/submitez/submitez/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	pipeline := workflow.NewHandler(
		domain.Pipeline,
		runtime.Logger,
		cfg.API.MaxUploadSizeBytes(),
	)

	store := newStorageHandler(
		runtime.Storage,
		runtime.Logger,
		cfg.Storage.MaxListSize,
	)

	routes.Register(
		mux,
		domain.Submissions.Handler().Routes(),
		pipeline.Routes(),
		store.routes(),
	)
}
