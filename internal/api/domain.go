package api

import (
	"github.com/submitez/submitez/internal/config"
	"github.com/submitez/submitez/internal/extraction"
	"github.com/submitez/submitez/internal/generation"
	"github.com/submitez/submitez/internal/submission"
	"github.com/submitez/submitez/internal/validation"
	"github.com/submitez/submitez/internal/workflow"
)

// Domain holds the submission system and the pipeline service built on it.
type Domain struct {
	Submissions submission.System
	Pipeline    *workflow.Service
}

// NewDomain creates the domain systems from the API runtime and configuration.
func NewDomain(runtime *Runtime, cfg *config.Config) *Domain {
	submissions := submission.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	extractor := extraction.NewService(
		extraction.NewClient(cfg.LLM, runtime.Logger),
		runtime.Storage,
		runtime.Logger,
	)

	generator := generation.NewService(cfg.Generation.TemplatesDir, runtime.Storage, runtime.Logger)
	generator.SetFlatten(cfg.Generation.Flatten)

	pipeline := workflow.NewService(
		submissions,
		extractor,
		validation.NewEngine(runtime.Logger),
		generator,
		runtime.Storage,
		runtime.Logger,
	)

	return &Domain{
		Submissions: submissions,
		Pipeline:    pipeline,
	}
}
