// Package app contains the dependency wiring for the foodstock commands.
package app

import (
	"io"
	"log/slog"

	"github.com/abgdnv/foodstock/internal/config"
	"github.com/abgdnv/foodstock/internal/food/repository"
	"github.com/abgdnv/foodstock/internal/food/service"
)

type Dependencies struct {
	FoodService service.FoodService
	Logger      *slog.Logger
}

// SetupDependencies builds the file-backed service described by cfg.
// Parse diagnostics go to diagnostics when cfg.Verbose is set.
func SetupDependencies(cfg *config.Config, logger *slog.Logger, diagnostics io.Writer) *Dependencies {
	opts := []repository.Option{
		repository.WithCreateIfMissing(cfg.Data.CreateIfMissing),
	}
	if cfg.Verbose {
		opts = append(opts, repository.WithDiagnostics(diagnostics))
	}
	repo := repository.NewFileRepository(cfg.Data.File, logger, opts...)

	return &Dependencies{
		FoodService: service.NewService(repo, logger),
		Logger:      logger,
	}
}
