// Package repository persists the food store to a flat text file.
package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/abgdnv/foodstock/internal/food/codec"
	"github.com/abgdnv/foodstock/internal/food/store"
)

// FileRepository loads and saves the whole inventory file in one go.
// It assumes exclusive access to the file: concurrent writers race and the last save wins.
type FileRepository struct {
	path            string
	createIfMissing bool
	diagnostics     io.Writer
	logger          *slog.Logger
}

// Option configures a FileRepository.
type Option func(*FileRepository)

// WithCreateIfMissing makes Load return an empty store when the file does not exist.
func WithCreateIfMissing(enabled bool) Option {
	return func(r *FileRepository) {
		r.createIfMissing = enabled
	}
}

// WithDiagnostics reports skipped lines to w. A nil writer disables reporting.
func WithDiagnostics(w io.Writer) Option {
	return func(r *FileRepository) {
		r.diagnostics = w
	}
}

// NewFileRepository creates a repository for the file at path.
func NewFileRepository(path string, logger *slog.Logger, opts ...Option) *FileRepository {
	r := &FileRepository{
		path:   path,
		logger: logger.With("component", "repository", "path", path),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load reads the file and parses it. Lines that fail to parse are skipped.
func (r *FileRepository) Load(ctx context.Context) (store.FoodStore, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && r.createIfMissing {
			r.logger.InfoContext(ctx, "Data file does not exist, starting with an empty inventory")
			return store.NewInMemoryStore(), nil
		}
		return nil, fmt.Errorf("load food file %s: %w", r.path, err)
	}

	foods, lineErrs := codec.Parse(string(data))
	for _, lineErr := range lineErrs {
		r.logger.DebugContext(ctx, "Skipping unparsable line", "line", lineErr.Line, "error", lineErr.Err)
		if r.diagnostics != nil {
			_, _ = fmt.Fprintf(r.diagnostics, "Error on line number %d: %v\n > \"%s\"\n", lineErr.Line, lineErr.Err, lineErr.Content)
		}
	}
	r.logger.DebugContext(ctx, "Data file loaded", "records", foods.Len(), "skipped", len(lineErrs))
	return foods, nil
}

// Save truncates the file and writes the whole store to it. The store is drained.
// A write failure after truncation can leave the file empty or partially written.
func (r *FileRepository) Save(ctx context.Context, foods store.FoodStore) (err error) {
	records := foods.Len()
	f, err := os.OpenFile(r.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("save food file %s: %w", r.path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("save food file %s: %w", r.path, closeErr)
		}
	}()

	if _, err := io.WriteString(f, codec.Serialize(foods)); err != nil {
		return fmt.Errorf("save food file %s: %w", r.path, err)
	}
	r.logger.DebugContext(ctx, "Data file saved", "records", records)
	return nil
}
