// Package service implements the inventory commands as load, operate, save sequences.
package service

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/abgdnv/foodstock/internal/food/codec"
	ferrors "github.com/abgdnv/foodstock/internal/food/errors"
	"github.com/abgdnv/foodstock/internal/food/store"
)

// Repository loads and saves the whole inventory.
type Repository interface {
	Load(ctx context.Context) (store.FoodStore, error)
	Save(ctx context.Context, foods store.FoodStore) error
}

// FoodService defines the inventory operations available to the CLI.
// Every call loads the inventory once and, if it mutates, saves it once.
type FoodService interface {
	// Add stores a new record under the next free ID and returns it.
	// Fails with ErrNoFreeID once the highest ID is math.MaxInt64.
	Add(ctx context.Context, name string, stock, price int32) (store.Food, error)

	// Edit overwrites the record with the given ID, creating it if absent.
	Edit(ctx context.Context, id int64, name string, stock, price int32) (store.Food, error)

	// List returns every record ordered by ID.
	List(ctx context.Context) ([]store.Food, error)

	// Remove deletes the record with the given ID.
	// Returns false if no such record existed; the file is rewritten either way.
	Remove(ctx context.Context, id int64) (store.Food, bool, error)

	// Search returns records whose name contains query, ignoring case, ordered by ID.
	Search(ctx context.Context, query string) ([]store.Food, error)
}

// Service implements FoodService on top of a Repository.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService creates a new instance of FoodService with the provided repository.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repository: repo,
		logger:     logger.With("component", "service"),
	}
}

func (s *Service) Add(ctx context.Context, name string, stock, price int32) (store.Food, error) {
	if err := codec.ValidateName(name); err != nil {
		return store.Food{}, err
	}
	foods, err := s.repository.Load(ctx)
	if err != nil {
		return store.Food{}, err
	}
	id := foods.NextID()
	if id <= 0 {
		return store.Food{}, fmt.Errorf("%w: highest id is already %d", ferrors.ErrNoFreeID, int64(math.MaxInt64))
	}
	food := store.Food{
		ID:    id,
		Name:  name,
		Stock: stock,
		Price: price,
	}
	foods.Add(food)
	if err := s.repository.Save(ctx, foods); err != nil {
		return store.Food{}, err
	}
	s.logger.InfoContext(ctx, "Food added", "ID", food.ID, "Name", food.Name)
	return food, nil
}

func (s *Service) Edit(ctx context.Context, id int64, name string, stock, price int32) (store.Food, error) {
	if err := codec.ValidateName(name); err != nil {
		return store.Food{}, err
	}
	foods, err := s.repository.Load(ctx)
	if err != nil {
		return store.Food{}, err
	}
	foods.Edit(id, name, stock, price)
	if err := s.repository.Save(ctx, foods); err != nil {
		return store.Food{}, err
	}
	s.logger.InfoContext(ctx, "Food edited", "ID", id, "Name", name)
	return store.Food{ID: id, Name: name, Stock: stock, Price: price}, nil
}

func (s *Service) List(ctx context.Context) ([]store.Food, error) {
	foods, err := s.repository.Load(ctx)
	if err != nil {
		return nil, err
	}
	return foods.ExportOrdered(), nil
}

func (s *Service) Remove(ctx context.Context, id int64) (store.Food, bool, error) {
	foods, err := s.repository.Load(ctx)
	if err != nil {
		return store.Food{}, false, err
	}
	removed, ok := foods.Remove(id)
	if err := s.repository.Save(ctx, foods); err != nil {
		return store.Food{}, false, err
	}
	if ok {
		s.logger.InfoContext(ctx, "Food removed", "ID", id, "Name", removed.Name)
	} else {
		s.logger.DebugContext(ctx, "Nothing to remove", "ID", id)
	}
	return removed, ok, nil
}

func (s *Service) Search(ctx context.Context, query string) ([]store.Food, error) {
	foods, err := s.repository.Load(ctx)
	if err != nil {
		return nil, err
	}
	found := foods.Search(query)
	slices.SortFunc(found, func(a, b store.Food) int {
		return cmp.Compare(a.ID, b.ID)
	})
	s.logger.DebugContext(ctx, "Search finished", "query", query, "matches", len(found))
	return found, nil
}
