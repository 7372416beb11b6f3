package store

import (
	"cmp"
	"slices"
	"strings"
)

// inMemory implements FoodStore using a map keyed by ID.
type inMemory struct {
	foods map[int64]Food
}

// NewInMemoryStore creates a new, empty FoodStore.
func NewInMemoryStore() FoodStore {
	return &inMemory{
		foods: make(map[int64]Food),
	}
}

// Add inserts or replaces the record at food.ID.
func (s *inMemory) Add(food Food) {
	s.foods[food.ID] = food
}

// Edit overwrites every field of the record at id.
func (s *inMemory) Edit(id int64, name string, stock, price int32) {
	s.foods[id] = Food{
		ID:    id,
		Name:  name,
		Stock: stock,
		Price: price,
	}
}

// Remove deletes the record at id if present.
func (s *inMemory) Remove(id int64) (Food, bool) {
	food, ok := s.foods[id]
	if !ok {
		return Food{}, false
	}
	delete(s.foods, id)
	return food, true
}

// NextID returns max(ID)+1, or 1 when the store is empty.
func (s *inMemory) NextID() int64 {
	if len(s.foods) == 0 {
		return 1
	}
	var maxID int64
	first := true
	for id := range s.foods {
		if first || id > maxID {
			maxID = id
			first = false
		}
	}
	return maxID + 1
}

// Search matches substring against names case-insensitively.
func (s *inMemory) Search(substring string) []Food {
	needle := strings.ToLower(substring)
	var found []Food
	for _, f := range s.foods {
		if strings.Contains(strings.ToLower(f.Name), needle) {
			found = append(found, f)
		}
	}
	return found
}

// ExportOrdered drains the store into a slice sorted by ID.
func (s *inMemory) ExportOrdered() []Food {
	list := make([]Food, 0, len(s.foods))
	for _, f := range s.foods {
		list = append(list, f)
	}
	slices.SortFunc(list, func(a, b Food) int {
		return cmp.Compare(a.ID, b.ID)
	})
	clear(s.foods)
	return list
}

// Len returns the number of records.
func (s *inMemory) Len() int {
	return len(s.foods)
}
