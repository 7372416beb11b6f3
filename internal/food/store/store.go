// Package store provides the in-memory collection of food records for one invocation.
package store

import "fmt"

// Food represents a single inventory item.
type Food struct {
	ID    int64
	Name  string
	Stock int32
	Price int32
}

// String renders the record for human-readable listings.
func (f Food) String() string {
	return fmt.Sprintf("Food{ID: %d, Name: %q, Stock: %d, Price: %d}", f.ID, f.Name, f.Stock, f.Price)
}

// FoodStore is an interface for food record storage operations.
// It is an unordered collection keyed by Food.ID.
type FoodStore interface {
	// Add inserts the food, replacing any record with the same ID.
	Add(food Food)

	// Edit overwrites the record with the given ID, inserting it if absent.
	Edit(id int64, name string, stock, price int32)

	// Remove deletes the record with the given ID.
	// Returns the removed record and true, or false if no record had that ID.
	Remove(id int64) (Food, bool)

	// NextID returns the highest ID plus one, or 1 for an empty store.
	// Two processes computing NextID against the same file can collide;
	// the tool assumes exclusive access to its data file.
	// If the highest ID is math.MaxInt64 the result wraps and is negative.
	NextID() int64

	// Search returns all records whose name contains substring, ignoring case.
	// The order of the result is unspecified.
	Search(substring string) []Food

	// ExportOrdered returns all records sorted by ID and empties the store.
	ExportOrdered() []Food

	// Len returns the number of records.
	Len() int
}
