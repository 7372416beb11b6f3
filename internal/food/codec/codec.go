// Package codec converts between the flat-file text format and a food store.
//
// Each record is one line of four comma-separated fields:
//
//	id,name,stock,price
//
// There is no quoting or escaping, so a name containing a comma or a newline
// corrupts the file. ValidateName rejects such names before they are stored.
package codec

import (
	"fmt"
	"strconv"
	"strings"

	ferrors "github.com/abgdnv/foodstock/internal/food/errors"
	"github.com/abgdnv/foodstock/internal/food/store"
	"github.com/go-playground/validator/v10"
)

// Header is the first line written by Serialize.
const Header = "id,name,stock,price"

const separator = ","

var validate = validator.New()

// LineError describes a line that was skipped during Parse.
type LineError struct {
	Line    int    // 1-based line number
	Content string // the offending line
	Err     error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Parse builds a store from text. Lines that fail to parse are skipped and
// returned as LineErrors in the order they were encountered.
func Parse(text string) (store.FoodStore, []*LineError) {
	foods := store.NewInMemoryStore()
	var lineErrs []*LineError

	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		food, err := ParseLine(line)
		if err != nil {
			lineErrs = append(lineErrs, &LineError{Line: i + 1, Content: line, Err: err})
			continue
		}
		foods.Add(food)
	}
	return foods, lineErrs
}

// ParseLine parses a single record. Fields are checked in order and the first
// failure is returned. Fields beyond the fourth are ignored.
func ParseLine(line string) (store.Food, error) {
	fields := strings.Split(line, separator)

	id, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return store.Food{}, invalidNumber("id", fields[0])
	}
	if err := validate.Var(id, "min=0"); err != nil {
		return store.Food{}, fmt.Errorf("%w: id must not be negative, got %d", ferrors.ErrInvalidNumber, id)
	}

	if len(fields) < 2 || validate.Var(fields[1], "required") != nil {
		return store.Food{}, fmt.Errorf("%w: name", ferrors.ErrMissingField)
	}
	name := fields[1]

	stock, err := parseInt32(fields, 2, "stock")
	if err != nil {
		return store.Food{}, err
	}
	price, err := parseInt32(fields, 3, "price")
	if err != nil {
		return store.Food{}, err
	}

	return store.Food{ID: id, Name: name, Stock: stock, Price: price}, nil
}

// ValidateName reports whether name survives a Serialize and Parse round trip.
func ValidateName(name string) error {
	if validate.Var(name, "required") != nil {
		return fmt.Errorf("%w: name", ferrors.ErrMissingField)
	}
	if strings.ContainsAny(name, separator+"\r\n") {
		return fmt.Errorf("%w: %q must not contain a comma or a line break", ferrors.ErrInvalidName, name)
	}
	return nil
}

// parseInt32 parses fields[pos] as a 32-bit integer.
func parseInt32(fields []string, pos int, field string) (int32, error) {
	if pos >= len(fields) {
		return 0, ferrors.ErrEmptyRecord
	}
	v, err := strconv.ParseInt(fields[pos], 10, 32)
	if err != nil {
		return 0, invalidNumber(field, fields[pos])
	}
	return int32(v), nil
}

func invalidNumber(field, value string) error {
	return fmt.Errorf("%w: %s must be an integer, got %q", ferrors.ErrInvalidNumber, field, value)
}

// Serialize renders the store as text, header first and records ordered by id.
// It drains the store.
func Serialize(foods store.FoodStore) string {
	var b strings.Builder
	b.WriteString(Header)
	b.WriteByte('\n')
	for _, f := range foods.ExportOrdered() {
		b.WriteString(FormatLine(f))
		b.WriteByte('\n')
	}
	return b.String()
}

// FormatLine renders a single record without a trailing newline.
func FormatLine(f store.Food) string {
	return strings.Join([]string{
		strconv.FormatInt(f.ID, 10),
		f.Name,
		strconv.FormatInt(int64(f.Stock), 10),
		strconv.FormatInt(int64(f.Price), 10),
	}, separator)
}
