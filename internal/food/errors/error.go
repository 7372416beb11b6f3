// Package errors provides the error variants of the food inventory.
package errors

import "errors"

var ErrInvalidNumber = errors.New("invalid number")
var ErrEmptyRecord = errors.New("empty record")
var ErrMissingField = errors.New("missing field")

// ErrInvalidName reports a name the flat file cannot hold.
var ErrInvalidName = errors.New("invalid name")

// ErrNoFreeID reports that the highest id is already math.MaxInt64.
var ErrNoFreeID = errors.New("no free id")
