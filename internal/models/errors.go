package models

import (
	"errors"
	"fmt"
)

// Custom errors
var (
	ErrNotFound      = errors.New("record not found")
	ErrEmptyBatch    = errors.New("empty batch")
	ErrDayOutOfRange = errors.New("day out of range")
)

// EntityNotFoundError reports a key lookup that matched no row.
type EntityNotFoundError struct {
	Table string
	Key   string
}

func (e *EntityNotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Table, e.Key)
}

// Is lets callers match with errors.Is(err, ErrNotFound).
func (e *EntityNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// EmptyBatchError is returned when a batch write receives no records.
type EmptyBatchError struct {
	Table string
}

func (e *EmptyBatchError) Error() string {
	return fmt.Sprintf("empty batch for %s", e.Table)
}

// Is lets callers match with errors.Is(err, ErrEmptyBatch).
func (e *EmptyBatchError) Is(target error) bool {
	return target == ErrEmptyBatch
}

// DayOutOfRangeError is returned when a benchmark day falls outside 1..25.
type DayOutOfRangeError struct {
	Day int
}

func (e *DayOutOfRangeError) Error() string {
	return fmt.Sprintf("day out of range: %d", e.Day)
}

// Is lets callers match with errors.Is(err, ErrDayOutOfRange).
func (e *DayOutOfRangeError) Is(target error) bool {
	return target == ErrDayOutOfRange
}
