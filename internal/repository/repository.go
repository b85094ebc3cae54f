package repository

import (
	"fmt"
	"reflect"
)

// Repositories holds all repository implementations
type Repositories struct {
	Benchmark   BenchmarkRepository
	Participant ParticipantRepository
	Summary     SummaryRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db DBTX) (*Repositories, error) {
	if isNil(db) {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Benchmark:   NewPostgresBenchmarkRepository(db),
		Participant: NewPostgresParticipantRepository(db),
		Summary:     NewPostgresSummaryRepository(db),
	}, nil
}

// isNil also catches a typed nil pointer held in the interface, such as an
// unopened *database.DB.
func isNil(db DBTX) bool {
	if db == nil {
		return true
	}
	v := reflect.ValueOf(db)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
