package models

import "fmt"

// Participant is a contestant's registration for one year.
type Participant struct {
	Year     int    `db:"year" json:"year" validate:"required,gt=0"`
	Name     string `db:"name" json:"name" validate:"required"`
	Language string `db:"language" json:"language" validate:"required"`
	Repo     string `db:"repo" json:"repo" validate:"required,url"`
}

// Key returns the natural key of the participant.
func (p *Participant) Key() ParticipantKey {
	return ParticipantKey{Year: p.Year, Name: p.Name}
}

// ParticipantKey is the (year, name) natural key.
type ParticipantKey struct {
	Year int    `json:"year"`
	Name string `json:"name"`
}

func (k ParticipantKey) String() string {
	return fmt.Sprintf("%d/%s", k.Year, k.Name)
}

// ParticipantFilter selects participants by exact match on every non-nil field.
type ParticipantFilter struct {
	Year     *int    `json:"year,omitempty"`
	Name     *string `json:"name,omitempty"`
	Language *string `json:"language,omitempty"`
}
