package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/aoc-web/internal/models"
)

// PostgresParticipantRepository implements ParticipantRepository for PostgreSQL
type PostgresParticipantRepository struct {
	store store[*models.Participant, models.ParticipantKey]
}

// NewPostgresParticipantRepository creates a new participant repository
func NewPostgresParticipantRepository(db DBTX) ParticipantRepository {
	return &PostgresParticipantRepository{
		store: store[*models.Participant, models.ParticipantKey]{
			db:      db,
			table:   ParticipantsTable,
			scan:    scanParticipant,
			scanKey: scanParticipantKey,
		},
	}
}

func scanParticipant(row pgx.Row) (*models.Participant, error) {
	p := &models.Participant{}
	if err := row.Scan(&p.Year, &p.Name, &p.Language, &p.Repo); err != nil {
		return nil, err
	}
	return p, nil
}

func scanParticipantKey(row pgx.Row) (models.ParticipantKey, error) {
	var k models.ParticipantKey
	err := row.Scan(&k.Year, &k.Name)
	return k, err
}

func participantCond(f models.ParticipantFilter) *Cond {
	cond := &Cond{}
	eq(cond, ParticipantsTable, "year", f.Year)
	eq(cond, ParticipantsTable, "name", f.Name)
	eq(cond, ParticipantsTable, "language", f.Language)
	return cond
}

// List returns every participant matching filter
func (r *PostgresParticipantRepository) List(ctx context.Context, filter models.ParticipantFilter) ([]*models.Participant, error) {
	return r.store.list(ctx, participantCond(filter))
}

// Get retrieves a participant by year and name
func (r *PostgresParticipantRepository) Get(ctx context.Context, year int, name string) (*models.Participant, error) {
	key := models.ParticipantKey{Year: year, Name: name}
	cond := &Cond{}
	cond.Eq(ParticipantsTable.columnName("year"), year).
		Eq(ParticipantsTable.columnName("name"), name)
	return r.store.get(ctx, cond, key.String())
}

// BatchCreateOrUpdate creates participants or updates language and repo of
// existing ones, returning their keys in input order.
func (r *PostgresParticipantRepository) BatchCreateOrUpdate(ctx context.Context, participants []models.Participant) ([]models.ParticipantKey, error) {
	rows := make([][]any, 0, len(participants))
	for _, p := range participants {
		rows = append(rows, []any{p.Year, p.Name, p.Language, p.Repo})
	}
	return r.store.upsert(ctx, rows)
}
