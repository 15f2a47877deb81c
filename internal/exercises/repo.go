package exercises

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fittracker/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrExerciseNotFound = errors.New("exercise not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// List returns the whole catalog, ordered by name ascending.
func (r *Repo) List(ctx context.Context) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, description, category, muscle_group, equipment, created_at
			FROM exercise
			ORDER BY name ASC;`,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return rows2exercises(rows)
}

func (r *Repo) Get(ctx context.Context, id string) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, description, category, muscle_group, equipment, created_at
			FROM exercise
			WHERE id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	exercises, err := rows2exercises(rows)
	if err != nil {
		return nil, err
	}

	if len(exercises) != 1 {
		return nil, ErrExerciseNotFound
	}

	return &exercises[0], nil
}

// SeedCatalog inserts the built-in catalog, skipping already present rows.
// Safe to run on every startup.
func (r *Repo) SeedCatalog(ctx context.Context) (inserted int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.seedCatalog")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	for _, e := range CatalogSeed {
		tag, err := r.db.Exec(
			ctx,
			`INSERT INTO exercise (id, name, description, category, muscle_group, equipment, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				ON CONFLICT (name) DO NOTHING;`,
			SlugID(e.Name), e.Name, e.Description, e.Category, e.MuscleGroup, e.Equipment, time.Now(),
		)
		if err != nil {
			return inserted, fmt.Errorf("seed exercise %s: %w", e.Name, err)
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}

func rows2exercises(rows pgx.Rows) ([]Exercise, error) {
	var exercises []Exercise
	for rows.Next() {
		var e Exercise
		if err := rows.Scan(
			&e.ID, &e.Name, &e.Description, &e.Category,
			&e.MuscleGroup, &e.Equipment, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		exercises = append(exercises, e)
	}

	if exercises == nil {
		exercises = make([]Exercise, 0)
	}

	return exercises, nil
}
