package workouts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fittracker/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

// SessionParams filters sessions for statistics queries. UserID is mandatory,
// every read path is scoped to the requesting user.
type SessionParams struct {
	UserID int
	// From filters sessions to those on or after the given time
	From *time.Time
	// ExerciseID, when set, keeps only sessions containing an entry for that exercise
	ExerciseID string
}

type ListParams struct {
	UserID int
	Page   int
	Size   int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Add stores the session and its entries in one transaction.
// Entry order is preserved via the position column.
func (r *Repo) Add(ctx context.Context, session Session) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	row := tx.QueryRow(
		ctx,
		`INSERT INTO workout_session (user_id, name, notes, date, duration_minutes)
			VALUES ($1, $2, $3, $4, $5)
		RETURNING id;`,
		session.UserID, session.Name, session.Notes, session.Date, session.DurationMinutes,
	)
	if err = row.Scan(&session.ID); err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}

	for i := range session.Entries {
		entry := &session.Entries[i]
		entry.SessionID = session.ID
		row := tx.QueryRow(
			ctx,
			`INSERT INTO workout_exercise_entry
				(session_id, exercise_id, position, sets, reps, weight, duration, distance, notes)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id;`,
			entry.SessionID, entry.ExerciseID, i, entry.Sets,
			entry.Reps, entry.Weight, entry.Duration, entry.Distance, entry.Notes,
		)
		if err = row.Scan(&entry.ID); err != nil {
			return nil, fmt.Errorf("insert entry %d: %w", i, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	span.SetAttributes(attribute.Int("session.id", session.ID))
	return &session, nil
}

// ListAll returns the user's sessions matching the params, ascending by date,
// with entries and their exercise catalog info attached.
func (r *Repo) ListAll(ctx context.Context, params SessionParams) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.listall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", params.UserID))
	span.SetAttributes(attribute.String("exercise_id", params.ExerciseID))
	if params.From != nil {
		span.SetAttributes(attribute.String("from", params.From.String()))
	}

	rows, err := r.db.Query(
		ctx,
		`
			SELECT ws.id, ws.user_id, ws.name, ws.notes, ws.date, ws.duration_minutes
			FROM workout_session ws
				WHERE ws.user_id = $1
				AND ($2::timestamp IS NULL OR ws.date >= $2)
				AND ($3::text = '' OR EXISTS (
					SELECT 1 FROM workout_exercise_entry wee
					WHERE wee.session_id = ws.id AND wee.exercise_id = $3
				))
			ORDER BY ws.date ASC;`,
		params.UserID, params.From, params.ExerciseID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	sessions, err := rows2sessions(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2sessions: %w", err)
	}

	if err := r.attachEntries(ctx, sessions); err != nil {
		return nil, fmt.Errorf("attach entries: %w", err)
	}
	return sessions, nil
}

// List returns the given PAGE of the user's sessions, newest first,
// together with the total sessions count, i.e. is used for pagination.
func (r *Repo) List(ctx context.Context, params ListParams) (_ []Session, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user_id", params.UserID))
	span.SetAttributes(attribute.Int("page", params.Page))
	span.SetAttributes(attribute.Int("size", params.Size))

	if params.Page < 1 {
		return nil, -1, errors.New("page must be greater than 0")
	}
	if params.Size < 1 {
		return nil, -1, errors.New("size must be greater than 0")
	}

	total, err = r.SessionsCount(ctx, params.UserID)
	if err != nil {
		return nil, -1, err
	}

	limit := params.Size
	offset := (params.Page - 1) * params.Size

	rows, err := r.db.Query(
		ctx,
		`
			SELECT ws.id, ws.user_id, ws.name, ws.notes, ws.date, ws.duration_minutes
			FROM workout_session ws
				WHERE ws.user_id = $1
			ORDER BY ws.date DESC
			LIMIT $2
			OFFSET $3;`,
		params.UserID, limit, offset,
	)
	if err != nil {
		return nil, -1, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, -1, err
	}

	sessions, err := rows2sessions(rows)
	if err != nil {
		return nil, -1, err
	}

	if err := r.attachEntries(ctx, sessions); err != nil {
		return nil, -1, fmt.Errorf("attach entries: %w", err)
	}
	return sessions, total, nil
}

func (r *Repo) SessionsCount(ctx context.Context, userID int) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.count")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	row := r.db.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM workout_session WHERE user_id = $1;`,
		userID,
	)

	var count int
	if err := row.Scan(&count); err != nil {
		return -1, fmt.Errorf("sessions count: %w", err)
	}
	return count, nil
}

// attachEntries loads the entries (joined with the exercise catalog for names
// and muscle groups) for all given sessions in a single query.
func (r *Repo) attachEntries(ctx context.Context, sessions []Session) error {
	if len(sessions) == 0 {
		return nil
	}

	sessionIDs := make([]int, 0, len(sessions))
	id2session := make(map[int]*Session, len(sessions))
	for i := range sessions {
		sessions[i].Entries = make([]Entry, 0)
		sessionIDs = append(sessionIDs, sessions[i].ID)
		id2session[sessions[i].ID] = &sessions[i]
	}

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				wee.id, wee.session_id, wee.exercise_id, e.name, e.muscle_group,
				wee.sets, wee.reps, wee.weight, wee.duration, wee.distance, wee.notes
			FROM workout_exercise_entry wee
			JOIN exercise e ON wee.exercise_id = e.id
				WHERE wee.session_id = ANY($1)
			ORDER BY wee.session_id, wee.position;`,
		sessionIDs,
	)
	if err != nil {
		return fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return fmt.Errorf("entry rows: %w", err)
	}

	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID, &e.SessionID, &e.ExerciseID, &e.ExerciseName, &e.MuscleGroup,
			&e.Sets, &e.Reps, &e.Weight, &e.Duration, &e.Distance, &e.Notes,
		); err != nil {
			return fmt.Errorf("scan entry: %w", err)
		}
		session := id2session[e.SessionID]
		if session == nil {
			continue
		}
		session.Entries = append(session.Entries, e)
	}

	return nil
}

func rows2sessions(rows pgx.Rows) ([]Session, error) {
	var sessions []Session
	for rows.Next() {
		var s Session
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.Name, &s.Notes, &s.Date, &s.DurationMinutes,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}

	if sessions == nil {
		sessions = make([]Session, 0)
	}

	return sessions, nil
}
