package workouts

import (
	"fmt"
	"time"
)

// Session is one logged workout, owned by exactly one user.
// Never updated after creation.
type Session struct {
	ID              int       `json:"id"`
	UserID          int       `json:"userId"`
	Name            string    `json:"name"`
	Notes           *string   `json:"notes,omitempty"`
	Date            time.Time `json:"date"`
	DurationMinutes *int      `json:"durationMinutes,omitempty"`
	Entries         []Entry   `json:"exercises"`
}

// Entry is the single per-exercise record within a session. The four metric
// fields hold one representative value for the whole entry, not a per-set
// breakdown: the set count and the single value are stored separately, so
// entries with varying per-set values lose fidelity. Kept that way on purpose,
// the aggregation layer depends on it.
type Entry struct {
	ID           int      `json:"id"`
	SessionID    int      `json:"sessionId"`
	ExerciseID   string   `json:"exerciseId"`
	ExerciseName string   `json:"exerciseName,omitempty"`
	MuscleGroup  string   `json:"muscleGroup,omitempty"`
	Sets         int      `json:"sets"`
	Reps         *int     `json:"reps"`
	Weight       *float64 `json:"weight"`
	Duration     *int     `json:"duration"`
	Distance     *float64 `json:"distance"`
	Notes        *string  `json:"notes,omitempty"`
}

const (
	MetricWeight   = "weight"
	MetricReps     = "reps"
	MetricDuration = "duration"
	MetricDistance = "distance"
)

func ValidMetric(metric string) bool {
	switch metric {
	case MetricWeight, MetricReps, MetricDuration, MetricDistance:
		return true
	default:
		return false
	}
}

// MetricValue projects the requested metric field as a nullable observation value
func (e Entry) MetricValue(metric string) *float64 {
	switch metric {
	case MetricWeight:
		return e.Weight
	case MetricReps:
		return intAsFloat(e.Reps)
	case MetricDuration:
		return intAsFloat(e.Duration)
	case MetricDistance:
		return e.Distance
	default:
		return nil
	}
}

func intAsFloat(v *int) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}

// SetInput is one set as submitted when logging a workout.
type SetInput struct {
	Reps     *int     `json:"reps,omitempty"`
	Weight   *float64 `json:"weight,omitempty"`
	Duration *int     `json:"duration,omitempty"`
	Distance *float64 `json:"distance,omitempty"`
	Notes    *string  `json:"notes,omitempty"`
}

type ExerciseInput struct {
	ExerciseID string     `json:"exerciseId"`
	Sets       []SetInput `json:"sets"`
}

type CreateSessionRequest struct {
	Name            string          `json:"name"`
	Notes           *string         `json:"notes,omitempty"`
	DurationMinutes *int            `json:"durationMinutes,omitempty"`
	Exercises       []ExerciseInput `json:"exercises"`
}

// Validate returns all violations, not just the first one
func (req *CreateSessionRequest) Validate() []string {
	var violations []string
	if req.Name == "" {
		violations = append(violations, "workout name is required")
	}
	for i, ex := range req.Exercises {
		if ex.ExerciseID == "" {
			violations = append(violations, fmt.Sprintf("exercises[%d]: exercise id is required", i))
		}
	}
	return violations
}

// FlattenSets flattens a list of submitted sets into the stored per-entry
// scalar form: the set count is the length of the list, the metric values come
// from the first set only. Lossy, later stats queries only ever see the first
// set's values.
func FlattenSets(sets []SetInput) (count int, first SetInput) {
	if len(sets) > 0 {
		first = sets[0]
	}
	return len(sets), first
}

// ToSession converts a validated create request to a Session for the given user
func (req *CreateSessionRequest) ToSession(userID int, date time.Time) Session {
	session := Session{
		UserID:          userID,
		Name:            req.Name,
		Notes:           req.Notes,
		Date:            date,
		DurationMinutes: req.DurationMinutes,
	}
	for _, ex := range req.Exercises {
		setsCount, firstSet := FlattenSets(ex.Sets)
		session.Entries = append(session.Entries, Entry{
			ExerciseID: ex.ExerciseID,
			Sets:       setsCount,
			Reps:       firstSet.Reps,
			Weight:     firstSet.Weight,
			Duration:   firstSet.Duration,
			Distance:   firstSet.Distance,
			Notes:      firstSet.Notes,
		})
	}
	return session
}
