package workouts

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/2beens/fittracker/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=analyzer_mocks_test.go -package=workouts_test

type statsRepo interface {
	ListAll(ctx context.Context, params SessionParams) ([]Session, error)
}

type ProgressQuery struct {
	UserID     int
	ExerciseID string
	Metric     string
	Days       int
}

type ProgressPoint struct {
	Date  time.Time `json:"date"`
	Value *float64  `json:"value"`
	Sets  int       `json:"sets"`
}

type ProgressStats struct {
	Max       *float64 `json:"max"`
	Min       *float64 `json:"min"`
	Average   *float64 `json:"average"`
	TotalSets int      `json:"totalSets"`
}

type ProgressResult struct {
	Progress []ProgressPoint `json:"progress"`
	Stats    ProgressStats   `json:"stats"`
}

type VolumeQuery struct {
	UserID int
	Days   int
}

type MuscleGroupVolume struct {
	MuscleGroup     string  `json:"muscleGroup"`
	TotalSets       int     `json:"totalSets"`
	TotalVolume     float64 `json:"totalVolume"`
	UniqueExercises int     `json:"uniqueExercises"`
}

type WorkoutFrequency struct {
	Daily   map[string]int `json:"daily"`
	Average float64        `json:"average"`
}

type VolumeSummary struct {
	TotalWorkouts           int      `json:"totalWorkouts"`
	TotalExercises          int      `json:"totalExercises"`
	TotalSets               int      `json:"totalSets"`
	TotalVolume             float64  `json:"totalVolume"`
	AverageVolumePerWorkout *float64 `json:"averageVolumePerWorkout"`
}

type VolumeStatsResult struct {
	MuscleGroups     []MuscleGroupVolume `json:"muscleGroups"`
	WorkoutFrequency WorkoutFrequency    `json:"workoutFrequency"`
	Summary          VolumeSummary       `json:"summary"`
}

// Analyzer computes workout statistics on top of the sessions repo.
type Analyzer struct {
	repo statsRepo
}

func NewAnalyzer(repo statsRepo) *Analyzer {
	return &Analyzer{
		repo: repo,
	}
}

// ExerciseProgress returns one observation per session containing the given
// exercise, ordered by session date ascending. The observation is the first
// matching entry's value for the requested metric, missing values stay null
// and are skipped by the max/min/average stats.
func (a *Analyzer) ExerciseProgress(ctx context.Context, q ProgressQuery) (_ *ProgressResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.exerciseProgress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	from := time.Now().AddDate(0, 0, -q.Days)
	sessions, err := a.repo.ListAll(ctx, SessionParams{
		UserID:     q.UserID,
		From:       &from,
		ExerciseID: q.ExerciseID,
	})
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	progress := make([]ProgressPoint, 0, len(sessions))
	for _, session := range sessions {
		for _, entry := range session.Entries {
			if entry.ExerciseID != q.ExerciseID {
				continue
			}
			progress = append(progress, ProgressPoint{
				Date:  session.Date,
				Value: entry.MetricValue(q.Metric),
				Sets:  entry.Sets,
			})
			// first matching entry represents the session
			break
		}
	}

	return &ProgressResult{
		Progress: progress,
		Stats:    progressStats(progress),
	}, nil
}

func progressStats(progress []ProgressPoint) ProgressStats {
	var stats ProgressStats
	var sum float64
	var observed int
	for _, p := range progress {
		stats.TotalSets += p.Sets
		if p.Value == nil {
			continue
		}
		v := *p.Value
		if stats.Max == nil || v > *stats.Max {
			stats.Max = &v
		}
		if stats.Min == nil || v < *stats.Min {
			stats.Min = &v
		}
		sum += v
		observed++
	}
	if observed > 0 {
		avg := sum / float64(observed)
		stats.Average = &avg
	}
	return stats
}

// VolumeStats aggregates the user's sessions in the window into per-muscle-group
// volume totals, a daily workout histogram and overall summary numbers.
// Volume is sets times weight, entries without a weight contribute no volume
// but their sets still count.
func (a *Analyzer) VolumeStats(ctx context.Context, q VolumeQuery) (_ *VolumeStatsResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.volumeStats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	from := time.Now().AddDate(0, 0, -q.Days)
	sessions, err := a.repo.ListAll(ctx, SessionParams{
		UserID: q.UserID,
		From:   &from,
	})
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	type groupAcc struct {
		sets      int
		volume    float64
		exercises map[string]struct{}
	}
	groups := make(map[string]*groupAcc)
	daily := make(map[string]int)

	result := &VolumeStatsResult{}
	result.Summary.TotalWorkouts = len(sessions)

	for _, session := range sessions {
		day := session.Date.UTC().Format("2006-01-02")
		daily[day]++

		for _, entry := range session.Entries {
			acc := groups[entry.MuscleGroup]
			if acc == nil {
				acc = &groupAcc{exercises: make(map[string]struct{})}
				groups[entry.MuscleGroup] = acc
			}

			volume := 0.0
			if entry.Weight != nil {
				volume = float64(entry.Sets) * *entry.Weight
			}
			acc.sets += entry.Sets
			acc.volume += volume
			acc.exercises[entry.ExerciseID] = struct{}{}

			result.Summary.TotalSets += entry.Sets
			result.Summary.TotalVolume += volume
		}
	}

	result.MuscleGroups = make([]MuscleGroupVolume, 0, len(groups))
	for mg, acc := range groups {
		// distinct exercises per group, repeated entries count once
		result.Summary.TotalExercises += len(acc.exercises)
		result.MuscleGroups = append(result.MuscleGroups, MuscleGroupVolume{
			MuscleGroup:     mg,
			TotalSets:       acc.sets,
			TotalVolume:     acc.volume,
			UniqueExercises: len(acc.exercises),
		})
	}
	sort.Slice(result.MuscleGroups, func(i, j int) bool {
		return result.MuscleGroups[i].MuscleGroup < result.MuscleGroups[j].MuscleGroup
	})

	result.WorkoutFrequency = WorkoutFrequency{
		Daily:   daily,
		Average: float64(result.Summary.TotalWorkouts) / float64(q.Days),
	}

	if result.Summary.TotalWorkouts > 0 {
		avg := result.Summary.TotalVolume / float64(result.Summary.TotalWorkouts)
		result.Summary.AverageVolumePerWorkout = &avg
	}

	return result, nil
}
