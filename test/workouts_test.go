package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/2beens/fittracker/internal/exercises"
	"github.com/2beens/fittracker/internal/workouts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int {
	return &v
}

func f64Ptr(v float64) *float64 {
	return &v
}

func (s *IntegrationTestSuite) createWorkout(
	ctx context.Context,
	token string,
	req workouts.CreateSessionRequest,
) workouts.Session {
	t := s.T()
	t.Helper()

	reqJson, err := json.Marshal(req)
	require.NoError(t, err)

	httpReq, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/workouts", serverEndpoint), bytes.NewReader(reqJson))
	require.NoError(t, err)
	httpReq.Header.Set("User-Agent", "test-agent")
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-FT-TOKEN", token)

	resp, err := s.httpClient.Do(httpReq)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created workouts.Session
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	return created
}

func (s *IntegrationTestSuite) getJSON(ctx context.Context, token, path string, out interface{}) int {
	t := s.T()
	t.Helper()

	req, err := http.NewRequestWithContext(ctx, "GET", serverEndpoint+path, nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-FT-TOKEN", token)

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (s *IntegrationTestSuite) TestExercisesCatalog() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// catalog is public, no token needed
	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/exercises", serverEndpoint), nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var catalog []exercises.Exercise
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&catalog))
	require.NotEmpty(t, catalog)

	ids := make(map[string]bool, len(catalog))
	for _, e := range catalog {
		ids[e.ID] = true
	}
	assert.True(t, ids["bench-press"])
	assert.True(t, ids["squats"])

	// single exercise lookup, also public
	req, err = http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/exercises/bench-press", serverEndpoint), nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")

	resp, err = s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var exercise exercises.Exercise
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&exercise))
	assert.Equal(t, "Bench Press", exercise.Name)

	req, err = http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/exercises/moonwalk", serverEndpoint), nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")

	resp, err = s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestWorkoutsFlow() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.registerUser(ctx, "lifter", "testpass-123", "Lifter One")
	token := s.loginUser(ctx, "lifter", "testpass-123")

	created := s.createWorkout(ctx, token, workouts.CreateSessionRequest{
		Name:            "push day",
		DurationMinutes: intPtr(60),
		Exercises: []workouts.ExerciseInput{
			{
				ExerciseID: "bench-press",
				Sets: []workouts.SetInput{
					{Reps: intPtr(8), Weight: f64Ptr(80)},
					{Reps: intPtr(6), Weight: f64Ptr(85)},
					{Reps: intPtr(4), Weight: f64Ptr(90)},
				},
			},
		},
	})
	require.NotZero(t, created.ID)
	require.Len(t, created.Entries, 1)
	assert.Equal(t, 3, created.Entries[0].Sets)
	assert.Equal(t, 80.0, *created.Entries[0].Weight)

	second := s.createWorkout(ctx, token, workouts.CreateSessionRequest{
		Name: "leg day",
		Exercises: []workouts.ExerciseInput{
			{
				ExerciseID: "squats",
				Sets: []workouts.SetInput{
					{Reps: intPtr(5), Weight: f64Ptr(100)},
					{Reps: intPtr(5), Weight: f64Ptr(100)},
				},
			},
		},
	})
	assert.NotEqual(t, created.ID, second.ID)

	var history workouts.HistoryResponse
	status := s.getJSON(ctx, token, "/workouts/history", &history)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, history.Workouts, 2)
	// newest first
	assert.Equal(t, second.ID, history.Workouts[0].ID)
	assert.Equal(t, created.ID, history.Workouts[1].ID)
	assert.Equal(t, 2, history.Pagination.Total)
	assert.Equal(t, 1, history.Pagination.Pages)

	var progress workouts.ProgressResult
	status = s.getJSON(ctx, token, "/workouts/stats/exercise-progress?exerciseId=bench-press", &progress)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, progress.Progress, 1)
	assert.Equal(t, 80.0, *progress.Progress[0].Value)
	assert.Equal(t, 3, progress.Progress[0].Sets)
	assert.Equal(t, 80.0, *progress.Stats.Max)

	var volume workouts.VolumeStatsResult
	status = s.getJSON(ctx, token, "/workouts/stats/volume", &volume)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, volume.MuscleGroups, 2)
	assert.Equal(t, "chest", volume.MuscleGroups[0].MuscleGroup)
	assert.InDelta(t, 240.0, volume.MuscleGroups[0].TotalVolume, 0.0001)
	assert.Equal(t, "legs", volume.MuscleGroups[1].MuscleGroup)
	assert.InDelta(t, 200.0, volume.MuscleGroups[1].TotalVolume, 0.0001)
	assert.Equal(t, 2, volume.Summary.TotalWorkouts)
	require.NotNil(t, volume.Summary.AverageVolumePerWorkout)
	assert.InDelta(t, 220.0, *volume.Summary.AverageVolumePerWorkout, 0.0001)
}

func (s *IntegrationTestSuite) TestWorkouts_DuplicateSubmission() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.registerUser(ctx, "repeater", "testpass-123", "Repeater")
	token := s.loginUser(ctx, "repeater", "testpass-123")

	payload := workouts.CreateSessionRequest{
		Name: "same old routine",
		Exercises: []workouts.ExerciseInput{
			{
				ExerciseID: "pull-ups",
				Sets:       []workouts.SetInput{{Reps: intPtr(10)}},
			},
		},
	}

	// creation carries no identity, repeats make new sessions
	first := s.createWorkout(ctx, token, payload)
	second := s.createWorkout(ctx, token, payload)
	assert.NotEqual(t, first.ID, second.ID)

	var history workouts.HistoryResponse
	status := s.getJSON(ctx, token, "/workouts/history", &history)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, history.Pagination.Total)
}

func (s *IntegrationTestSuite) TestWorkouts_UserIsolation() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.registerUser(ctx, "isolated1", "testpass-123", "Isolated One")
	s.registerUser(ctx, "isolated2", "testpass-123", "Isolated Two")
	token1 := s.loginUser(ctx, "isolated1", "testpass-123")
	token2 := s.loginUser(ctx, "isolated2", "testpass-123")

	s.createWorkout(ctx, token1, workouts.CreateSessionRequest{
		Name: "secret workout",
		Exercises: []workouts.ExerciseInput{
			{
				ExerciseID: "deadlifts",
				Sets:       []workouts.SetInput{{Reps: intPtr(5), Weight: f64Ptr(140)}},
			},
		},
	})

	var history workouts.HistoryResponse
	status := s.getJSON(ctx, token2, "/workouts/history", &history)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, history.Workouts)
	assert.Zero(t, history.Pagination.Total)
}

func (s *IntegrationTestSuite) TestWorkouts_Unauthorized() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for _, path := range []string{
		"/workouts/history",
		"/workouts/stats/exercise-progress?exerciseId=bench-press",
		"/workouts/stats/volume",
	} {
		req, err := http.NewRequestWithContext(ctx, "GET", serverEndpoint+path, nil)
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

func (s *IntegrationTestSuite) TestWorkouts_UnknownExercise() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.registerUser(ctx, "badexercise", "testpass-123", "Bad Exercise")
	token := s.loginUser(ctx, "badexercise", "testpass-123")

	reqJson, err := json.Marshal(workouts.CreateSessionRequest{
		Name: "ghost workout",
		Exercises: []workouts.ExerciseInput{
			{
				ExerciseID: "no-such-exercise",
				Sets:       []workouts.SetInput{{Reps: intPtr(5)}},
			},
		},
	})
	require.NoError(t, err)

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/workouts", serverEndpoint), bytes.NewReader(reqJson))
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-FT-TOKEN", token)

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
