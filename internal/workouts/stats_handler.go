package workouts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/2beens/fittracker/internal/auth"
	"github.com/2beens/fittracker/internal/telemetry/metrics"
	"github.com/2beens/fittracker/internal/telemetry/tracing"
	"github.com/2beens/fittracker/pkg"

	log "github.com/sirupsen/logrus"
)

const defaultStatsPeriodDays = 30

type statsAnalyzer interface {
	ExerciseProgress(ctx context.Context, q ProgressQuery) (*ProgressResult, error)
	VolumeStats(ctx context.Context, q VolumeQuery) (*VolumeStatsResult, error)
}

type StatsHandler struct {
	analyzer       statsAnalyzer
	metricsManager *metrics.Manager
}

func NewStatsHandler(analyzer statsAnalyzer, metricsManager *metrics.Manager) *StatsHandler {
	return &StatsHandler{
		analyzer:       analyzer,
		metricsManager: metricsManager,
	}
}

func (handler *StatsHandler) HandleExerciseProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.stats.exerciseProgress")
	defer span.End()

	userID, ok := auth.UserIDFromCtx(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	query, errMsg := progressQueryFromParams(userID, r.URL.Query())
	if errMsg != "" {
		http.Error(w, errMsg, http.StatusBadRequest)
		return
	}

	progress, err := handler.analyzer.ExerciseProgress(ctx, *query)
	if err != nil {
		log.Errorf("exercise progress for user %d [%s]: %s", userID, query.ExerciseID, err)
		http.Error(w, "failed to get exercise progress", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterStatsQueries.WithLabelValues("exercise-progress").Inc()

	progressJson, err := json.Marshal(progress)
	if err != nil {
		log.Errorf("marshal exercise progress error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, progressJson, http.StatusOK)
}

func (handler *StatsHandler) HandleVolumeStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.stats.volume")
	defer span.End()

	userID, ok := auth.UserIDFromCtx(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	days, errMsg := periodFromParams(r.URL.Query())
	if errMsg != "" {
		http.Error(w, errMsg, http.StatusBadRequest)
		return
	}

	volumeStats, err := handler.analyzer.VolumeStats(ctx, VolumeQuery{
		UserID: userID,
		Days:   days,
	})
	if err != nil {
		log.Errorf("volume stats for user %d: %s", userID, err)
		http.Error(w, "failed to get volume stats", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterStatsQueries.WithLabelValues("volume").Inc()

	volumeStatsJson, err := json.Marshal(volumeStats)
	if err != nil {
		log.Errorf("marshal volume stats error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, volumeStatsJson, http.StatusOK)
}

// progressQueryFromParams builds a typed progress query from the raw URL
// params. Returns a non-empty error message on invalid input.
func progressQueryFromParams(userID int, params url.Values) (*ProgressQuery, string) {
	exerciseID := params.Get("exerciseId")
	if exerciseID == "" {
		return nil, "error, parameter <exerciseId> empty"
	}

	metric := params.Get("metric")
	if metric == "" {
		metric = MetricWeight
	}
	if !ValidMetric(metric) {
		return nil, "error, invalid parameter <metric>"
	}

	days, errMsg := periodFromParams(params)
	if errMsg != "" {
		return nil, errMsg
	}

	return &ProgressQuery{
		UserID:     userID,
		ExerciseID: exerciseID,
		Metric:     metric,
		Days:       days,
	}, ""
}

func periodFromParams(params url.Values) (int, string) {
	periodStr := params.Get("period")
	if periodStr == "" {
		return defaultStatsPeriodDays, ""
	}
	period, err := strconv.Atoi(periodStr)
	if err != nil || period < 1 {
		return 0, "error, invalid parameter <period>"
	}
	return period, ""
}
