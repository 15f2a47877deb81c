package workouts

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/fittracker/internal/auth"
	"github.com/2beens/fittracker/internal/telemetry/metrics"
	"github.com/2beens/fittracker/internal/telemetry/tracing"
	"github.com/2beens/fittracker/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=workouts_mocks_test.go -package=workouts_test

type workoutsRepo interface {
	Add(ctx context.Context, session Session) (*Session, error)
	List(ctx context.Context, params ListParams) (_ []Session, total int, err error)
}

type Pagination struct {
	Total       int `json:"total"`
	Pages       int `json:"pages"`
	CurrentPage int `json:"currentPage"`
	Limit       int `json:"limit"`
}

type HistoryResponse struct {
	Workouts   []Session  `json:"workouts"`
	Pagination Pagination `json:"pagination"`
}

type ValidationErrorResponse struct {
	Error      string   `json:"error"`
	Violations []string `json:"violations"`
}

type Handler struct {
	repo           workoutsRepo
	metricsManager *metrics.Manager
}

func NewHandler(repo workoutsRepo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:           repo,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) HandleNewWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.new")
	defer span.End()

	userID, ok := auth.UserIDFromCtx(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("new workout, unmarshal json params: %s", err)
		http.Error(w, "add workout failed", http.StatusBadRequest)
		return
	}

	if violations := req.Validate(); len(violations) > 0 {
		writeValidationError(w, violations)
		return
	}

	session := req.ToSession(userID, time.Now())
	addedSession, err := handler.repo.Add(ctx, session)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			http.Error(w, "error, unknown exercise id", http.StatusBadRequest)
			return
		}
		log.Errorf("failed to add new workout for user %d: %s", userID, err)
		http.Error(w, "error, failed to add new workout", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterWorkoutsLogged.Inc()
	log.Debugf("new workout added for user %d: %d", userID, addedSession.ID)

	sessionJson, err := json.Marshal(addedSession)
	if err != nil {
		log.Errorf("failed to marshal new workout: %s", err)
		http.Error(w, "error, failed to add new workout", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, sessionJson, http.StatusCreated)
}

func (handler *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.history")
	defer span.End()

	userID, ok := auth.UserIDFromCtx(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	page, err := queryParamInt(r, "page", 1)
	if err != nil {
		http.Error(w, "parse form error, parameter <page>", http.StatusBadRequest)
		return
	}
	limit, err := queryParamInt(r, "limit", 10)
	if err != nil {
		http.Error(w, "parse form error, parameter <limit>", http.StatusBadRequest)
		return
	}

	if page < 1 {
		http.Error(w, "invalid page (has to be a positive value)", http.StatusBadRequest)
		return
	}
	if limit < 1 {
		http.Error(w, "invalid limit (has to be a positive value)", http.StatusBadRequest)
		return
	}

	sessions, total, err := handler.repo.List(ctx, ListParams{
		UserID: userID,
		Page:   page,
		Size:   limit,
	})
	if err != nil {
		log.Errorf("list workouts for user %d error: %s", userID, err)
		http.Error(w, "failed to get workouts", http.StatusInternalServerError)
		return
	}

	pages := total / limit
	if total%limit > 0 {
		pages++
	}

	historyResponse := HistoryResponse{
		Workouts: sessions,
		Pagination: Pagination{
			Total:       total,
			Pages:       pages,
			CurrentPage: page,
			Limit:       limit,
		},
	}

	historyResponseJson, err := json.Marshal(historyResponse)
	if err != nil {
		log.Errorf("marshal workouts history error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, historyResponseJson, http.StatusOK)
}

func writeValidationError(w http.ResponseWriter, violations []string) {
	respJson, err := json.Marshal(ValidationErrorResponse{
		Error:      "validation failed",
		Violations: violations,
	})
	if err != nil {
		log.Errorf("failed to marshal validation error response: %s", err)
		http.Error(w, "validation failed", http.StatusBadRequest)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusBadRequest)
}

func queryParamInt(r *http.Request, name string, defaultValue int) (int, error) {
	valStr := r.URL.Query().Get(name)
	if valStr == "" {
		return defaultValue, nil
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, err
	}
	return val, nil
}
