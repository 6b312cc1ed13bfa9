// Package api exposes HTTP handlers for the exercise log service.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"example.com/exerciselog/internal/domain"
)

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service *domain.Service
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", index)
	mux.HandleFunc("POST /api/users", h.createUser)
	mux.HandleFunc("GET /api/users", h.listUsers)
	mux.HandleFunc("POST /api/users/{userID}/exercises", h.logExercise)
	mux.HandleFunc("GET /api/users/{userID}/logs", h.getLogs)
	mux.HandleFunc("GET /healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(landingPage))
}

const landingPage = `<!DOCTYPE html>
<html>
  <head><title>Exercise Log</title></head>
  <body>
    <h1>Exercise Log</h1>
    <p>POST /api/users &mdash; create a user</p>
    <p>GET /api/users &mdash; list users</p>
    <p>POST /api/users/:id/exercises &mdash; log an exercise</p>
    <p>GET /api/users/:id/logs?from&amp;to&amp;limit &mdash; retrieve logs</p>
  </body>
</html>
`

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeRequest(r, &req, func(form url.Values) {
		req.Username = form.Get("username")
	}); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	user, err := h.service.CreateUser(r.Context(), req.Username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, toUserView(*user))
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	views := make([]UserView, 0, len(users))
	for _, user := range users {
		views = append(views, toUserView(user))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) logExercise(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")

	var req logExerciseRequest
	if err := decodeRequest(r, &req, func(form url.Values) {
		req.Description = form.Get("description")
		req.Duration = form.Get("duration")
		req.Date = form.Get("date")
	}); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	duration, err := parseDurationMin(req.Duration)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	var date *time.Time
	if strings.TrimSpace(req.Date) != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
			return
		}
		date = &parsed
	}

	exercise, user, err := h.service.LogExercise(r.Context(), domain.LogExerciseInput{
		UserID:      userID,
		Description: req.Description,
		DurationMin: duration,
		Date:        date,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	resp := ExerciseView{
		ID:          user.ID,
		Username:    user.Username,
		Description: exercise.Description,
		Duration:    exercise.DurationMin,
		Date:        formatDate(exercise.Date),
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) getLogs(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	query := r.URL.Query()

	var filter domain.LogFilter
	if raw := query.Get("from"); raw != "" {
		from, err := parseDate(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
			return
		}
		filter.From = &from
	}
	if raw := query.Get("to"); raw != "" {
		to, err := parseDate(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
			return
		}
		filter.To = &to
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := parseLimit(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
			return
		}
		filter.Limit = limit
	}

	user, exercises, err := h.service.GetLogs(r.Context(), userID, filter)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	log := make([]LogEntryView, 0, len(exercises))
	for _, ex := range exercises {
		log = append(log, LogEntryView{
			Description: ex.Description,
			Duration:    ex.DurationMin,
			Date:        formatDate(ex.Date),
		})
	}

	resp := LogsResponse{
		ID:       user.ID,
		Username: user.Username,
		Count:    len(log),
		Log:      log,
	}
	writeJSON(w, http.StatusOK, resp)
}

// createUserRequest is the payload for POST /api/users.
type createUserRequest struct {
	Username string `json:"username"`
}

// Validate ensures request correctness.
func (r createUserRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return errors.New("username is required")
	}
	return nil
}

// logExerciseRequest is the payload for POST /api/users/{userID}/exercises.
// Duration arrives as text and is coerced explicitly.
type logExerciseRequest struct {
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Date        string `json:"date"`
}

// Validate ensures request correctness. Duration and date coercion happen
// separately so failures surface as typed messages.
func (r logExerciseRequest) Validate() error {
	if strings.TrimSpace(r.Description) == "" {
		return errors.New("description is required")
	}
	if strings.TrimSpace(r.Duration) == "" {
		return errors.New("duration is required")
	}
	return nil
}

// UserView exposes the public shape of a user.
type UserView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// ExerciseView is the response body for a logged exercise. ID is the owning
// user's id.
type ExerciseView struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogEntryView is a single entry in a logs response.
type LogEntryView struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogsResponse packages a user's filtered exercise log. Count is the size of
// the filtered and limited set.
type LogsResponse struct {
	ID       string         `json:"id"`
	Username string         `json:"username"`
	Count    int            `json:"count"`
	Log      []LogEntryView `json:"log"`
}

// decodeRequest populates dst from a JSON body, or through fromForm when the
// request is form-encoded. The original clients submit both shapes.
func decodeRequest(r *http.Request, dst interface{}, fromForm func(url.Values)) error {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			return err
		}
		fromForm(r.PostForm)
		return nil
	}
	return json.NewDecoder(r.Body).Decode(dst)
}

func toUserView(user domain.User) UserView {
	return UserView{ID: user.ID, Username: user.Username}
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
