package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/rkuzmin/railsprep/internal/models"
	"github.com/rkuzmin/railsprep/internal/services"
)

// Router wires the HTTP surface to the services. Transport stays thin:
// handlers decode, call one service, encode.
type Router struct {
	store   Store
	catalog *services.CatalogService
	prefs   *services.PreferenceService
	views   *services.ViewService
	logger  *slog.Logger
}

func NewRouter(store Store, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	catalog := services.NewCatalogService(store, logger)
	prefs := services.NewPreferenceService(store)
	return &Router{
		store:   store,
		catalog: catalog,
		prefs:   prefs,
		views:   services.NewViewService(catalog, prefs, logger),
		logger:  logger,
	}
}

// Catalog exposes the catalog service for bootstrap-time seeding.
func (rt *Router) Catalog() *services.CatalogService { return rt.catalog }

func (rt *Router) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/questions", rt.handleQuestions)
	mux.HandleFunc("/api/questions/", rt.handleQuestionByID)
	mux.HandleFunc("/api/user-preferences", rt.handleUpsertPref)
	mux.HandleFunc("/api/user-preferences/", rt.handleListPrefs)
	mux.HandleFunc("/api/sessions", rt.handleCreateSession)
	mux.HandleFunc("/api/sessions/", rt.handleSessionScoped)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// The body is always {"message": ...} so clients can show a real reason
// instead of conflating failures with empty results.
func writeServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if se, ok := services.AsServiceError(err); ok {
		switch se.Code {
		case services.ErrorInvalid:
			status = http.StatusBadRequest
		case services.ErrorNotFound:
			status = http.StatusNotFound
		case services.ErrorConflict:
			status = http.StatusConflict
		case services.ErrorUnavailable:
			status = http.StatusBadGateway
		}
	}
	writeJSON(w, status, map[string]string{"message": err.Error()})
}

// GET /api/questions?difficulty=<level>
// An unrecognized difficulty value falls back to the full list rather than
// failing; the filter UI treats the server list as its raw input anyway.
func (rt *Router) handleQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if raw := r.URL.Query().Get("difficulty"); raw != "" {
		if level, ok := models.ParseDifficulty(raw); ok {
			qs, err := rt.catalog.ByDifficulty(level)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, qs)
			return
		}
		rt.logger.Debug("ignoring unrecognized difficulty filter", slog.String("difficulty", raw))
	}
	qs, err := rt.catalog.All()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, qs)
}

// GET /api/questions/{id}
func (rt *Router) handleQuestionByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	idStr := strings.TrimPrefix(r.URL.Path, "/api/questions/")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid question ID"})
		return
	}
	q, err := rt.catalog.ByID(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// GET /api/user-preferences/{userId}
func (rt *Router) handleListPrefs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	idStr := strings.TrimPrefix(r.URL.Path, "/api/user-preferences/")
	userID, err := strconv.Atoi(idStr)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid user ID"})
		return
	}
	prefs, err := rt.prefs.ForUser(userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

// POST /api/user-preferences
// Body: {userId, questionId, isFavorite?, isCompleted?}. Omitted flags keep
// their stored values; they are never coerced to false.
func (rt *Router) handleUpsertPref(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		UserID      int   `json:"userId"`
		QuestionID  int   `json:"questionId"`
		IsFavorite  *bool `json:"isFavorite"`
		IsCompleted *bool `json:"isCompleted"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}
	pref, err := rt.prefs.Upsert(models.PreferenceUpdate{
		UserID:      req.UserID,
		QuestionID:  req.QuestionID,
		IsFavorite:  req.IsFavorite,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pref)
}

// POST /api/sessions
// Body: {userId}; responds {sessionId}.
func (rt *Router) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		UserID int `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}
	id, err := rt.views.NewSession(req.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"sessionId": id})
}

// /api/sessions/{id}/questions  GET   filtered, paginated view
// /api/sessions/{id}/toggle     POST  {questionId, field}
// /api/sessions/{id}/refresh    POST  reload catalog/preference snapshot
func (rt *Router) handleSessionScoped(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/sessions/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" {
		http.NotFound(w, r)
		return
	}
	sessionID := parts[0]

	switch parts[1] {
	case "questions":
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		rt.handleSessionQuestions(w, r, sessionID)
	case "toggle":
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		rt.handleSessionToggle(w, r, sessionID)
	case "refresh":
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if err := rt.views.Refresh(sessionID); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	default:
		http.NotFound(w, r)
	}
}

func (rt *Router) handleSessionQuestions(w http.ResponseWriter, r *http.Request, sessionID string) {
	q := r.URL.Query()
	criteria := services.FilterCriteria{
		Search:        q.Get("search"),
		Category:      q.Get("category"),
		Difficulty:    q.Get("difficulty"),
		FavoritesOnly: q.Get("favorites") == "true" || q.Get("favorites") == "1",
	}
	if v := q.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			criteria.Page = n
		}
	}
	if v := q.Get("pageSize"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			criteria.PageSize = n
		}
	}
	page, err := rt.views.Page(sessionID, criteria)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (rt *Router) handleSessionToggle(w http.ResponseWriter, r *http.Request, sessionID string) {
	var req struct {
		QuestionID int    `json:"questionId"`
		Field      string `json:"field"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}
	page, err := rt.views.Toggle(sessionID, req.QuestionID, services.ToggleField(req.Field))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}
