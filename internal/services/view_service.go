package services

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/rkuzmin/railsprep/internal/models"
)

// ViewService owns the per-session question list state that the original
// UI kept on the client: the annotated snapshot, the active filter
// criteria, and the ephemeral expanded flags. Each session is independent
// and guarded by its own mutex; nothing here is persisted.
type ViewService struct {
	catalog *CatalogService
	prefs   *PreferenceService
	logger  *slog.Logger

	// mirror persists a favorite/completed toggle. The default
	// implementation runs the upsert on a goroutine: the view updates
	// optimistically and does not wait for persistence confirmation.
	mirror func(upd models.PreferenceUpdate)

	mu       sync.RWMutex
	sessions map[string]*viewSession
}

type viewSession struct {
	mu       sync.Mutex
	userID   int
	criteria FilterCriteria
	items    []AnnotatedQuestion
	loadSeq  int // newest load started; stale loads must not commit
}

func NewViewService(catalog *CatalogService, prefs *PreferenceService, logger *slog.Logger) *ViewService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &ViewService{
		catalog:  catalog,
		prefs:    prefs,
		logger:   logger,
		sessions: map[string]*viewSession{},
	}
	s.mirror = func(upd models.PreferenceUpdate) {
		go func() {
			if _, err := s.prefs.Upsert(upd); err != nil {
				s.logger.Warn("preference mirror failed",
					slog.Int("user_id", upd.UserID),
					slog.Int("question_id", upd.QuestionID),
					slog.String("error", err.Error()))
			}
		}()
	}
	return s
}

func newSessionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// NewSession creates a view session for the user, annotated from the
// current catalog and preference snapshots.
func (s *ViewService) NewSession(userID int) (string, error) {
	if userID <= 0 {
		return "", NewInvalidError("userId is required")
	}
	items, err := s.loadAnnotated(userID, nil)
	if err != nil {
		return "", err
	}
	sess := &viewSession{
		userID:   userID,
		criteria: FilterCriteria{Category: FilterAll, Difficulty: FilterAll, Page: 1, PageSize: DefaultPageSize},
		items:    items,
	}
	id := newSessionID()
	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()
	return id, nil
}

func (s *ViewService) session(id string) (*viewSession, error) {
	s.mu.RLock()
	sess := s.sessions[id]
	s.mu.RUnlock()
	if sess == nil {
		return nil, NewNotFoundError("session not found")
	}
	return sess, nil
}

// Page applies the criteria to the session snapshot and returns one page.
// Changing any filter other than the page selector resets the page to 1.
func (s *ViewService) Page(sessionID string, c FilterCriteria) (Page, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return Page{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if c.PageSize < 1 {
		c.PageSize = sess.criteria.PageSize
	}
	if c.Category == "" {
		c.Category = FilterAll
	}
	if c.Difficulty == "" {
		c.Difficulty = FilterAll
	}
	if !c.sameFilters(sess.criteria) {
		c.Page = 1
	} else if c.Page < 1 {
		c.Page = sess.criteria.Page
	}

	page := Paginate(Filter(sess.items, c), c.Page, c.PageSize)
	c.Page = page.Page // keep the clamped value
	sess.criteria = c
	return page, nil
}

// Toggle inverts one flag on one question in the session snapshot. The
// expanded flag is session-local; favorite and completed are additionally
// mirrored to the preference store, fire-and-forget, after the in-memory
// view has already been updated. An unknown question id is a no-op.
func (s *ViewService) Toggle(sessionID string, questionID int, field ToggleField) (Page, error) {
	if !field.IsValid() {
		return Page{}, NewInvalidError("field must be favorite, completed, or expanded")
	}
	sess, err := s.session(sessionID)
	if err != nil {
		return Page{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.items = Toggle(sess.items, questionID, field)

	if field != ToggleExpanded {
		for i := range sess.items {
			if sess.items[i].ID != questionID {
				continue
			}
			upd := models.PreferenceUpdate{UserID: sess.userID, QuestionID: questionID}
			switch field {
			case ToggleFavorite:
				v := sess.items[i].IsFavorite
				upd.IsFavorite = &v
			case ToggleCompleted:
				v := sess.items[i].IsCompleted
				upd.IsCompleted = &v
			}
			s.mirror(upd)
			break
		}
	}

	return Paginate(Filter(sess.items, sess.criteria), sess.criteria.Page, sess.criteria.PageSize), nil
}

// Refresh reloads the session snapshot from the catalog and preference
// stores. When several refreshes overlap, only the newest one commits:
// a superseded load is discarded so a stale response can never overwrite
// fresher view state. Ephemeral expanded flags survive the reload.
func (s *ViewService) Refresh(sessionID string) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	sess.loadSeq++
	seq := sess.loadSeq
	expanded := make(map[int]bool, len(sess.items))
	for _, it := range sess.items {
		if it.Expanded {
			expanded[it.ID] = true
		}
	}
	userID := sess.userID
	sess.mu.Unlock()

	items, err := s.loadAnnotated(userID, expanded)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if seq != sess.loadSeq {
		s.logger.Debug("discarding superseded refresh", slog.String("session", sessionID))
		return nil
	}
	sess.items = items
	return nil
}

func (s *ViewService) loadAnnotated(userID int, expanded map[int]bool) ([]AnnotatedQuestion, error) {
	questions, err := s.catalog.All()
	if err != nil {
		return nil, err
	}
	prefs, err := s.prefs.ByQuestion(userID)
	if err != nil {
		return nil, err
	}
	return Annotate(questions, prefs, expanded), nil
}
