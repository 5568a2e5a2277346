package services

import (
	"fmt"
	"sync"

	"github.com/rkuzmin/railsprep/internal/models"
)

// PreferenceStore abstracts the persistence operations preferences need.
type PreferenceStore interface {
	ListPreferences(userID int) ([]*models.Preference, error)
	UpsertPreference(p models.PreferenceUpdate) (*models.Preference, error)
}

// PreferenceService upserts and retrieves per-user favorite/completed
// state. Upserts for the same (user, question) pair are serialized through
// a per-key mutex: the stored flags are merged with the incoming partial
// update, and a read-modify-write race between two quick toggles would
// otherwise lose one of them.
type PreferenceService struct {
	store PreferenceStore

	mu    sync.Mutex
	locks map[prefKey]*sync.Mutex
}

type prefKey struct {
	userID     int
	questionID int
}

func NewPreferenceService(store PreferenceStore) *PreferenceService {
	return &PreferenceService{store: store, locks: map[prefKey]*sync.Mutex{}}
}

// ForUser returns every preference the user has touched; an empty list for
// an unknown user is a normal result.
func (s *PreferenceService) ForUser(userID int) ([]*models.Preference, error) {
	if userID <= 0 {
		return nil, NewInvalidError("userId is required")
	}
	prefs, err := s.store.ListPreferences(userID)
	if err != nil {
		return nil, NewUnavailableError("failed to fetch preferences")
	}
	if prefs == nil {
		prefs = []*models.Preference{}
	}
	return prefs, nil
}

// ByQuestion returns the user's preferences keyed by question id, the shape
// the filter pipeline merges from.
func (s *PreferenceService) ByQuestion(userID int) (map[int]*models.Preference, error) {
	prefs, err := s.ForUser(userID)
	if err != nil {
		return nil, err
	}
	out := make(map[int]*models.Preference, len(prefs))
	for _, p := range prefs {
		out[p.QuestionID] = p
	}
	return out, nil
}

// Upsert creates or updates the single preference record for the pair.
// Fields left nil retain their stored value (false when no record existed).
func (s *PreferenceService) Upsert(upd models.PreferenceUpdate) (*models.Preference, error) {
	if upd.UserID <= 0 {
		return nil, NewInvalidError("userId is required")
	}
	if upd.QuestionID <= 0 {
		return nil, NewInvalidError("questionId is required")
	}

	lock := s.keyLock(prefKey{userID: upd.UserID, questionID: upd.QuestionID})
	lock.Lock()
	defer lock.Unlock()

	pref, err := s.store.UpsertPreference(upd)
	if err != nil {
		return nil, NewUnavailableError(fmt.Sprintf("failed to save preference: %v", err))
	}
	return pref, nil
}

func (s *PreferenceService) keyLock(k prefKey) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[k]
	if !ok {
		l = &sync.Mutex{}
		s.locks[k] = l
	}
	return l
}
