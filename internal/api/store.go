package api

import (
	"errors"
	"sort"
	"sync"

	"github.com/rkuzmin/railsprep/internal/models"
)

var errUsernameTaken = errors.New("username already exists")

// memoryStore is the ephemeral default backend: plain maps behind one
// RWMutex. Question order is kept in a separate slice so ListQuestions
// always returns insertion order regardless of map iteration.
type memoryStore struct {
	mu            sync.RWMutex
	questions     map[int]*models.Question
	questionOrder []int
	prefs         map[int]*models.Preference
	prefByPair    map[prefPair]int
	users         map[int]*models.User
	usersByName   map[string]int

	nextQuestionID int
	nextPrefID     int
	nextUserID     int
}

type prefPair struct {
	userID     int
	questionID int
}

// NewMemoryStore returns an empty in-memory Store.
func NewMemoryStore() Store {
	return &memoryStore{
		questions:      map[int]*models.Question{},
		prefs:          map[int]*models.Preference{},
		prefByPair:     map[prefPair]int{},
		users:          map[int]*models.User{},
		usersByName:    map[string]int{},
		nextQuestionID: 1,
		nextPrefID:     1,
		nextUserID:     1,
	}
}

func (s *memoryStore) ListQuestions() ([]*models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Question, 0, len(s.questionOrder))
	for _, id := range s.questionOrder {
		cp := *s.questions[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (s *memoryStore) GetQuestion(id int) (*models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.questions[id]
	if !ok {
		return nil, nil
	}
	cp := *q
	return &cp, nil
}

func (s *memoryStore) CreateQuestion(q *models.Question) (*models.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *q
	cp.ID = s.nextQuestionID
	s.nextQuestionID++
	s.questions[cp.ID] = &cp
	s.questionOrder = append(s.questionOrder, cp.ID)
	out := cp
	return &out, nil
}

func (s *memoryStore) CountQuestions() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.questions), nil
}

func (s *memoryStore) ListPreferences(userID int) ([]*models.Preference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]int, 0, len(s.prefByPair))
	for pair, id := range s.prefByPair {
		if pair.userID == userID {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids) // creation order, so output is deterministic
	out := make([]*models.Preference, 0, len(ids))
	for _, id := range ids {
		cp := *s.prefs[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (s *memoryStore) UpsertPreference(p models.PreferenceUpdate) (*models.Preference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pair := prefPair{userID: p.UserID, questionID: p.QuestionID}
	if id, ok := s.prefByPair[pair]; ok {
		rec := s.prefs[id]
		if p.IsFavorite != nil {
			rec.IsFavorite = *p.IsFavorite
		}
		if p.IsCompleted != nil {
			rec.IsCompleted = *p.IsCompleted
		}
		cp := *rec
		return &cp, nil
	}
	rec := &models.Preference{
		ID:         s.nextPrefID,
		UserID:     p.UserID,
		QuestionID: p.QuestionID,
	}
	s.nextPrefID++
	if p.IsFavorite != nil {
		rec.IsFavorite = *p.IsFavorite
	}
	if p.IsCompleted != nil {
		rec.IsCompleted = *p.IsCompleted
	}
	s.prefs[rec.ID] = rec
	s.prefByPair[pair] = rec.ID
	cp := *rec
	return &cp, nil
}

func (s *memoryStore) GetUser(id int) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *memoryStore) GetUserByUsername(username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usersByName[username]
	if !ok {
		return nil, nil
	}
	cp := *s.users[id]
	return &cp, nil
}

func (s *memoryStore) CreateUser(u *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.usersByName[u.Username]; ok {
		return nil, errUsernameTaken
	}
	cp := *u
	cp.ID = s.nextUserID
	s.nextUserID++
	s.users[cp.ID] = &cp
	s.usersByName[cp.Username] = cp.ID
	out := cp
	return &out, nil
}
