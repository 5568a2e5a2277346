package services

import (
	"testing"

	"github.com/rkuzmin/railsprep/internal/models"
)

type stubCatalogStore struct {
	questions []*models.Question
	users     []*models.User
}

func (s *stubCatalogStore) ListQuestions() ([]*models.Question, error) {
	return append([]*models.Question(nil), s.questions...), nil
}

func (s *stubCatalogStore) GetQuestion(id int) (*models.Question, error) {
	for _, q := range s.questions {
		if q.ID == id {
			return q, nil
		}
	}
	return nil, nil
}

func (s *stubCatalogStore) CreateQuestion(q *models.Question) (*models.Question, error) {
	cp := *q
	cp.ID = len(s.questions) + 1
	s.questions = append(s.questions, &cp)
	return &cp, nil
}

func (s *stubCatalogStore) CountQuestions() (int, error) {
	return len(s.questions), nil
}

func (s *stubCatalogStore) GetUserByUsername(username string) (*models.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubCatalogStore) CreateUser(u *models.User) (*models.User, error) {
	cp := *u
	cp.ID = len(s.users) + 1
	s.users = append(s.users, &cp)
	return &cp, nil
}

func TestByIDNotFound(t *testing.T) {
	svc := NewCatalogService(&stubCatalogStore{}, nil)
	_, err := svc.ByID(123)
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorNotFound {
		t.Fatalf("ByID on empty catalog: got %v, want not_found ServiceError", err)
	}
}

func TestByDifficultyEmptyIsNotAnError(t *testing.T) {
	store := &stubCatalogStore{questions: buildCatalog(3)}
	store.questions = store.questions[:1] // only the easy question remains
	svc := NewCatalogService(store, nil)

	qs, err := svc.ByDifficulty(models.DifficultyHard)
	if err != nil {
		t.Fatalf("ByDifficulty returned error: %v", err)
	}
	if len(qs) != 0 {
		t.Fatalf("questions = %d, want 0", len(qs))
	}
}

func TestEnsureSeededIsIdempotent(t *testing.T) {
	store := &stubCatalogStore{}
	svc := NewCatalogService(store, nil)

	if err := svc.EnsureSeeded(); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	seeded := len(store.questions)
	if seeded == 0 {
		t.Fatalf("seed created no questions")
	}
	if len(store.users) != 1 {
		t.Fatalf("users = %d, want the demo user", len(store.users))
	}
	if string(store.users[0].PasswordHash) == demoPassword {
		t.Fatalf("demo password stored in plaintext")
	}

	if err := svc.EnsureSeeded(); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if len(store.questions) != seeded {
		t.Fatalf("second seed duplicated records: %d -> %d", seeded, len(store.questions))
	}
	if len(store.users) != 1 {
		t.Fatalf("second seed duplicated the demo user")
	}
}

func TestSeedDifficultiesAreCanonical(t *testing.T) {
	for i, q := range seedQuestions {
		if !q.Difficulty.IsValid() {
			t.Fatalf("seed question %d has non-canonical difficulty %q", i+1, q.Difficulty)
		}
	}
}
