package services

import (
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/rkuzmin/railsprep/internal/models"
)

// CatalogStore abstracts the persistence operations the catalog needs.
type CatalogStore interface {
	ListQuestions() ([]*models.Question, error)
	GetQuestion(id int) (*models.Question, error)
	CreateQuestion(q *models.Question) (*models.Question, error)
	CountQuestions() (int, error)
	GetUserByUsername(username string) (*models.User, error)
	CreateUser(u *models.User) (*models.User, error)
}

// CatalogService exposes the immutable question catalog.
type CatalogService struct {
	store  CatalogStore
	logger *slog.Logger
}

func NewCatalogService(store CatalogStore, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{store: store, logger: logger}
}

// All returns every question in insertion order.
func (s *CatalogService) All() ([]*models.Question, error) {
	qs, err := s.store.ListQuestions()
	if err != nil {
		return nil, NewUnavailableError("failed to fetch questions")
	}
	return qs, nil
}

// ByID returns a single question or a not_found error.
func (s *CatalogService) ByID(id int) (*models.Question, error) {
	q, err := s.store.GetQuestion(id)
	if err != nil {
		return nil, NewUnavailableError("failed to fetch question")
	}
	if q == nil {
		return nil, NewNotFoundError(fmt.Sprintf("question %d not found", id))
	}
	return q, nil
}

// ByDifficulty returns the questions at the given canonical level.
// Matching is case-insensitive and accepts historical aliases; an empty
// result is normal, not an error. Unrecognized levels are the caller's
// problem: ParseDifficulty the input first.
func (s *CatalogService) ByDifficulty(level models.Difficulty) ([]*models.Question, error) {
	qs, err := s.store.ListQuestions()
	if err != nil {
		return nil, NewUnavailableError("failed to fetch questions")
	}
	out := make([]*models.Question, 0, len(qs))
	for _, q := range qs {
		if q.Difficulty == level {
			out = append(out, q)
		}
	}
	return out, nil
}

// EnsureSeeded populates an empty catalog with the built-in question set
// and the demo user. A non-empty catalog is left untouched, so running it
// again (or against a persistent backend that already holds data) never
// duplicates records. It is an explicit bootstrap step, deliberately not
// part of store construction.
func (s *CatalogService) EnsureSeeded() error {
	n, err := s.store.CountQuestions()
	if err != nil {
		return NewUnavailableError("failed to inspect catalog")
	}
	if n > 0 {
		s.logger.Debug("catalog already seeded", slog.Int("questions", n))
		return nil
	}

	s.logger.Info("seeding question catalog", slog.Int("questions", len(seedQuestions)))
	for i := range seedQuestions {
		q := seedQuestions[i]
		if _, err := s.store.CreateQuestion(&q); err != nil {
			return NewUnavailableError(fmt.Sprintf("seed question %d: %v", i+1, err))
		}
	}

	if err := s.ensureDemoUser(); err != nil {
		return err
	}
	return nil
}

// ensureDemoUser creates the single demo account the UI acts as. There is
// no login flow; the record exists so preferences have an owner and so the
// password column never holds plaintext.
func (s *CatalogService) ensureDemoUser() error {
	existing, err := s.store.GetUserByUsername(demoUsername)
	if err != nil {
		return NewUnavailableError("failed to look up demo user")
	}
	if existing != nil {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return NewUnavailableError("failed to hash demo password")
	}
	if _, err := s.store.CreateUser(&models.User{Username: demoUsername, PasswordHash: hash}); err != nil {
		return NewUnavailableError("failed to create demo user")
	}
	return nil
}
