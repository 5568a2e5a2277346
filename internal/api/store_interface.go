package api

import "github.com/rkuzmin/railsprep/internal/models"

// Store is the CRUD contract both storage backends implement. Questions are
// append-only; preferences follow upsert semantics (one record per
// (user, question) pair); users exist only for create/lookup.
//
// Absent records are returned as (nil, nil): "not found" is a normal
// outcome at this layer, while a non-nil error means the backend itself
// failed. Callers must keep the two outcomes distinguishable.
type Store interface {
	ListQuestions() ([]*models.Question, error)
	GetQuestion(id int) (*models.Question, error)
	CreateQuestion(q *models.Question) (*models.Question, error)
	CountQuestions() (int, error)

	ListPreferences(userID int) ([]*models.Preference, error)
	UpsertPreference(p models.PreferenceUpdate) (*models.Preference, error)

	GetUser(id int) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	CreateUser(u *models.User) (*models.User, error)
}

var _ Store = (*memoryStore)(nil)
