package api

import (
	"fmt"
	"testing"

	"github.com/rkuzmin/railsprep/internal/models"
)

func ptrBool(v bool) *bool { return &v }

func TestMemoryStoreQuestionsKeepInsertionOrder(t *testing.T) {
	store := NewMemoryStore()
	for i := 1; i <= 10; i++ {
		q := &models.Question{
			Question:   fmt.Sprintf("Question %d", i),
			Answer:     "answer",
			Category:   "General",
			Difficulty: models.DifficultyEasy,
		}
		created, err := store.CreateQuestion(q)
		if err != nil {
			t.Fatalf("CreateQuestion %d: %v", i, err)
		}
		if created.ID != i {
			t.Fatalf("question %d assigned id %d", i, created.ID)
		}
	}

	qs, err := store.ListQuestions()
	if err != nil {
		t.Fatalf("ListQuestions: %v", err)
	}
	if len(qs) != 10 {
		t.Fatalf("questions = %d, want 10", len(qs))
	}
	for i, q := range qs {
		if q.ID != i+1 {
			t.Fatalf("position %d holds id %d, want %d", i, q.ID, i+1)
		}
	}
}

func TestMemoryStoreGetQuestionMissingIsNilNil(t *testing.T) {
	store := NewMemoryStore()
	q, err := store.GetQuestion(99)
	if err != nil {
		t.Fatalf("GetQuestion: %v", err)
	}
	if q != nil {
		t.Fatalf("GetQuestion(99) = %+v, want nil for absent record", q)
	}
}

func TestMemoryStoreUpsertKeepsOneRecordPerPair(t *testing.T) {
	store := NewMemoryStore()

	first, err := store.UpsertPreference(models.PreferenceUpdate{UserID: 1, QuestionID: 4, IsFavorite: ptrBool(true)})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	second, err := store.UpsertPreference(models.PreferenceUpdate{UserID: 1, QuestionID: 4, IsCompleted: ptrBool(true)})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("second upsert created record %d, want update of %d", second.ID, first.ID)
	}
	if !second.IsFavorite || !second.IsCompleted {
		t.Fatalf("partial update clobbered a flag: %+v", second)
	}

	prefs, err := store.ListPreferences(1)
	if err != nil {
		t.Fatalf("ListPreferences: %v", err)
	}
	if len(prefs) != 1 {
		t.Fatalf("preferences = %d, want 1", len(prefs))
	}
}

func TestMemoryStorePreferencesAreScopedByUser(t *testing.T) {
	store := NewMemoryStore()
	if _, err := store.UpsertPreference(models.PreferenceUpdate{UserID: 1, QuestionID: 1, IsFavorite: ptrBool(true)}); err != nil {
		t.Fatalf("upsert user 1: %v", err)
	}
	if _, err := store.UpsertPreference(models.PreferenceUpdate{UserID: 2, QuestionID: 1, IsCompleted: ptrBool(true)}); err != nil {
		t.Fatalf("upsert user 2: %v", err)
	}

	prefs, err := store.ListPreferences(2)
	if err != nil {
		t.Fatalf("ListPreferences: %v", err)
	}
	if len(prefs) != 1 || prefs[0].UserID != 2 {
		t.Fatalf("user 2 preferences = %+v, want exactly their own record", prefs)
	}
}

func TestMemoryStoreRejectsDuplicateUsername(t *testing.T) {
	store := NewMemoryStore()
	if _, err := store.CreateUser(&models.User{Username: "demo"}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if _, err := store.CreateUser(&models.User{Username: "demo"}); err == nil {
		t.Fatalf("duplicate username accepted")
	}

	u, err := store.GetUserByUsername("demo")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if u == nil || u.ID != 1 {
		t.Fatalf("lookup = %+v, want the original user", u)
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	if _, err := store.CreateQuestion(&models.Question{Question: "original", Difficulty: models.DifficultyEasy}); err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}

	q, err := store.GetQuestion(1)
	if err != nil {
		t.Fatalf("GetQuestion: %v", err)
	}
	q.Question = "mutated"

	again, err := store.GetQuestion(1)
	if err != nil {
		t.Fatalf("GetQuestion: %v", err)
	}
	if again.Question != "original" {
		t.Fatalf("caller mutation leaked into the store: %q", again.Question)
	}
}
