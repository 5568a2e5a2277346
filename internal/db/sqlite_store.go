package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rkuzmin/railsprep/internal/api"
	"github.com/rkuzmin/railsprep/internal/models"
)

// SQLiteStore is the persistent backend. It implements api.Store on top of
// mattn/go-sqlite3 with plain database/sql.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ api.Store = (*SQLiteStore)(nil)

func NewSQLiteStore(db *sql.DB, logger *slog.Logger) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	if logger == nil {
		logger = slog.Default()
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	return &SQLiteStore{db: db, logger: logger}, nil
}

func (s *SQLiteStore) ListQuestions() ([]*models.Question, error) {
	rows, err := s.db.Query(`SELECT id, question, answer, category, difficulty FROM questions ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			s.logger.Warn("sqlite store: rows.Close", slog.String("error", cerr.Error()))
		}
	}()
	out := []*models.Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) GetQuestion(id int) (*models.Question, error) {
	row := s.db.QueryRow(`SELECT id, question, answer, category, difficulty FROM questions WHERE id = ?`, id)
	q, err := scanQuestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get question %d: %w", id, err)
	}
	return q, nil
}

func (s *SQLiteStore) CreateQuestion(q *models.Question) (*models.Question, error) {
	res, err := s.db.Exec(`INSERT INTO questions (question, answer, category, difficulty) VALUES (?, ?, ?, ?)`,
		q.Question, q.Answer, q.Category, string(q.Difficulty))
	if err != nil {
		return nil, fmt.Errorf("insert question: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert question: last id: %w", err)
	}
	cp := *q
	cp.ID = int(id)
	return &cp, nil
}

func (s *SQLiteStore) CountQuestions() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM questions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return n, nil
}

func (s *SQLiteStore) ListPreferences(userID int) ([]*models.Preference, error) {
	rows, err := s.db.Query(`SELECT id, user_id, question_id, is_favorite, is_completed
      FROM user_preferences WHERE user_id = ? ORDER BY id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list preferences: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			s.logger.Warn("sqlite store: rows.Close", slog.String("error", cerr.Error()))
		}
	}()
	out := []*models.Preference{}
	for rows.Next() {
		var p models.Preference
		var fav, done int64
		if err := rows.Scan(&p.ID, &p.UserID, &p.QuestionID, &fav, &done); err != nil {
			return nil, fmt.Errorf("scan preference: %w", err)
		}
		p.IsFavorite = fav != 0
		p.IsCompleted = done != 0
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list preferences: %w", err)
	}
	return out, nil
}

// UpsertPreference merges the partial update into the existing row in a
// single statement; COALESCE keeps unsupplied flags at their stored value,
// and SQLite serializes conflicting writers on the unique pair index.
func (s *SQLiteStore) UpsertPreference(p models.PreferenceUpdate) (*models.Preference, error) {
	fav := nullBool(p.IsFavorite)
	done := nullBool(p.IsCompleted)
	_, err := s.db.Exec(`INSERT INTO user_preferences (user_id, question_id, is_favorite, is_completed)
      VALUES (?, ?, COALESCE(?, 0), COALESCE(?, 0))
      ON CONFLICT(user_id, question_id) DO UPDATE SET
        is_favorite  = COALESCE(excluded.is_favorite,  user_preferences.is_favorite),
        is_completed = COALESCE(excluded.is_completed, user_preferences.is_completed)`,
		p.UserID, p.QuestionID, fav, done)
	if err != nil {
		return nil, fmt.Errorf("upsert preference: %w", err)
	}

	row := s.db.QueryRow(`SELECT id, user_id, question_id, is_favorite, is_completed
      FROM user_preferences WHERE user_id = ? AND question_id = ?`, p.UserID, p.QuestionID)
	var rec models.Preference
	var favV, doneV int64
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.QuestionID, &favV, &doneV); err != nil {
		return nil, fmt.Errorf("read back preference: %w", err)
	}
	rec.IsFavorite = favV != 0
	rec.IsCompleted = doneV != 0
	return &rec, nil
}

func (s *SQLiteStore) GetUser(id int) (*models.User, error) {
	row := s.db.QueryRow(`SELECT id, username, password FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (s *SQLiteStore) GetUserByUsername(username string) (*models.User, error) {
	row := s.db.QueryRow(`SELECT id, username, password FROM users WHERE username = ?`, username)
	return scanUser(row)
}

func (s *SQLiteStore) CreateUser(u *models.User) (*models.User, error) {
	res, err := s.db.Exec(`INSERT INTO users (username, password) VALUES (?, ?)`, u.Username, u.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert user: last id: %w", err)
	}
	cp := *u
	cp.ID = int(id)
	return &cp, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (*models.Question, error) {
	var q models.Question
	var difficulty string
	if err := row.Scan(&q.ID, &q.Question, &q.Answer, &q.Category, &difficulty); err != nil {
		return nil, err
	}
	// older snapshots stored alias names; normalize on the way out
	if level, ok := models.ParseDifficulty(difficulty); ok {
		q.Difficulty = level
	} else {
		q.Difficulty = models.Difficulty(difficulty)
	}
	return &q, nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func nullBool(v *bool) any {
	if v == nil {
		return nil
	}
	if *v {
		return int64(1)
	}
	return int64(0)
}
