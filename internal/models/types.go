package models

// Question is a single interview question with its model answer. Questions
// are created once at seed time and never modified afterwards. Answer text
// may contain markdown-style markup and ```ruby code fences; rendering is
// the client's concern.
type Question struct {
	ID         int        `json:"id"`
	Question   string     `json:"question"`
	Answer     string     `json:"answer"`
	Category   string     `json:"category"`
	Difficulty Difficulty `json:"difficulty"`
}

// Preference records one user's favorite/completed flags for one question.
// At most one record exists per (user, question) pair.
type Preference struct {
	ID          int  `json:"id"`
	UserID      int  `json:"userId"`
	QuestionID  int  `json:"questionId"`
	IsFavorite  bool `json:"isFavorite"`
	IsCompleted bool `json:"isCompleted"`
}

// PreferenceUpdate is the upsert payload for a preference. A nil flag
// pointer means "leave as is": a partial update must not clobber the
// other flag.
type PreferenceUpdate struct {
	UserID      int
	QuestionID  int
	IsFavorite  *bool
	IsCompleted *bool
}

// User is an account record. Only store-level create/lookup exists; there
// is no session or login flow.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash []byte `json:"-"`
}
