package services

import (
	"strings"

	"github.com/rkuzmin/railsprep/internal/models"
)

// FilterAll is the sentinel selector that disables a category or difficulty
// filter stage.
const FilterAll = "all"

// DefaultPageSize matches the page size the question list UI renders.
const DefaultPageSize = 5

// AnnotatedQuestion is a Question merged with the owning user's preference
// flags plus the ephemeral expanded flag. It is derived fresh per fetch and
// never persisted; Expanded in particular exists only inside a view session.
type AnnotatedQuestion struct {
	models.Question
	IsFavorite  bool `json:"isFavorite"`
	IsCompleted bool `json:"isCompleted"`
	Expanded    bool `json:"expanded"`
}

// FilterCriteria is the combined set of selectors applied to the catalog.
type FilterCriteria struct {
	Search        string `json:"search"`
	Category      string `json:"category"`
	Difficulty    string `json:"difficulty"`
	FavoritesOnly bool   `json:"favoritesOnly"`
	Page          int    `json:"page"`
	PageSize      int    `json:"pageSize"`
}

// sameFilters reports whether two criteria agree on everything except the
// page selector. Changing any of these resets pagination to page 1.
func (c FilterCriteria) sameFilters(o FilterCriteria) bool {
	return c.Search == o.Search &&
		c.Category == o.Category &&
		c.Difficulty == o.Difficulty &&
		c.FavoritesOnly == o.FavoritesOnly &&
		c.PageSize == o.PageSize
}

// Page is one page of the filtered view plus its summary counts.
type Page struct {
	Items         []AnnotatedQuestion `json:"items"`
	TotalFiltered int                 `json:"totalFiltered"`
	TotalPages    int                 `json:"totalPages"`
	Page          int                 `json:"page"`
	PageSize      int                 `json:"pageSize"`
}

// Annotate merges each question with its preference flags (missing entry
// means both false) and the last-known expanded state. Catalog order is
// preserved.
func Annotate(questions []*models.Question, prefs map[int]*models.Preference, expanded map[int]bool) []AnnotatedQuestion {
	out := make([]AnnotatedQuestion, 0, len(questions))
	for _, q := range questions {
		if q == nil {
			continue
		}
		aq := AnnotatedQuestion{Question: *q}
		if p := prefs[q.ID]; p != nil {
			aq.IsFavorite = p.IsFavorite
			aq.IsCompleted = p.IsCompleted
		}
		aq.Expanded = expanded[q.ID]
		out = append(out, aq)
	}
	return out
}

// Filter applies the search, category, difficulty, and favorites predicates
// in order (logical AND). It never fails: an empty result is a normal
// output, and an unrecognized difficulty selector simply matches nothing.
// Input order is preserved so that pagination boundaries stay deterministic
// across repeated calls with unchanged inputs.
func Filter(items []AnnotatedQuestion, c FilterCriteria) []AnnotatedQuestion {
	search := strings.ToLower(strings.TrimSpace(c.Search))

	difficulty, difficultyOK := models.Difficulty(""), false
	filterDifficulty := c.Difficulty != "" && c.Difficulty != FilterAll
	if filterDifficulty {
		difficulty, difficultyOK = models.ParseDifficulty(c.Difficulty)
	}

	out := make([]AnnotatedQuestion, 0, len(items))
	for _, it := range items {
		if search != "" &&
			!strings.Contains(strings.ToLower(it.Question.Question), search) &&
			!strings.Contains(strings.ToLower(it.Answer), search) {
			continue
		}
		if c.Category != "" && c.Category != FilterAll && it.Category != c.Category {
			continue
		}
		if filterDifficulty && (!difficultyOK || it.Difficulty != difficulty) {
			continue
		}
		if c.FavoritesOnly && !it.IsFavorite {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Paginate slices the filtered items into the requested page. totalPages is
// at least 1 even for an empty result, and the requested page is clamped
// into [1, totalPages] rather than rejected.
func Paginate(items []AnnotatedQuestion, page, pageSize int) Page {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return Page{
		Items:         append([]AnnotatedQuestion(nil), items[start:end]...),
		TotalFiltered: total,
		TotalPages:    totalPages,
		Page:          page,
		PageSize:      pageSize,
	}
}

// BuildPage runs the full pipeline: merge, filter, paginate. It is a pure
// function of its inputs and never returns an error.
func BuildPage(questions []*models.Question, prefs map[int]*models.Preference, expanded map[int]bool, c FilterCriteria) Page {
	return Paginate(Filter(Annotate(questions, prefs, expanded), c), c.Page, c.PageSize)
}
