package services

// ToggleField names a single boolean flag on an AnnotatedQuestion.
type ToggleField string

const (
	ToggleFavorite  ToggleField = "favorite"
	ToggleCompleted ToggleField = "completed"
	ToggleExpanded  ToggleField = "expanded"
)

func (f ToggleField) IsValid() bool {
	switch f {
	case ToggleFavorite, ToggleCompleted, ToggleExpanded:
		return true
	}
	return false
}

// Toggle returns a new list identical to items except that the named flag
// on the question with the given id is inverted. When no item matches the
// id the list is returned unchanged; the caller always derives ids from the
// current list, so a miss is a benign race, not an error.
func Toggle(items []AnnotatedQuestion, questionID int, field ToggleField) []AnnotatedQuestion {
	out := make([]AnnotatedQuestion, len(items))
	copy(out, items)
	for i := range out {
		if out[i].ID != questionID {
			continue
		}
		switch field {
		case ToggleFavorite:
			out[i].IsFavorite = !out[i].IsFavorite
		case ToggleCompleted:
			out[i].IsCompleted = !out[i].IsCompleted
		case ToggleExpanded:
			out[i].Expanded = !out[i].Expanded
		}
		break
	}
	return out
}
