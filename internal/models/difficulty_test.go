package models

import "testing"

func TestParseDifficulty(t *testing.T) {
	cases := []struct {
		raw  string
		want Difficulty
		ok   bool
	}{
		{"easy", DifficultyEasy, true},
		{"medium", DifficultyMedium, true},
		{"hard", DifficultyHard, true},
		{"EASY", DifficultyEasy, true},
		{"  Hard ", DifficultyHard, true},
		{"beginner", DifficultyEasy, true},
		{"Intermediate", DifficultyMedium, true},
		{"ADVANCED", DifficultyHard, true},
		{"", "", false},
		{"all", "", false},
		{"expert", "", false},
	}
	for _, c := range cases {
		got, ok := ParseDifficulty(c.raw)
		if got != c.want || ok != c.ok {
			t.Fatalf("ParseDifficulty(%q) = (%q,%v), want (%q,%v)", c.raw, got, ok, c.want, c.ok)
		}
	}
}

func TestDifficultyIsValid(t *testing.T) {
	for _, d := range []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard} {
		if !d.IsValid() {
			t.Fatalf("%q should be valid", d)
		}
	}
	if Difficulty("beginner").IsValid() {
		t.Fatalf("aliases are not canonical levels")
	}
}
