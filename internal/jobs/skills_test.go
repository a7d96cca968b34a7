package jobs

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestNormalizeSkillsArray(t *testing.T) {
	got, err := NormalizeSkills(json.RawMessage(`["Go", " SQL ", "", "go"]`))
	if err != nil {
		t.Fatalf("NormalizeSkills: %v", err)
	}
	want := []string{"Go", "SQL"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestNormalizeSkillsCommaString(t *testing.T) {
	got, err := NormalizeSkills(json.RawMessage(`"Go, SQL,Docker"`))
	if err != nil {
		t.Fatalf("NormalizeSkills: %v", err)
	}
	want := []string{"Go", "SQL", "Docker"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestNormalizeSkillsRejectsAmbiguousInput(t *testing.T) {
	for _, raw := range []string{`42`, `{"a":1}`, `[1,2]`, `["ok", 3]`, `true`} {
		if _, err := NormalizeSkills(json.RawMessage(raw)); !errors.Is(err, ErrInvalidSkills) {
			t.Errorf("NormalizeSkills(%s) err = %v, want ErrInvalidSkills", raw, err)
		}
	}
}

func TestNormalizeSkillsEmpty(t *testing.T) {
	got, err := NormalizeSkills(nil)
	if err != nil {
		t.Fatalf("NormalizeSkills: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestSplitSkillsDedupeIsCaseInsensitive(t *testing.T) {
	got := SplitSkills([]string{"React", "react", " REACT ", "Vue"})
	want := []string{"React", "Vue"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
