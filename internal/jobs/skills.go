package jobs

import (
	"encoding/json"
	"errors"
	"strings"
)

var ErrInvalidSkills = errors.New("skills must be a list of strings or a comma-separated string")

// NormalizeSkills canonicalizes the skills field. Clients send either a JSON
// array of strings or a single comma-separated string; anything else is
// rejected instead of coerced. Entries are trimmed, lowercase-deduplicated
// and empties dropped.
func NormalizeSkills(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, ErrInvalidSkills
		}
		list = strings.Split(s, ",")
	}

	return SplitSkills(list), nil
}

// SplitSkills cleans an already-split list: trim, drop empties, dedupe
// case-insensitively while keeping the first spelling seen.
func SplitSkills(list []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(list))
	for _, s := range list {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}
