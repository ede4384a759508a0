package domain

import "strings"

// NormalizeHumanName trims leading/trailing whitespace and collapses internal
// whitespace runs. Used for displayName and organization name normalization.
func NormalizeHumanName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeTagIDs drops empty entries and duplicates while preserving order.
func NormalizeTagIDs(tags []TagID) []TagID {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[TagID]struct{}, len(tags))
	out := make([]TagID, 0, len(tags))
	for _, t := range tags {
		id := TagID(strings.TrimSpace(string(t)))
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
