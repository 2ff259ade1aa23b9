package chord

import "strings"

// splitNonEmpty splits s on sep and drops empty fields, so callers can
// tolerate both the "no results" empty string and a trailing separator.
func splitNonEmpty(s string, sep byte) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, string(sep))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// joinNonEmpty joins names with sep, or returns the empty string when
// there is nothing to join - the wire protocol's defined "no results"
// response.
func joinNonEmpty(names []string, sep byte) string {
	if len(names) == 0 {
		return ""
	}
	return strings.Join(names, string(sep))
}
