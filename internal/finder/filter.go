package finder

import (
	"regexp"
	"strings"
)

var (
	queryToken = regexp.MustCompile(`(?i)%query%`)
	matchToken = regexp.MustCompile(`(?i)%match%`)
)

// SubstituteQuery replaces %query% (any case) in every argument
func SubstituteQuery(argv []string, query string) []string {
	return substitute(argv, queryToken, query)
}

// SubstituteMatch replaces %match% (any case) in every argument
func SubstituteMatch(argv []string, match string) []string {
	return substitute(argv, matchToken, match)
}

func substitute(argv []string, token *regexp.Regexp, value string) []string {
	out := make([]string, len(argv))
	for i, arg := range argv {
		out[i] = token.ReplaceAllLiteralString(arg, value)
	}
	return out
}

// SplitLines splits command output into trimmed, non-empty lines
func SplitLines(output string) []string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Filter keeps the lines containing every whitespace-separated term of
// query, ignoring case and term order
func Filter(query string, lines []string) []string {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return lines
	}

	var matched []string
	for _, line := range lines {
		lower := strings.ToLower(line)
		if containsAll(lower, terms) {
			matched = append(matched, line)
		}
	}
	return matched
}

func containsAll(s string, terms []string) bool {
	for _, term := range terms {
		if !strings.Contains(s, term) {
			return false
		}
	}
	return true
}
