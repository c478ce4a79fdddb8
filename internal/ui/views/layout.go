package views

// Screen rows: the query line, one row per candidate, an optional error
// line, then the help line.
const (
	queryRows = 1
	helpRows  = 1
	errorRows = 1

	// CandidateTop is the screen row of the first candidate
	CandidateTop = queryRows
)

// ContentHeight is the number of rows the launcher wants for the given
// content. It never decreases when either argument grows.
func ContentHeight(candidateCount int, errorVisible bool) int {
	if candidateCount < 0 {
		candidateCount = 0
	}
	h := queryRows + candidateCount + helpRows
	if errorVisible {
		h += errorRows
	}
	return h
}

// CandidateAt maps a screen row to a candidate index
func CandidateAt(row, candidateCount int) (int, bool) {
	i := row - CandidateTop
	if i < 0 || i >= candidateCount {
		return 0, false
	}
	return i, true
}
