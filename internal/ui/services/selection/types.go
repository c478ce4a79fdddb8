package selection

import "catalyst/internal/domain"

// State holds the candidate list and the highlighted index
type State struct {
	Candidates []domain.Candidate
	Index      int // 0 when Candidates is empty
}
