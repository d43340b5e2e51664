package internalerr

import "errors"

// Sentinel errors for common cases
var (
	// ErrInconsistent means the fact set became unsatisfiable after a
	// percept assertion. This indicates a sensing or rule-compilation
	// bug and aborts the episode.
	ErrInconsistent = errors.New("knowledge base inconsistent")

	// ErrOracle means the satisfiability engine gave no verdict.
	ErrOracle = errors.New("entailment oracle unavailable")

	ErrInvalidConfig = errors.New("invalid configuration")
	ErrEpisodeOver   = errors.New("episode already terminated")
)
