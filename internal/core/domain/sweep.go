package domain

// SweepReport summarizes one sweeper invocation. Partial failures are
// collected here, never raised.
type SweepReport struct {
	Archived int      `json:"archived"`
	Deleted  int      `json:"deleted"`
	Errors   []string `json:"errors"`
}
