// Package optimization provides shared data structures for optimization results.
package optimization

// Summary captures the result of a payoff plan: the smallest uniform
// payment that retires the loan within TargetMonths.
type Summary struct {
	TargetMonths  int      `json:"targetMonths"`
	Original      float64  `json:"original"`
	Payment       float64  `json:"payment"`
	Months        int      `json:"months"`
	InterestSaved float64  `json:"interestSaved"`
	Iterations    int      `json:"iterations"`
	Converged     bool     `json:"converged"`
	Notes         []string `json:"notes,omitempty"`
}
