package brain

import "gonum.org/v1/gonum/mat"

// ActionInfo packages the output of a policy's action selection for
// one brain: the actions themselves, the policy's value estimates, and
// any extra outputs a concrete policy wants handed back to its trainer
// when experiences are recorded.
type ActionInfo struct {
	// Actions holds one row per agent
	Actions *mat.Dense

	// Values holds the policy's value estimate per agent, if the
	// policy produces one
	Values []float64

	// Outputs carries policy-specific extras (log probabilities,
	// recurrent state, ...) keyed by name
	Outputs map[string]interface{}
}
