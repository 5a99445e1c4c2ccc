package controller

import "github.com/Edlina007/ml-agents/brain"

// Environment is the simulation the controller steps. Concrete
// environments live outside this module (a game engine, a remote
// simulation process, ...); the controller only needs batched
// per-brain data in and action batches out.
type Environment interface {
	// Brains describes every brain the environment exposes
	Brains() []brain.Parameters

	// Reset starts a fresh episode for every agent and returns the
	// first step's data
	Reset() (brain.AllInfo, error)

	// Step advances the simulation by one step using one action
	// batch per brain
	Step(actions map[string]brain.ActionInfo) (brain.AllInfo, error)

	// GlobalDone reports whether the simulation as a whole asked
	// for a reset, as opposed to individual agents finishing their
	// episodes
	GlobalDone() bool
}
