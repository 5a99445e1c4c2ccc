// Package brain describes the agent groupings ("brains") that trainers
// control, and the batched data exchanged with a simulated environment
package brain

import "fmt"

// SpaceType indicates whether an action or observation space is
// continuous or discrete
type SpaceType int

const (
	Discrete SpaceType = iota
	Continuous
)

func (s SpaceType) String() string {
	switch s {
	case Discrete:
		return "Discrete"
	default:
		return "Continuous"
	}
}

// Resolution describes the shape of one camera's visual observations
type Resolution struct {
	Width         int
	Height        int
	BlackAndWhite bool
}

// Channels returns the number of colour channels a camera with this
// resolution produces
func (r Resolution) Channels() int {
	if r.BlackAndWhite {
		return 1
	}
	return 3
}

// Parameters describes the observation and action layout of a single
// brain. Every agent controlled by the brain shares this layout.
type Parameters struct {
	BrainName string

	// Size of the vector observation of a single agent, after
	// stacking
	VectorObservationSize     int
	StackedVectorObservations int

	// One Resolution per camera attached to each agent
	CameraResolutions []Resolution

	VectorActionSize      int
	VectorActionSpaceType SpaceType
}

func (p Parameters) String() string {
	return fmt.Sprintf("Brain %v | Vector Observations: %v (x%v) | "+
		"Cameras: %v | Actions: %v (%v)", p.BrainName,
		p.VectorObservationSize, p.StackedVectorObservations,
		len(p.CameraResolutions), p.VectorActionSize,
		p.VectorActionSpaceType)
}
