// Package policy defines the policy collaborator that maps brain
// observations to actions and owns the trainable model's persistence
package policy

import "github.com/Edlina007/ml-agents/brain"

// Policy chooses actions for every agent of one brain and persists the
// model behind those choices. Trainers drive a Policy exclusively: they
// call GetAction while collecting experiences, SaveModel on the save
// cadence, and ExportModel once training finishes.
type Policy interface {
	// GetAction selects one action per agent in the Info
	GetAction(info *brain.Info) (brain.ActionInfo, error)

	// SaveModel checkpoints the model at the given training step
	SaveModel(step int) error

	// ExportModel writes the model in its final, inference-ready form
	ExportModel() error
}
