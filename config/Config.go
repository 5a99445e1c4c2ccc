// Package config loads per-brain trainer hyperparameter configurations
// from YAML files
package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Hyperparameter keys that the shared trainer machinery reads. A
// concrete trainer declares whatever further keys it requires.
const (
	// KeyTrainer names the trainer type to construct for a brain
	KeyTrainer = "trainer"

	// KeySummaryPath is the run-scoped directory summaries are
	// written under
	KeySummaryPath = "summary_path"

	// KeySummaryFreq is the number of simulation steps between
	// summary flushes
	KeySummaryFreq = "summary_freq"

	// KeyMaxSteps caps how long a trainer trains
	KeyMaxSteps = "max_steps"

	// KeySaveFreq is the number of simulation steps between model
	// checkpoints
	KeySaveFreq = "save_freq"
)

// DefaultSection is the configuration section whose values apply to
// every brain unless the brain's own section overrides them
const DefaultSection = "default"

// File is one parsed trainer configuration file: a default section
// plus one section per brain.
//
// Section names are matched case-insensitively, so a brain named
// Ball3DBrain picks up a section written as either Ball3DBrain or
// ball3dbrain.
type File struct {
	sections map[string]map[string]interface{}
}

// Load reads and parses the trainer configuration at path
func Load(path string) (*File, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("load: could not read trainer config: %v",
			err)
	}

	all := v.AllSettings()
	sections := make(map[string]map[string]interface{}, len(all))
	for name, raw := range all {
		section, err := cast.ToStringMapE(raw)
		if err != nil {
			return nil, fmt.Errorf("load: section %v is not a "+
				"mapping: %v", name, err)
		}
		sections[name] = section
	}

	return &File{sections: sections}, nil
}

// Parameters returns the hyperparameters for brainName: the default
// section overlaid with the brain's own section. The returned map is
// a fresh copy the caller may mutate.
func (f *File) Parameters(brainName string) map[string]interface{} {
	params := make(map[string]interface{})
	for k, val := range f.sections[DefaultSection] {
		params[k] = val
	}
	for k, val := range f.sections[strings.ToLower(brainName)] {
		params[k] = val
	}
	return params
}

// HasBrain reports whether the file carries a section of its own for
// brainName
func (f *File) HasBrain(brainName string) bool {
	_, ok := f.sections[strings.ToLower(brainName)]
	return ok
}

// Brains returns the names of every brain-specific section in the
// file, sorted
func (f *File) Brains() []string {
	var names []string
	for name := range f.sections {
		if name == DefaultSection {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SummaryPath composes the run-scoped summary directory for one brain
func SummaryPath(summariesDir, runID, brainName string) string {
	return filepath.Join(summariesDir, runID+"_"+brainName)
}
