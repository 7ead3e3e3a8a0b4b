package model

import (
	"fmt"
)

// Source provides information about the origin of a pipeline definition.
type Source struct {
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Stage represents a single command invocation within a pipeline.
type Stage struct {
	// ID is assigned during pipeline initialisation: pipelineName/index:command.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// Command is the registry name of the command to build.
	Command string `json:"command" yaml:"command"`

	// Settings holds free-form command configuration bound to the command's
	// typed config at compile time.
	Settings map[string]interface{} `json:"settings,omitempty" yaml:"settings,omitempty"`
}

// Pipeline represents an ordered chain of record transformation stages.
type Pipeline struct {

	// Source provides information about the origin of the pipeline
	Source *Source `json:"source,omitempty" yaml:"source,omitempty"`

	// Name is the unique identifier for the pipeline
	Name string `json:"name" yaml:"name"`

	// Description provides a human-readable description of the pipeline
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Schema is an optional URL of the index schema used to resolve the
	// unique-key field name
	Schema string `json:"schema,omitempty" yaml:"schema,omitempty"`

	// Stages defines the ordered command chain
	Stages []*Stage `json:"stages" yaml:"stages"`
}

// Init assigns stage IDs derived from the pipeline name and stage position.
func (p *Pipeline) Init() {
	for i, stage := range p.Stages {
		if stage == nil || stage.ID != "" {
			continue
		}
		stage.ID = fmt.Sprintf("%s/%d:%s", p.Name, i, stage.Command)
	}
}

// Validate performs a best-effort structural validation of the pipeline. The
// returned slice is empty when the pipeline is sound; otherwise it contains
// human-readable error descriptions.
func (p *Pipeline) Validate() []error {
	var issues []error
	if len(p.Stages) == 0 {
		issues = append(issues, fmt.Errorf("pipeline has no stages"))
		return issues
	}
	seen := map[string]bool{}
	for i, stage := range p.Stages {
		if stage == nil {
			issues = append(issues, fmt.Errorf("stage %d is nil", i))
			continue
		}
		if stage.Command == "" {
			issues = append(issues, fmt.Errorf("stage %d has no command", i))
		}
		if stage.ID != "" {
			if seen[stage.ID] {
				issues = append(issues, fmt.Errorf("duplicate stage id %s", stage.ID))
			}
			seen[stage.ID] = true
		}
	}
	return issues
}
