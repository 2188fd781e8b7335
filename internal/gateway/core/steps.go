package core

import "fmt"

type Step struct {
	Name    string
	Execute func(ctx *FlowContext) error
}

func NewStep(name string, execute func(ctx *FlowContext) error) Step {
	return Step{
		Name:    name,
		Execute: execute,
	}
}

// RunSteps executes steps in order and stops at the first failure.
func RunSteps(ctx *FlowContext, steps []Step) error {
	for _, step := range steps {
		if err := step.Execute(ctx); err != nil {
			return fmt.Errorf("%s step failed, pipeline errored: %w", step.Name, err)
		}
	}
	return nil
}
