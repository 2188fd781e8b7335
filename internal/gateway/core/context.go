package core

import (
	"fmt"

	"chedoparti/pkg/client"
	"chedoparti/pkg/logger"
)

// FlowContext carries a flow's input, scratch space, and output through its
// steps. Steps communicate exclusively through it.
type FlowContext struct {
	Input   map[string]any
	Process map[string]any
	Output  map[string]any
	Client  *client.Client
	Log     *logger.Logger
}

func NewFlowContext(input map[string]any, c *client.Client, log *logger.Logger) *FlowContext {
	return &FlowContext{
		Input:   input,
		Process: make(map[string]any),
		Output:  make(map[string]any),
		Client:  c,
		Log:     log,
	}
}

// ExtractString reads a required string input; empty counts as missing.
func (ctx *FlowContext) ExtractString(key string) (string, error) {
	raw, ok := ctx.Input[key]
	if !ok {
		return "", MissingParamErr(key)
	}
	s, ok := raw.(string)
	if !ok || s == "" {
		return "", MissingParamErr(key)
	}
	return s, nil
}

// OptionalString reads an optional string input, returning "" when absent.
func (ctx *FlowContext) OptionalString(key string) string {
	if raw, ok := ctx.Input[key]; ok {
		if s, ok := raw.(string); ok {
			return s
		}
	}
	return ""
}

// ExtractInt reads a required numeric input. JSON numbers arrive as float64.
func (ctx *FlowContext) ExtractInt(key string) (int, error) {
	raw, ok := ctx.Input[key]
	if !ok {
		return 0, MissingParamErr(key)
	}
	switch v := raw.(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	default:
		return 0, fmt.Errorf("param [%v] must be a number", key)
	}
}

// OptionalBool reads an optional boolean input, defaulting to false.
func (ctx *FlowContext) OptionalBool(key string) bool {
	if raw, ok := ctx.Input[key]; ok {
		if b, ok := raw.(bool); ok {
			return b
		}
	}
	return false
}
