package app

import (
	"context"
	"encoding/json"
	"fmt"

	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/vk/modelprobe/internal/ctxlog"
	"github.com/vk/modelprobe/internal/model"
)

// resultLine is one line of output: the model's identity plus whichever of
// the two resolution results was requested.
type resultLine struct {
	Model      string          `json:"model"`
	Class      string          `json:"class"`
	Parameters []groupLine     `json:"parameters,omitempty"`
	Flat       []string        `json:"flat,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
}

type groupLine struct {
	Role  string   `json:"role"`
	Names []string `json:"names"`
}

// Run executes the requested resolution operation against every selected
// model and writes one JSON line per model to the output writer.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	handles := a.selectHandles(appConfig.ModelName)
	if len(handles) == 0 {
		a.logger.Warn("No models found in snapshot, nothing to resolve.")
		return nil
	}

	for _, h := range handles {
		line, err := a.resolveOne(ctx, h, appConfig)
		if err != nil {
			return fmt.Errorf("model %q: %w", h.Name, err)
		}
		encoded, err := json.Marshal(line)
		if err != nil {
			return fmt.Errorf("failed to encode result for model %q: %w", h.Name, err)
		}
		fmt.Fprintln(a.outW, string(encoded))
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) selectHandles(name string) []*model.Handle {
	if name == "" {
		return a.config.Handles
	}
	var out []*model.Handle
	for _, h := range a.config.Handles {
		if h.Name == name {
			out = append(out, h)
		}
	}
	return out
}

func (a *App) resolveOne(ctx context.Context, h *model.Handle, appConfig *Config) (*resultLine, error) {
	line := &resultLine{Model: h.Name, Class: h.Class}

	switch appConfig.Op {
	case OpParameters:
		grouping, err := a.resolver.ParameterNames(ctx, h, appConfig.Component)
		if err != nil {
			return nil, err
		}
		if appConfig.Flatten {
			line.Flat = grouping.Flatten()
			return line, nil
		}
		for _, r := range grouping.Roles() {
			line.Parameters = append(line.Parameters, groupLine{Role: string(r), Names: grouping.Group(r)})
		}
		return line, nil

	case OpData:
		resolved, err := a.resolver.FitData(ctx, h, appConfig.Effects, appConfig.Component, appConfig.Verbose)
		if err != nil {
			return nil, err
		}
		if resolved == nil {
			line.Data = json.RawMessage("null")
			return line, nil
		}
		val := resolved.ToCty()
		encoded, err := ctyjson.Marshal(val, val.Type())
		if err != nil {
			return nil, fmt.Errorf("failed to encode resolved data: %w", err)
		}
		line.Data = encoded
		return line, nil
	}

	return nil, fmt.Errorf("unknown operation %q", appConfig.Op)
}
