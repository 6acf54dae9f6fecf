package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/modelprobe/internal/config"
	"github.com/vk/modelprobe/internal/ctxlog"
	"github.com/vk/modelprobe/internal/frame"
	"github.com/vk/modelprobe/internal/fsutil"
	"github.com/vk/modelprobe/internal/schema"
)

// Loader is the HCL implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new HCL loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file under the given paths and translates the result
// into the format-agnostic config model. Table blocks across all files form
// one global scope, built in file order so later tables may reference earlier
// ones.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	var filePaths []string
	for _, path := range paths {
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to walk config path %s: %w", path, err)
		}
		filePaths = append(filePaths, found...)
	}
	logger.Debug("Found HCL files to load.", "count", len(filePaths))

	parser := hclparse.NewParser()
	var files []*schema.FileConfig
	var fileNames []string
	for _, filePath := range filePaths {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
		}
		var fc schema.FileConfig
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &fc); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", filePath, diags)
		}
		files = append(files, &fc)
		fileNames = append(fileNames, filePath)
	}

	globalCtx, err := l.buildGlobalScope(ctx, files, fileNames)
	if err != nil {
		return nil, err
	}

	cfg := &config.Model{Classes: make(map[string]*config.ClassDescriptor)}
	for i, fc := range files {
		for _, cd := range fc.Classes {
			descriptor, err := l.translateClass(cd)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", fileNames[i], err)
			}
			if _, dup := cfg.Classes[descriptor.Class]; dup {
				return nil, fmt.Errorf("%s: class %q defined more than once", fileNames[i], descriptor.Class)
			}
			cfg.Classes[descriptor.Class] = descriptor
		}
		for _, mb := range fc.Models {
			handle, err := l.translateModel(ctx, mb, globalCtx)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", fileNames[i], err)
			}
			cfg.Handles = append(cfg.Handles, handle)
		}
	}

	logger.Info("Configuration loaded.",
		"classes", len(cfg.Classes),
		"models", len(cfg.Handles),
	)
	return cfg, nil
}

// buildGlobalScope evaluates every table block into one shared EvalContext.
// Tables are evaluated in declaration order against the scope built so far.
func (l *Loader) buildGlobalScope(ctx context.Context, files []*schema.FileConfig, fileNames []string) (*hcl.EvalContext, error) {
	logger := ctxlog.FromContext(ctx)
	globalCtx := &hcl.EvalContext{Variables: make(map[string]cty.Value)}

	for i, fc := range files {
		for _, tb := range fc.Tables {
			val, diags := tb.Columns.Value(globalCtx)
			if diags.HasErrors() {
				return nil, fmt.Errorf("%s: failed to evaluate table %q: %w", fileNames[i], tb.Name, diags)
			}
			if _, err := frame.FromCty(val); err != nil {
				return nil, fmt.Errorf("%s: table %q is not table-shaped: %w", fileNames[i], tb.Name, err)
			}
			if _, dup := globalCtx.Variables[tb.Name]; dup {
				return nil, fmt.Errorf("%s: table %q defined more than once", fileNames[i], tb.Name)
			}
			globalCtx.Variables[tb.Name] = val
			logger.Debug("Registered table in global scope.", "table", tb.Name)
		}
	}
	return globalCtx, nil
}

// attrsFromBody extracts a body's attributes as a name->expression map,
// leaving every expression unevaluated.
func attrsFromBody(body hcl.Body) (map[string]hcl.Expression, error) {
	if body == nil {
		return nil, nil
	}
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to read block attributes: %w", diags)
	}
	if len(attrs) == 0 {
		return nil, nil
	}
	exprMap := make(map[string]hcl.Expression, len(attrs))
	for name, attr := range attrs {
		exprMap[name] = attr.Expr
	}
	return exprMap, nil
}
