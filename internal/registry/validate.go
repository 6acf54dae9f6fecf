package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/modelprobe/internal/ctxlog"
	"github.com/vk/modelprobe/internal/role"
)

// ValidateRegistry performs a strict parity check between class manifests and
// Go code: every hook a manifest names must be registered, every role a
// descriptor mentions must be known, and prefix rules may only target parts
// the class declares.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for class, d := range r.ClassRegistry {
		for _, p := range d.Parts {
			if !role.Known(p) {
				errs = append(errs, fmt.Sprintf("class '%s': unknown part role '%s'", class, p))
			}
		}

		if d.Partition != nil {
			if !role.Known(d.Partition.DefaultRole) {
				errs = append(errs, fmt.Sprintf("class '%s': unknown default_role '%s'", class, d.Partition.DefaultRole))
			}
			seen := make(map[string]role.Role)
			for _, rule := range d.Partition.Rules {
				if !role.Known(rule.Role) {
					errs = append(errs, fmt.Sprintf("class '%s': partition rule targets unknown role '%s'", class, rule.Role))
				}
				if len(d.Parts) > 0 && !d.HasPart(rule.Role) {
					errs = append(errs, fmt.Sprintf("class '%s': partition rule targets role '%s' which is not a declared part", class, rule.Role))
				}
				if prior, dup := seen[rule.Prefix]; dup && prior != rule.Role {
					errs = append(errs, fmt.Sprintf("class '%s': prefix '%s' claimed by both '%s' and '%s'", class, rule.Prefix, prior, rule.Role))
				}
				seen[rule.Prefix] = rule.Role
			}
		}

		if d.Hooks != nil {
			if name := d.Hooks.Partition; name != "" {
				if _, ok := r.PartitionRegistry[name]; !ok {
					errs = append(errs, fmt.Sprintf("class '%s': manifest names partition hook '%s' which is not registered in Go", class, name))
				}
			}
			if name := d.Hooks.Frame; name != "" {
				if _, ok := r.FrameRegistry[name]; !ok {
					errs = append(errs, fmt.Sprintf("class '%s': manifest names frame hook '%s' which is not registered in Go", class, name))
				}
			}
		}

		logger.Debug("Class descriptor validated.", "class", class)
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
