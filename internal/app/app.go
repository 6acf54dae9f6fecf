package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/modelprobe/internal/config"
	"github.com/vk/modelprobe/internal/ctxlog"
	"github.com/vk/modelprobe/internal/registry"
	"github.com/vk/modelprobe/internal/resolver"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	config   *config.Model
	resolver *resolver.Resolver
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// Startup failures are programmer or configuration errors and panic; the cmd
// boundary recovers them into a clean exit.
func NewApp(errW io.Writer, outW io.Writer, appConfig *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, errW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	var configPaths []string
	if appConfig.ClassesPath != "" {
		configPaths = append(configPaths, appConfig.ClassesPath)
	}
	if appConfig.SnapshotPath != "" {
		configPaths = append(configPaths, appConfig.SnapshotPath)
	}

	cfgModel, err := loader.Load(ctx, configPaths...)
	if err != nil {
		// A failure to load config is a fatal startup error.
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	logger.Debug("Configuration loaded and translated into unified model.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All class modules registered.", "count", len(modules))

	reg.PopulateDescriptorsFromModel(cfgModel)
	logger.Debug("Registry descriptors populated from config model.")

	if err := reg.ValidateRegistry(ctx); err != nil {
		// A mismatch between manifests and Go code is a programmer error.
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		config:   cfgModel,
		resolver: resolver.New(reg),
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
