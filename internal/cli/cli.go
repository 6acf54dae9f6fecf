package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/modelprobe/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("modelprobe", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
modelprobe - introspection for fitted statistical models.

Usage:
  modelprobe [options] [SNAPSHOT_PATH]

Arguments:
  SNAPSHOT_PATH
    Path to a single .hcl snapshot file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	snapshotFlag := flagSet.String("snapshot", "", "Path to the snapshot file or directory.")
	sFlag := flagSet.String("s", "", "Path to the snapshot file or directory (shorthand).")
	classesPathFlag := flagSet.String("classes-path", "classes", "Path to the directory containing class manifests.")
	opFlag := flagSet.String("op", "data", "Operation to run. Options: 'data' or 'parameters'.")
	modelFlag := flagSet.String("model", "", "Restrict the operation to one model instance name.")
	componentFlag := flagSet.String("component", "all", "Model component to resolve, e.g. 'all', 'conditional', 'zi'.")
	effectsFlag := flagSet.String("effects", "all", "Effects subset for data resolution. Options: 'all', 'fixed', 'random'.")
	flattenFlag := flagSet.Bool("flatten", false, "Collapse parameter groups into one ordered list.")
	verboseFlag := flagSet.Bool("verbose", false, "Surface data-recovery failures as warnings.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *snapshotFlag != "" {
		path = *snapshotFlag
	} else if *sFlag != "" {
		path = *sFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Snapshot path determined.", "path", path)

	if path == "" {
		slog.Debug("No snapshot path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		SnapshotPath: path,
		ClassesPath:  *classesPathFlag,
		Op:           app.Operation(strings.ToLower(*opFlag)),
		ModelName:    *modelFlag,
		Component:    *componentFlag,
		Effects:      *effectsFlag,
		Flatten:      *flattenFlag,
		Verbose:      *verboseFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
