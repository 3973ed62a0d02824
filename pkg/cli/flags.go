package cli

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/backbee/bbinstall/pkg/defaults"
	"github.com/backbee/bbinstall/pkg/serializer"
)

const (
	flagRoot           = "root"
	flagComposer       = "composer"
	flagSet            = "set"
	flagNoInteraction  = "no-interaction"
	flagFormat         = "format"
	flagOutput         = "output"
	flagDebug          = "debug"
	flagLogJSON        = "log-json"
	flagKeepParameters = "keep-parameters"
	flagMetricsFile    = "metrics-file"
)

// globalFlags returns new flag instances; urfave flags hold parse state.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  flagRoot,
			Usage: "project root directory (default: working directory)",
		},
		&cli.StringFlag{
			Name:  flagComposer,
			Value: defaults.ComposerFile,
			Usage: "package descriptor whose \"extra\" object provides options, relative to the root",
		},
		&cli.StringSliceFlag{
			Name:  flagSet,
			Usage: "override an option (format: key=value, can be repeated)",
		},
		&cli.BoolFlag{
			Name:    flagNoInteraction,
			Aliases: []string{"n"},
			Usage:   "do not prompt; parameters come from BACKBEE_* variables and defaults",
		},
		&cli.StringFlag{
			Name:    flagFormat,
			Aliases: []string{"f"},
			Value:   string(serializer.FormatYAML),
			Usage:   fmt.Sprintf("report format (%s); unset, a --output file extension decides", strings.Join(serializer.SupportedFormats(), ", ")),
		},
		&cli.StringFlag{
			Name:    flagOutput,
			Aliases: []string{"o"},
			Usage:   "report file path (default: stdout)",
		},
		&cli.BoolFlag{
			Name:  flagDebug,
			Usage: "enable debug logging",
		},
		&cli.BoolFlag{
			Name:  flagLogJSON,
			Usage: "write logs as JSON",
		},
		&cli.StringFlag{
			Name:  flagMetricsFile,
			Usage: "write step metrics to this file in Prometheus text format",
		},
	}
}
