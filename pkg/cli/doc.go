// Package cli implements the bbinstall command-line interface.
//
// # Overview
//
// bbinstall prepares a BackBee Standard Edition project after its
// dependencies are installed: it creates the runtime directories, collects
// the deployment parameters and writes the bootstrap, doctrine and services
// configuration under repository/Config. Every step is also available as its
// own command so a build tool can run them by name.
//
// # Commands
//
// install - Run every step in order:
//
//	bbinstall install [--keep-parameters=false]
//
// On failure the parameters.yml written by the run is removed again.
//
// structure, parameters, bootstrap, doctrine, services - Run a single step:
//
//	bbinstall --root /srv/site structure
//	bbinstall --no-interaction parameters
//	bbinstall doctrine
//
// The generator commands load an existing parameters.yml first and do nothing
// when there is none.
//
// clear - Remove repository/Config/parameters.yml.
//
// options - Print the effective options:
//
//	bbinstall --set generate-structure=false options --format yaml
//
// # Options
//
// Options come from the built-in defaults, the "extra" object of the
// project's composer.json and finally --set key=value flags. Unknown keys are
// reported with the closest known name.
//
// # Global Flags
//
//	--root            Project root (default: working directory)
//	--composer        Package descriptor, relative to the root (default: composer.json)
//	--set             Option override, key=value (repeatable)
//	--no-interaction  Never prompt; use environment values and defaults
//	--format          Report format: yaml, json or table (default: from the --output extension, else yaml)
//	--output          Report destination (default: stdout)
//	--debug           Enable debug logging
//	--log-json        Log in JSON instead of text
//	--metrics-file    Write step metrics in Prometheus text format to this file
//
// Step commands print a report of the directories and files they wrote and
// the targets they skipped. A failed run still prints it, with success false
// and the error in errors.
//
// # Environment
//
// LOG_LEVEL sets the log level (debug, info, warn, error). BACKBEE_<KEY>
// provides a parameter value, for example BACKBEE_DATABASE_HOST.
//
// # Exit Codes
//
// 0 on success, 1 on any error and 2 when interrupted.
package cli
