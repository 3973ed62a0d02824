// Package defaults provides centralized constants for the installer.
//
// This package defines option names and their default values, the layout of
// the repository/Config directory, directory permission modes and the
// built-in parameters template. Centralizing these values keeps the option
// resolver, the scaffolder and the generators in agreement on key names.
//
// # Option Keys
//
// Options are read from the "extra" section of composer.json and from
// --set flags:
//
//   - prompt: collect parameters before generating configuration
//   - generate-structure: create the cache, log and data directories
//   - backbee-cache-dir, backbee-log-dir: relative to the project root
//   - backbee-data-dir: data root, with Media, Storage and Tmp below it
//
// # Usage
//
//	import "github.com/backbee/bbinstall/pkg/defaults"
//
//	opts := options.Resolve(defaults.Options(), overrides)
//	cacheDir := opts.String(defaults.OptCacheDir)
package defaults
