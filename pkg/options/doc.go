// Package options resolves the installer option set.
//
// The effective options of a run are the defaults from pkg/defaults overlaid
// with user overrides. Overrides come from the "extra" section of the project
// composer.json and from repeated --set key=value flags, in that order:
//
//	extra, err := options.LoadExtra(fs, "/srv/site/composer.json")
//	flags, err := options.ParseOverrides([]string{"generate-structure=false"})
//	opts := options.Resolve(defaults.Options(), options.Overlay(extra, flags))
//
// Resolve never introduces keys the defaults do not have. Override keys that
// are not option names are reported by Unknown, together with the closest
// option name when one is near enough to be a likely typo.
package options
