// Package parameters holds the parameter bag of an installer run and the
// collectors that produce the raw parameters document.
//
// A Collector writes repository/Config/parameters.yml; the installer then
// loads its "parameters" mapping into a Bag that the configuration
// generators read. PromptCollector is the bundled collector: it walks the
// keys of parameters.yml.dist (or a built-in template), keeps values already
// present in parameters.yml, applies BACKBEE_* environment overrides, and
// asks for the rest when attached to a terminal.
package parameters
