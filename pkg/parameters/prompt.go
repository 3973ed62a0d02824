package parameters

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/google/uuid"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/backbee/bbinstall/pkg/defaults"
	bberrors "github.com/backbee/bbinstall/pkg/errors"
	"github.com/backbee/bbinstall/pkg/yamldoc"
)

// PromptCollector builds parameters.yml from a template, asking for values
// that are neither in the existing file nor in the environment.
type PromptCollector struct {
	in          io.Reader
	out         io.Writer
	interactive bool
	lookupEnv   func(string) (string, bool)
	readSecret  func() (string, error)
	restoreTTY  func()
	newSecret   func() string
}

// Option configures a PromptCollector.
type Option func(*PromptCollector)

// WithInput sets the reader answers are read from.
func WithInput(r io.Reader) Option {
	return func(c *PromptCollector) {
		c.in = r
	}
}

// WithOutput sets the writer questions are written to.
func WithOutput(w io.Writer) Option {
	return func(c *PromptCollector) {
		c.out = w
	}
}

// WithInteractive forces interactive or non-interactive mode.
func WithInteractive(interactive bool) Option {
	return func(c *PromptCollector) {
		c.interactive = interactive
	}
}

// WithLookupEnv replaces os.LookupEnv for BACKBEE_* overrides.
func WithLookupEnv(fn func(string) (string, bool)) Option {
	return func(c *PromptCollector) {
		c.lookupEnv = fn
	}
}

// WithSecretReader sets how password and secret answers are read.
// Nil reads them like any other answer.
func WithSecretReader(fn func() (string, error)) Option {
	return func(c *PromptCollector) {
		c.readSecret = fn
	}
}

// WithSecretGenerator sets the generator for an empty secret_key.
func WithSecretGenerator(fn func() string) Option {
	return func(c *PromptCollector) {
		c.newSecret = fn
	}
}

// NewPromptCollector returns a collector reading from stdin and prompting on
// stderr. It is interactive when stdin is a terminal, in which case secrets
// are read without echo.
func NewPromptCollector(opts ...Option) *PromptCollector {
	fd := int(os.Stdin.Fd())
	tty := term.IsTerminal(fd)

	c := &PromptCollector{
		in:          os.Stdin,
		out:         os.Stderr,
		interactive: tty,
		lookupEnv:   os.LookupEnv,
		newSecret:   func() string { return strings.ReplaceAll(uuid.NewString(), "-", "") },
	}
	if tty {
		c.readSecret = func() (string, error) {
			b, err := term.ReadPassword(fd)
			return string(b), err
		}
		if state, err := term.GetState(fd); err == nil {
			c.restoreTTY = func() { _ = term.Restore(fd, state) }
		}
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect implements Collector.
func (c *PromptCollector) Collect(ctx context.Context, fs billy.Filesystem, target string) error {
	tmpl, err := c.template(fs, path.Join(path.Dir(target), defaults.ParametersDist))
	if err != nil {
		return err
	}

	doc, found, err := yamldoc.Read(fs, target)
	if err != nil {
		return err
	}

	reader := bufio.NewReader(c.in)
	changed := false

	for _, key := range tmpl.Keys(defaults.ParametersRootKey) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if doc.Has(defaults.ParametersRootKey, key) {
			continue
		}

		var def any
		if err := tmpl.Decode(&def, defaults.ParametersRootKey, key); err != nil {
			return bberrors.WrapWithContext(bberrors.ErrCodeParse,
				"malformed parameters template value", err, map[string]any{"key": key})
		}

		value, err := c.resolve(ctx, reader, key, def)
		if err != nil {
			return err
		}
		if key == defaults.ParamSecretKey && isEmpty(value) {
			value = c.newSecret()
		}

		if _, err := doc.SetDefault(value, defaults.ParametersRootKey, key); err != nil {
			return bberrors.WrapWithContext(bberrors.ErrCodeParse,
				"invalid existing parameters document", err, map[string]any{"path": target})
		}
		changed = true
	}

	if found && !changed {
		slog.Debug("parameters complete, nothing to ask", "path", target)
		return nil
	}
	if err := yamldoc.WriteMode(fs, target, doc, defaults.ParametersFileMode); err != nil {
		return err
	}
	slog.Info("parameters written", "path", target)
	return nil
}

func (c *PromptCollector) template(fs billy.Filesystem, distPath string) (*yamldoc.Document, error) {
	doc, found, err := yamldoc.Read(fs, distPath)
	if err != nil {
		return nil, err
	}
	if found {
		slog.Debug("using parameters template", "path", distPath)
		return doc, nil
	}

	doc, err = yamldoc.Parse([]byte(defaults.ParameterTemplate))
	if err != nil {
		return nil, bberrors.Wrap(bberrors.ErrCodeInternal, "built-in parameters template is invalid", err)
	}
	return doc, nil
}

// resolve picks the value of key: environment, then the user's answer, then def.
// A canceled ctx abandons a pending read and returns ctx.Err().
func (c *PromptCollector) resolve(ctx context.Context, reader *bufio.Reader, key string, def any) (any, error) {
	if raw, ok := c.lookupEnv(EnvName(key)); ok {
		slog.Debug("parameter taken from environment", "key", key, "env", EnvName(key))
		return ParseScalar(raw), nil
	}
	if !c.interactive {
		return def, nil
	}

	fmt.Fprintf(c.out, "%s (%s): ", key, display(def))

	var answer string
	var err error
	if isSecret(key) && c.readSecret != nil {
		answer, err = readAnswer(ctx, c.readSecret)
		if ctx.Err() != nil && c.restoreTTY != nil {
			c.restoreTTY()
		}
		fmt.Fprintln(c.out)
	} else {
		answer, err = readAnswer(ctx, func() (string, error) { return reader.ReadString('\n') })
		if err == io.EOF && answer == "" {
			return def, nil
		}
		if err == io.EOF {
			err = nil
		}
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		return nil, bberrors.WrapWithContext(bberrors.ErrCodeCollector,
			"failed to read answer", err, map[string]any{"key": key})
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return def, nil
	}
	return ParseScalar(answer), nil
}

type readResult struct {
	text string
	err  error
}

// readAnswer runs read in its own goroutine and returns early when ctx is
// done. An abandoned read stays blocked on the input until it returns.
func readAnswer(ctx context.Context, read func() (string, error)) (string, error) {
	done := make(chan readResult, 1)
	go func() {
		text, err := read()
		done <- readResult{text, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case a := <-done:
		return a.text, a.err
	}
}

// EnvName returns the environment variable overriding key, e.g.
// BACKBEE_DATABASE_HOST for database_host.
func EnvName(key string) string {
	return defaults.EnvPrefix + strings.ToUpper(key)
}

// ParseScalar interprets raw as a YAML scalar so "3306" becomes an int and
// "true" a bool. Input that does not parse as a scalar stays a string.
func ParseScalar(raw string) any {
	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	switch v.(type) {
	case map[string]any, []any:
		return raw
	case nil:
		if !isNullLiteral(raw) {
			return raw
		}
	}
	return v
}

func isNullLiteral(raw string) bool {
	switch strings.TrimSpace(raw) {
	case "", "~", "null", "Null", "NULL":
		return true
	}
	return false
}

func isSecret(key string) bool {
	return strings.Contains(key, "password") || strings.Contains(key, "secret")
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

func display(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprint(v)
}
