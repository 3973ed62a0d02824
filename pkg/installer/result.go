package installer

import (
	"time"
)

// Skip records a step target that was left alone.
type Skip struct {
	Step   string `json:"step" yaml:"step"`
	Target string `json:"target,omitempty" yaml:"target,omitempty"`
	Reason string `json:"reason" yaml:"reason"`
}

// Result tracks what a run created and skipped.
type Result struct {
	Directories []string      `json:"directories" yaml:"directories"`
	Files       []string      `json:"files" yaml:"files"`
	Skipped     []Skip        `json:"skipped" yaml:"skipped"`
	Errors      []string      `json:"errors,omitempty" yaml:"errors,omitempty"`
	Success     bool          `json:"success" yaml:"success"`
	StartedAt   time.Time     `json:"startedAt" yaml:"startedAt"`
	Duration    time.Duration `json:"duration" yaml:"duration"`
}

// NewResult returns an empty result started now.
func NewResult() *Result {
	return &Result{
		Directories: []string{},
		Files:       []string{},
		Skipped:     []Skip{},
		Errors:      []string{},
		StartedAt:   time.Now(),
	}
}

// AddDirectory records a created directory.
func (r *Result) AddDirectory(path string) {
	r.Directories = append(r.Directories, path)
	directoriesCreated.Inc()
}

// AddFile records a written file.
func (r *Result) AddFile(path string) {
	r.Files = append(r.Files, path)
	filesWritten.Inc()
}

// AddSkip records a skipped target.
func (r *Result) AddSkip(step, target, reason string) {
	r.Skipped = append(r.Skipped, Skip{Step: step, Target: target, Reason: reason})
}

// AddError records err; nil is ignored.
func (r *Result) AddError(err error) {
	if err == nil {
		return
	}
	r.Errors = append(r.Errors, err.Error())
}

// MarkSuccess marks the run successful and fixes its duration.
func (r *Result) MarkSuccess() {
	r.Success = true
	r.Duration = time.Since(r.StartedAt)
}

// MarkFailure marks the run failed and fixes its duration.
func (r *Result) MarkFailure() {
	r.Success = false
	r.Duration = time.Since(r.StartedAt)
}

// Skips returns the skips of one step.
func (r *Result) Skips(step string) []Skip {
	var out []Skip
	for _, s := range r.Skipped {
		if s.Step == step {
			out = append(out, s)
		}
	}
	return out
}
