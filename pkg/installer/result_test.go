package installer

import (
	"errors"
	"testing"
)

func TestNewResult(t *testing.T) {
	result := NewResult()

	if result.Files == nil || result.Directories == nil || result.Skipped == nil || result.Errors == nil {
		t.Fatal("NewResult() should initialize all slices")
	}
	if result.Success {
		t.Error("Success should be false initially")
	}
	if result.StartedAt.IsZero() {
		t.Error("StartedAt should be set")
	}
}

func TestResult_Add(t *testing.T) {
	result := NewResult()

	result.AddDirectory("/p/cache")
	result.AddFile("/p/repository/Config/doctrine.yml")
	result.AddSkip(StepBootstrap, "/p/repository/Config/bootstrap.yml", reasonExists)
	result.AddSkip(StepDoctrine, "", reasonNoParameters)
	result.AddError(nil)
	result.AddError(errors.New("boom"))

	if len(result.Directories) != 1 || result.Directories[0] != "/p/cache" {
		t.Errorf("Directories = %v", result.Directories)
	}
	if len(result.Files) != 1 {
		t.Errorf("len(Files) = %d, want 1", len(result.Files))
	}
	if len(result.Errors) != 1 || result.Errors[0] != "boom" {
		t.Errorf("Errors = %v, want [boom]", result.Errors)
	}
	if got := result.Skips(StepBootstrap); len(got) != 1 || got[0].Reason != reasonExists {
		t.Errorf("Skips(bootstrap) = %v", got)
	}
	if got := result.Skips(StepServices); len(got) != 0 {
		t.Errorf("Skips(services) = %v, want none", got)
	}
}

func TestResult_MarkSuccess(t *testing.T) {
	result := NewResult()
	result.MarkSuccess()

	if !result.Success {
		t.Error("Success should be true after MarkSuccess()")
	}
	if result.Duration < 0 {
		t.Errorf("Duration = %v, want >= 0", result.Duration)
	}
}

func TestResult_MarkFailure(t *testing.T) {
	result := NewResult()
	result.MarkSuccess()
	result.MarkFailure()

	if result.Success {
		t.Error("Success should be false after MarkFailure()")
	}
	if result.Duration < 0 {
		t.Errorf("Duration = %v, want >= 0", result.Duration)
	}
}
