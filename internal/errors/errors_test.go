package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestSentinels(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{name: "invalid argument", err: ErrInvalidArgument, check: IsInvalidArgument},
		{name: "not found", err: ErrNotFound, check: IsNotFound},
		{name: "already exists", err: ErrAlreadyExists, check: IsAlreadyExists},
		{name: "io", err: ErrIO, check: IsIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.check(tt.err) {
				t.Errorf("check failed for bare sentinel %v", tt.err)
			}
			wrapped := Wrap(tt.err, "someOp")
			if !tt.check(wrapped) {
				t.Errorf("check failed for wrapped sentinel %v", wrapped)
			}
			if !strings.Contains(wrapped.Error(), "someOp") {
				t.Errorf("wrapped error should mention the operation: %v", wrapped)
			}
		})
	}
}

func TestWrapPreservesIs(t *testing.T) {
	err := Wrap(Wrap(ErrInvalidArgument, "inner"), "outer")
	if !stderrors.Is(err, ErrInvalidArgument) {
		t.Error("errors.Is should see through nested wraps")
	}
}

func TestProjectError(t *testing.T) {
	err := &ProjectError{Path: "/p/config.yaml", Err: ErrNotFound}
	if !IsNotFound(err) {
		t.Error("ProjectError should unwrap to its underlying error")
	}
	if !strings.Contains(err.Error(), "/p/config.yaml") {
		t.Errorf("message should include path: %v", err)
	}

	pe, ok := AsProjectError(Wrap(err, "load"))
	if !ok {
		t.Fatal("AsProjectError failed on wrapped ProjectError")
	}
	if pe.Path != "/p/config.yaml" {
		t.Errorf("unexpected path %q", pe.Path)
	}
}

func TestSubmissionError(t *testing.T) {
	err := &SubmissionError{Op: "exec", Sample: "atac_A", Err: ErrIO}
	if !IsIO(err) {
		t.Error("SubmissionError should unwrap to its underlying error")
	}
	if !strings.Contains(err.Error(), "atac_A") {
		t.Errorf("message should include sample: %v", err)
	}

	se, ok := AsSubmissionError(err)
	if !ok {
		t.Fatal("AsSubmissionError failed")
	}
	if se.Op != "exec" {
		t.Errorf("unexpected op %q", se.Op)
	}
}
