package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestReferenceErrorUnwrap(t *testing.T) {
	err := &ReferenceError{Input: "Not A Reference", Hint: "try formats like 'John 1:1'"}
	if !errors.Is(err, ErrInvalidReference) {
		t.Errorf("ReferenceError should unwrap to ErrInvalidReference")
	}
	msg := err.Error()
	if msg != `invalid reference "Not A Reference": try formats like 'John 1:1'` {
		t.Errorf("unexpected message: %s", msg)
	}
}

func TestBackendErrorUnwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := &BackendError{Operation: "fetch verse", Ref: "John 1:1", Err: inner}
	if !errors.Is(err, inner) {
		t.Errorf("BackendError should unwrap to underlying error")
	}

	// Without an underlying error it unwraps to the sentinel.
	bare := &BackendError{Operation: "lexicon lookup"}
	if !errors.Is(bare, ErrBackendUnavailable) {
		t.Errorf("bare BackendError should unwrap to ErrBackendUnavailable")
	}
}

func TestNoDataError(t *testing.T) {
	err := &NoDataError{Ref: "John 99:1-99:5"}
	if !errors.Is(err, ErrNoDataFound) {
		t.Errorf("NoDataError should unwrap to ErrNoDataFound")
	}
	if err.Error() != "no data found for John 99:1-99:5" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestDocumentBuildErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *DocumentBuildError
		want string
	}{
		{
			name: "with path",
			err:  &DocumentBuildError{Stage: "write", Path: "/tmp/out", Message: "permission denied"},
			want: "document build failed during write at /tmp/out: permission denied",
		},
		{
			name: "without path",
			err:  &DocumentBuildError{Stage: "serialize", Message: "bad element"},
			want: "document build failed during serialize: bad element",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseErrorWrapping(t *testing.T) {
	inner := fmt.Errorf("unexpected token")
	err := &ParseError{Format: "JSON", Path: "data/strongs_greek.json", Message: "bad key", Err: inner}
	if !errors.Is(err, inner) {
		t.Errorf("ParseError should unwrap to underlying error")
	}
	bare := &ParseError{Format: "XML", Message: "truncated"}
	if !errors.Is(bare, ErrInvalidInput) {
		t.Errorf("bare ParseError should unwrap to ErrInvalidInput")
	}
}
