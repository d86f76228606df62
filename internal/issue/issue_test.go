// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{
			name: "operation only",
			err:  &ActionableError{Operation: "probe python runtime"},
			want: "failed to probe python runtime",
		},
		{
			name: "operation and resource",
			err:  &ActionableError{Operation: "read descriptor", Resource: "/tmp/job.plist"},
			want: "failed to read descriptor: /tmp/job.plist",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "acquire discovery bundle",
				Resource:  "https://example.com/repo.git",
				Cause:     errors.New("exit status 128"),
			},
			want: "failed to acquire discovery bundle: https://example.com/repo.git: exit status 128",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("root cause")
	err := WrapWithOperation(cause, "install scheduled job")

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestWrapWithOperation_NilError(t *testing.T) {
	t.Parallel()

	if got := WrapWithOperation(nil, "anything"); got != nil {
		t.Errorf("WrapWithOperation(nil) = %v, want nil", got)
	}
}

func TestFormat_Suggestions(t *testing.T) {
	t.Parallel()

	err := NewErrorContext().
		WithOperation("locate python runtime").
		WithSuggestion("Install Python 3 from https://www.python.org/downloads/").
		Build()

	got := err.Format(false)
	if !strings.Contains(got, "• Install Python 3") {
		t.Errorf("Format() missing suggestion bullet:\n%s", got)
	}
}

func TestHasSuggestions(t *testing.T) {
	t.Parallel()

	bare := NewErrorContext().WithOperation("check tool health").Build()
	if bare.HasSuggestions() {
		t.Error("HasSuggestions() = true for an error without suggestions")
	}

	helpful := NewErrorContext().
		WithOperation("check tool health").
		WithSuggestion("Run 'xcode-select --install' to restore the git toolchain").
		Build()
	if !helpful.HasSuggestions() {
		t.Error("HasSuggestions() = false for an error carrying a suggestion")
	}
}

func TestFormat_VerboseChain(t *testing.T) {
	t.Parallel()

	inner := errors.New("connection refused")
	err := NewErrorContext().
		WithOperation("download snapshot").
		Wrap(WrapWithOperation(inner, "run curl")).
		Build()

	verbose := err.Format(true)
	if !strings.Contains(verbose, "Error chain:") {
		t.Errorf("verbose Format() missing error chain:\n%s", verbose)
	}
	if !strings.Contains(verbose, "connection refused") {
		t.Errorf("verbose Format() missing innermost cause:\n%s", verbose)
	}

	terse := err.Format(false)
	if strings.Contains(terse, "Error chain:") {
		t.Errorf("non-verbose Format() should omit error chain:\n%s", terse)
	}
}
