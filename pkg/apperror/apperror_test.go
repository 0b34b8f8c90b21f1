package apperror

import (
	"errors"
	"fmt"
	"testing"
)

type serverErr struct{ msg string }

func (s serverErr) Error() string       { return "server: " + s.msg }
func (s serverErr) UserMessage() string { return s.msg }

func TestValidationUnwraps(t *testing.T) {
	err := fmt.Errorf("create snippet: %w", Required("content"))
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation sentinel in chain")
	}
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.Field != "content" {
		t.Fatalf("expected field content, got %#v", appErr)
	}
}

func TestUserMessage(t *testing.T) {
	tests := map[string]struct {
		err  error
		want string
	}{
		"nil":                  {err: nil, want: ""},
		"validation":           {err: Validation("name", "name too long"), want: "name too long"},
		"server":               {err: fmt.Errorf("list: %w", serverErr{msg: "Invalid credentials"}), want: "Invalid credentials"},
		"empty server message": {err: serverErr{}, want: "Failed"},
		"other":                {err: errors.New("dial tcp: refused"), want: "Failed"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := UserMessage(tc.err, "Failed"); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
