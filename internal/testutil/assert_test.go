package testutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lgbarn/chess-state-go/internal/chess"
)

// Failing assertions cannot be observed without a fake *testing.T, so these
// tests exercise the passing paths and the pure helpers.

func TestAssertionsPass(t *testing.T) {
	errBase := errors.New("base")
	x := 42

	AssertEqual(t, []string{"e2e4", "e7e5"}, []string{"e2e4", "e7e5"})
	AssertEqual(t, chess.W(chess.Queen), chess.W(chess.Queen), "piece %s", "queen")
	AssertEqual(t, nil, nil)
	AssertNoError(t, nil, "no error")
	AssertError(t, errBase)
	AssertErrorIs(t, fmt.Errorf("wrapped: %w", errBase), errBase)
	AssertContains(t, "1. e2e4 e7e5", "e7e5")
	AssertContains(t, "anything", "")
	AssertNotContains(t, "1. e2e4 e7e5", "d2d4")
	AssertTrue(t, len("e2e4") == 4)
	AssertFalse(t, len("e2e4") == 0)
	AssertNil(t, (*int)(nil))
	AssertNotNil(t, &x)
}

func TestIsNil(t *testing.T) {
	var nilMap map[string]int
	var nilErr error
	tests := []struct {
		name string
		v    interface{}
		want bool
	}{
		{"untyped nil", nil, true},
		{"nil pointer", (*chess.Move)(nil), true},
		{"nil map", nilMap, true},
		{"nil interface", nilErr, true},
		{"nil slice", []int(nil), true},
		{"empty slice", []int{}, false},
		{"zero int", 0, false},
		{"string", "", false},
	}

	for _, tt := range tests {
		if got := isNil(tt.v); got != tt.want {
			t.Errorf("isNil(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name string
		args []interface{}
		want string
	}{
		{"no args", nil, ""},
		{"single string", []interface{}{"hello"}, "hello"},
		{"single int", []interface{}{42}, "42"},
		{"format string", []interface{}{"ply %d: %s", 3, "e4e5"}, "ply 3: e4e5"},
		{"non-string first", []interface{}{7, "ignored"}, "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatMessage(tt.args...); got != tt.want {
				t.Errorf("formatMessage(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}
