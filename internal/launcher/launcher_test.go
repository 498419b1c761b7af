package launcher

import (
	"errors"
	"testing"
)

func TestExecEmptyCommand(t *testing.T) {
	if err := Exec(nil, nil); !errors.Is(err, ErrNoCommand) {
		t.Fatalf("expected ErrNoCommand, got %v", err)
	}
	if err := Exec([]string{""}, nil); !errors.Is(err, ErrNoCommand) {
		t.Fatalf("expected ErrNoCommand for empty argv[0], got %v", err)
	}
}

func TestExecUnknownCommand(t *testing.T) {
	err := Exec([]string{"definitely-not-a-real-binary-7d1f"}, nil)
	if err == nil {
		t.Fatalf("expected error for unresolvable command")
	}
}
