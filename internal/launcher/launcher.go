// Package launcher hands process control to the real web server after the
// configuration script has been generated. The exec replaces the current
// process image, so the server inherits PID 1 in a container and receives
// signals directly.
package launcher

import (
	"errors"
	"fmt"
	"os/exec"
	"syscall"
)

// ErrNoCommand is returned when no server command was given.
var ErrNoCommand = errors.New("no command to exec")

// Exec replaces the current process with argv[0], resolved via PATH, passing
// the remaining arguments and the given environment through unchanged. It
// only returns on failure.
func Exec(argv, environ []string) error {
	if len(argv) == 0 || argv[0] == "" {
		return ErrNoCommand
	}

	path, err := exec.LookPath(argv[0])
	if err != nil {
		return fmt.Errorf("resolve command %q: %w", argv[0], err)
	}

	if err := syscall.Exec(path, argv, environ); err != nil {
		return fmt.Errorf("exec %s: %w", path, err)
	}
	return nil
}
