package builtin

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"syscall"
)

// runCommand executes args' command through sh -c and reports both
// streams. A non-zero exit status is reported, not treated as a failure.
func (e *Executor) runCommand(ctx context.Context, args string) string {
	command := strings.TrimSpace(fieldOrRaw(args, "command"))
	if command == "" {
		return "Error: 'command' is required"
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr) && ctx.Err() == nil:
	case ctx.Err() != nil:
		return fmt.Sprintf("Failed to execute command: %s\n%s", ctx.Err(), formatOutput(stdout.String(), stderr.String()))
	default:
		return fmt.Sprintf("Failed to execute command: %s", err)
	}

	out := formatOutput(stdout.String(), stderr.String())
	if code := cmd.ProcessState.ExitCode(); code != 0 {
		out += fmt.Sprintf("\nEXIT CODE: %d", code)
	}
	return out
}

func formatOutput(stdout, stderr string) string {
	return fmt.Sprintf("STDOUT:\n%s\nSTDERR:\n%s", clip("stdout", stdout), clip("stderr", stderr))
}

// clip sanitizes command output and keeps its tail within maxLines and
// maxBytes, noting how much was dropped.
func clip(name, s string) string {
	s = Sanitize(s)
	tail, kept, total := TruncateTail(s, maxLines, maxBytes)
	if tail == s {
		return s
	}
	return fmt.Sprintf("[%s: showing last %d of %d lines]\n%s", name, kept, total, tail)
}
