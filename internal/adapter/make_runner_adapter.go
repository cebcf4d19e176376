// Package adapter contains infrastructure adapters for the makelift CLI.
package adapter

import (
	"bytes"
	"context"
	"os/exec"
)

// MakeRunnerAdapter abstracts invocations of the external make binary, which
// acts as the authoritative evaluator for legacy makefile variables.
type MakeRunnerAdapter interface {
	// DumpDatabase runs `make -rpn -C dir -f makefile NAME=VALUE...` and
	// returns the buffered stdout and stderr. A non-zero exit is reported
	// through err; stdout is returned regardless so callers that tolerate
	// partial failure can still parse it.
	DumpDatabase(ctx context.Context, dir, makefile string, assignments []string) (stdout, stderr string, err error)
}

// LocalMakeRunnerAdapter provides a concrete implementation using os/exec.
type LocalMakeRunnerAdapter struct {
	makeBin string
}

// NewLocalMakeRunnerAdapter constructs a LocalMakeRunnerAdapter invoking the
// make binary found on PATH.
func NewLocalMakeRunnerAdapter() *LocalMakeRunnerAdapter {
	return &LocalMakeRunnerAdapter{makeBin: "make"}
}

// DumpDatabase runs make in database-dump mode against the given directory
// and makefile. Exactly one process is spawned per call and its output is
// buffered entirely before returning; there is no timeout and no retry.
func (a *LocalMakeRunnerAdapter) DumpDatabase(ctx context.Context, dir, makefile string, assignments []string) (string, string, error) {
	args := []string{"-rpn", "-C", dir, "-f", makefile}
	args = append(args, assignments...)

	cmd := exec.CommandContext(ctx, a.makeBin, args...)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	return stdout.String(), stderr.String(), err
}
