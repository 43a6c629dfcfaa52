package adapter

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"
)

// BuildRunnerAdapter abstracts invoking the target project's own build
// command, used to check that the tree still compiles after a rewrite.
type BuildRunnerAdapter interface {
	// RunBuild runs the configured build command in workDir. Returns the
	// combined stdout/stderr output and any error.
	RunBuild(ctx context.Context, workDir string, command string) (output string, err error)
}

// LocalBuildRunnerAdapter provides a concrete implementation using os/exec.
type LocalBuildRunnerAdapter struct {
	timeout time.Duration
}

// NewLocalBuildRunnerAdapter constructs a LocalBuildRunnerAdapter with a
// default 5 minute timeout.
func NewLocalBuildRunnerAdapter() *LocalBuildRunnerAdapter {
	return &LocalBuildRunnerAdapter{
		timeout: 5 * time.Minute,
	}
}

// RunBuild runs the build command in workDir.
func (a *LocalBuildRunnerAdapter) RunBuild(ctx context.Context, workDir string, command string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "", nil
	}

	// #nosec G204 - the build command comes from the user's own config
	cmd := exec.CommandContext(ctx, fields[0], fields[1:]...)
	cmd.Dir = workDir

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	output := stdout.String() + stderr.String()

	return output, err
}
