package testrunner

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/bitrise-io/go-utils/v2/command"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/pathutil"
	"github.com/kballard/go-shellquote"
)

// Result is the captured outcome of a test command.
type Result struct {
	ExitCode        int
	Stdout          string
	Stderr          string
	DurationSeconds int
	ResultsPath     string
}

// CombinedOutput ...
func (r Result) CombinedOutput() string {
	if r.Stderr == "" {
		return r.Stdout
	}
	return r.Stdout + "\n" + r.Stderr
}

// Opts ...
type Opts struct {
	// Dir is the working directory of the command, results files are looked up relative to it.
	Dir string
	// Quoted splits the command with shell quoting rules instead of plain whitespace.
	Quoted bool
}

// Runner ...
type Runner interface {
	Run(testCommand, resultsPathHint string, opts Opts) (Result, error)
}

type runner struct {
	logger         log.Logger
	commandFactory command.Factory
	pathChecker    pathutil.PathChecker
	stdout         io.Writer
	stderr         io.Writer
}

// NewRunner ...
func NewRunner(logger log.Logger, commandFactory command.Factory, pathChecker pathutil.PathChecker) Runner {
	return &runner{
		logger:         logger,
		commandFactory: commandFactory,
		pathChecker:    pathChecker,
		stdout:         os.Stdout,
		stderr:         os.Stderr,
	}
}

// SplitCommand splits the command into a program and its arguments.
//
// By default the command is split on whitespace, quotes are not interpreted.
func SplitCommand(testCommand string, quoted bool) (string, []string, error) {
	var parts []string
	if quoted {
		var err error
		parts, err = shellquote.Split(testCommand)
		if err != nil {
			return "", nil, fmt.Errorf("failed to split test command (%s): %w", testCommand, err)
		}
	} else {
		parts = strings.Fields(testCommand)
	}

	if len(parts) == 0 {
		return "", nil, errors.New("test command is empty")
	}

	return parts[0], parts[1:], nil
}

// Run executes the test command. A nonzero exit code is part of the result, not an error.
func (r *runner) Run(testCommand, resultsPathHint string, opts Opts) (Result, error) {
	name, args, err := SplitCommand(testCommand, opts.Quoted)
	if err != nil {
		return Result{}, err
	}

	var stdoutBuffer, stderrBuffer bytes.Buffer
	cmd := r.commandFactory.Create(name, args, &command.Opts{
		Stdout: io.MultiWriter(&stdoutBuffer, r.stdout),
		Stderr: io.MultiWriter(&stderrBuffer, r.stderr),
		Dir:    opts.Dir,
	})

	r.logger.Infof("Running tests")
	r.logger.TPrintf("$ %s", cmd.PrintableCommandArgs())
	r.logger.Println()

	startTime := time.Now()
	exitCode, runErr := cmd.RunAndReturnExitCode()
	durationSeconds := int(math.Round(time.Since(startTime).Seconds()))

	result := Result{
		ExitCode:        exitCode,
		Stdout:          stdoutBuffer.String(),
		Stderr:          stderrBuffer.String(),
		DurationSeconds: durationSeconds,
	}

	if runErr != nil && exitCode < 0 {
		r.logger.Errorf("Failed to run tests: %s", runErr)
		result.ExitCode = 1
		result.Stderr += fmt.Sprintf("\nError: %s", runErr)
		return result, nil
	}

	r.logger.Println()
	r.logger.Printf("Test execution completed in %ds", durationSeconds)
	r.logger.Printf("Exit code: %d", exitCode)

	result.ResultsPath = r.resolveResultsPath(resultsPathHint, opts.Dir)

	return result, nil
}
