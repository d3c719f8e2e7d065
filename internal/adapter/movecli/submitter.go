// Package movecli submits articles to the NewsMoves contract through the Move CLI.
package movecli

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"news_moves/internal/domain"
)

const (
	DefaultBinary   = "move"
	DefaultScript   = "NewsMoves.mvir"
	DefaultFunction = "addArticle"
)

var (
	ErrCommandFailed = errors.New("move call failed")
	ErrMissingSigner = errors.New("signer address is required")
)

// Runner executes a command and returns its combined output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec, never through a shell.
type ExecRunner struct {
	Dir string
}

func (r ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir
	return cmd.CombinedOutput()
}

type Options struct {
	Binary   string
	Script   string
	Function string
	DryRun   bool
}

type Submitter struct {
	opts   Options
	runner Runner
}

func NewSubmitter(opts Options, runner Runner) *Submitter {
	if opts.Binary == "" {
		opts.Binary = DefaultBinary
	}
	if opts.Script == "" {
		opts.Script = DefaultScript
	}
	if opts.Function == "" {
		opts.Function = DefaultFunction
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Submitter{opts: opts, runner: runner}
}

// BuildArgs returns the argument list passed to the Move binary:
//
//	call --signer <addr> --script <script> <function> (<ts>, "<title>", "<content>")
func (s *Submitter) BuildArgs(sub domain.Submission) []string {
	return []string{
		"call",
		"--signer", sub.Signer,
		"--script", s.opts.Script,
		s.opts.Function,
		CallArguments(sub),
	}
}

// CallArguments renders the positional arguments of the contract call. Title
// and content are Go-quoted so embedded quotes stay inside their argument.
func CallArguments(sub domain.Submission) string {
	return fmt.Sprintf("(%d, %s, %s)", sub.Timestamp, strconv.Quote(sub.Title), strconv.Quote(sub.Content))
}

// CommandLine renders the full invocation for logs. It is not meant to be fed to a shell.
func (s *Submitter) CommandLine(sub domain.Submission) string {
	return s.opts.Binary + " " + strings.Join(s.BuildArgs(sub), " ")
}

func (s *Submitter) Submit(ctx context.Context, sub domain.Submission) (string, error) {
	if sub.Signer == "" {
		return "", ErrMissingSigner
	}

	if s.opts.DryRun {
		return "dry run: " + s.CommandLine(sub), nil
	}

	out, err := s.runner.Run(ctx, s.opts.Binary, s.BuildArgs(sub)...)
	output := strings.TrimSpace(string(out))
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return output, fmt.Errorf("%w: exit status %d: %w", ErrCommandFailed, exitErr.ExitCode(), err)
		}
		return output, fmt.Errorf("%w: %w", ErrCommandFailed, err)
	}
	return output, nil
}
