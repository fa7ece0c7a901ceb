package executor

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"runtime"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides a module to inject using fx.
var Module = fx.Provide(func(logger *zap.SugaredLogger) Executor {
	return NewExecutor(WithLogger(logger))
})

// Executor wraps the execution of "os/exec".Cmd's used to talk to the build engine, so each
// exec is logged and tests can replace the process.
type Executor interface {
	// Run executes cmd, capturing its stdout and stderr. The process is killed when ctx is done.
	Run(ctx context.Context, cmd *exec.Cmd) (stdout []byte, stderr string, exitCode int, err error)
}

type executorImp struct {
	logger *zap.SugaredLogger
	// execFunc replaces the process in tests.
	execFunc func(ctx context.Context, cmd *exec.Cmd) error
}

// Option defines options to customize executorImp's behavior.
type Option func(*executorImp)

// WithLogger overrides the default noop logger.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(e *executorImp) {
		e.logger = logger
	}
}

// WithExecFunc provides customized exec behavior.
func WithExecFunc(execFunc func(ctx context.Context, cmd *exec.Cmd) error) Option {
	return func(e *executorImp) {
		e.execFunc = execFunc
	}
}

// NewExecutor creates an Executor which starts the process and kills it on cancellation.
func NewExecutor(opts ...Option) Executor {
	e := &executorImp{
		logger:   zap.NewNop().Sugar(),
		execFunc: runWithContext,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func runWithContext(ctx context.Context, cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-done
		return ctx.Err()
	}
}

func (e *executorImp) Run(ctx context.Context, cmd *exec.Cmd) ([]byte, string, int, error) {
	if err := e.logCommand(cmd); err != nil {
		return nil, "", -1, err
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := e.execFunc(ctx, cmd)

	exitCode := -1
	if cmd.ProcessState != nil {
		exitCode = cmd.ProcessState.ExitCode()
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// A non-zero exit is reported through exitCode.
		err = nil
	}
	return stdout.Bytes(), stderr.String(), exitCode, err
}

// logCommand logs Path, Dir, Args and the size of Stdin, if any.
func (e *executorImp) logCommand(cmd *exec.Cmd) error {
	keysAndValues := []interface{}{
		"path", cmd.Path,
		"dir", cmd.Dir,
		"args", cmd.Args[1:],
	}

	if cmd.Stdin != nil {
		stdin, err := io.ReadAll(cmd.Stdin)
		if err != nil {
			return err
		}
		keysAndValues = append(keysAndValues, "stdinBytes", len(stdin))
		cmd.Stdin = bytes.NewReader(stdin)
	}

	e.logger.Debugw("exec", keysAndValues...)
	return nil
}

// EffectiveConcurrency resolves a concurrency hint: zero means the available parallelism.
// The result is never below one.
func EffectiveConcurrency(hint uint32) int {
	n := int(hint)
	if hint == 0 {
		n = runtime.GOMAXPROCS(0)
	}
	if n < 1 {
		n = 1
	}
	return n
}
