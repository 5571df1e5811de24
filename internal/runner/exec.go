package runner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	"tangle/internal/services"
)

// Executor abstracts subprocess execution for testability.
type Executor interface {
	Run(ctx context.Context, dir, binary string, args []string) (stdout, stderr string, err error)
}

// NewExecutor returns the default subprocess executor honoring
// timeoutSeconds per invocation. A zero timeout disables the deadline.
func NewExecutor(timeoutSeconds int) Executor {
	return commandExecutor{timeout: time.Duration(timeoutSeconds) * time.Second}
}

type commandExecutor struct {
	timeout time.Duration
}

func (e commandExecutor) Run(ctx context.Context, dir, binary string, args []string) (string, string, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = services.Wrap(services.ErrTimeout, "", "run command", binary, ctx.Err())
		} else {
			err = services.Wrap(services.ErrExternalTool, "", "run command", binary, err)
		}
	}
	return stdout.String(), stderr.String(), err
}
