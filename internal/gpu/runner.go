package gpu

import (
	"context"
	"fmt"
	"os/exec"
	"time"
)

// Runner runs a command and returns what it wrote to stdout.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner returns a Runner that executes commands on the host.
// Each invocation is bounded by timeout when it is positive.
func ExecRunner(timeout time.Duration) Runner {
	return func(ctx context.Context, name string, args ...string) ([]byte, error) {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		out, err := exec.CommandContext(ctx, name, args...).Output()
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("failed to run %s: %w", name, ctx.Err())
			}
			return nil, fmt.Errorf("failed to run %s: %w", name, err)
		}
		return out, nil
	}
}
