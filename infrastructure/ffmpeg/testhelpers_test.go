package ffmpeg

import (
	"context"
	"fmt"
)

// runCall records one invocation made through mockRunner
type runCall struct {
	name string
	args []string
}

// mockRunner implements CommandRunner, replaying queued results in order
type mockRunner struct {
	calls   []runCall
	results []*Result
	errs    []error
}

func (m *mockRunner) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	i := len(m.calls)
	m.calls = append(m.calls, runCall{name: name, args: args})

	if i < len(m.errs) && m.errs[i] != nil {
		return nil, m.errs[i]
	}
	if i < len(m.results) && m.results[i] != nil {
		return m.results[i], nil
	}
	if len(m.results) == 0 && len(m.errs) == 0 {
		return &Result{}, nil
	}
	return nil, fmt.Errorf("mockRunner: unexpected call %d to %s", i, name)
}

func countFlag(args []string, flag string) int {
	n := 0
	for _, a := range args {
		if a == flag {
			n++
		}
	}
	return n
}

func valueAfter(args []string, flag string) string {
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}
