package testing

import (
	"context"
	"io"
	"io/ioutil"
	"sync"

	"github.com/patthomasrick/kubernetes-json-schema/pkg/util/command"
)

// Call is a recorded invocation of the fake runner
type Call struct {
	Name  string
	Args  []string
	Stdin []byte
}

// FakeRunner is used for testing, it records every call and answers with RunFn
type FakeRunner struct {
	RunFn func(call Call) (*command.Result, error)

	m     sync.Mutex
	calls []Call
}

// Run implements interface
func (f *FakeRunner) Run(ctx context.Context, name string, args []string, stdin io.Reader) (*command.Result, error) {
	call := Call{
		Name: name,
		Args: append([]string{}, args...),
	}
	if stdin != nil {
		data, err := ioutil.ReadAll(stdin)
		if err != nil {
			return nil, err
		}
		call.Stdin = data
	}

	f.m.Lock()
	f.calls = append(f.calls, call)
	f.m.Unlock()

	if f.RunFn == nil {
		return &command.Result{}, nil
	}
	return f.RunFn(call)
}

// Calls returns the recorded calls
func (f *FakeRunner) Calls() []Call {
	f.m.Lock()
	defer f.m.Unlock()

	return append([]Call{}, f.calls...)
}
