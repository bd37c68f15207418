package exit

import (
	"fmt"
)

// ReturnCodeError is used to return a non zero exit code error
type ReturnCodeError struct {
	ExitCode int
	Message  string
}

// Error implements interface
func (e *ReturnCodeError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("exit code %d", e.ExitCode)
}
