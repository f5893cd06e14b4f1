package model

// CommandErrorKind classifies command failures so the HTTP layer can map them
// to status codes without string matching.
type CommandErrorKind string

const (
	// ErrInvalidCommand marks malformed or missing-prefix input. Never executed.
	ErrInvalidCommand CommandErrorKind = "invalid_command"
	// ErrForbidden marks a well-formed but disallowed subcommand. Never executed.
	ErrForbidden CommandErrorKind = "forbidden"
	// ErrExecutionFailure marks a non-zero exit or process start failure from
	// the exec facility.
	ErrExecutionFailure CommandErrorKind = "execution_failure"
)

// CommandError carries a machine-distinguishable kind plus a human-readable
// detail string.
type CommandError struct {
	Kind   CommandErrorKind
	Detail string
}

func (e *CommandError) Error() string {
	return string(e.Kind) + ": " + e.Detail
}

// NewInvalidCommand creates an ErrInvalidCommand error.
func NewInvalidCommand(detail string) *CommandError {
	return &CommandError{Kind: ErrInvalidCommand, Detail: detail}
}

// NewForbidden creates an ErrForbidden error.
func NewForbidden(detail string) *CommandError {
	return &CommandError{Kind: ErrForbidden, Detail: detail}
}

// NewExecutionFailure creates an ErrExecutionFailure error.
func NewExecutionFailure(detail string) *CommandError {
	return &CommandError{Kind: ErrExecutionFailure, Detail: detail}
}
