package usage

// ErrorKind represents the type of usage error.
type ErrorKind int

const (
	ErrUnknown ErrorKind = iota
	ErrInvalidFlag
	ErrMissingArgument
	ErrUnknownCommand
	ErrAmbiguousCommand
	ErrInvalidInput
	ErrInvalidConfigKey
	ErrInvalidConfigValue
	ErrFailedConfigPath
	ErrInvalidGrammar
	ErrCommandFailed
)

// Exit codes:
//
//	Exit 1: Environment/system errors
//	  - Unknown errors
//	  - Invalid config key or value
//	  - Failed config path
//	  - Invalid grammar file
//	  - Command handler failure
//
//	Exit 2: User input errors
//	  - Invalid flag
//	  - Missing argument
//	  - Unknown or ambiguous command
//	  - Malformed input line
var exitCodes = map[ErrorKind]int{
	ErrUnknown:            1,
	ErrInvalidFlag:        2,
	ErrMissingArgument:    2,
	ErrUnknownCommand:     2,
	ErrAmbiguousCommand:   2,
	ErrInvalidInput:       2,
	ErrInvalidConfigKey:   1,
	ErrInvalidConfigValue: 1,
	ErrFailedConfigPath:   1,
	ErrInvalidGrammar:     1,
	ErrCommandFailed:      1,
}

// Error represents a user-facing usage error with semantic type information.
type Error struct {
	Kind     ErrorKind
	Message  string
	ExitCode int // computed from Kind if zero

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// GetExitCode returns the appropriate exit code for this error.
// If ExitCode is explicitly set, it is returned; otherwise, the code is derived from Kind.
func (e *Error) GetExitCode() int {
	if e.ExitCode != 0 {
		return e.ExitCode
	}
	if code, ok := exitCodes[e.Kind]; ok {
		return code
	}
	return 1
}

// Verify Error implements the error interface.
var _ error = (*Error)(nil)
