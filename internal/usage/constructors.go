package usage

import (
	"fmt"
	"strings"
)

// InvalidFlag is returned when a command-line flag is not valid.
func InvalidFlag(flag string) *Error {
	return &Error{
		Kind:    ErrInvalidFlag,
		Message: fmt.Sprintf("cmdsh: invalid flag '%s'", flag),
	}
}

// MissingArgument is returned when required parameters were not provided.
func MissingArgument(names ...string) *Error {
	noun := "argument"
	if len(names) > 1 {
		noun = "arguments"
	}
	return &Error{
		Kind:    ErrMissingArgument,
		Message: fmt.Sprintf("cmdsh: missing required %s '%s'", noun, strings.Join(names, "', '")),
	}
}

func UnknownCommand(token string) *Error {
	return &Error{
		Kind:    ErrUnknownCommand,
		Message: fmt.Sprintf("cmdsh: '%s' is not a valid command. Type '?' for options.", token),
	}
}

func AmbiguousCommand(token string, options []string) *Error {
	return &Error{
		Kind:    ErrAmbiguousCommand,
		Message: fmt.Sprintf("cmdsh: '%s' is ambiguous: %s", token, strings.Join(options, ", ")),
	}
}

func InvalidInput(err error) *Error {
	return &Error{
		Kind:    ErrInvalidInput,
		Message: fmt.Sprintf("cmdsh: invalid input: %v", err),
		Err:     err,
	}
}

func InvalidConfigKey(key string) *Error {
	return &Error{
		Kind:    ErrInvalidConfigKey,
		Message: fmt.Sprintf("cmdsh: '%s' is not a valid config key. See 'show config'.", key),
	}
}

func InvalidConfigValue(key, value, reason string) *Error {
	return &Error{
		Kind:    ErrInvalidConfigValue,
		Message: fmt.Sprintf("cmdsh: invalid value '%s' for '%s': %s", value, key, reason),
	}
}

func FailedConfigPath(err error) *Error {
	return &Error{
		Kind:    ErrFailedConfigPath,
		Message: fmt.Sprintf("cmdsh: could not resolve config path: %v", err),
		Err:     err,
	}
}

func InvalidGrammar(path string, err error) *Error {
	return &Error{
		Kind:    ErrInvalidGrammar,
		Message: fmt.Sprintf("cmdsh: invalid grammar %s: %v", path, err),
		Err:     err,
	}
}

func CommandFailed(err error) *Error {
	return &Error{
		Kind:    ErrCommandFailed,
		Message: fmt.Sprintf("cmdsh: %v", err),
		Err:     err,
	}
}
