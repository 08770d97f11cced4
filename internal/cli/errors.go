package cli

import (
	"errors"
	"fmt"

	"github.com/pathakanu/myLists/internal/app"
	"github.com/pathakanu/myLists/internal/database"
)

const (
	ExitCodeSuccess            = 0
	ExitCodeGeneric            = 1
	ExitCodeUsage              = 2
	ExitCodeNotFound           = 3
	ExitCodeStorageUnavailable = 4
)

type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e == nil || e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func (e *ExitError) ExitCode() int {
	if e == nil {
		return ExitCodeGeneric
	}
	return e.Code
}

func asExitError(code int, err error) error {
	if err == nil {
		return nil
	}
	var withExit interface{ ExitCode() int }
	if errors.As(err, &withExit) {
		return err
	}
	return &ExitError{Code: code, Err: err}
}

func mapCommandError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, app.ErrValidation):
		return asExitError(ExitCodeUsage, err)
	case errors.Is(err, database.ErrNotFound):
		return asExitError(ExitCodeNotFound, err)
	case errors.Is(err, database.ErrStorageUnavailable):
		return asExitError(ExitCodeStorageUnavailable, err)
	default:
		return asExitError(ExitCodeGeneric, err)
	}
}

func usageErrorf(format string, args ...any) error {
	return &ExitError{
		Code: ExitCodeUsage,
		Err:  fmt.Errorf(format, args...),
	}
}
