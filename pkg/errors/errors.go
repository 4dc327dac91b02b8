package errors

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	ErrInvalidFilePath   = errors.New("invalid file path")
	ErrFileNotFound      = errors.New("file not found")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrConfigNotFound    = errors.New("config not found")
	ErrConfigInvalid     = errors.New("invalid configuration")
	ErrConfigExists      = errors.New("config already exists")
	ErrSeriesMismatch    = errors.New("log files and labels differ in length")
	ErrNoSeries          = errors.New("no series configured")
	ErrInvalidExpression = errors.New("invalid filter expression")
	ErrInvalidTimeSource = errors.New("invalid time source")
	ErrRenderFailed      = errors.New("chart render failed")
	ErrCanceled          = errors.New("operation canceled")
)

// NewFileError wraps a low-level file error with ErrFileNotFound.
// NewFileError 使用 ErrFileNotFound 包装底层文件错误。
func NewFileError(path string, reason error) error {
	return fmt.Errorf("%w: %s: %w", ErrFileNotFound, path, reason)
}

// NewPermissionError wraps a low-level file error with ErrPermissionDenied.
// NewPermissionError 使用 ErrPermissionDenied 包装底层文件错误。
func NewPermissionError(path string, reason error) error {
	return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, reason)
}

// ClassifyFSError maps fs errors onto the sentinels above.
// Errors that are neither "not exist" nor "permission" are returned wrapped with the path only.
// ClassifyFSError 将文件系统错误映射到上面的哨兵错误。
func ClassifyFSError(path string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return NewFileError(path, err)
	case errors.Is(err, fs.ErrPermission):
		return NewPermissionError(path, err)
	default:
		return fmt.Errorf("%s: %w", path, err)
	}
}

func NewConfigError(field string, value interface{}) error {
	return fmt.Errorf("%w: field=%s value=%v", ErrConfigInvalid, field, value)
}

func NewMismatchError(files, labels int) error {
	return fmt.Errorf("%w: %d files, %d labels", ErrSeriesMismatch, files, labels)
}

func NewExpressionError(expression string, err error) error {
	return fmt.Errorf("%w: %q: %v", ErrInvalidExpression, expression, err)
}

func NewTimeSourceError(source string) error {
	return fmt.Errorf("%w: %s", ErrInvalidTimeSource, source)
}

func NewRenderError(file string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrRenderFailed, file, err)
}
