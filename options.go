package vfsmux

import (
	"fmt"

	"github.com/mwantia/vfsmux/log"
)

type MountTableOptions struct {
	LogLevel      log.LogLevel
	LogFile       string
	NoTerminalLog bool
	JSONLog       bool
	Logger        *log.Logger
}

type MountTableOption func(*MountTableOptions) error

func newDefaultMountTableOptions() *MountTableOptions {
	return &MountTableOptions{
		LogLevel: log.Info,
	}
}

func WithLogLevel(logLevel log.LogLevel) MountTableOption {
	return func(opts *MountTableOptions) error {
		opts.LogLevel = logLevel
		return nil
	}
}

func WithoutTerminalLog() MountTableOption {
	return func(opts *MountTableOptions) error {
		opts.NoTerminalLog = true
		return nil
	}
}

func WithLogFile(logFile string) MountTableOption {
	return func(opts *MountTableOptions) error {
		opts.LogFile = logFile
		return nil
	}
}

func WithJSONLog() MountTableOption {
	return func(opts *MountTableOptions) error {
		opts.JSONLog = true
		return nil
	}
}

// WithLogger replaces the default logger; all other log options are ignored.
func WithLogger(logger *log.Logger) MountTableOption {
	return func(opts *MountTableOptions) error {
		if logger == nil {
			return fmt.Errorf("logger must not be nil")
		}

		opts.Logger = logger
		return nil
	}
}
