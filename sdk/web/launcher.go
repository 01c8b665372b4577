package web

import (
	"context"
	"runtime"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/viant/gosh"
	"github.com/viant/gosh/runner/local"
)

// Launcher opens a URL for the user
type Launcher interface {
	Open(ctx context.Context, URL string) error
}

// LauncherFunc adapts a function to Launcher
type LauncherFunc func(ctx context.Context, URL string) error

// Open calls fn
func (fn LauncherFunc) Open(ctx context.Context, URL string) error {
	return fn(ctx, URL)
}

// ShellLauncher opens URLs with the platform open command through a gosh shell.
type ShellLauncher struct {
	service *gosh.Service
	command string
}

// Open runs the open command for URL
func (l *ShellLauncher) Open(ctx context.Context, URL string) error {
	output, code, err := l.service.Run(ctx, l.command+" "+strconv.Quote(URL))
	if err != nil {
		return err
	}
	if code != 0 {
		return errors.Newf("%v exited with %v: %v", l.command, code, output)
	}
	return nil
}

// NewShellLauncher creates a launcher running on the local shell
func NewShellLauncher(ctx context.Context) (*ShellLauncher, error) {
	service, err := gosh.New(ctx, local.New())
	if err != nil {
		return nil, errors.Wrap(err, "failed to start shell")
	}
	return &ShellLauncher{service: service, command: openCommand(runtime.GOOS)}, nil
}

func openCommand(goos string) string {
	switch goos {
	case "darwin":
		return "open"
	case "windows":
		return "start"
	}
	return "xdg-open"
}
