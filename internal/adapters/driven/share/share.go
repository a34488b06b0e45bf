// Package share implements the share sheet port by handing files to the
// desktop's default opener or a configured command.
package share

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/custodia-labs/pdfshelf/internal/core/domain"
	"github.com/custodia-labs/pdfshelf/internal/core/ports/driven"
	"github.com/custodia-labs/pdfshelf/internal/logger"
)

// Operating system identifiers.
const (
	osDarwin  = "darwin"
	osLinux   = "linux"
	osWindows = "windows"
)

// Placeholder is replaced by the file path in a custom command.
const Placeholder = "{}"

// Ensure Opener implements the interface.
var _ driven.ShareSheet = (*Opener)(nil)

// Opener launches an external program for a local file.
type Opener struct {
	template []string
	lookPath func(string) (string, error)
	start    func(*exec.Cmd) error
}

// New creates an opener. An empty command selects the platform default
// (open, xdg-open or rundll32). Otherwise "{}" in command is replaced by the
// path, or the path is appended when there is no placeholder.
func New(command string) *Opener {
	template := strings.Fields(command)
	if len(template) == 0 {
		template = defaultCommand(runtime.GOOS)
	}
	return &Opener{
		template: template,
		lookPath: exec.LookPath,
		start:    startDetached,
	}
}

// Available reports whether the opener program can be found.
func (o *Opener) Available(_ context.Context) bool {
	if len(o.template) == 0 {
		return false
	}
	_, err := o.lookPath(o.template[0])
	return err == nil
}

// Share launches the opener for loc. Only direct-path locators can be shared.
func (o *Opener) Share(_ context.Context, loc domain.Locator, opts domain.ShareOptions) error {
	path := loc.Path()
	if path == "" {
		return fmt.Errorf("%w: cannot share %q locators", domain.ErrUnsupportedScheme, loc.Scheme())
	}
	if len(o.template) == 0 {
		return domain.ErrShareUnavailable
	}

	argv := o.argv(path)
	logger.Debug("%s: %s (%s)", opts.Title, strings.Join(argv, " "), opts.MIMEType)

	cmd := exec.Command(argv[0], argv[1:]...)
	if err := o.start(cmd); err != nil {
		return fmt.Errorf("launching %s: %w", argv[0], err)
	}
	return nil
}

func (o *Opener) argv(path string) []string {
	argv := make([]string, 0, len(o.template)+1)
	replaced := false
	for _, arg := range o.template {
		if strings.Contains(arg, Placeholder) {
			arg = strings.ReplaceAll(arg, Placeholder, path)
			replaced = true
		}
		argv = append(argv, arg)
	}
	if !replaced {
		argv = append(argv, path)
	}
	return argv
}

func defaultCommand(goos string) []string {
	switch goos {
	case osDarwin:
		return []string{"open"}
	case osLinux:
		return []string{"xdg-open"}
	case osWindows:
		return []string{"rundll32", "url.dll,FileProtocolHandler"}
	default:
		return nil
	}
}

// startDetached starts cmd and reaps it in the background.
func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			logger.Debug("opener exited: %v", err)
		}
	}()
	return nil
}
