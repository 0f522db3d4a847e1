// Package push writes a verified robot address into the Vector SDK's own
// configuration by running an external command.
package push

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"text/template"
	"time"
	"unicode"

	"go.uber.org/zap"

	"github.com/muurk/vectorscan/internal/identity"
)

// DefaultTimeout bounds a single push.
const DefaultTimeout = 2 * time.Minute

// ErrNoCommand is returned when the pusher has an empty command.
var ErrNoCommand = errors.New("push command is empty")

// Params are the values available to the command template.
type Params struct {
	Serial  string
	Address string
	Clear   bool
}

// Pusher writes (serial, address) to the SDK configuration.
type Pusher interface {
	Push(ctx context.Context, serial, address string) error
}

// CommandPusher renders each argument of Command as a text/template with
// Params and runs the result.
type CommandPusher struct {
	Command []string
	Timeout time.Duration

	logger *zap.Logger
}

// NewCommandPusher creates a pusher for the argv template command.
func NewCommandPusher(command []string, logger *zap.Logger) *CommandPusher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommandPusher{
		Command: command,
		Timeout: DefaultTimeout,
		logger:  logger,
	}
}

// Push runs the command with clear=false. Values that fail CheckParams are
// rejected before anything runs. A non-zero exit is returned as an error that
// includes the command's combined output.
func (p *CommandPusher) Push(ctx context.Context, serial, address string) error {
	if err := CheckParams(serial, address); err != nil {
		return fmt.Errorf("refusing to push: %w", err)
	}
	argv, err := Render(p.Command, Params{Serial: serial, Address: address})
	if err != nil {
		return err
	}

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	p.logger.Debug("Running push command",
		zap.String("serial", serial),
		zap.String("address", address),
		zap.Strings("argv", argv),
	)

	var output bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = &output
	cmd.Stderr = &output

	start := time.Now()
	if err := cmd.Run(); err != nil {
		out := strings.TrimSpace(output.String())
		p.logger.Warn("Push command failed",
			zap.Error(err),
			zap.String("output", out),
			zap.Duration("duration", time.Since(start)),
		)
		if out != "" {
			return fmt.Errorf("push to SDK config failed: %w: %s", err, out)
		}
		return fmt.Errorf("push to SDK config failed: %w", err)
	}

	p.logger.Info("Pushed address to SDK config",
		zap.String("serial", serial),
		zap.String("address", address),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

// CheckParams validates values loaded from the record or the SDK config
// before they are handed to a command. Serials must be letters and digits.
func CheckParams(serial, address string) error {
	if err := identity.ValidateSerial(serial); err != nil {
		return err
	}
	for _, r := range serial {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return &identity.ValidationError{
				Field:  identity.FieldSerial,
				Value:  serial,
				Reason: "must contain only letters and digits",
			}
		}
	}
	return identity.ValidateAddress(address)
}

// Render expands every argument of command with params.
func Render(command []string, params Params) ([]string, error) {
	if len(command) == 0 {
		return nil, ErrNoCommand
	}

	argv := make([]string, 0, len(command))
	for i, arg := range command {
		tmpl, err := template.New(fmt.Sprintf("arg%d", i)).Option("missingkey=error").Parse(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to parse push argument %d: %w", i, err)
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, params); err != nil {
			return nil, fmt.Errorf("failed to render push argument %d: %w", i, err)
		}
		argv = append(argv, buf.String())
	}

	if argv[0] == "" {
		return nil, ErrNoCommand
	}
	return argv, nil
}

// Disabled is a Pusher that does nothing.
type Disabled struct{}

// Push implements Pusher
func (Disabled) Push(context.Context, string, string) error { return nil }
