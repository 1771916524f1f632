package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ember-os/hwci/internal/serialcon"
)

// ErrArtifactMissing is returned when an app build exits zero but the
// expected artifact is not on disk afterwards.
var ErrArtifactMissing = errors.New("build artifact not found")

// loaderTool installs app bundles onto a board over its debug probe.
const loaderTool = "emberload"

// ToolSpec holds the identity constants of a flashing-tool-driven board:
// what it is called, how its UART enumerates, and which external commands
// erase and program it.
type ToolSpec struct {
	Name          string
	Arch          string
	Baud          int
	UARTVendorID  string   // USB VID of the preferred console device
	UARTProductID string   // USB PID; empty matches any product of the vendor
	EraseArgv     []string // debug-probe mass-erase command
	KernelDir     string   // board directory relative to the kernel checkout
	LoaderBoard   string   // board name passed to the loader tool
}

// ToolBoard drives a physical board through external tools: the probe erase
// command, `make flash` in the kernel checkout, and the loader for apps.
type ToolBoard struct {
	spec      ToolSpec
	opts      Options
	runner    Runner
	transport serialcon.Transport
}

// NewToolBoard builds a board from its tool description and per-run options.
func NewToolBoard(spec ToolSpec, opts Options) *ToolBoard {
	return &ToolBoard{spec: spec, opts: opts, runner: opts.runner()}
}

func (b *ToolBoard) Name() string { return b.spec.Name }
func (b *ToolBoard) Arch() string { return b.spec.Arch }

func (b *ToolBoard) BaudRate() int {
	if b.opts.BaudRate != 0 {
		return b.opts.BaudRate
	}
	return b.spec.Baud
}

func (b *ToolBoard) UARTPort() (string, error) {
	if b.opts.SerialPort != "" {
		return b.opts.SerialPort, nil
	}
	port, err := serialcon.FindPort(b.spec.UARTVendorID, b.spec.UARTProductID)
	if err != nil {
		return "", fmt.Errorf("locate %s console: %w", b.spec.Name, err)
	}
	return port, nil
}

func (b *ToolBoard) Serial() (serialcon.Transport, error) {
	if b.transport != nil {
		return b.transport, nil
	}
	device, err := b.UARTPort()
	if err != nil {
		return nil, err
	}
	port, err := serialcon.Open(device, b.BaudRate())
	if err != nil {
		return nil, err
	}
	slog.Info("console attached", "board", b.spec.Name, "device", device, "baud", b.BaudRate())
	b.transport = port
	return b.transport, nil
}

// Erase mass-erases the board through its debug probe. All later steps
// assume a clean board, so any failure here is fatal to the run.
func (b *ToolBoard) Erase(ctx context.Context) error {
	argv := b.spec.EraseArgv
	if len(argv) == 0 {
		return fmt.Errorf("board %s has no erase command configured", b.spec.Name)
	}

	slog.Info("erasing board", "board", b.spec.Name)
	if out, err := b.runner.Run(ctx, "", argv[0], argv[1:]...); err != nil {
		return fmt.Errorf("erase %s: %w\n%s", b.spec.Name, err, out)
	}
	return nil
}

// FlashKernel ensures the kernel checkout exists and programs the board
// from its board directory.
func (b *ToolBoard) FlashKernel(ctx context.Context) error {
	kernelDir, err := EnsureCheckout(ctx, b.runner, b.opts.KernelRepo, filepath.Join(b.opts.WorkDir, "kernel"))
	if err != nil {
		return err
	}

	slog.Info("flashing kernel", "board", b.spec.Name)
	boardDir := filepath.Join(kernelDir, b.spec.KernelDir)
	if out, err := b.runner.Run(ctx, boardDir, "make", "flash"); err != nil {
		return fmt.Errorf("flash kernel: %w\n%s", err, out)
	}
	return nil
}

// FlashApp builds the named app from the apps checkout for this board's
// architecture, verifies the artifact exists, and installs it.
func (b *ToolBoard) FlashApp(ctx context.Context, app string) error {
	appsDir, err := EnsureCheckout(ctx, b.runner, b.opts.AppsRepo, filepath.Join(b.opts.WorkDir, "apps"))
	if err != nil {
		return err
	}

	appDir := filepath.Join(appsDir, app)
	slog.Info("building app", "app", app, "arch", b.spec.Arch)
	if out, err := b.runner.Run(ctx, appDir, "make", "EMBER_TARGETS="+b.spec.Arch); err != nil {
		return fmt.Errorf("build %s: %w\n%s", app, err, out)
	}

	artifact := filepath.Join(appDir, "build", b.spec.Arch, filepath.Base(app)+".eab")
	if _, err := os.Stat(artifact); err != nil {
		return fmt.Errorf("%w: %s", ErrArtifactMissing, artifact)
	}

	slog.Info("installing app", "app", app, "board", b.spec.LoaderBoard)
	if out, err := b.runner.Run(ctx, "", loaderTool, "install", "--board", b.spec.LoaderBoard, artifact); err != nil {
		return fmt.Errorf("install %s: %w\n%s", app, err, out)
	}
	return nil
}

// Close releases the serial transport if one was opened.
func (b *ToolBoard) Close() error {
	if b.transport == nil {
		return nil
	}
	return b.transport.Close()
}
