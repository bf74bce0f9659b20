// Command clearwin opens a window and clears it to blue on every redraw.
//
// Usage:
//
//	clearwin [flags]
//	clearwin -config clearwin.toml -present-mode mailbox
//	clearwin -headless -backend software -frames 3 -out frame.png
//
// With -headless no window is opened: the frames are rendered by the
// software backend into memory, and -out saves the last one.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/gogpu/gogpu"
	"github.com/gogpu/present"
	"github.com/gogpu/present/app"
	"github.com/gogpu/present/backend"
	"github.com/gogpu/present/internal/config"
	"github.com/gogpu/wgpu/hal"
	"github.com/lmittmann/tint"
)

func init() {
	// Window systems require the main OS thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "clearwin: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Parse("clearwin", args, stderr)
	if err != nil {
		return err
	}
	if cfg.PrintConfig {
		return cfg.Write(stdout)
	}

	_, tty := stderr.(*os.File)
	logger := slog.New(tint.NewHandler(stderr, &tint.Options{
		Level:      cfg.Level(),
		TimeFormat: "15:04:05.000",
		NoColor:    !tty || os.Getenv("NO_COLOR") != "",
	}))
	present.SetLogger(logger)
	hal.SetLogger(logger.With("component", "hal"))
	gogpu.SetLogger(logger.With("component", "gogpu"))

	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	var stats app.Stats
	if cfg.Headless {
		stats, err = runHeadless(cfg, opts)
	} else {
		stats, err = runWindow(cfg, opts)
	}
	logger.Info("clearwin: done", "frames", stats.Frames, "skipped", stats.Skipped, "resizes", stats.Resizes)
	return err
}

func openBackend(name string) (backend.Instance, error) {
	if name == "" {
		return backend.Default()
	}
	return backend.Open(name)
}
