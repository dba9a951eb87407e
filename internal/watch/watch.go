// Package watch runs the foreground watchdog that enforces the active
// timer's warning and auto-stop thresholds while the user works.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gen2brain/beeep"

	"github.com/VisionInno/tidsrapportering/internal/config"
	"github.com/VisionInno/tidsrapportering/internal/timer"
)

type Watcher struct {
	cfg   *config.Config
	timer *timer.Service
}

func New(cfg *config.Config, svc *timer.Service) *Watcher {
	return &Watcher{cfg: cfg, timer: svc}
}

// Run checks the timer once a minute until ctx is canceled. A PID file
// under the config dir lets `tids watch stop` find the process.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.writePID(); err != nil {
		return fmt.Errorf("writing PID file: %w", err)
	}
	defer w.removePID()

	fmt.Printf("Watching active timer (warn after %dh, auto-stop after %dh)\n",
		w.cfg.Timer.WarnAfterHours, w.cfg.Timer.AutoStopHours)

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nWatcher stopped.")
			return nil
		case <-ticker.C:
		}

		warned, stopped, err := w.timer.Check()
		if err != nil {
			fmt.Printf("Error checking timer: %v\n", err)
			continue
		}

		if warned {
			fmt.Printf("Timer has been running for %dh\n", w.cfg.Timer.WarnAfterHours)
			w.notify("tids", fmt.Sprintf("Timer has been running for %d hours — still working?", w.cfg.Timer.WarnAfterHours))
		}
		if stopped != nil {
			fmt.Printf("Auto-stopped timer after %dh and logged %.2f h\n",
				w.cfg.Timer.AutoStopHours, stopped.Hours)
			w.notify("tids", fmt.Sprintf("Timer auto-stopped after %d hours and the entry was saved.", w.cfg.Timer.AutoStopHours))
		}
	}
}

func (w *Watcher) notify(title, message string) {
	if !w.cfg.Timer.Notifications {
		return
	}
	if err := beeep.Notify(title, message, ""); err != nil {
		fmt.Printf("Could not send notification: %v\n", err)
	}
}

func pidPath() (string, error) {
	dir, err := config.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "watch.pid"), nil
}

func (w *Watcher) writePID() error {
	path, err := pidPath()
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0644)
}

func (w *Watcher) removePID() {
	if path, err := pidPath(); err == nil {
		os.Remove(path)
	}
}

// ReadPID returns the PID of a running watcher.
func ReadPID() (int, error) {
	path, err := pidPath()
	if err != nil {
		return 0, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("no watcher is running (PID file not found)")
		}
		return 0, fmt.Errorf("reading PID file: %w", err)
	}
	pid, err := strconv.Atoi(string(data))
	if err != nil {
		return 0, fmt.Errorf("parsing PID file: %w", err)
	}
	return pid, nil
}
