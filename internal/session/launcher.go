package session

import (
	"fmt"
	"os/exec"
	"syscall"
	"time"

	"github.com/BurntSushi/xgb/xproto"
)

// Discovery retry budget. A command that paints no window inside the
// budget yields an empty delta, which is not itself an error.
const (
	defaultLaunchTries = 3
)

// LaunchSpec describes a command to spawn.
type LaunchSpec struct {
	Argv []string
	Dir  string
	Env  []string
}

// LaunchFunc spawns a command detached from the calling process.
// Substituted in tests.
type LaunchFunc func(spec LaunchSpec) error

// launchDetached starts the command as the leader of a new session so it
// outlives this process and is not killed with it. The spawned process is
// reaped in the background if it exits while we are still alive, so it
// never lingers as a zombie. Stdout and stderr are discarded.
func launchDetached(spec LaunchSpec) error {
	if len(spec.Argv) == 0 {
		return fmt.Errorf("empty command")
	}
	cmd := exec.Command(spec.Argv[0], spec.Argv[1:]...)
	cmd.Dir = spec.Dir
	cmd.Env = spec.Env
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %q: %w", spec.Argv[0], err)
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

// LaunchCommand spawns a command and returns the set of native windows
// that newly exist after it started. The full window tree is snapshotted
// before the spawn and re-enumerated after a forced server round-trip on
// each attempt; set difference is the only causal link available, since
// nothing ties the command to the windows it creates (no PID propagation,
// no parent/child relationship). An empty result means no window was
// found within the retry budget.
func (s *Session) LaunchCommand(spec LaunchSpec) ([]xproto.Window, error) {
	before, err := s.backend.ListWindows()
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot windows: %w", err)
	}
	existing := make(map[xproto.Window]struct{}, len(before))
	for _, win := range before {
		existing[win] = struct{}{}
	}

	if err := s.launch(spec); err != nil {
		return nil, err
	}
	time.Sleep(s.settleDelay)

	for attempt := 0; attempt < defaultLaunchTries; attempt++ {
		if attempt > 0 {
			time.Sleep(s.discoveryDelay)
		}
		s.backend.Sync()

		after, err := s.backend.ListWindows()
		if err != nil {
			continue
		}
		var delta []xproto.Window
		for _, win := range after {
			if _, ok := existing[win]; !ok {
				delta = append(delta, win)
			}
		}
		if len(delta) > 0 {
			s.trace("launch produced %d candidate window(s) on attempt %d", len(delta), attempt+1)
			return delta, nil
		}
	}

	s.trace("launch produced no windows after %d attempts", defaultLaunchTries)
	return nil, nil
}
