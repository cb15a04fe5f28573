// ABOUTME: CLI command that counts down a date's intervals in the terminal.
// ABOUTME: Drives the timer controller from stdin keys and renders its events live.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/harperreed/intervals/internal/sound"
	"github.com/harperreed/intervals/internal/storage"
	"github.com/harperreed/intervals/internal/timer"
	"github.com/spf13/cobra"
)

var (
	runSilent bool

	// runScheduler drives the countdown; tests swap in a faster one.
	runScheduler timer.Scheduler = timer.TickerScheduler{}
)

var runCmd = &cobra.Command{
	Use:     "run",
	Aliases: []string{"start", "go"},
	Short:   "Count down a date's intervals",
	Long: `Count down through a date's intervals one second at a time.

A beep plays each time the countdown moves to the next interval and again
when the last one finishes. The plan is read once at start; edits made
while running apply to the next run.

KEYS (type the key, then Enter):

  p or Enter   pause / resume
  r            reset: stop and clear this date's intervals
  s            stop, keeping the intervals
  q            quit (same as stop)

Ctrl-C also stops the countdown.

SOUND:

  The 'sound' config setting picks the cue: auto plays a WAV through
  afplay, paplay or aplay and falls back to the terminal bell; bell always
  rings the terminal bell; off is silent. --silent overrides it.

EXAMPLES:

  intervals run
  intervals run --date yesterday --silent`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := selectedDate()
		if err != nil {
			return err
		}
		if len(store.Get(key)) == 0 {
			return fmt.Errorf("no intervals on %s (add some with 'intervals add')", key)
		}

		mode := cfg.GetSound()
		if runSilent {
			mode = "off"
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		r := &runner{
			out:    cmd.OutOrStdout(),
			in:     cmd.InOrStdin(),
			cue:    newCue(mode, cmd.ErrOrStderr()),
			sched:  runScheduler,
			logger: logger,
		}
		return r.run(ctx, store, key)
	},
}

func newCue(mode string, bell io.Writer) timer.Cue {
	switch mode {
	case "off":
		return sound.Nop{}
	case "bell":
		return sound.NewBell(bell)
	default:
		player := sound.NewPlayer(cfg.SoundDir(), sound.WithPlayerLogger(logger))
		// Resolve now so the countdown never waits on disk or PATH lookups.
		if err := player.Prepare(sound.Beep); err != nil {
			logger.Debug("sound player unavailable, using terminal bell", "err", err)
		}
		return sound.Chain{player, sound.NewBell(bell)}
	}
}

type runner struct {
	out    io.Writer
	in     io.Reader
	cue    timer.Cue
	sched  timer.Scheduler
	logger *log.Logger

	mu sync.Mutex
}

// run starts the countdown for key and blocks until it completes, is reset
// or stopped, or ctx is cancelled.
func (r *runner) run(ctx context.Context, src timer.SequenceSource, key string) error {
	ctrl := timer.NewController(src,
		timer.WithScheduler(r.sched),
		timer.WithCue(r.cue),
		timer.WithLogger(r.logger),
		timer.WithListener(r.render),
	)

	quit := make(chan struct{})
	defer close(quit)
	keys := readKeys(r.in, quit)

	if !ctrl.Start(key) {
		return fmt.Errorf("no intervals on %s", key)
	}

	for {
		select {
		case <-ctx.Done():
			ctrl.Stop()
			return nil
		case <-ctrl.Done():
			return nil
		case k, ok := <-keys:
			if !ok {
				// Stdin closed; keep counting without key control.
				keys = nil
				continue
			}
			switch k {
			case "", "p":
				ctrl.Toggle()
			case "r":
				ctrl.Reset()
			case "s", "q":
				ctrl.Stop()
			default:
				r.printf("\n%s\n", color.New(color.Faint).Sprintf("unknown key %q: p pause/resume, r reset, s stop, q quit", k))
			}
		}
	}
}

func readKeys(in io.Reader, quit <-chan struct{}) <-chan string {
	keys := make(chan string)
	go func() {
		defer close(keys)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			k := strings.ToLower(strings.TrimSpace(sc.Text()))
			select {
			case keys <- k:
			case <-quit:
				return
			}
		}
	}()
	return keys
}

func (r *runner) printf(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, format, args...)
}

func (r *runner) render(ev timer.Event) {
	st := ev.Status
	switch ev.Type {
	case timer.EventStarted:
		r.printf("%s %d intervals on %s %s\n",
			color.New(color.FgGreen, color.Bold).Sprint("▶"),
			st.Total, st.RunDateKey,
			color.New(color.Faint).Sprint("(p pause, r reset, s stop, q quit)"))
		r.printf("%s", statusLine(st))
	case timer.EventTick:
		r.printf("%s", statusLine(st))
	case timer.EventIntervalChanged:
		r.printf("\n%s", statusLine(st))
	case timer.EventPaused:
		r.printf("\n%s\n", color.New(color.FgYellow).Sprint("⏸ Paused"))
	case timer.EventResumed:
		r.printf("%s\n%s", color.New(color.FgGreen).Sprint("▶ Resumed"), statusLine(st))
	case timer.EventSequenceComplete:
		r.printf("\n%s\n", color.New(color.FgGreen, color.Bold).Sprint("✓ Workout complete"))
	case timer.EventReset:
		r.printf("\n%s\n", color.New(color.FgYellow).Sprintf("✗ Reset: cleared intervals on %s", st.DateKey))
	case timer.EventStopped:
		r.printf("\n%s\n", color.New(color.Faint).Sprint("■ Stopped"))
	}
}

// statusLine redraws the current interval in place.
func statusLine(st timer.Status) string {
	secs := int(math.Ceil(st.Remaining))
	return fmt.Sprintf("\r  %s %s %s ",
		kindColor(st.Current.Kind).Sprint(padRight(string(st.Current.Kind), 5)),
		color.New(color.Faint).Sprintf("%d/%d", st.Index+1, st.Total),
		padRight(storage.FormatClock(secs), 8))
}

func init() {
	runCmd.Flags().BoolVar(&runSilent, "silent", false, "do not play sounds")
	rootCmd.AddCommand(runCmd)
}
