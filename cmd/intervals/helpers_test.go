// ABOUTME: Shared helpers for CLI command tests.
// ABOUTME: Redirects XDG paths to temp dirs and executes the root command with captured output.
package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/intervals/internal/models"
	"github.com/harperreed/intervals/internal/storage"
	"github.com/harperreed/intervals/internal/timer"
)

// syncBuffer is a bytes.Buffer safe for the countdown goroutine and the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// fastScheduler ticks every d regardless of the requested period.
type fastScheduler struct{ d time.Duration }

func (f fastScheduler) Every(_ time.Duration, fn func()) timer.Handle {
	return timer.TickerScheduler{}.Every(f.d, fn)
}

type testCLI struct {
	t        *testing.T
	dataHome string
}

// setupTestCLI points config and data at temp dirs and resets flag state.
func setupTestCLI(t *testing.T) *testCLI {
	t.Helper()

	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	color.NoColor = true
	resetFlags()

	prev := runScheduler
	runScheduler = fastScheduler{d: time.Millisecond}
	t.Cleanup(func() {
		runScheduler = prev
		_ = closeStore()
		resetFlags()
	})

	return &testCLI{t: t, dataHome: dataHome}
}

func resetFlags() {
	dateFlag = ""
	logLevelFlag = ""
	listAll = false
	clearYes = false
	runSilent = false
	exportOutput = ""
	exportSince = ""
	migrateTo = ""
	migrateForce = false
	migrateSwitch = false
	skillSkipConfirm = false
	syncYes = false
}

// run executes the CLI with args and stdin, returning stdout and stderr.
func (c *testCLI) run(stdin string, args ...string) (string, string, error) {
	c.t.Helper()
	resetFlags()

	var stdout, stderr syncBuffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	_ = closeStore()
	return stdout.String(), stderr.String(), err
}

// mustRun is run that fails the test on error.
func (c *testCLI) mustRun(args ...string) string {
	c.t.Helper()
	out, errOut, err := c.run("", args...)
	if err != nil {
		c.t.Fatalf("intervals %s failed: %v\nstdout: %s\nstderr: %s", strings.Join(args, " "), err, out, errOut)
	}
	return out
}

// stored reads the default sqlite backend directly.
func (c *testCLI) stored(key string) models.Sequence {
	c.t.Helper()

	db, err := storage.Open(filepath.Join(c.dataHome, "intervals", "intervals.db"))
	if err != nil {
		c.t.Fatalf("open database: %v", err)
	}
	defer db.Close()

	s := storage.NewStore(db, nil)
	if err := s.Load(); err != nil {
		c.t.Fatalf("load: %v", err)
	}
	return s.Get(key)
}

func today() string {
	return models.Today()
}
