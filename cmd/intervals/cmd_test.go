// ABOUTME: Tests for CLI commands and helpers.
// ABOUTME: Executes commands end to end against a temp sqlite store.
package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harperreed/intervals/internal/models"
	"github.com/harperreed/intervals/internal/storage"
)

func TestPadRight(t *testing.T) {
	tests := []struct {
		input  string
		length int
		want   string
	}{
		{"Run", 5, "Run  "},
		{"Walk", 4, "Walk"},
		{"toolong", 3, "toolong"},
		{"", 2, "  "},
	}
	for _, tt := range tests {
		if got := padRight(tt.input, tt.length); got != tt.want {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.length, got, tt.want)
		}
	}
}

func TestRootCmd(t *testing.T) {
	if rootCmd.Use != "intervals" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "intervals")
	}
	for _, name := range []string{"date", "log-level"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("Expected --%s persistent flag", name)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"add", "list", "delete", "clear", "run", "export", "import", "migrate", "sync", "config", "mcp", "install-skill", "version"}

	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, name := range want {
		if !names[name] {
			t.Errorf("Expected %q command", name)
		}
	}
}

func TestCommandAliases(t *testing.T) {
	tests := map[string][]string{
		"add":    {"a"},
		"list":   {"ls", "l"},
		"delete": {"del", "rm"},
		"run":    {"start", "go"},
	}
	for name, aliases := range tests {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil {
			t.Fatalf("Find(%s) failed: %v", name, err)
		}
		for _, alias := range aliases {
			if !cmd.HasAlias(alias) {
				t.Errorf("%s missing alias %q", name, alias)
			}
		}
	}
}

func TestNeedsStore(t *testing.T) {
	if needsStore(configSetCmd) {
		t.Error("config set should not open the store")
	}
	if needsStore(versionCmd) {
		t.Error("version should not open the store")
	}
	if !needsStore(addCmd) {
		t.Error("add should open the store")
	}
}

func TestAddCmd(t *testing.T) {
	cli := setupTestCLI(t)

	out := cli.mustRun("add", "run", "60")
	if !strings.Contains(out, "Added Run 1:00") {
		t.Errorf("unexpected output: %s", out)
	}
	cli.mustRun("add", "Walk", "30.5")

	seq := cli.stored(today())
	if len(seq) != 2 {
		t.Fatalf("Expected 2 intervals, got %d", len(seq))
	}
	if seq[0].Kind != models.KindRun || seq[0].DurationSeconds != 60 {
		t.Errorf("first interval = %+v", seq[0])
	}
	if seq[1].Kind != models.KindWalk || seq[1].DurationSeconds != 30.5 {
		t.Errorf("second interval = %+v", seq[1])
	}
}

func TestAddCmdWithDate(t *testing.T) {
	cli := setupTestCLI(t)

	cli.mustRun("add", "run", "90", "--date", "2025-06-15")

	if got := len(cli.stored("2025-06-15")); got != 1 {
		t.Errorf("Expected 1 interval on 2025-06-15, got %d", got)
	}
	if got := len(cli.stored(today())); got != 0 {
		t.Errorf("Expected today to be empty, got %d", got)
	}
}

func TestAddCmdRejectsInvalidInput(t *testing.T) {
	cli := setupTestCLI(t)

	tests := []struct {
		args      []string
		errSubstr string
	}{
		{[]string{"add", "run", "0"}, "invalid duration"},
		{[]string{"add", "run", "-3"}, "invalid duration"},
		{[]string{"add", "run", "abc"}, "invalid duration"},
		{[]string{"add", "swim", "60"}, "Valid kinds: run, walk"},
		{[]string{"add", "run", "60", "--date", "June"}, "invalid date"},
		{[]string{"add", "run"}, "accepts 2 arg(s)"},
	}
	for _, tt := range tests {
		_, _, err := cli.run("", tt.args...)
		if err == nil {
			t.Errorf("%v: expected error", tt.args)
			continue
		}
		if !strings.Contains(err.Error(), tt.errSubstr) {
			t.Errorf("%v: error %q does not contain %q", tt.args, err, tt.errSubstr)
		}
	}

	if got := len(cli.stored(today())); got != 0 {
		t.Errorf("rejected adds stored %d intervals", got)
	}
}

func TestListCmd(t *testing.T) {
	cli := setupTestCLI(t)

	out := cli.mustRun("list")
	if !strings.Contains(out, "No intervals on") {
		t.Errorf("unexpected empty output: %s", out)
	}

	cli.mustRun("add", "run", "60")
	cli.mustRun("add", "walk", "30")

	out = cli.mustRun("list")
	runAt := strings.Index(out, "Run")
	walkAt := strings.Index(out, "Walk")
	if runAt < 0 || walkAt < 0 || runAt > walkAt {
		t.Errorf("expected Run before Walk, got: %s", out)
	}
	if !strings.Contains(out, "Total 1:30") {
		t.Errorf("expected total, got: %s", out)
	}
}

func TestListCmdAll(t *testing.T) {
	cli := setupTestCLI(t)

	out := cli.mustRun("list", "--all")
	if !strings.Contains(out, "No intervals found.") {
		t.Errorf("unexpected empty output: %s", out)
	}

	cli.mustRun("add", "run", "60", "--date", "2025-06-15")
	cli.mustRun("add", "walk", "30", "--date", "2025-06-16")
	cli.mustRun("add", "walk", "30", "--date", "2025-06-16")

	out = cli.mustRun("list", "--all")
	if !strings.Contains(out, "2025-06-15 1 intervals") || !strings.Contains(out, "2025-06-16 2 intervals") {
		t.Errorf("unexpected summary: %s", out)
	}
	if strings.Index(out, "2025-06-15") > strings.Index(out, "2025-06-16") {
		t.Errorf("dates not sorted: %s", out)
	}
}

func TestDeleteCmd(t *testing.T) {
	cli := setupTestCLI(t)

	cli.mustRun("add", "run", "60")
	cli.mustRun("add", "walk", "30")
	first := cli.stored(today())[0]

	out := cli.mustRun("delete", first.ShortID())
	if !strings.Contains(out, "Deleted Run") {
		t.Errorf("unexpected output: %s", out)
	}

	seq := cli.stored(today())
	if len(seq) != 1 || seq[0].Kind != models.KindWalk {
		t.Errorf("sequence after delete = %+v", seq)
	}
}

func TestDeleteCmdNotFound(t *testing.T) {
	cli := setupTestCLI(t)
	cli.mustRun("add", "run", "60")

	_, _, err := cli.run("", "delete", "zzzzzzzz")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found error, got %v", err)
	}
	if got := len(cli.stored(today())); got != 1 {
		t.Errorf("failed delete changed the plan: %d intervals", got)
	}
}

func TestClearCmd(t *testing.T) {
	cli := setupTestCLI(t)

	cli.mustRun("add", "run", "60")
	cli.mustRun("add", "walk", "30")
	cli.mustRun("add", "run", "45", "--date", "2025-06-16")

	out, _, err := cli.run("n\n", "clear")
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if !strings.Contains(out, "Canceled.") || len(cli.stored(today())) != 2 {
		t.Errorf("declined clear should keep intervals: %s", out)
	}

	out, _, err = cli.run("y\n", "clear")
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if !strings.Contains(out, "Cleared 2 interval(s)") {
		t.Errorf("unexpected output: %s", out)
	}
	if got := len(cli.stored(today())); got != 0 {
		t.Errorf("Expected today empty, got %d", got)
	}
	if got := len(cli.stored("2025-06-16")); got != 1 {
		t.Errorf("clear touched another date: %d", got)
	}

	out = cli.mustRun("clear", "-y")
	if !strings.Contains(out, "No intervals on") {
		t.Errorf("unexpected output on empty date: %s", out)
	}
}

func TestExportJSONAndImport(t *testing.T) {
	cli := setupTestCLI(t)

	cli.mustRun("add", "run", "60", "--date", "2025-06-15")
	cli.mustRun("add", "walk", "30", "--date", "2025-06-15")

	out := cli.mustRun("export", "json")
	var export storage.ExportData
	if err := json.Unmarshal([]byte(out), &export); err != nil {
		t.Fatalf("export is not JSON: %v\n%s", err, out)
	}
	if export.Tool != "intervals" || len(export.Dates["2025-06-15"]) != 2 {
		t.Errorf("unexpected export: %+v", export)
	}

	path := filepath.Join(t.TempDir(), "backup.json")
	cli.mustRun("export", "json", "-o", path)

	cli.mustRun("clear", "-y", "--date", "2025-06-15")

	out = cli.mustRun("import", path)
	if !strings.Contains(out, "Imported 2 interval(s)") {
		t.Errorf("unexpected import output: %s", out)
	}
	out = cli.mustRun("import", path)
	if !strings.Contains(out, "Imported 0 interval(s)") || !strings.Contains(out, "2 skipped") {
		t.Errorf("second import should skip duplicates: %s", out)
	}

	seq := cli.stored("2025-06-15")
	if len(seq) != 2 || seq[0].ID != export.Dates["2025-06-15"][0].ID {
		t.Errorf("import did not preserve order and ids: %+v", seq)
	}
}

func TestExportYAMLAndMarkdown(t *testing.T) {
	cli := setupTestCLI(t)
	cli.mustRun("add", "run", "75", "--date", "2025-06-15")

	out := cli.mustRun("export", "yaml")
	if !strings.Contains(out, "dates:") || !strings.Contains(out, "kind: Run") {
		t.Errorf("unexpected YAML: %s", out)
	}

	out = cli.mustRun("export", "markdown", "--date", "2025-06-15")
	if !strings.Contains(out, "## 2025-06-15") || !strings.Contains(out, "| 1 | Run | 75 |") {
		t.Errorf("unexpected Markdown: %s", out)
	}

	out = cli.mustRun("export", "markdown", "--since", "2025-07-01")
	if !strings.Contains(out, "No intervals found.") {
		t.Errorf("since filter should drop earlier dates: %s", out)
	}
}

func TestExportInvalidFormat(t *testing.T) {
	cli := setupTestCLI(t)

	_, _, err := cli.run("", "export", "csv")
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Errorf("expected unknown format error, got %v", err)
	}
}

func TestImportMissingFile(t *testing.T) {
	cli := setupTestCLI(t)

	_, _, err := cli.run("", "import", filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestMigrateCmd(t *testing.T) {
	cli := setupTestCLI(t)

	cli.mustRun("add", "run", "60")
	cli.mustRun("add", "walk", "30")

	if _, _, err := cli.run("", "migrate"); err == nil || !strings.Contains(err.Error(), "--to is required") {
		t.Errorf("expected --to error, got %v", err)
	}
	if _, _, err := cli.run("", "migrate", "--to", "sqlite"); err == nil || !strings.Contains(err.Error(), "already using") {
		t.Errorf("expected same-backend error, got %v", err)
	}

	out := cli.mustRun("migrate", "--to", "file", "--switch")
	if !strings.Contains(out, "Migrated 2 interval(s) across 1 date(s) from sqlite to file") {
		t.Errorf("unexpected output: %s", out)
	}

	jsonPath := filepath.Join(cli.dataHome, "intervals", "intervals.json")
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("file backend not written: %v", err)
	}
	byDate, err := storage.Decode(raw)
	if err != nil || len(byDate[today()]) != 2 {
		t.Errorf("file backend content = %v, %v", byDate, err)
	}

	// The file backend is now active; adds land there.
	cli.mustRun("add", "run", "15")
	out = cli.mustRun("list")
	if !strings.Contains(out, "0:15") {
		t.Errorf("expected new interval from file backend: %s", out)
	}

	// sqlite still holds the old copy, so migrating back needs --force.
	_, _, err = cli.run("", "migrate", "--to", "sqlite")
	if err == nil || !strings.Contains(err.Error(), "--force") {
		t.Errorf("expected destination-not-empty error, got %v", err)
	}
	cli.mustRun("migrate", "--to", "sqlite", "--force")
	if got := len(cli.stored(today())); got != 3 {
		t.Errorf("sqlite after forced migrate has %d intervals, want 3", got)
	}
}

func TestConfigCmd(t *testing.T) {
	cli := setupTestCLI(t)

	out := cli.mustRun("config")
	if !strings.Contains(out, "backend") || !strings.Contains(out, "sqlite") {
		t.Errorf("unexpected config output: %s", out)
	}

	out = cli.mustRun("config", "set", "sound", "bell")
	if !strings.Contains(out, "Set sound = bell") {
		t.Errorf("unexpected set output: %s", out)
	}
	out = cli.mustRun("config", "show")
	if !strings.Contains(out, "sound      bell") {
		t.Errorf("setting not persisted: %s", out)
	}

	if _, _, err := cli.run("", "config", "set", "sound", "loud"); err == nil {
		t.Error("expected error for invalid sound")
	}
	if _, _, err := cli.run("", "config", "set", "colour", "red"); err == nil {
		t.Error("expected error for unknown key")
	}

	out = cli.mustRun("config", "path")
	if !strings.HasSuffix(strings.TrimSpace(out), filepath.Join("intervals", "config.json")) {
		t.Errorf("unexpected path: %s", out)
	}
}

func TestInvalidLogLevelFlag(t *testing.T) {
	cli := setupTestCLI(t)

	_, _, err := cli.run("", "list", "--log-level", "chatty")
	if err == nil || !strings.Contains(err.Error(), "invalid log level") {
		t.Errorf("expected log level error, got %v", err)
	}
}

func TestVersionCmd(t *testing.T) {
	cli := setupTestCLI(t)

	out := cli.mustRun("version")
	if !strings.Contains(out, "intervals dev") {
		t.Errorf("unexpected version output: %s", out)
	}
}

func TestCorruptStoreStartsEmpty(t *testing.T) {
	cli := setupTestCLI(t)
	cli.mustRun("config", "set", "backend", "file")

	path := filepath.Join(cli.dataHome, "intervals", "intervals.json")
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	out, errOut, err := cli.run("", "list")
	if err != nil {
		t.Fatalf("list should survive a corrupt store: %v", err)
	}
	if !strings.Contains(out, "No intervals on") {
		t.Errorf("unexpected output: %s", out)
	}
	if !strings.Contains(errOut, "saved intervals are corrupt") {
		t.Errorf("expected a warning on stderr, got: %s", errOut)
	}

	cli.mustRun("add", "run", "60")
	out = cli.mustRun("list")
	if !strings.Contains(out, "1:00") {
		t.Errorf("store should be usable after corrupt load: %s", out)
	}
}

func TestSyncRequiresCharmBackend(t *testing.T) {
	c := setupTestCLI(t)

	for _, sub := range []string{"status", "now", "reset"} {
		_, _, err := c.run("", "sync", sub)
		if err == nil || !strings.Contains(err.Error(), "sync requires the charm backend (current: sqlite)") {
			t.Errorf("sync %s error = %v, want charm backend error", sub, err)
		}
	}
}
