// ABOUTME: System audio player cue backed by afplay, paplay or aplay.
// ABOUTME: Resolves WAV assets by name and synthesizes the beep when it is missing.
package sound

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
)

// Beep is the built-in transition sound.
const Beep = "beep"

// DefaultCommands are the players tried in order.
var DefaultCommands = []string{"afplay", "paplay", "aplay"}

// Player launches a system audio player for each cue.
type Player struct {
	dir      string
	commands []string
	lookPath func(string) (string, error)
	command  func(name string, args ...string) *exec.Cmd
	logger   *log.Logger

	mu       sync.Mutex
	binary   string
	lookedUp bool
	paths    map[string]string
}

// PlayerOption configures a Player.
type PlayerOption func(*Player)

// WithCommands overrides the candidate player binaries.
func WithCommands(cmds ...string) PlayerOption {
	return func(p *Player) { p.commands = cmds }
}

// WithPlayerLogger sets the logger.
func WithPlayerLogger(l *log.Logger) PlayerOption {
	return func(p *Player) { p.logger = l }
}

// NewPlayer returns a Player reading assets from dir.
func NewPlayer(dir string, opts ...PlayerOption) *Player {
	p := &Player{
		dir:      dir,
		commands: DefaultCommands,
		lookPath: exec.LookPath,
		command:  exec.Command,
		paths:    make(map[string]string),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = log.New(io.Discard)
	}
	return p
}

// Resolve returns the path of the named asset, synthesizing the beep on
// first use.
func (p *Player) Resolve(name string) (string, error) {
	path := filepath.Join(p.dir, name+".wav")
	if _, err := os.Stat(path); err == nil {
		return path, nil
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("stat asset: %w", err)
	}

	if name != Beep {
		return "", fmt.Errorf("asset %q: %w", name, os.ErrNotExist)
	}

	if err := os.MkdirAll(p.dir, 0750); err != nil {
		return "", fmt.Errorf("create asset directory: %w", err)
	}
	if err := WriteBeep(path); err != nil {
		return "", err
	}
	p.logger.Debug("synthesized cue", "path", path)
	return path, nil
}

// Prepare looks up the player binary and resolves the named assets so that
// Play only has to launch the player.
func (p *Player) Prepare(names ...string) error {
	if _, err := p.player(); err != nil {
		return err
	}
	for _, name := range names {
		if _, err := p.asset(name); err != nil {
			return err
		}
	}
	return nil
}

// Play starts the player and returns without waiting for it to finish.
func (p *Player) Play(name string) error {
	bin, err := p.player()
	if err != nil {
		return &PlaybackError{Name: name, Err: err}
	}

	path, err := p.asset(name)
	if err != nil {
		return &PlaybackError{Name: name, Err: err}
	}

	cmd := p.command(bin, path)
	if err := cmd.Start(); err != nil {
		return &PlaybackError{Name: name, Err: err}
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			p.logger.Debug("player exited", "player", bin, "err", err)
		}
	}()
	return nil
}

// asset resolves name once and remembers its path.
func (p *Player) asset(name string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if path, ok := p.paths[name]; ok {
		return path, nil
	}
	path, err := p.Resolve(name)
	if err != nil {
		return "", err
	}
	p.paths[name] = path
	return path, nil
}

// player finds the first available binary. The result, found or not, is
// remembered.
func (p *Player) player() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.lookedUp {
		p.lookedUp = true
		for _, c := range p.commands {
			if path, err := p.lookPath(c); err == nil {
				p.binary = path
				break
			}
		}
	}
	if p.binary == "" {
		return "", ErrNoPlayer
	}
	return p.binary, nil
}
