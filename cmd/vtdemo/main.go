// Command vtdemo drives a vtcore.Engine against a real child shell and a
// real host TTY: it spawns the shell behind a github.com/creack/pty pseudo-
// terminal, puts the host TTY into raw mode with golang.org/x/term, and
// paints the engine's dirty spans straight back out as ANSI escape
// sequences. It is the external PTY/display/keyboard collaborator SPEC_FULL.md
// explicitly keeps out of the core package.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/phroun/vtcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "vtdemo:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := loadDemoConfig()
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	cols, rows, err := getWinsize(os.Stdin.Fd())
	if err != nil {
		cols, rows = 80, 24
	}

	shell := cfg.Shell
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "/bin/sh"
	}
	cmd := exec.Command(shell)
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)})
	if err != nil {
		return fmt.Errorf("starting pty: %w", err)
	}
	defer ptmx.Close()

	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	defer term.Restore(int(os.Stdin.Fd()), oldState)

	out := &lineRenderer{w: os.Stdout}

	tunables := vtcore.Tunables{
		TabInterval:     cfg.TabInterval,
		BCE:             cfg.BCE,
		BlinkInterval:   time.Duration(cfg.BlinkIntervalMs) * time.Millisecond,
		ActiveRedrawHz:  cfg.ActiveRedrawHz,
		PassiveRedrawHz: cfg.PassiveRedrawHz,
	}

	engine := vtcore.Init(cols, rows, vtcore.DefaultPalette(), tunables, vtcore.Callbacks{
		WriteHost: func(data []byte) { ptmx.Write(data) },
		WriteLine: out.writeLine,
		ClearLine: out.clearLine,
		WriteFinished: func() {
			out.flush()
		},
		ResChange: func(cols, rows int) {
			pty.Setsize(ptmx, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)})
		},
	}, log)

	sigwinch := make(chan os.Signal, 1)
	signal.Notify(sigwinch, syscall.SIGWINCH)
	go watchResize(sigwinch, ptmx, engine)

	done := make(chan struct{})
	var once sync.Once
	closeDone := func() { once.Do(func() { close(done) }) }

	go pumpChildToEngine(ptmx, engine, closeDone)
	go pumpKeyboardToChild(os.Stdin, ptmx, closeDone)
	go flushLoop(engine, tunables, done)

	<-done
	cmd.Wait()
	return nil
}

func pumpChildToEngine(r io.Reader, engine *vtcore.Engine, onEOF func()) {
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			consumed := 0
			for consumed < n {
				c := engine.Write(buf[consumed:n])
				if c == 0 {
					break
				}
				consumed += c
			}
		}
		if err != nil {
			onEOF()
			return
		}
	}
}

func pumpKeyboardToChild(r io.Reader, w io.Writer, onEOF func()) {
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			w.Write(buf[:n])
		}
		if err != nil {
			onEOF()
			return
		}
	}
}

func flushLoop(engine *vtcore.Engine, tunables vtcore.Tunables, done <-chan struct{}) {
	interval := time.Second / time.Duration(tunables.ActiveRedrawHz)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case now := <-ticker.C:
			engine.Flush(now)
		}
	}
}

func watchResize(sig <-chan os.Signal, ptmx *os.File, engine *vtcore.Engine) {
	for range sig {
		cols, rows, err := getWinsize(os.Stdin.Fd())
		if err != nil {
			continue
		}
		engine.Resize(cols, rows)
		pty.Setsize(ptmx, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)})
	}
}

// getWinsize reads the host TTY's window size directly via the TIOCGWINSZ
// ioctl, grounded on noppefoxwolf-vibetunnel's pty session sizing, which
// reaches for golang.org/x/sys/unix rather than term.GetSize when it needs
// the raw ws_row/ws_col struct.
func getWinsize(fd uintptr) (cols, rows int, err error) {
	ws, err := unix.IoctlGetWinsize(int(fd), unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Col), int(ws.Row), nil
}

// lineRenderer turns write_line/clear_line callbacks into real ANSI output
// on the host TTY, batching between write_finished calls so a single flush
// produces a single write(2) where possible.
type lineRenderer struct {
	w   io.Writer
	buf strings.Builder
}

func (lr *lineRenderer) writeLine(col, row int, text []rune, fg, bg vtcore.RGB, bold, underline bool) {
	fmt.Fprintf(&lr.buf, "\x1b[%d;%dH", row+1, col+1)
	fmt.Fprintf(&lr.buf, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm", fg.R, fg.G, fg.B, bg.R, bg.G, bg.B)
	if bold {
		lr.buf.WriteString("\x1b[1m")
	}
	if underline {
		lr.buf.WriteString("\x1b[4m")
	}
	lr.buf.WriteString(string(text))
	lr.buf.WriteString("\x1b[0m")
}

func (lr *lineRenderer) clearLine(col, row, n int, bg vtcore.RGB) {
	fmt.Fprintf(&lr.buf, "\x1b[%d;%dH", row+1, col+1)
	fmt.Fprintf(&lr.buf, "\x1b[48;2;%d;%d;%dm", bg.R, bg.G, bg.B)
	for i := 0; i < n; i++ {
		lr.buf.WriteByte(' ')
	}
	lr.buf.WriteString("\x1b[0m")
}

func (lr *lineRenderer) flush() {
	if lr.buf.Len() == 0 {
		return
	}
	io.WriteString(lr.w, lr.buf.String())
	lr.buf.Reset()
}
