//go:build !windows

// Package tty opens the controlling terminal and implements the reader,
// writer, and winsize contracts of the vaxis core for POSIX systems. The
// core never imports it; applications wire it in at startup.
package tty

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	vaxis "github.com/danielgatis/go-vaxis"
)

// TTY is an open terminal in raw mode. It satisfies io.ReadWriter and the
// vaxis winsize provider contract. Close restores the terminal
// unconditionally.
type TTY struct {
	f     *os.File
	state *term.State

	// self-pipe used to wake a blocked Read on Close
	wakeR *os.File
	wakeW *os.File

	winchOnce sync.Once
	winchStop chan struct{}

	closeOnce sync.Once
}

// Open opens /dev/tty and puts it in raw mode.
func Open() (*TTY, error) {
	f, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	state, err := term.MakeRaw(int(f.Fd()))
	if err != nil {
		f.Close()
		return nil, err
	}
	wakeR, wakeW, err := os.Pipe()
	if err != nil {
		term.Restore(int(f.Fd()), state)
		f.Close()
		return nil, err
	}
	return &TTY{
		f:         f,
		state:     state,
		wakeR:     wakeR,
		wakeW:     wakeW,
		winchStop: make(chan struct{}),
	}, nil
}

// Fd returns the terminal file descriptor.
func (t *TTY) Fd() int {
	return int(t.f.Fd())
}

// Read blocks on the terminal or the wake pipe, whichever is ready first.
// Once Close has closed the wake pipe it returns 0 and os.ErrClosed.
func (t *TTY) Read(p []byte) (int, error) {
	fd := int(t.f.Fd())
	wake := int(t.wakeR.Fd())
	for {
		var fds unix.FdSet
		fds.Set(fd)
		fds.Set(wake)
		nfds := fd
		if wake > nfds {
			nfds = wake
		}
		n, err := unix.Select(nfds+1, &fds, nil, nil, nil)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, err
		}
		if n == 0 {
			continue
		}
		if fds.IsSet(wake) {
			return 0, os.ErrClosed
		}
		return t.f.Read(p)
	}
}

// Write writes to the terminal.
func (t *TTY) Write(p []byte) (int, error) {
	return t.f.Write(p)
}

// Winsize reports the terminal size for fd via TIOCGWINSZ.
func (t *TTY) Winsize(fd int) (vaxis.Winsize, error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return vaxis.Winsize{}, err
	}
	return vaxis.Winsize{
		Rows:   int(ws.Row),
		Cols:   int(ws.Col),
		XPixel: int(ws.Xpixel),
		YPixel: int(ws.Ypixel),
	}, nil
}

// Subscribe invokes fn on every SIGWINCH until the terminal is closed.
func (t *TTY) Subscribe(fn func()) {
	t.winchOnce.Do(func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGWINCH)
		go func() {
			defer signal.Stop(ch)
			for {
				select {
				case <-ch:
					fn()
				case <-t.winchStop:
					return
				}
			}
		}()
	})
}

// Close wakes any blocked reader, stops the resize watcher, and restores the
// terminal state. It is safe to call more than once.
func (t *TTY) Close() error {
	var err error
	t.closeOnce.Do(func() {
		close(t.winchStop)
		t.wakeW.Close()
		err = term.Restore(int(t.f.Fd()), t.state)
		t.wakeR.Close()
		if cerr := t.f.Close(); err == nil {
			err = cerr
		}
	})
	return err
}

var _ vaxis.WinsizeProvider = (*TTY)(nil)
