//go:build unix

package stream

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// suppress swaps the descriptor under the stream for one pointing at the
// null device. Working at the descriptor level (rather than reassigning a Go
// variable) means output written by C libraries and subprocesses that
// inherited the descriptor is suppressed too.
func suppress(f *os.File) (*Suppressed, error) {
	fd := int(f.Fd())

	savedFd, err := unix.Dup(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to duplicate descriptor %d: %w", fd, err)
	}

	devnull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		unix.Close(savedFd)
		return nil, fmt.Errorf("failed to open %s: %w", os.DevNull, err)
	}

	if err := dupTo(int(devnull.Fd()), fd); err != nil {
		unix.Close(savedFd)
		devnull.Close()
		return nil, fmt.Errorf("failed to redirect descriptor %d: %w", fd, err)
	}

	return &Suppressed{
		target:  f,
		savedFd: savedFd,
		devnull: devnull,
	}, nil
}

func (s *Suppressed) restore() error {
	fd := int(s.target.Fd())

	err := dupTo(s.savedFd, fd)
	unix.Close(s.savedFd)
	s.devnull.Close()

	if err != nil {
		return fmt.Errorf("failed to restore descriptor %d: %w", fd, err)
	}
	return nil
}
