//go:build windows

package stream

import "os"

// suppress is a no-op on Windows: Go files wrap HANDLEs rather than CRT
// descriptors, so there is no dup2 equivalent that would also affect
// subprocess inheritance. The spawned tools already run with a hidden
// console window (see internal/run), which covers the noisy-output case.
func suppress(f *os.File) (*Suppressed, error) {
	return &Suppressed{target: f}, nil
}

func (s *Suppressed) restore() error {
	return nil
}
