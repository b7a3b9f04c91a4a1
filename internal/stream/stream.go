// Package stream provides file-descriptor-level suppression of a stream.
//
// The host drawing application treats anything written to stderr as an error
// to display, but some of the tools texsnip drives print harmless noise.
// Suppress points the descriptor at the null device so output from both this
// process and spawned subprocesses is discarded until Restore is called.
package stream

import "os"

// Suppressed holds the state needed to undo a suppression.
// It is returned by Suppress; call Restore exactly once.
type Suppressed struct {
	target  *os.File
	savedFd int
	devnull *os.File
	done    bool
}

// Suppress redirects the stream's file descriptor to the null device.
// The original descriptor is duplicated first so Restore can reinstate it.
//
//	s, err := stream.Suppress(os.Stderr)
//	if err != nil {
//	    return err
//	}
//	defer s.Restore()
func Suppress(f *os.File) (*Suppressed, error) {
	return suppress(f)
}

// Restore reinstates the original descriptor and releases the duplicate and
// the null device handle. Calling Restore more than once is a no-op.
func (s *Suppressed) Restore() error {
	if s == nil || s.done {
		return nil
	}
	s.done = true
	return s.restore()
}
