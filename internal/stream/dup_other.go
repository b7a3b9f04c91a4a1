//go:build unix && !linux

package stream

import "golang.org/x/sys/unix"

// dupTo makes newfd refer to the same file as oldfd.
func dupTo(oldfd, newfd int) error {
	return unix.Dup2(oldfd, newfd)
}
