//go:build linux

package stream

import "golang.org/x/sys/unix"

// dupTo makes newfd refer to the same file as oldfd.
// Linux on some architectures (arm64, riscv64) has no dup2 syscall, so dup3
// is used throughout.
func dupTo(oldfd, newfd int) error {
	return unix.Dup3(oldfd, newfd, 0)
}
