//go:build unix

package run

import "syscall"

// hiddenWindowAttr returns no special process attributes on Unix; there is
// no console window to hide.
func hiddenWindowAttr() *syscall.SysProcAttr {
	return nil
}
