//go:build windows

package run

import "syscall"

// CREATE_NO_WINDOW is the Windows process creation flag that prevents a
// console window from appearing for the child process.
const CREATE_NO_WINDOW = 0x08000000

// hiddenWindowAttr hides the console window of spawned CLI tools. The host
// drawing application is a GUI program; without this every pdflatex run
// flashes a console window at the user.
func hiddenWindowAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: CREATE_NO_WINDOW,
	}
}
