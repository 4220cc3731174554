//go:build windows

package config

import (
	"os"

	"golang.org/x/sys/windows"
)

// lockPath takes an exclusive LockFileEx lock on path, creating it if needed
func lockPath(path string) (func(), error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}

	handle := windows.Handle(file.Fd())
	overlapped := new(windows.Overlapped)
	if err := windows.LockFileEx(handle, windows.LOCKFILE_EXCLUSIVE_LOCK, 0, 1, 0, overlapped); err != nil {
		file.Close()
		return nil, err
	}
	return func() {
		windows.UnlockFileEx(handle, 0, 1, 0, overlapped)
		file.Close()
	}, nil
}
