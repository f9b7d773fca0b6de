package pager

import (
	"os"

	"golang.org/x/sys/unix"
)

// fdatasync persists the file size along with the data, which is all the
// table format depends on.
func syncFile(f *os.File) error {
	for {
		err := unix.Fdatasync(int(f.Fd()))
		if err != unix.EINTR {
			return err
		}
	}
}
