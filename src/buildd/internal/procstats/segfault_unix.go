//go:build unix

package procstats

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Segfault writes to a page mapped without access rights. The kernel delivers SIGSEGV and
// the runtime terminates the process.
func Segfault() error {
	page, err := unix.Mmap(-1, 0, os.Getpagesize(), unix.PROT_NONE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return fmt.Errorf("mapping guard page: %w", err)
	}
	page[0] = 1
	return fmt.Errorf("write to guard page did not fault")
}
