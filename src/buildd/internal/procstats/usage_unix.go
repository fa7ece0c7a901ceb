//go:build unix

package procstats

import (
	"runtime"
	"time"

	"golang.org/x/sys/unix"
)

// ReadUsage returns the process CPU times and peak resident set size.
func ReadUsage() (Usage, error) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return Usage{}, err
	}

	maxRSS := uint64(ru.Maxrss)
	// Linux reports kilobytes, darwin bytes.
	if runtime.GOOS != "darwin" {
		maxRSS *= 1024
	}
	return Usage{
		UserCPU:     time.Duration(ru.Utime.Nano()),
		SystemCPU:   time.Duration(ru.Stime.Nano()),
		MaxRSSBytes: &maxRSS,
	}, nil
}
