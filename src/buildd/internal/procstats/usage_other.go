//go:build !unix

package procstats

// ReadUsage is not supported on this platform; every field stays unset.
func ReadUsage() (Usage, error) {
	return Usage{}, nil
}
