//go:build !unix

package procstats

// Segfault dereferences nil on a fresh goroutine, where the fault cannot be recovered.
func Segfault() error {
	done := make(chan struct{})
	go func() {
		var p *int
		*p = 1
		close(done)
	}()
	<-done
	return nil
}
