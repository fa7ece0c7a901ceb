// Package procstats reads the daemon's own process and runtime statistics and hosts the
// deliberate-failure hooks used to test crash handling.
package procstats

import (
	"fmt"
	"io"
	"runtime"
	"runtime/metrics"
	"runtime/pprof"
	"strings"
	"time"
)

const (
	_metricHeapObjectsBytes = "/memory/classes/heap/objects:bytes"
	_metricTotalBytes       = "/memory/classes/total:bytes"
	_metricHeapReleased     = "/memory/classes/heap/released:bytes"
	_metricHeapFree         = "/memory/classes/heap/free:bytes"
	_metricGoroutines       = "/sched/goroutines:goroutines"
	_metricGCCycles         = "/gc/cycles/total:gc-cycles"
	_metricHeapObjects      = "/gc/heap/objects:objects"
)

// Memory holds the allocator byte counters. A nil counter is one the runtime cannot report.
type Memory struct {
	Allocated *uint64
	Resident  *uint64
	Retained  *uint64
}

// Runtime holds scheduler and collector counters.
type Runtime struct {
	Goroutines  uint64
	NumGC       uint64
	HeapObjects uint64
}

// Usage holds the process resource usage.
type Usage struct {
	UserCPU     time.Duration
	SystemCPU   time.Duration
	MaxRSSBytes *uint64
}

func read(names ...string) map[string]*uint64 {
	samples := make([]metrics.Sample, len(names))
	for i, name := range names {
		samples[i].Name = name
	}
	metrics.Read(samples)

	out := make(map[string]*uint64, len(samples))
	for _, s := range samples {
		if s.Value.Kind() != metrics.KindUint64 {
			out[s.Name] = nil
			continue
		}
		v := s.Value.Uint64()
		out[s.Name] = &v
	}
	return out
}

// ReadMemory samples the allocator counters without stopping the world.
func ReadMemory() Memory {
	m := read(_metricHeapObjectsBytes, _metricTotalBytes, _metricHeapReleased, _metricHeapFree)

	var mem Memory
	mem.Allocated = m[_metricHeapObjectsBytes]
	if total, released := m[_metricTotalBytes], m[_metricHeapReleased]; total != nil && released != nil {
		resident := *total - *released
		mem.Resident = &resident
	}
	if free, released := m[_metricHeapFree], m[_metricHeapReleased]; free != nil && released != nil {
		retained := *free + *released
		mem.Retained = &retained
	}
	return mem
}

// ReadRuntime samples scheduler and collector counters.
func ReadRuntime() Runtime {
	m := read(_metricGoroutines, _metricGCCycles, _metricHeapObjects)
	return Runtime{
		Goroutines:  deref(m[_metricGoroutines]),
		NumGC:       deref(m[_metricGCCycles]),
		HeapObjects: deref(m[_metricHeapObjects]),
	}
}

func deref(v *uint64) uint64 {
	if v == nil {
		return 0
	}
	return *v
}

// WriteProfile writes the named pprof profile ("heap", "allocs") to w after a collection.
func WriteProfile(name string, w io.Writer) error {
	p := pprof.Lookup(name)
	if p == nil {
		return fmt.Errorf("unknown profile %q", name)
	}
	runtime.GC()
	return p.WriteTo(w, 0)
}

// AllocatorReport renders the runtime allocator statistics as text. The options string is a
// comma-separated list; "gc" collects garbage first.
func AllocatorReport(options string) string {
	for _, opt := range strings.Split(options, ",") {
		if strings.TrimSpace(opt) == "gc" {
			runtime.GC()
		}
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	var b strings.Builder
	fmt.Fprintf(&b, "___ Begin allocator statistics ___\n")
	fmt.Fprintf(&b, "Allocated: %d\n", ms.HeapAlloc)
	fmt.Fprintf(&b, "Active: %d\n", ms.HeapInuse)
	fmt.Fprintf(&b, "Mapped: %d\n", ms.Sys)
	fmt.Fprintf(&b, "Retained: %d\n", ms.HeapIdle)
	fmt.Fprintf(&b, "Released: %d\n", ms.HeapReleased)
	fmt.Fprintf(&b, "Objects: %d\n", ms.HeapObjects)
	fmt.Fprintf(&b, "Mallocs: %d\n", ms.Mallocs)
	fmt.Fprintf(&b, "Frees: %d\n", ms.Frees)
	fmt.Fprintf(&b, "Stack: %d\n", ms.StackInuse)
	fmt.Fprintf(&b, "GC cycles: %d\n", ms.NumGC)
	fmt.Fprintf(&b, "GC pause total: %s\n", time.Duration(ms.PauseTotalNs))
	fmt.Fprintf(&b, "Next GC: %d\n", ms.NextGC)
	fmt.Fprintf(&b, "___ End allocator statistics ___\n")
	return b.String()
}

// Crash panics on a fresh goroutine, where no recovery handler can intercept it.
func Crash(msg string) {
	go func() {
		panic(msg)
	}()
}
