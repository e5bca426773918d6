//go:build !linux
// +build !linux

package cmd

// Hardware perf counters are linux only.
func startPerfCounters() (stop func()) {
	return func() {}
}
