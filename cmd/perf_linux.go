//go:build linux
// +build linux

package cmd

import (
	"fmt"
	"os"

	perf "github.com/hodgesds/perf-utils"
)

// startPerfCounters opens hardware instruction/cycle counters around the
// assembly call when --perf is set. Returns a stop function that prints the
// counts; counter failures (missing perf_event permissions) are reported
// and otherwise ignored.
func startPerfCounters() (stop func()) {
	stop = func() {}
	if !perfEnabled {
		return
	}
	profiler, err := perf.NewHardwareProfiler(os.Getpid(), -1,
		perf.CpuCyclesProfiler|perf.CpuInstrProfiler)
	if err != nil {
		fmt.Printf("unable to open perf counters: %v\n", err)
		return
	}
	if err = profiler.Start(); err != nil {
		fmt.Printf("unable to start perf counters: %v\n", err)
		profiler.Close()
		return
	}
	stop = func() {
		p := &perf.HardwareProfile{}
		if err := profiler.Profile(p); err == nil {
			if p.Instructions != nil && p.CPUCycles != nil {
				fmt.Printf("perf: instructions = %d, cycles = %d\n",
					*p.Instructions, *p.CPUCycles)
			}
		}
		profiler.Stop()
		profiler.Close()
	}
	return
}
