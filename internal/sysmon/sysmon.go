// Package sysmon samples system-wide CPU and memory usage plus the
// goroutine count for the dashboard status line.
package sysmon

import (
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats is one snapshot of host resource usage. Percentages are in the
// range 0..100.
type Stats struct {
	CPUPercent float64
	MemPercent float64
	Goroutines int
}

// Sample takes one snapshot. CPU is measured as the delta since the
// previous Sample call (gopsutil interval 0), so the first reading of a
// process is usually 0. Probe failures leave the field at zero rather
// than failing the whole snapshot.
func Sample() Stats {
	snap := Stats{Goroutines: runtime.NumGoroutine()}

	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		snap.CPUPercent = pcts[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		snap.MemPercent = vm.UsedPercent
	}
	return snap
}
