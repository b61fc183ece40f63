// Package diagnostics implements the doctor checks: provider reachability
// and host facts. Everything here is best-effort; a metric that cannot be
// read is omitted, never fatal.
package diagnostics

import (
	"context"
	"runtime"
	"sort"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
)

// Pinger probes the configured providers. *provider.Manager satisfies it.
type Pinger interface {
	Names() []string
	PingAll(ctx context.Context) map[string]error
}

// ProviderCheck is the probe result for one provider.
type ProviderCheck struct {
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// HostFacts describes the machine the doctor ran on.
type HostFacts struct {
	OS   string `json:"os"`
	Arch string `json:"arch"`

	CPUModel   string  `json:"cpu_model,omitempty"`
	CPUCores   int     `json:"cpu_cores,omitempty"`
	CPUThreads int     `json:"cpu_threads"`

	MemTotalMB float64 `json:"mem_total_mb,omitempty"`
	MemUsedMB  float64 `json:"mem_used_mb,omitempty"`
	MemPercent float64 `json:"mem_percent,omitempty"`

	DiskTotalGB float64 `json:"disk_total_gb,omitempty"`
	DiskUsedGB  float64 `json:"disk_used_gb,omitempty"`
	DiskPercent float64 `json:"disk_percent,omitempty"`

	LoadAvg1  float64 `json:"load_avg_1,omitempty"`
	LoadAvg5  float64 `json:"load_avg_5,omitempty"`
	LoadAvg15 float64 `json:"load_avg_15,omitempty"`
}

// Report is the full doctor output.
type Report struct {
	Host      HostFacts       `json:"host"`
	Providers []ProviderCheck `json:"providers"`
	Healthy   bool            `json:"healthy"`
	Elapsed   time.Duration   `json:"elapsed"`
}

// Run probes the providers and collects host facts.
func Run(ctx context.Context, pinger Pinger) Report {
	start := time.Now()
	rep := Report{
		Host:      collectHostFacts(),
		Providers: checkProviders(ctx, pinger),
	}
	for _, p := range rep.Providers {
		if p.OK {
			rep.Healthy = true
			break
		}
	}
	rep.Elapsed = time.Since(start)
	return rep
}

func checkProviders(ctx context.Context, pinger Pinger) []ProviderCheck {
	if pinger == nil {
		return nil
	}
	results := pinger.PingAll(ctx)

	checks := make([]ProviderCheck, 0, len(results))
	for name, err := range results {
		check := ProviderCheck{Name: name, OK: err == nil}
		if err != nil {
			check.Error = err.Error()
		}
		checks = append(checks, check)
	}
	// Deterministic output for the CLI table.
	sort.Slice(checks, func(i, j int) bool { return checks[i].Name < checks[j].Name })
	return checks
}

func collectHostFacts() HostFacts {
	facts := HostFacts{
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		CPUThreads: runtime.NumCPU(),
	}

	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		facts.CPUModel = infos[0].ModelName
		cores := 0
		for _, info := range infos {
			cores += int(info.Cores)
		}
		facts.CPUCores = cores
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		facts.MemTotalMB = float64(vm.Total) / 1024 / 1024
		facts.MemUsedMB = float64(vm.Used) / 1024 / 1024
		facts.MemPercent = vm.UsedPercent
	}

	if du, err := disk.Usage("/"); err == nil {
		facts.DiskTotalGB = float64(du.Total) / 1024 / 1024 / 1024
		facts.DiskUsedGB = float64(du.Used) / 1024 / 1024 / 1024
		facts.DiskPercent = du.UsedPercent
	}

	if avg, err := load.Avg(); err == nil {
		facts.LoadAvg1 = avg.Load1
		facts.LoadAvg5 = avg.Load5
		facts.LoadAvg15 = avg.Load15
	}

	return facts
}
