package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/nightfall/engine"
	"github.com/plus3/nightfall/game"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Seed     uint64
	Tick     time.Duration
	Systems  int

	// Host
	CPUModel    string
	CPUCores    int
	TotalMemory uint64

	// Results
	TotalUpdates   int64
	TotalTime      time.Duration
	UpdateTime     Stats
	Sessions       []game.Report
	Unfinished     game.Report
	Best           game.Report
	SystemStats    []engine.SystemStats
	TraceFrames    int
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// AddSession records a finished session and keeps the best score.
func (r *Report) AddSession(session game.Report) {
	r.Sessions = append(r.Sessions, session)
	if len(r.Sessions) == 1 || session.Score > r.Best.Score {
		r.Best = session
	}
}

// CollectHost fills in CPU and memory details. Missing host information is
// left blank.
func (r *Report) CollectHost() {
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		r.CPUModel = infos[0].ModelName
	}
	if cores, err := cpu.Counts(true); err == nil {
		r.CPUCores = cores
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		r.TotalMemory = vm.Total
	}
}

// SimulatedTime is the game time covered by every update.
func (r *Report) SimulatedTime() time.Duration {
	return time.Duration(r.TotalUpdates) * r.Tick
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Survivor Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **First Seed:** {{.Seed}}
- **Tick:** {{.Tick}}
- **Systems:** {{.Systems}}

## Host
- **CPU:** {{if .CPUModel}}{{.CPUModel}}{{else}}unknown{{end}} ({{.CPUCores}} logical cores)
- **Memory:** {{mb .TotalMemory}} MB

## Performance Results
- **Total Updates:** {{.TotalUpdates}}
- **Total Test Time:** {{.TotalTime}}
- **Simulated Time:** {{.SimulatedTime}}
- **Update Time (Tick):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}

## System Timings
{{range .SystemStats}}- {{.Name}}: avg {{.AvgDuration}}, max {{.MaxDuration}} over {{.ExecutionCount}} runs
{{end}}
## Sessions
- **Finished Sessions:** {{len .Sessions}}
{{if .Sessions}}- **Best:** {{.Best.Score}} points, {{.Best.Kills}} kills, {{.Best.Days}} days ({{.Best.Session}})
{{end}}- **Unfinished:** {{.Unfinished.Score}} points, {{.Unfinished.Kills}} kills, {{.Unfinished.Days}} days after {{.Unfinished.Ticks}} ticks
{{if .TraceFrames}}- **Trace Frames:** {{.TraceFrames}}
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Sys Memory:     {{.MemStatsStart.Sys}} (start) -> {{.MemStatsEnd.Sys}} (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"mb": func(v any) string {
			switch val := v.(type) {
			case uint64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			case int64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			default:
				return "N/A"
			}
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
