// Package main runs the configurator benchmarks and writes the results to
// JSON and Markdown.
// Run with: go run benchmarks/run_benchmarks.go
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// BenchmarkResults holds all benchmark data
type BenchmarkResults struct {
	Timestamp   string           `json:"timestamp"`
	Environment Environment      `json:"environment"`
	Suites      map[string]Suite `json:"suites"`
	Summary     Summary          `json:"summary"`
}

type Environment struct {
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	CPU       string `json:"cpu"`
	NumCPU    int    `json:"num_cpu"`
	GoVersion string `json:"go_version"`
}

type Suite struct {
	Package    string      `json:"package"`
	Benchmarks []Benchmark `json:"benchmarks"`
}

type Benchmark struct {
	Name        string  `json:"name"`
	NsPerOp     float64 `json:"ns_per_op"`
	OpsPerSec   float64 `json:"ops_per_sec"`
	BytesPerOp  int64   `json:"bytes_per_op"`
	AllocsPerOp int64   `json:"allocs_per_op"`
}

type Summary struct {
	ScanNs         float64 `json:"scan_ns"`
	PlainRenderNs  float64 `json:"plain_render_ns"`
	SwitchRenderNs float64 `json:"switch_render_ns"`
	CacheSpeedup   float64 `json:"cache_speedup"`
}

// suites maps a report section to the package whose benchmarks it runs.
var suites = map[string]string{
	"token":        "./pkg/token",
	"template":     "./pkg/template",
	"configurator": "./pkg/configurator",
}

func main() {
	fmt.Println("==========================================")
	fmt.Println("   CONFIGURATOR BENCHMARK SUITE")
	fmt.Println("==========================================")
	fmt.Println()

	results := BenchmarkResults{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Environment: Environment{
			OS:        runtime.GOOS,
			Arch:      runtime.GOARCH,
			CPU:       getCPUInfo(),
			NumCPU:    runtime.NumCPU(),
			GoVersion: runtime.Version(),
		},
		Suites: make(map[string]Suite),
	}

	for _, name := range suiteNames() {
		pkg := suites[name]
		fmt.Printf("Running %s benchmarks...\n", name)
		results.Suites[name] = Suite{Package: pkg, Benchmarks: runBenchmarks(pkg)}
	}

	results.Summary = calculateSummary(results.Suites)

	if err := os.MkdirAll(filepath.Join("benchmarks", "results"), 0755); err != nil {
		fmt.Printf("Error creating results directory: %v\n", err)
		os.Exit(1)
	}

	jsonPath := "benchmarks/results/latest.json"
	writeJSON(results, jsonPath)
	fmt.Printf("\nJSON results: %s\n", jsonPath)

	mdPath := "benchmarks/results/LATEST.md"
	writeMarkdown(results, mdPath)
	fmt.Printf("Markdown results: %s\n", mdPath)

	printSummary(results)
}

func suiteNames() []string {
	names := make([]string, 0, len(suites))
	for name := range suites {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func getCPUInfo() string {
	if runtime.GOOS == "linux" {
		data, err := os.ReadFile("/proc/cpuinfo")
		if err == nil {
			for _, line := range strings.Split(string(data), "\n") {
				if strings.HasPrefix(line, "model name") {
					if _, value, ok := strings.Cut(line, ":"); ok {
						return strings.TrimSpace(value)
					}
				}
			}
		}
	}
	return "unknown"
}

func runBenchmarks(pkg string) []Benchmark {
	cmd := exec.Command("go", "test", "-run=^$", "-bench=.", "-benchtime=1s", "-benchmem", pkg)
	output, err := cmd.CombinedOutput()
	if err != nil {
		fmt.Printf("  benchmark run failed: %v\n", err)
	}
	return parseBenchmarkOutput(string(output))
}

// Pattern: BenchmarkName-N    iterations    ns/op    bytes/op    allocs/op
var benchLine = regexp.MustCompile(`(Benchmark[\w/]+)-\d+\s+(\d+)\s+([\d.]+)\s+ns/op\s+(\d+)\s+B/op\s+(\d+)\s+allocs/op`)

func parseBenchmarkOutput(output string) []Benchmark {
	var benchmarks []Benchmark

	for _, match := range benchLine.FindAllStringSubmatch(output, -1) {
		nsPerOp, _ := strconv.ParseFloat(match[3], 64)
		bytesPerOp, _ := strconv.ParseInt(match[4], 10, 64)
		allocsPerOp, _ := strconv.ParseInt(match[5], 10, 64)

		opsPerSec := 0.0
		if nsPerOp > 0 {
			opsPerSec = 1e9 / nsPerOp
		}

		benchmarks = append(benchmarks, Benchmark{
			Name:        match[1],
			NsPerOp:     nsPerOp,
			OpsPerSec:   opsPerSec,
			BytesPerOp:  bytesPerOp,
			AllocsPerOp: allocsPerOp,
		})
	}

	return benchmarks
}

func find(suite Suite, name string) (Benchmark, bool) {
	for _, b := range suite.Benchmarks {
		if b.Name == name {
			return b, true
		}
	}
	return Benchmark{}, false
}

func calculateSummary(s map[string]Suite) Summary {
	summary := Summary{}

	if b, ok := find(s["token"], "BenchmarkScan"); ok {
		summary.ScanNs = b.NsPerOp
	}
	if b, ok := find(s["template"], "BenchmarkProcess_Plain"); ok {
		summary.PlainRenderNs = b.NsPerOp
	}
	if b, ok := find(s["template"], "BenchmarkProcess_Switch"); ok {
		summary.SwitchRenderNs = b.NsPerOp
	}

	cached, okCached := find(s["configurator"], "BenchmarkConfigure_Cached")
	uncached, okUncached := find(s["configurator"], "BenchmarkConfigure_Uncached")
	if okCached && okUncached && cached.NsPerOp > 0 {
		summary.CacheSpeedup = uncached.NsPerOp / cached.NsPerOp
	}

	return summary
}

func writeJSON(results BenchmarkResults, path string) {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		fmt.Printf("Error marshaling JSON: %v\n", err)
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		fmt.Printf("Error writing %s: %v\n", path, err)
	}
}

func writeMarkdown(results BenchmarkResults, path string) {
	var sb strings.Builder

	sb.WriteString("# Configurator Benchmark Results\n\n")
	fmt.Fprintf(&sb, "**Generated**: %s\n\n", results.Timestamp)
	sb.WriteString("## Environment\n\n")
	fmt.Fprintf(&sb, "- **OS**: %s/%s\n", results.Environment.OS, results.Environment.Arch)
	fmt.Fprintf(&sb, "- **CPU**: %s (%d cores)\n", results.Environment.CPU, results.Environment.NumCPU)
	fmt.Fprintf(&sb, "- **Go**: %s\n\n", results.Environment.GoVersion)

	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Measure | Value |\n")
	sb.WriteString("|---------|-------|\n")
	fmt.Fprintf(&sb, "| Scan, 200 tokens | %.2fμs |\n", results.Summary.ScanNs/1000)
	fmt.Fprintf(&sb, "| Render, 100 plain tokens | %.2fμs |\n", results.Summary.PlainRenderNs/1000)
	fmt.Fprintf(&sb, "| Render, 50 switch tokens | %.2fμs |\n", results.Summary.SwitchRenderNs/1000)
	fmt.Fprintf(&sb, "| Cache speedup | %.1fx |\n", results.Summary.CacheSpeedup)
	sb.WriteString("\n")

	title := cases.Title(language.English)
	for _, name := range suiteNames() {
		suite := results.Suites[name]
		fmt.Fprintf(&sb, "## %s\n\n", title.String(name))
		sb.WriteString("| Benchmark | ops/sec | ns/op | B/op | allocs/op |\n")
		sb.WriteString("|-----------|---------|-------|------|----------|\n")
		for _, b := range suite.Benchmarks {
			fmt.Fprintf(&sb, "| %s | %.0f | %.0f | %d | %d |\n",
				b.Name, b.OpsPerSec, b.NsPerOp, b.BytesPerOp, b.AllocsPerOp)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Reproducing\n\n")
	sb.WriteString("```bash\n")
	sb.WriteString("go run benchmarks/run_benchmarks.go\n")
	sb.WriteString("# Or individual packages:\n")
	for _, name := range suiteNames() {
		fmt.Fprintf(&sb, "go test -run='^$' -bench=. -benchmem %s\n", suites[name])
	}
	sb.WriteString("```\n")

	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		fmt.Printf("Error writing %s: %v\n", path, err)
	}
}

func printSummary(results BenchmarkResults) {
	fmt.Println()
	fmt.Println("==========================================")
	fmt.Println("              SUMMARY")
	fmt.Println("==========================================")
	fmt.Printf("Scan:    %.2fμs per 200 tokens\n", results.Summary.ScanNs/1000)
	fmt.Printf("Render:  %.2fμs plain, %.2fμs switch\n",
		results.Summary.PlainRenderNs/1000,
		results.Summary.SwitchRenderNs/1000)
	fmt.Printf("Cache:   %.1fx faster than reading each time\n", results.Summary.CacheSpeedup)
	fmt.Println("==========================================")
}
