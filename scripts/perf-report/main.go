// Package main runs reproducible render-throughput and memory-stability
// measurements for docweave, rendering synthetic tree corpora instead of
// parsing Thrift files.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kpumuk/docweave"
	"github.com/kpumuk/docweave/examples/tree"
)

const (
	setSmall   = "small"
	setTypical = "typical"
	setLarge   = "large"
)

type config struct {
	iterations      int
	warmup          int
	jsonPath        string
	memIters        int
	memSampleEvery  int
	memFreeOSMemory bool
	concurrency     int
}

type corpusTree struct {
	Set   string `json:"set"`
	Label string `json:"label"`
	Nodes int    `json:"nodes"`
}

type sampleStats struct {
	Samples int     `json:"samples"`
	P50MS   float64 `json:"p50_ms"`
	P95MS   float64 `json:"p95_ms"`
	MinMS   float64 `json:"min_ms"`
	MaxMS   float64 `json:"max_ms"`
	MeanMS  float64 `json:"mean_ms"`
}

type benchSetReport struct {
	Set        string      `json:"set"`
	Width      int         `json:"width"`
	Iterations int         `json:"iterations"`
	Samples    int         `json:"samples"`
	Stats      sampleStats `json:"stats"`
}

type memSample struct {
	Iteration int    `json:"iteration"`
	HeapAlloc uint64 `json:"heap_alloc"`
	HeapInuse uint64 `json:"heap_inuse"`
	HeapSys   uint64 `json:"heap_sys"`
	NumGC     uint32 `json:"num_gc"`
}

type memoryReport struct {
	Iterations          int         `json:"iterations"`
	SampleEvery         int         `json:"sample_every"`
	Samples             []memSample `json:"samples"`
	HeapAllocGrowth     int64       `json:"heap_alloc_growth"`
	HeapInuseGrowth     int64       `json:"heap_inuse_growth"`
	UnboundedGrowthHint bool        `json:"unbounded_growth_hint"`
}

type report struct {
	GeneratedAt time.Time        `json:"generated_at"`
	GoVersion   string           `json:"go_version"`
	GOOS        string           `json:"goos"`
	GOARCH      string           `json:"goarch"`
	CPUs        int              `json:"cpus"`
	Config      map[string]any   `json:"config"`
	Corpus      []corpusTree     `json:"corpus"`
	RenderBench []benchSetReport `json:"render_bench"`
	Memory      memoryReport     `json:"memory"`
}

// renderWidths are the target line widths each tree is benchmarked at.
var renderWidths = []int{40, 80, 120}

func main() {
	cfg := parseFlags()
	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "perf-report: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() config {
	var cfg config
	flag.IntVar(&cfg.iterations, "iterations", 15, "benchmark iterations per (set, width) pair")
	flag.IntVar(&cfg.warmup, "warmup", 2, "warmup iterations per (set, width) pair")
	flag.StringVar(&cfg.jsonPath, "json", "", "optional JSON report output path")
	flag.IntVar(&cfg.memIters, "memory-iterations", 300, "render-loop iterations for the memory-stability measurement")
	flag.IntVar(&cfg.memSampleEvery, "memory-sample-every", 25, "memory sample cadence")
	flag.BoolVar(&cfg.memFreeOSMemory, "memory-free-os", false, "call debug.FreeOSMemory before memory samples (slower, less noisy)")
	flag.IntVar(&cfg.concurrency, "concurrency", runtime.GOMAXPROCS(0), "worker goroutines for the render benchmark fan-out")
	flag.Parse()
	return cfg
}

func run(cfg config) error {
	if cfg.iterations <= 0 {
		return errors.New("iterations must be > 0")
	}
	if cfg.warmup < 0 {
		return errors.New("warmup must be >= 0")
	}
	if cfg.memIters <= 0 {
		return errors.New("memory-iterations must be > 0")
	}
	if cfg.memSampleEvery <= 0 {
		return errors.New("memory-sample-every must be > 0")
	}
	if cfg.concurrency <= 0 {
		return errors.New("concurrency must be > 0")
	}

	corpus := buildCorpus()

	renderBench, err := runRenderBench(corpus, cfg)
	if err != nil {
		return err
	}
	memBench := runMemoryLoop(corpus[setLarge].tree, cfg)

	rep := report{
		GeneratedAt: time.Now().UTC(),
		GoVersion:   runtime.Version(),
		GOOS:        runtime.GOOS,
		GOARCH:      runtime.GOARCH,
		CPUs:        runtime.NumCPU(),
		Config:      configJSON(cfg),
		Corpus:      corpusSummaries(corpus),
		RenderBench: renderBench,
		Memory:      memBench,
	}

	printReport(rep)
	if cfg.jsonPath != "" {
		if err := writeJSON(cfg.jsonPath, rep); err != nil {
			return err
		}
		fmt.Printf("\nJSON report written to %s\n", cfg.jsonPath)
	}
	return nil
}

type namedTree struct {
	set   string
	label string
	tree  tree.Tree
}

// buildCorpus generates three synthetic tree shapes, mirroring
// original_source's benches/trees.rs (small/typical/large nested trees
// benchmarked at several target widths).
func buildCorpus() map[string]namedTree {
	return map[string]namedTree{
		setSmall:   {set: setSmall, label: "depth2-branch2", tree: genTree(2, 2, "s")},
		setTypical: {set: setTypical, label: "depth3-branch3", tree: genTree(3, 3, "t")},
		setLarge:   {set: setLarge, label: "depth4-branch4", tree: genTree(4, 4, "l")},
	}
}

func genTree(depth, branch int, prefix string) tree.Tree {
	label := fmt.Sprintf("%s-%d", prefix, depth)
	if depth == 0 {
		return tree.New(label)
	}
	subtrees := make([]tree.Tree, branch)
	for i := range subtrees {
		subtrees[i] = genTree(depth-1, branch, fmt.Sprintf("%s%d", prefix, i))
	}
	return tree.New(label, subtrees...)
}

func countNodes(t tree.Tree) int {
	n := 1
	for _, sub := range t.Subtrees {
		n += countNodes(sub)
	}
	return n
}

func corpusSummaries(corpus map[string]namedTree) []corpusTree {
	sets := []string{setSmall, setTypical, setLarge}
	out := make([]corpusTree, 0, len(sets))
	for _, set := range sets {
		nt := corpus[set]
		out = append(out, corpusTree{Set: set, Label: nt.label, Nodes: countNodes(nt.tree)})
	}
	return out
}

func runRenderBench(corpus map[string]namedTree, cfg config) ([]benchSetReport, error) {
	sets := []string{setSmall, setTypical, setLarge}
	type job struct {
		set   string
		width int
	}
	jobs := make([]job, 0, len(sets)*len(renderWidths))
	for _, set := range sets {
		for _, width := range renderWidths {
			jobs = append(jobs, job{set: set, width: width})
		}
	}

	results := make([]benchSetReport, len(jobs))
	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(cfg.concurrency)
	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			doc := corpus[j.set].tree.Pretty()
			for range cfg.warmup {
				if _, err := docweave.Pretty(doc, j.width); err != nil {
					return fmt.Errorf("warmup render %s@%d: %w", j.set, j.width, err)
				}
			}
			samples := make([]time.Duration, 0, cfg.iterations)
			for range cfg.iterations {
				start := time.Now()
				if _, err := docweave.Pretty(doc, j.width); err != nil {
					return fmt.Errorf("render %s@%d: %w", j.set, j.width, err)
				}
				samples = append(samples, time.Since(start))
			}
			results[i] = benchSetReport{
				Set:        j.set,
				Width:      j.width,
				Iterations: cfg.iterations,
				Samples:    len(samples),
				Stats:      durationStats(samples),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runMemoryLoop(t tree.Tree, cfg config) memoryReport {
	doc := t.Pretty()
	samples := make([]memSample, 0, max(1, cfg.memIters/cfg.memSampleEvery))
	recordSample := func(iter int) {
		if cfg.memFreeOSMemory {
			debug.FreeOSMemory()
		} else {
			runtime.GC()
		}
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		samples = append(samples, memSample{
			Iteration: iter,
			HeapAlloc: ms.HeapAlloc,
			HeapInuse: ms.HeapInuse,
			HeapSys:   ms.HeapSys,
			NumGC:     ms.NumGC,
		})
	}

	recordSample(0)
	for iter := 1; iter <= cfg.memIters; iter++ {
		for _, width := range renderWidths {
			_, _ = docweave.Pretty(doc, width)
		}
		if iter%cfg.memSampleEvery == 0 || iter == cfg.memIters {
			recordSample(iter)
		}
	}

	rep := memoryReport{
		Iterations:  cfg.memIters,
		SampleEvery: cfg.memSampleEvery,
		Samples:     samples,
	}
	if len(samples) >= 2 {
		first := samples[0]
		last := samples[len(samples)-1]
		rep.HeapAllocGrowth = int64Diff(last.HeapAlloc, first.HeapAlloc)
		rep.HeapInuseGrowth = int64Diff(last.HeapInuse, first.HeapInuse)
		rep.UnboundedGrowthHint = isUnboundedGrowthHint(samples)
	}
	return rep
}

func isUnboundedGrowthHint(samples []memSample) bool {
	if len(samples) < 4 {
		return false
	}
	base := samples[0]
	last := samples[len(samples)-1]
	growthAlloc := int64Diff(last.HeapAlloc, base.HeapAlloc)
	growthInuse := int64Diff(last.HeapInuse, base.HeapInuse)
	const maxExpectedGrowth = 16 << 20 // 16 MiB heuristic after forced GC samples
	return growthAlloc > maxExpectedGrowth || growthInuse > maxExpectedGrowth
}

func durationStats(samples []time.Duration) sampleStats {
	if len(samples) == 0 {
		return sampleStats{}
	}
	ns := make([]int64, len(samples))
	var sum int64
	for i, d := range samples {
		ns[i] = d.Nanoseconds()
		sum += ns[i]
	}
	slices.Sort(ns)
	p50 := quantile(ns, 0.50)
	p95 := quantile(ns, 0.95)
	return sampleStats{
		Samples: len(samples),
		P50MS:   nanosToMS(p50),
		P95MS:   nanosToMS(p95),
		MinMS:   nanosToMS(ns[0]),
		MaxMS:   nanosToMS(ns[len(ns)-1]),
		MeanMS:  nanosToMS(sum / int64(len(ns))),
	}
}

func quantile(sorted []int64, q float64) int64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	idx := int(float64(len(sorted)-1) * q)
	return sorted[idx]
}

func nanosToMS(ns int64) float64 {
	return float64(ns) / float64(time.Millisecond)
}

func printReport(rep report) {
	fmt.Println("docweave Performance Report")
	fmt.Printf("Generated: %s\n", rep.GeneratedAt.Format(time.RFC3339))
	fmt.Printf("Go: %s | %s/%s | CPUs=%d\n", rep.GoVersion, rep.GOOS, rep.GOARCH, rep.CPUs)
	fmt.Println()
	fmt.Println("Corpus")
	for _, c := range rep.Corpus {
		fmt.Printf("- %-8s %-16s nodes=%d\n", c.Set, c.Label, c.Nodes)
	}
	fmt.Println()
	printBenchTable("Render (warm)", rep.RenderBench)
	fmt.Println()
	printMemoryReport(rep.Memory)
}

func printBenchTable(title string, rows []benchSetReport) {
	fmt.Println(title)
	fmt.Println("set      width samples  p50(ms)  p95(ms)  mean(ms)   min    max")
	for _, r := range rows {
		fmt.Printf("%-8s %5d %7d %8.2f %8.2f %8.2f %6.2f %6.2f\n",
			r.Set, r.Width, r.Samples, r.Stats.P50MS, r.Stats.P95MS, r.Stats.MeanMS, r.Stats.MinMS, r.Stats.MaxMS)
	}
}

func printMemoryReport(rep memoryReport) {
	fmt.Println("Render memory-stability loop")
	fmt.Printf("iterations=%d sample_every=%d\n", rep.Iterations, rep.SampleEvery)
	if len(rep.Samples) == 0 {
		fmt.Println("no samples")
		return
	}
	last := rep.Samples[len(rep.Samples)-1]
	fmt.Printf("final heap_alloc=%d heap_inuse=%d heap_sys=%d num_gc=%d\n", last.HeapAlloc, last.HeapInuse, last.HeapSys, last.NumGC)
	fmt.Printf("growth heap_alloc=%d heap_inuse=%d unbounded_growth_hint=%v\n", rep.HeapAllocGrowth, rep.HeapInuseGrowth, rep.UnboundedGrowthHint)
}

func writeJSON(path string, rep report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	b, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	return os.WriteFile(path, b, 0o600)
}

func configJSON(cfg config) map[string]any {
	return map[string]any{
		"iterations":          cfg.iterations,
		"warmup":              cfg.warmup,
		"json":                cfg.jsonPath,
		"memory_iterations":   cfg.memIters,
		"memory_sample_every": cfg.memSampleEvery,
		"memory_free_os":      cfg.memFreeOSMemory,
		"concurrency":         cfg.concurrency,
	}
}

func int64Diff(a, b uint64) int64 {
	const maxInt64AsUint64 = (^uint64(0)) >> 1
	if a >= b {
		d := a - b
		if d > maxInt64AsUint64 {
			return int64(maxInt64AsUint64)
		}
		return int64(d)
	}
	d := b - a
	if d > maxInt64AsUint64 {
		return -int64(maxInt64AsUint64)
	}
	return -int64(d)
}
