package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"codexdb/pkg/config"
	"codexdb/pkg/core"
)

type result struct {
	name      string
	build     time.Duration
	idHeight  int
	avgVisits float64
	avgLookup time.Duration
}

func main() {
	configPath := flag.String("config", "", "Path to codex.yaml")
	n := flag.Int("n", 0, "Number of records (overrides bench.n)")
	seed := flag.Int64("seed", 0, "Shuffle seed (overrides bench.seed)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if *n > 0 {
		cfg.Bench.N = *n
	}
	if *seed != 0 {
		cfg.Bench.Seed = *seed
	}

	fmt.Printf("Codex BST Benchmark (N=%d, seed=%d)\n", cfg.Bench.N, cfg.Bench.Seed)
	fmt.Println("---------------------------------------------------")

	sorted := make([]int, cfg.Bench.N)
	for i := range sorted {
		sorted[i] = i
	}
	shuffled := append([]int(nil), sorted...)
	rand.New(rand.NewSource(cfg.Bench.Seed)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	for _, r := range []result{run("shuffled", shuffled), run("sorted", sorted)} {
		fmt.Printf(">> %-8s build=%v height=%d avg_visits=%.1f avg_lookup=%v\n",
			r.name, r.build, r.idHeight, r.avgVisits, r.avgLookup)
	}

	fmt.Println("---------------------------------------------------")
	fmt.Println("Sorted input degrades the tree into a chain (height = N-1).")
}

func run(name string, ids []int) result {
	c := core.NewCatalog()
	defer c.Close()

	start := time.Now()
	for _, id := range ids {
		c.Add(id, fmt.Sprintf("codex-%08d", id), "bench")
	}
	build := time.Since(start)

	var total time.Duration
	for _, id := range ids {
		t0 := time.Now()
		c.SearchByID(id)
		total += time.Since(t0)
	}

	idH, _ := c.Heights()
	res := result{
		name:      name,
		build:     build,
		idHeight:  idH,
		avgVisits: c.Stats().AverageVisits(),
	}
	if len(ids) > 0 {
		res.avgLookup = total / time.Duration(len(ids))
	}
	return res
}
