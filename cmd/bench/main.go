package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/idr"
	"github.com/aretw0/idr/pkg/core"
)

func main() {
	count := flag.Int("count", 10000, "Number of strings and classes to generate")
	edits := flag.Int("edits", 1000, "Number of string edits to journal")
	keep := flag.Bool("keep", false, "Keep the benchmark payload after running")
	flag.Parse()

	if *count <= 0 {
		fmt.Println("--count must be positive")
		os.Exit(1)
	}

	benchDir, err := os.MkdirTemp("", "idr_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	path := filepath.Join(benchDir, "idr.json")
	fmt.Printf("Generating %d strings and classes in %s...\n", *count, path)
	startGen := time.Now()
	data, err := json.Marshal(synthetic(*count))
	if err != nil {
		panic(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		panic(err)
	}
	fmt.Printf("Generation took: %v (%d bytes)\n", time.Since(startGen), len(data))

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	startLoad := time.Now()
	session, _, err := idr.Open(path, idr.WithLogger(logger))
	if err != nil {
		panic(err)
	}
	loadDuration := time.Since(startLoad)

	startFilter := time.Now()
	filtered := session.FilterClasses("TClass9")
	filterDuration := time.Since(startFilter)

	startEdit := time.Now()
	for i := 0; i < *edits; i++ {
		id := fmt.Sprintf("s%d", i%*count)
		if _, _, err := session.EditString(id, fmt.Sprintf("edit %d", i)); err != nil {
			panic(err)
		}
	}
	editDuration := time.Since(startEdit)

	for range *edits / 2 {
		session.Undo()
	}

	startLookup := time.Now()
	for i := 0; i < *count; i++ {
		session.StringValue(fmt.Sprintf("s%d", i))
	}
	lookupDuration := time.Since(startLookup)

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark Result (%d artifacts, %d edits):\n", *count, *edits)
	fmt.Printf("  Load:    %v\n", loadDuration)
	fmt.Printf("  Filter:  %v (%d nodes kept)\n", filterDuration, core.Count(filtered))
	fmt.Printf("  Edit:    %v\n", editDuration)
	fmt.Printf("  Lookup:  %v (cursor %d)\n", lookupDuration, session.Cursor())
	fmt.Printf("--------------------------------------------------\n")
}

// synthetic builds a payload with count strings and a class hierarchy of count nodes,
// ten children per node.
func synthetic(count int) core.Collections {
	c := core.Collections{
		File: &core.LoadedFile{Name: "bench.exe", Size: int64(count) * 64},
	}
	for i := 0; i < count; i++ {
		c.Strings = append(c.Strings, core.DecompiledString{
			ID:      fmt.Sprintf("s%d", i),
			Address: fmt.Sprintf("%08X", 0x00400000+i*16),
			Value:   fmt.Sprintf("string %d", i),
		})
	}

	nodes := make([]*core.Node, count)
	for i := range nodes {
		nodes[i] = &core.Node{ID: fmt.Sprintf("c%d", i), Name: fmt.Sprintf("TClass%d", i), Children: []*core.Node{}}
		if i > 0 {
			parent := nodes[(i-1)/10]
			nodes[i].Parent = parent.Name
			parent.Children = append(parent.Children, nodes[i])
		}
	}
	if count > 0 {
		c.ClassTree = []*core.Node{nodes[0]}
	}
	return c
}
