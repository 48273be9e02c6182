package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/jinwoohan/insuragraph/internal/domain"
	"github.com/jinwoohan/insuragraph/internal/ingest"
	"github.com/jinwoohan/insuragraph/internal/platform/envutil"
	"github.com/jinwoohan/insuragraph/internal/platform/logger"
	"github.com/jinwoohan/insuragraph/internal/platform/neo4jdb"
)

// Batch importer: reads a structured product JSON and writes it to the graph.
func main() {
	var (
		path  = flag.String("file", "", "path to the structured product JSON")
		clear = flag.Bool("clear", false, "delete the product's existing nodes before loading")
	)
	flag.Parse()
	if *path == "" && flag.NArg() > 0 {
		*path = flag.Arg(0)
	}
	if *path == "" {
		fmt.Println("usage: loadgraph -file product.json [-clear]")
		os.Exit(2)
	}

	log, err := logger.New(envutil.Str("LOG_MODE", "development"))
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	raw, err := os.ReadFile(*path)
	if err != nil {
		log.Error("Could not read product file", "path", *path, "error", err)
		os.Exit(1)
	}
	var doc domain.ProductDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		log.Error("Could not parse product file", "path", *path, "error", err)
		os.Exit(1)
	}

	graph, err := neo4jdb.NewFromEnv(log)
	if err != nil {
		log.Error("Could not connect to Neo4j", "error", err)
		os.Exit(1)
	}
	defer graph.Close(context.Background())

	loader := ingest.NewLoader(graph, log)
	if err := loader.Load(context.Background(), doc, ingest.LoadOptions{ClearProduct: *clear}); err != nil {
		log.Error("Load failed", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded product %s from %s\n", doc.ProductID, *path)
}
