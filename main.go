// fracture-report serves rose-diagram analyses of digitized fracture
// traces over HTTP. Node files are imported into a sqlite dataset store
// once; every analysis recomputes from the stored geometry.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"sync"
	"syscall"

	"github.com/strata-data/fracture.report/internal/config"
	"github.com/strata-data/fracture.report/internal/monitor"
	"github.com/strata-data/fracture.report/internal/trace"
	"github.com/strata-data/fracture.report/internal/tracedb"
	"github.com/strata-data/fracture.report/internal/version"
)

var (
	listen        = flag.String("listen", ":8080", "Listen address")
	dbPath        = flag.String("db", "trace_data.db", "Path to the trace database")
	importFile    = flag.String("import", "", "Node file to import before serving (optional)")
	importName    = flag.String("name", "", "Dataset name for the imported file (defaults to the file path)")
	configPath    = flag.String("config", "", "Path to an analysis defaults JSON file (optional)")
	migrationsDir = flag.String("migrations", "", "Run pending schema migrations from this directory before serving")
)

func main() {
	flag.Parse()

	log.Printf("fracture-report %s", version.String())

	if *listen == "" {
		log.Fatal("Listen address is required")
	}

	defaults := config.EmptyAnalysisConfig()
	if *configPath != "" {
		var err error
		defaults, err = config.LoadAnalysisConfig(*configPath)
		if err != nil {
			log.Fatalf("failed to load analysis config: %v", err)
		}
	}

	db, err := tracedb.NewTraceDB(*dbPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if *migrationsDir != "" {
		if err := db.MigrateUp(*migrationsDir); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	if *importFile != "" {
		store, _, err := trace.LoadFile(*importFile)
		if err != nil {
			log.Fatalf("failed to load node file: %v", err)
		}
		name := *importName
		if name == "" {
			name = *importFile
		}
		id, err := db.ImportStore(name, *importFile, store)
		if err != nil {
			log.Fatalf("failed to import node file: %v", err)
		}
		log.Printf("imported %s as dataset %s", *importFile, id)
	}

	var wg sync.WaitGroup
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ws := monitor.NewWebServer(monitor.WebServerConfig{
		Address:  *listen,
		DB:       db,
		Defaults: defaults,
	})

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := ws.Start(ctx); err != nil {
			log.Printf("web server error: %v", err)
		}
	}()

	wg.Wait()
	log.Println("fracture-report stopped")
}
