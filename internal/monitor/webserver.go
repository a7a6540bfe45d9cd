// Package monitor serves the HTTP interface over trace datasets: dataset
// listings, summary statistics, rose histograms as JSON, and a debugging
// chart endpoint.
package monitor

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/strata-data/fracture.report/internal/config"
	"github.com/strata-data/fracture.report/internal/geometry"
	"github.com/strata-data/fracture.report/internal/httputil"
	"github.com/strata-data/fracture.report/internal/rose"
	"github.com/strata-data/fracture.report/internal/trace"
	"github.com/strata-data/fracture.report/internal/tracedb"
)

// WebServer handles the HTTP interface for trace analysis.
type WebServer struct {
	address  string
	db       *tracedb.TraceDB
	defaults *config.AnalysisConfig
	server   *http.Server
}

// WebServerConfig contains configuration options for the web server.
type WebServerConfig struct {
	Address  string
	DB       *tracedb.TraceDB
	Defaults *config.AnalysisConfig
}

// NewWebServer creates a new web server with the provided configuration.
func NewWebServer(cfg WebServerConfig) *WebServer {
	defaults := cfg.Defaults
	if defaults == nil {
		defaults = config.EmptyAnalysisConfig()
	}
	ws := &WebServer{
		address:  cfg.Address,
		db:       cfg.DB,
		defaults: defaults,
	}
	ws.server = &http.Server{
		Addr:    ws.address,
		Handler: ws.setupRoutes(),
	}
	return ws
}

// Start begins the HTTP server in a goroutine and handles graceful shutdown.
func (ws *WebServer) Start(ctx context.Context) error {
	go func() {
		log.Printf("Starting HTTP server on %s", ws.address)
		if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := ws.server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
		if err := ws.server.Close(); err != nil {
			log.Printf("HTTP server force close error: %v", err)
		}
	}

	log.Printf("HTTP server routine stopped")
	return nil
}

// setupRoutes configures the HTTP routes and handlers.
func (ws *WebServer) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", ws.handleHealth)
	mux.HandleFunc("/api/datasets", ws.handleDatasets)
	mux.HandleFunc("/api/stats", ws.handleStats)
	mux.HandleFunc("/api/rose", ws.handleRose)
	mux.HandleFunc("/debug/rose", ws.handleRoseChart)

	return mux
}

func (ws *WebServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONOK(w, map[string]string{"status": "ok"})
}

func (ws *WebServer) handleDatasets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	datasets, err := ws.db.ListDatasets()
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to list datasets: %v", err))
		return
	}
	if datasets == nil {
		datasets = []tracedb.Dataset{}
	}
	httputil.WriteJSONOK(w, datasets)
}

// StatsResponse summarizes one dataset's geometry.
type StatsResponse struct {
	Dataset          string       `json:"dataset"`
	Traces           int          `json:"traces"`
	Vertices         int          `json:"vertices"`
	Segments         int          `json:"segments"`
	Bounds           trace.Bounds `json:"bounds"`
	MeanSegmentLen   float64      `json:"mean_segment_length"`
	StddevSegmentLen float64      `json:"stddev_segment_length"`
	MeanTraceLen     float64      `json:"mean_trace_length"`
	StddevTraceLen   float64      `json:"stddev_trace_length"`
}

func (ws *WebServer) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	store, datasetID, ok := ws.loadDataset(w, r)
	if !ok {
		return
	}

	bounds, err := store.BoundingBox()
	if err != nil {
		httputil.Unprocessable(w, fmt.Sprintf("dataset has no vertices: %v", err))
		return
	}
	segLens, err := geometry.SegmentLengths(store)
	if err != nil {
		httputil.Unprocessable(w, fmt.Sprintf("dataset has no segments: %v", err))
		return
	}
	traceLens, err := geometry.TraceLengths(store)
	if err != nil {
		httputil.Unprocessable(w, fmt.Sprintf("dataset has no traces: %v", err))
		return
	}

	resp := StatsResponse{
		Dataset:  datasetID,
		Traces:   store.Len(),
		Vertices: store.NumVertices(),
		Segments: store.NumSegments(),
		Bounds:   bounds,
	}
	resp.MeanSegmentLen, resp.StddevSegmentLen = stat.MeanStdDev(segLens, nil)
	resp.MeanTraceLen, resp.StddevTraceLen = stat.MeanStdDev(traceLens, nil)
	httputil.WriteJSONOK(w, resp)
}

// BinResponse is one histogram wedge. Aggregate is null for empty bins;
// consumers must not treat a missing aggregate as zero.
type BinResponse struct {
	Start     float64  `json:"start"`
	Width     float64  `json:"width"`
	Count     float64  `json:"count"`
	Radius    float64  `json:"radius"`
	Aggregate *float64 `json:"aggregate"`
}

// RoseResponse carries the bins plus the configuration that produced them.
type RoseResponse struct {
	Dataset       string        `json:"dataset"`
	Bins          []BinResponse `json:"bins"`
	BinCount      int           `json:"bin_count"`
	Bidirectional bool          `json:"bidirectional"`
	RadiusMode    string        `json:"radius_mode"`
	Reduction     string        `json:"reduction"`
	Unit          string        `json:"unit"`
}

func (ws *WebServer) handleRose(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	store, datasetID, ok := ws.loadDataset(w, r)
	if !ok {
		return
	}
	query, err := ws.roseQuery(r)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	bins, err := ws.binStore(store, query)
	if err != nil {
		httputil.Unprocessable(w, err.Error())
		return
	}

	resp := RoseResponse{
		Dataset:       datasetID,
		Bins:          make([]BinResponse, 0, len(bins)),
		BinCount:      query.cfg.BinCount,
		Bidirectional: query.cfg.Bidirectional,
		RadiusMode:    query.radiusMode,
		Reduction:     query.reduction,
		Unit:          "degrees",
	}
	for _, b := range bins {
		br := BinResponse{Start: b.Start, Width: b.Width, Count: b.Count, Radius: b.Radius}
		if b.HasAggregate {
			agg := b.Aggregate
			br.Aggregate = &agg
		}
		resp.Bins = append(resp.Bins, br)
	}
	httputil.WriteJSONOK(w, resp)
}

// roseQuery is the parsed /api/rose and /debug/rose query, falling back
// to the configured analysis defaults.
type roseQuery struct {
	cfg        rose.Config
	radiusMode string
	reduction  string
}

func (ws *WebServer) roseQuery(r *http.Request) (roseQuery, error) {
	// Start from the configured defaults, then let query params override.
	over := *ws.defaults

	if v := r.URL.Query().Get("bins"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return roseQuery{}, fmt.Errorf("invalid bins %q", v)
		}
		over.Bins = &n
	}
	if v := r.URL.Query().Get("bidirectional"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return roseQuery{}, fmt.Errorf("invalid bidirectional %q", v)
		}
		over.Bidirectional = &b
	}
	if v := r.URL.Query().Get("radius_mode"); v != "" {
		over.RadiusMode = &v
	}
	if v := r.URL.Query().Get("reduction"); v != "" {
		over.Reduction = &v
	}
	if err := over.Validate(); err != nil {
		return roseQuery{}, err
	}
	return roseQuery{
		cfg:        over.RoseConfig(),
		radiusMode: over.GetRadiusMode(),
		reduction:  over.GetReduction(),
	}, nil
}

// binStore derives strike angles (with segment lengths as the co-located
// z values) and bins them.
func (ws *WebServer) binStore(store *trace.Store, query roseQuery) ([]rose.Bin, error) {
	angles, err := geometry.SegmentAngles(store)
	if err != nil {
		return nil, fmt.Errorf("no segments to bin: %w", err)
	}
	lengths, err := geometry.SegmentLengths(store)
	if err != nil {
		return nil, fmt.Errorf("no segment lengths: %w", err)
	}
	return rose.Bins(angles, lengths, query.cfg)
}

// loadDataset resolves the dataset query param and loads its store.
func (ws *WebServer) loadDataset(w http.ResponseWriter, r *http.Request) (*trace.Store, string, bool) {
	datasetID := r.URL.Query().Get("dataset")
	if datasetID == "" {
		httputil.BadRequest(w, "dataset query param is required")
		return nil, "", false
	}
	store, err := ws.db.LoadStore(datasetID)
	if err != nil {
		httputil.NotFound(w, fmt.Sprintf("failed to load dataset: %v", err))
		return nil, "", false
	}
	return store, datasetID, true
}
