package tracedb

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/strata-data/fracture.report/internal/trace"
)

func testDB(t *testing.T) *TraceDB {
	t.Helper()
	db, err := NewTraceDB(filepath.Join(t.TempDir(), "traces.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleStore() *trace.Store {
	s := trace.NewStore()
	s.Add(trace.Trace{Vertices: []trace.Point{{X: 0, Y: 0}, {X: 0, Y: 10}}})
	s.Add(trace.Trace{Vertices: []trace.Point{{X: 1.5, Y: 2.5}}}) // degenerate, still persisted
	s.Add(trace.Trace{Vertices: []trace.Point{{X: -3, Y: 4}, {X: 0, Y: 0}, {X: 3, Y: -4}}})
	return s
}

func TestImportAndLoadRoundTrip(t *testing.T) {
	db := testDB(t)
	store := sampleStore()

	id, err := db.ImportStore("quarry-north", "quarry_north.txt", store)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	loaded, err := db.LoadStore(id)
	require.NoError(t, err)

	var want, got [][]trace.Point
	for _, tr := range store.Traces() {
		want = append(want, tr.Vertices)
	}
	for _, tr := range loaded.Traces() {
		got = append(got, tr.Vertices)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestListDatasets(t *testing.T) {
	db := testDB(t)

	id1, err := db.ImportStore("first", "a.txt", sampleStore())
	require.NoError(t, err)
	id2, err := db.ImportStore("second", "b.txt", sampleStore())
	require.NoError(t, err)

	datasets, err := db.ListDatasets()
	require.NoError(t, err)
	require.Len(t, datasets, 2)

	seen := map[string]bool{}
	for _, d := range datasets {
		seen[d.ID] = true
		require.Equal(t, 3, d.TraceCount)
		require.Equal(t, 6, d.VertexCount)
	}
	require.True(t, seen[id1])
	require.True(t, seen[id2])
}

func TestLoadStoreUnknownDataset(t *testing.T) {
	db := testDB(t)
	_, err := db.LoadStore("no-such-dataset")
	require.ErrorIs(t, err, trace.ErrEmptyInput)
}
