package sources_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/vstmap/pkg/errors"
	"github.com/agentstation/vstmap/pkg/inventory"
	"github.com/agentstation/vstmap/pkg/sources"
)

type fakeSource struct {
	id    sources.ID
	table *inventory.Table
	err   error
	calls *atomic.Int32
}

func (f *fakeSource) ID() sources.ID { return f.id }
func (f *fakeSource) Path() string   { return string(f.id) + ".csv" }

func (f *fakeSource) Load(_ context.Context) (*inventory.Table, uint64, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.table, uint64(len(f.table.Rows)), nil
}

func TestIDFromPath(t *testing.T) {
	tests := []struct {
		path     string
		expected sources.ID
	}{
		{"main.csv", "main"},
		{"/data/studio-b.csv", "studio-b"},
		{"inventory.2024.csv", "inventory.2024"},
		{"noext", "noext"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, sources.IDFromPath(tt.path))
		})
	}
}

func TestAssignIDs(t *testing.T) {
	ids := sources.AssignIDs([]string{"a/main.csv", "extra.csv", "b/main.csv", "c/main.tsv"})
	assert.Equal(t, []sources.ID{"main", "extra", "main (2)", "main (3)"}, ids)

	// A literal stem that collides with a generated name is bumped further.
	ids = sources.AssignIDs([]string{"x.csv", "x (2).csv", "y/x.csv"})
	assert.Equal(t, []sources.ID{"x", "x (2)", "x (3)"}, ids)
}

func TestLoadAllPreservesOrder(t *testing.T) {
	var calls atomic.Int32
	var srcs []sources.Source
	for i, id := range []sources.ID{"main", "b", "c", "d", "e", "f"} {
		rows := make([]inventory.Row, i)
		srcs = append(srcs, &fakeSource{id: id, table: &inventory.Table{Rows: rows}, calls: &calls})
	}

	loaded := sources.LoadAll(context.Background(), srcs, 2)
	require.Len(t, loaded, len(srcs))
	for i, l := range loaded {
		assert.Equal(t, srcs[i].ID(), l.ID)
		assert.Equal(t, srcs[i].Path(), l.Path)
		assert.False(t, l.Failed())
		assert.Equal(t, i, l.Table.Len())
	}
	assert.Equal(t, int32(len(srcs)), calls.Load(), "each source loads exactly once")
}

func TestLoadAllReportsFailuresPerSource(t *testing.T) {
	var calls atomic.Int32
	boom := errors.NewIOError("read", "bad.csv", errors.New("permission denied"))
	srcs := []sources.Source{
		&fakeSource{id: "main", table: &inventory.Table{}, calls: &calls},
		&fakeSource{id: "bad", err: boom, calls: &calls},
	}

	loaded := sources.LoadAll(context.Background(), srcs, 0)
	assert.False(t, loaded[0].Failed())
	assert.True(t, loaded[1].Failed())
	assert.Nil(t, loaded[1].Table)
	assert.ErrorIs(t, loaded[1].Err, boom)
}

func TestLoadAllCancelled(t *testing.T) {
	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loaded := sources.LoadAll(ctx, []sources.Source{
		&fakeSource{id: "main", table: &inventory.Table{}, calls: &calls},
	}, 1)
	assert.ErrorIs(t, loaded[0].Err, context.Canceled)
	assert.Equal(t, int32(0), calls.Load())
}
