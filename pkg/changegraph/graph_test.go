package changegraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func node(id, parent, path string, op Operation, ts int64) *Node {
	var parents []string
	if parent != "" {
		parents = []string{parent}
	}
	return &Node{
		ID:          id,
		ParentIDs:   parents,
		FilePath:    path,
		Operation:   op,
		TimestampMs: ts,
		ForwardDiff: "+" + id,
		ReverseDiff: "-" + id,
		WorkspaceID: "ws1",
	}
}

func TestRecordAndGet(t *testing.T) {
	g := New()
	n := node("n1", "", "a.txt", OpCreate, 1)
	g.Record(n)

	got, ok := g.Get("n1")
	require.True(t, ok)
	assert.Equal(t, n, got)
}

func TestFileHistoryIsReverseChronologicalAndLimited(t *testing.T) {
	g := New()
	g.Record(node("n1", "", "a.txt", OpCreate, 1))
	g.Record(node("n2", "n1", "a.txt", OpEdit, 2))
	g.Record(node("n3", "n2", "a.txt", OpEdit, 3))
	g.Record(node("n4", "", "b.txt", OpCreate, 4))

	hist := g.FileHistory("a.txt", 0)
	require.Len(t, hist, 3)
	assert.Equal(t, []string{"n3", "n2", "n1"}, []string{hist[0].ID, hist[1].ID, hist[2].ID})

	limited := g.FileHistory("a.txt", 2)
	require.Len(t, limited, 2)
	assert.Equal(t, "n3", limited[0].ID)
	assert.Equal(t, "n2", limited[1].ID)
}

func TestLatestForFile(t *testing.T) {
	g := New()
	g.Record(node("n1", "", "a.txt", OpCreate, 1))
	g.Record(node("n2", "n1", "a.txt", OpEdit, 2))

	latest, ok := g.LatestForFile("a.txt")
	require.True(t, ok)
	assert.Equal(t, "n2", latest.ID)

	_, ok = g.LatestForFile("missing.txt")
	assert.False(t, ok)
}

func TestWorkspaceHistoryCrossesFiles(t *testing.T) {
	g := New()
	g.Record(node("n1", "", "a.txt", OpCreate, 1))
	g.Record(node("n2", "", "b.txt", OpCreate, 2))
	g.Record(node("n3", "", "c.txt", OpCreate, 3))

	hist := g.WorkspaceHistory(0)
	require.Len(t, hist, 3)
	assert.Equal(t, []string{"n3", "n2", "n1"}, []string{hist[0].ID, hist[1].ID, hist[2].ID})
}

func TestLastNUndoableExcludesUndoNodes(t *testing.T) {
	g := New()
	g.Record(node("n1", "", "a.txt", OpCreate, 1))
	g.Record(node("n2", "n1", "a.txt", OpEdit, 2))
	undoNode, ok := g.RecordUndo("n3", "n2", "alice", 3)
	require.True(t, ok)
	assert.Equal(t, OpUndo, undoNode.Operation)

	undoable := g.LastNUndoable(10)
	ids := make([]string, len(undoable))
	for i, n := range undoable {
		ids[i] = n.ID
	}
	assert.Equal(t, []string{"n2", "n1"}, ids)
}

func TestRecordUndoSwapsDiffsAndLinksParent(t *testing.T) {
	g := New()
	target := node("n1", "", "a.txt", OpEdit, 1)
	target.ForwardDiff = "fwd"
	target.ReverseDiff = "rev"
	g.Record(target)

	undo, ok := g.RecordUndo("n2", "n1", "alice", 2)
	require.True(t, ok)
	assert.Equal(t, "rev", undo.ForwardDiff)
	assert.Equal(t, "fwd", undo.ReverseDiff)
	assert.Equal(t, []string{"n1"}, undo.ParentIDs)
	assert.Equal(t, "n1", undo.RevertedID)
	assert.Equal(t, target.FilePath, undo.FilePath)
	assert.Equal(t, target.WorkspaceID, undo.WorkspaceID)
}

func TestRecordUndoOfMissingTargetFails(t *testing.T) {
	g := New()
	_, ok := g.RecordUndo("n2", "missing", "alice", 2)
	assert.False(t, ok)
}

func TestAncestorsBreadthFirstVisitsOnce(t *testing.T) {
	g := New()
	// Diamond: n4's parents are n2 and n3, both descend from n1.
	g.Record(node("n1", "", "a.txt", OpCreate, 1))
	g.Record(node("n2", "n1", "a.txt", OpEdit, 2))
	g.Record(node("n3", "n1", "a.txt", OpEdit, 3))
	n4 := node("n4", "", "a.txt", OpEdit, 4)
	n4.ParentIDs = []string{"n2", "n3"}
	g.Record(n4)

	ancestors := g.Ancestors("n4")
	ids := make(map[string]bool)
	for _, n := range ancestors {
		ids[n.ID] = true
	}
	assert.Len(t, ancestors, 3)
	assert.True(t, ids["n1"])
	assert.True(t, ids["n2"])
	assert.True(t, ids["n3"])
}
