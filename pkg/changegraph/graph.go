// Package changegraph implements spec component C5: a DAG of file-change
// nodes (create/write/edit/delete/undo) supporting history lookup, undo
// record construction, and ancestor traversal. It is a new package — the
// teacher has no direct equivalent — but its concurrency shape (a
// sync.Map-backed primary index plus a secondary index, with an RW-locked
// slice for ordering) follows the same "concurrent map + RWMutex for order"
// discipline spec.md §5 calls for, grounded in the teacher's
// `pkg/llms.Registry` map+sync.RWMutex pattern (see pkg/runtime/registry.go,
// which generalizes the same idiom for the dispatch plane).
package changegraph

import (
	"sync"
	"time"
)

// Operation identifies the kind of change a Node records.
type Operation string

const (
	OpCreate Operation = "Create"
	OpWrite  Operation = "Write"
	OpEdit   Operation = "Edit"
	OpDelete Operation = "Delete"
	OpUndo   Operation = "Undo"
)

// Node is spec §3's "change node".
type Node struct {
	ID          string
	ParentIDs   []string
	AuthorID    string
	TimestampMs int64
	FilePath    string
	Operation   Operation
	// RevertedID is populated only when Operation == OpUndo.
	RevertedID  string
	ForwardDiff string
	ReverseDiff string
	Description string
	WorkspaceID string
}

// Graph is a thread-safe DAG of Nodes. The zero value is not usable; use New.
type Graph struct {
	byID sync.Map // string -> *Node

	mu          sync.RWMutex
	byFile      map[string][]*Node // append-only per path, chronological
	chronology  []*Node            // append-only, chronological across all files
}

// New builds an empty Graph.
func New() *Graph {
	return &Graph{
		byFile: make(map[string][]*Node),
	}
}

// Record atomically inserts node into the primary map, the file-path index,
// and the chronological sequence. Callers own node's identity and timestamp.
func (g *Graph) Record(node *Node) {
	g.byID.Store(node.ID, node)

	g.mu.Lock()
	g.byFile[node.FilePath] = append(g.byFile[node.FilePath], node)
	g.chronology = append(g.chronology, node)
	g.mu.Unlock()
}

// Get returns the node with the given id, if present.
func (g *Graph) Get(id string) (*Node, bool) {
	v, ok := g.byID.Load(id)
	if !ok {
		return nil, false
	}
	return v.(*Node), true
}

// reversed returns a newly-allocated copy of nodes in reverse order, capped
// at limit entries (limit <= 0 means unbounded).
func reversed(nodes []*Node, limit int) []*Node {
	n := len(nodes)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]*Node, n)
	for i := 0; i < n; i++ {
		out[i] = nodes[len(nodes)-1-i]
	}
	return out
}

// FileHistory returns reverse-chronological nodes touching path, capped at
// limit (limit <= 0 means unbounded).
func (g *Graph) FileHistory(path string, limit int) []*Node {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return reversed(g.byFile[path], limit)
}

// LatestForFile returns the most recent node for path, if any.
func (g *Graph) LatestForFile(path string) (*Node, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	nodes := g.byFile[path]
	if len(nodes) == 0 {
		return nil, false
	}
	return nodes[len(nodes)-1], true
}

// WorkspaceHistory returns reverse-chronological nodes across all files,
// capped at limit (limit <= 0 means unbounded).
func (g *Graph) WorkspaceHistory(limit int) []*Node {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return reversed(g.chronology, limit)
}

// LastNUndoable returns up to count reverse-chronological nodes, excluding
// nodes whose operation is Undo.
func (g *Graph) LastNUndoable(count int) []*Node {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]*Node, 0, count)
	for i := len(g.chronology) - 1; i >= 0 && (count <= 0 || len(out) < count); i-- {
		n := g.chronology[i]
		if n.Operation == OpUndo {
			continue
		}
		out = append(out, n)
	}
	return out
}

// RecordUndo atomically constructs and records a new node reverting target,
// per spec §4.11: forward_diff/reverse_diff are swapped from target's, the
// new node's sole parent is target, and file_path/workspace_id are carried
// over unchanged.
func (g *Graph) RecordUndo(id string, targetID string, author string, timestampMs int64) (*Node, bool) {
	target, ok := g.Get(targetID)
	if !ok {
		return nil, false
	}

	node := &Node{
		ID:          id,
		ParentIDs:   []string{targetID},
		AuthorID:    author,
		TimestampMs: timestampMs,
		FilePath:    target.FilePath,
		Operation:   OpUndo,
		RevertedID:  targetID,
		ForwardDiff: target.ReverseDiff,
		ReverseDiff: target.ForwardDiff,
		WorkspaceID: target.WorkspaceID,
	}
	g.Record(node)
	return node, true
}

// Ancestors performs a breadth-first walk over parent_ids starting at
// node_id, visiting each id at most once. The starting node is not included
// in the result.
func (g *Graph) Ancestors(nodeID string) []*Node {
	visited := map[string]bool{nodeID: true}
	queue := []string{nodeID}
	var out []*Node

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		n, ok := g.Get(id)
		if !ok {
			continue
		}
		for _, pid := range n.ParentIDs {
			if visited[pid] {
				continue
			}
			visited[pid] = true
			parent, ok := g.Get(pid)
			if !ok {
				continue
			}
			out = append(out, parent)
			queue = append(queue, pid)
		}
	}
	return out
}

// nowMs is a small helper kept for callers that want a default timestamp;
// the Graph itself never calls time.Now so construction stays deterministic
// and testable.
func nowMs() int64 {
	return time.Now().UnixMilli()
}

// NowMs exposes nowMs for callers (e.g. the command dispatcher) that want
// the same clock source used elsewhere in the runtime.
func NowMs() int64 {
	return nowMs()
}
