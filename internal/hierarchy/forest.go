// Package hierarchy turns flat task snapshots into renderable
// parent/child forests and per-snapshot summary figures.
package hierarchy

import (
	"log"

	"github.com/hollis/taskflow/internal/model"
)

// Node wraps a task with its materialized children. Nodes are rebuilt
// on every pass and owned exclusively by the forest they belong to.
type Node struct {
	Task     model.Task
	Children []*Node
}

// BuildForest assembles a parent-first forest from a flat task slice.
// A task whose parent id is absent from the input becomes a root: the
// parent may well exist in the backend, but if a filter removed it from
// this snapshot the child is deliberately promoted for this render.
// Children keep input order; callers wanting a different order must
// pre-sort the flat slice.
//
// Parent chains that loop back onto themselves are broken: the first
// task (in input order) whose ancestor chain returns to it loses its
// parent edge, becomes a root, and gets a logged warning. Later members
// of the loop then attach normally under the promoted task.
func BuildForest(tasks []model.Task) []*Node {
	index := make(map[string]*Node, len(tasks))
	for i := range tasks {
		index[tasks[i].ID] = &Node{Task: tasks[i]}
	}

	parent := make(map[string]string, len(tasks))
	for i := range tasks {
		if tasks[i].ParentID != nil {
			parent[tasks[i].ID] = *tasks[i].ParentID
		}
	}

	// Break cycles before attaching anything
	for _, t := range tasks {
		if inCycle(t.ID, parent, index) {
			log.Printf("hierarchy: task %q (%s) is part of a parent cycle; promoting to root", t.ID, t.Text)
			delete(parent, t.ID)
		}
	}

	var roots []*Node
	for _, t := range tasks {
		node := index[t.ID]
		pid, hasParent := parent[t.ID]
		if !hasParent {
			roots = append(roots, node)
			continue
		}
		p, present := index[pid]
		if !present {
			// Dangling reference, e.g. the parent was filtered out
			roots = append(roots, node)
			continue
		}
		p.Children = append(p.Children, node)
	}
	return roots
}

// inCycle walks the ancestor chain of id and reports whether it loops
// back to id. Chains leaving the loaded set terminate the walk.
func inCycle(id string, parent map[string]string, index map[string]*Node) bool {
	cur := id
	for range index {
		pid, ok := parent[cur]
		if !ok {
			return false
		}
		if _, loaded := index[pid]; !loaded {
			return false
		}
		if pid == id {
			return true
		}
		cur = pid
	}
	return false
}

// Walk visits every node of the forest depth-first, parents before
// children, calling fn with the node and its nesting depth
func Walk(roots []*Node, fn func(n *Node, depth int)) {
	var visit func(n *Node, depth int)
	visit = func(n *Node, depth int) {
		fn(n, depth)
		for _, c := range n.Children {
			visit(c, depth+1)
		}
	}
	for _, r := range roots {
		visit(r, 0)
	}
}
