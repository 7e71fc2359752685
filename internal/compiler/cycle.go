package compiler

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/tdl/internal/ir"
)

// CycleWarning reports a group of definitions that reference each other
// through field types.
//
// Recursive types are legal definitions, so these are warnings. They matter
// for exports: CUE rejects a definition like `#Node: {next: #Node}` as a
// structural cycle.
type CycleWarning struct {
	Path    []string `json:"path"`    // Cycle path: ["Node", "Node"]
	Message string   `json:"message"` // Human-readable description
	Level   string   `json:"level"`   // "warning"
}

// AnalyzeCycles finds reference cycles among defs.
//
// Only field types naming another definition in defs create edges; builtin
// or unknown type names are leaves. Tarjan's algorithm finds the strongly
// connected components, and each component with more than one member or a
// self-reference becomes one warning.
//
// Nodes are visited in definition order so output is stable across runs.
// An acyclic set returns an empty list.
func AnalyzeCycles(defs []ir.TypeDef) []CycleWarning {
	if len(defs) == 0 {
		return []CycleWarning{}
	}

	graph, order := buildReferenceGraph(defs)
	sccs := tarjanSCC(graph, order)

	rank := make(map[string]int, len(order))
	for i, name := range order {
		rank[name] = i
	}

	warnings := []CycleWarning{}
	for _, scc := range sccs {
		if len(scc) > 1 || hasSelfLoop(scc[0], graph) {
			slices.SortFunc(scc, func(a, b string) int { return rank[a] - rank[b] })
			warnings = append(warnings, cycleSCCToWarning(scc, graph))
		}
	}
	return warnings
}

// referenceGraph maps a type name to the defined types its fields use.
type referenceGraph map[string][]string

// buildReferenceGraph returns the graph and its nodes in definition order.
// Repeated definitions of one name merge their edges.
func buildReferenceGraph(defs []ir.TypeDef) (referenceGraph, []string) {
	defined := make(map[string]bool, len(defs))
	var order []string
	for _, def := range defs {
		if !defined[def.Name] {
			defined[def.Name] = true
			order = append(order, def.Name)
		}
	}

	graph := make(referenceGraph, len(order))
	for _, def := range defs {
		if graph[def.Name] == nil {
			graph[def.Name] = []string{}
		}
		for _, f := range def.Fields {
			if !f.HasType() || !defined[f.TypeName()] {
				continue
			}
			if !slices.Contains(graph[def.Name], f.TypeName()) {
				graph[def.Name] = append(graph[def.Name], f.TypeName())
			}
		}
	}
	return graph, order
}

func hasSelfLoop(node string, graph referenceGraph) bool {
	return slices.Contains(graph[node], node)
}

// tarjanSCC finds strongly connected components using Tarjan's algorithm,
// starting from nodes in the given order.
func tarjanSCC(graph referenceGraph, order []string) [][]string {
	var (
		index   = 0
		stack   []string
		indices = make(map[string]int)
		lowlink = make(map[string]int)
		onStack = make(map[string]bool)
		sccs    [][]string
	)

	var strongConnect func(string)
	strongConnect = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range graph[v] {
			if _, visited := indices[w]; !visited {
				strongConnect(w)
				lowlink[v] = min(lowlink[v], lowlink[w])
			} else if onStack[w] {
				lowlink[v] = min(lowlink[v], indices[w])
			}
		}

		// v is a root: pop its component
		if lowlink[v] == indices[v] {
			var scc []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			sccs = append(sccs, scc)
		}
	}

	for _, node := range order {
		if _, visited := indices[node]; !visited {
			strongConnect(node)
		}
	}
	return sccs
}

// cycleSCCToWarning converts an SCC whose members are in definition order.
func cycleSCCToWarning(scc []string, graph referenceGraph) CycleWarning {
	if len(scc) == 1 {
		name := scc[0]
		return CycleWarning{
			Path:    []string{name, name},
			Message: fmt.Sprintf("Self-referencing type detected: %s → %s", name, name),
			Level:   "warning",
		}
	}

	path := reconstructCyclePath(scc, graph)
	return CycleWarning{
		Path:    path,
		Message: fmt.Sprintf("Reference cycle detected: %s", strings.Join(path, " → ")),
		Level:   "warning",
	}
}

// reconstructCyclePath walks edges inside the SCC from its first member
// until it returns to the start or runs out of unvisited members.
func reconstructCyclePath(scc []string, graph referenceGraph) []string {
	if len(scc) == 0 {
		return []string{}
	}

	inSCC := make(map[string]bool, len(scc))
	for _, node := range scc {
		inSCC[node] = true
	}

	start := scc[0]
	current := start
	path := []string{current}
	visited := make(map[string]bool)

	for {
		visited[current] = true

		var next string
		for _, neighbor := range graph[current] {
			if inSCC[neighbor] && (!visited[neighbor] || neighbor == start) {
				next = neighbor
				break
			}
		}
		if next == "" {
			break
		}

		path = append(path, next)
		if next == start {
			break
		}
		current = next
	}
	return path
}
