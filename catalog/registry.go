package catalog

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/MSubhan6/open-moniker-sub000/binding"
)

// Registry is the in-memory, thread-safe catalog store. It keeps a flat node
// map keyed by path plus a derived parent-to-children index; the two are
// always rebuilt together so readers never observe them out of sync.
//
// Construct one registry at process start and pass it by reference; there is
// no package-level default instance.
type Registry struct {
	mu       sync.RWMutex
	nodes    map[string]*Node
	children map[string]map[string]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		nodes:    make(map[string]*Node),
		children: make(map[string]map[string]struct{}),
	}
}

// Register inserts or overwrites a node by path and links it into the parent
// index.
func (r *Registry) Register(node *Node) error {
	if node == nil || node.Path == "" {
		return fmt.Errorf("catalog node requires a path")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nodes[node.Path] = node.clone()
	linkParent(r.children, node.Path)
	return nil
}

// Get returns a copy of the node at path.
func (r *Registry) Get(path string) (*Node, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	node, ok := r.nodes[path]
	if !ok {
		return nil, false
	}
	return node.clone(), true
}

// Len returns the number of registered nodes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.nodes)
}

// Paths returns every registered path, sorted.
func (r *Registry) Paths() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.nodes))
	for path := range r.nodes {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

// ChildrenPaths returns the sorted child paths of path from the parent index.
func (r *Registry) ChildrenPaths(path string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set, ok := r.children[path]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(set))
	for child := range set {
		out = append(out, child)
	}
	sort.Strings(out)
	return out
}

// Children returns copies of the child nodes of path.
func (r *Registry) Children(path string) []*Node {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set, ok := r.children[path]
	if !ok {
		return nil
	}
	paths := make([]string, 0, len(set))
	for child := range set {
		paths = append(paths, child)
	}
	sort.Strings(paths)
	out := make([]*Node, 0, len(paths))
	for _, child := range paths {
		if node, ok := r.nodes[child]; ok {
			out = append(out, node.clone())
		}
	}
	return out
}

// ResolveOwnership computes the effective ownership for path with per-field
// provenance. domains may be nil to skip the domain fallback.
func (r *Registry) ResolveOwnership(path string, domains DomainLookup) ResolvedOwnership {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.resolveOwnership(path, domains)
}

// FindSourceBinding locates the binding governing path: an exact match first,
// then the nearest ancestor that declares one. It returns the binding, the
// path where it was bound, and whether one was found.
func (r *Registry) FindSourceBinding(path string) (*binding.SourceBinding, string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for current := path; current != ""; current = parentKey(current) {
		if node, ok := r.nodes[current]; ok && node.SourceBinding != nil {
			b := *node.SourceBinding
			b.Config = copyStringMap(node.SourceBinding.Config)
			b.Schema = copyStringMap(node.SourceBinding.Schema)
			return &b, current, true
		}
	}
	return nil, "", false
}

// AtomicReplace swaps the entire catalog for the given nodes. The new node
// map and parent index are built fully before publishing, so concurrent
// readers see either the prior tree or the new one, never a mix. It returns
// the number of nodes in the new tree.
func (r *Registry) AtomicReplace(nodes []*Node) (int, error) {
	newNodes := make(map[string]*Node, len(nodes))
	newChildren := make(map[string]map[string]struct{}, len(nodes))
	for _, node := range nodes {
		if node == nil || node.Path == "" {
			return 0, fmt.Errorf("catalog node requires a path")
		}
		if _, dup := newNodes[node.Path]; dup {
			return 0, fmt.Errorf("duplicate catalog path %q", node.Path)
		}
		newNodes[node.Path] = node.clone()
		linkParent(newChildren, node.Path)
	}

	r.mu.Lock()
	r.nodes = newNodes
	r.children = newChildren
	r.mu.Unlock()
	return len(newNodes), nil
}

// SubPath strips the boundAt prefix (and its trailing separator) from path:
// the portion of a moniker's path beyond the node where its binding was
// declared. Returns "" when path equals boundAt, and also when boundAt is not
// a hierarchy-level prefix of path ("risk.cvar" is not an ancestor of
// "risk.cvarx").
func SubPath(path, boundAt string) string {
	if path == boundAt || boundAt == "" {
		return ""
	}
	if !strings.HasPrefix(path, boundAt) {
		return ""
	}
	rest := path[len(boundAt):]
	if rest[0] != '.' && rest[0] != '/' {
		return ""
	}
	return strings.TrimLeft(rest, "./")
}

// parentKey strips the last hierarchy segment from a catalog path. "/" takes
// precedence over "." when both separators are present, so a dotted node name
// under a slash hierarchy stays intact.
func parentKey(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[:i]
	}
	return ""
}

// ancestorChain returns the hierarchy chain from the root key down to path
// inclusive.
func ancestorChain(path string) []string {
	var chain []string
	for current := path; current != ""; current = parentKey(current) {
		chain = append(chain, current)
	}
	// Reverse into root-first order.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

func linkParent(children map[string]map[string]struct{}, path string) {
	parent := parentKey(path)
	if parent == "" {
		return
	}
	set, ok := children[parent]
	if !ok {
		set = make(map[string]struct{})
		children[parent] = set
	}
	set[path] = struct{}{}
}
