// Package resolver wires the moniker parser, catalog registry, access policy
// engine, and binding renderer into the full resolution pipeline, fronted by
// a stale-while-revalidate cache that is cleared wholesale on catalog reload.
package resolver

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/MSubhan6/open-moniker-sub000/binding"
	"github.com/MSubhan6/open-moniker-sub000/catalog"
	"github.com/MSubhan6/open-moniker-sub000/internal/cache"
	"github.com/MSubhan6/open-moniker-sub000/moniker"
)

// Resolution is the outcome of resolving a moniker: where the data lives,
// how to query it, and who owns it. It never contains the data itself.
type Resolution struct {
	Moniker    moniker.Moniker           `json:"moniker"`
	Descriptor *binding.Descriptor       `json:"descriptor"`
	Ownership  catalog.ResolvedOwnership `json:"ownership"`
	BoundAt    string                    `json:"bound_at"`
	SubPath    string                    `json:"sub_path,omitempty"`
	Warning    string                    `json:"warning,omitempty"`
}

// Description is the outcome of describing a moniker. Node is nil when the
// catalog has no entry at the path; Describe never fails for that.
type Description struct {
	Moniker    moniker.Moniker           `json:"moniker"`
	Node       *catalog.Node             `json:"node,omitempty"`
	Ownership  catalog.ResolvedOwnership `json:"ownership"`
	HasBinding bool                      `json:"has_binding"`
	SourceType binding.SourceType        `json:"source_type,omitempty"`
	BoundAt    string                    `json:"bound_at,omitempty"`
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithDomains supplies the governance-domain lookup for ownership fallback.
func WithDomains(domains catalog.DomainLookup) Option {
	return func(r *Resolver) { r.domains = domains }
}

// WithCache fronts resolve and describe lookups with a stale-while-revalidate
// cache over backend: entries are served fresh within freshTTL and served
// stale for up to staleGrace longer while a background refresh runs.
func WithCache(backend cache.Cache, freshTTL, staleGrace time.Duration) Option {
	return func(r *Resolver) {
		r.cache = cache.NewSWRCache(backend, freshTTL, staleGrace)
	}
}

// WithLogger sets the structured logger. The default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) { r.logger = logger }
}

// Resolver resolves moniker strings against a catalog registry.
type Resolver struct {
	registry *catalog.Registry
	domains  catalog.DomainLookup
	cache    *cache.SWRCache
	logger   *zap.Logger
}

// New creates a Resolver over the given registry.
func New(registry *catalog.Registry, opts ...Option) *Resolver {
	r := &Resolver{
		registry: registry,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Registry returns the underlying catalog registry.
func (r *Resolver) Registry() *catalog.Registry {
	return r.registry
}

// Resolve parses the moniker string, locates its binding, checks the access
// policy, and renders the connection descriptor. The policy check runs before
// the descriptor is built, so a denied query fails before any adapter could
// be involved. Successful resolutions are cached; denials and errors are
// recomputed on every call.
//
// Errors: *moniker.ParseError, *NotFoundError, *AccessDeniedError,
// *ResolutionError.
func (r *Resolver) Resolve(ctx context.Context, input string) (*Resolution, error) {
	m, err := moniker.Parse(input)
	if err != nil {
		return nil, err
	}
	if r.cache == nil {
		return r.resolve(m)
	}

	key := cache.ResolveKey(m.String())
	raw, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) ([]byte, error) {
		res, err := r.resolve(m)
		if err != nil {
			return nil, err
		}
		return json.Marshal(res)
	})
	if err != nil {
		return nil, err
	}

	var res Resolution
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, &ResolutionError{Path: m.Path.String(), Err: err}
	}
	return &res, nil
}

func (r *Resolver) resolve(m moniker.Moniker) (*Resolution, error) {
	path := m.Path.String()
	b, boundAt, found := r.registry.FindSourceBinding(path)
	if !found {
		return nil, &NotFoundError{Path: path}
	}
	subPath := catalog.SubPath(path, boundAt)

	var segments []string
	if subPath != "" {
		segments = strings.Split(subPath, "/")
	}

	warning := ""
	if node, ok := r.registry.Get(boundAt); ok && node.AccessPolicy != nil {
		decision, err := node.AccessPolicy.Validate(segments)
		if err != nil {
			return nil, &ResolutionError{Path: path, Err: err}
		}
		if !decision.Allowed {
			r.logger.Info("access denied",
				zap.String("moniker", m.String()),
				zap.String("reason", decision.Reason),
				zap.Int64("estimated_rows", decision.EstimatedRows))
			return nil, &AccessDeniedError{Message: decision.Reason, EstimatedRows: decision.EstimatedRows}
		}
		warning = decision.Warning
	}

	desc, err := binding.Render(b, m, subPath)
	if err != nil {
		return nil, &ResolutionError{Path: path, Err: err}
	}

	return &Resolution{
		Moniker:    m,
		Descriptor: desc,
		Ownership:  r.registry.ResolveOwnership(path, r.domains),
		BoundAt:    boundAt,
		SubPath:    subPath,
		Warning:    warning,
	}, nil
}

// Describe returns the catalog's view of a moniker: the node (if any), the
// resolved ownership, and whether a binding governs the path. A missing node
// is not an error; a malformed moniker still is. Descriptions are cached
// under their own key space, separate from resolutions.
func (r *Resolver) Describe(ctx context.Context, input string) (*Description, error) {
	m, err := moniker.Parse(input)
	if err != nil {
		return nil, err
	}
	if r.cache == nil {
		return r.describe(m), nil
	}

	key := cache.DescribeKey(m.String())
	raw, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) ([]byte, error) {
		return json.Marshal(r.describe(m))
	})
	if err != nil {
		return nil, err
	}

	var desc Description
	if err := json.Unmarshal(raw, &desc); err != nil {
		return nil, &ResolutionError{Path: m.Path.String(), Err: err}
	}
	return &desc, nil
}

func (r *Resolver) describe(m moniker.Moniker) *Description {
	path := m.Path.String()
	desc := &Description{
		Moniker:   m,
		Ownership: r.registry.ResolveOwnership(path, r.domains),
	}
	if node, ok := r.registry.Get(path); ok {
		desc.Node = node
	}
	if b, boundAt, found := r.registry.FindSourceBinding(path); found {
		desc.HasBinding = true
		desc.SourceType = b.SourceType
		desc.BoundAt = boundAt
	}
	return desc
}

// ListChildren returns the leaf names of the catalog children of the
// moniker's path, sourced purely from the registry index.
func (r *Resolver) ListChildren(ctx context.Context, input string) ([]string, error) {
	m, err := moniker.Parse(input)
	if err != nil {
		return nil, err
	}
	children := r.registry.ChildrenPaths(m.Path.String())
	names := make([]string, 0, len(children))
	for _, child := range children {
		names = append(names, leafName(child))
	}
	return names, nil
}

// Reload atomically swaps the catalog for the given nodes and clears the
// resolution and description caches, since ownership, bindings, and policies
// may all have changed for any path. It returns the new node count.
func (r *Resolver) Reload(ctx context.Context, nodes []*catalog.Node) (int, error) {
	count, err := r.registry.AtomicReplace(nodes)
	if err != nil {
		return 0, err
	}
	if r.cache != nil {
		if err := r.cache.Clear(ctx); err != nil {
			r.logger.Warn("resolution cache clear failed", zap.Error(err))
		}
	}
	r.logger.Info("catalog reloaded", zap.Int("nodes", count))
	return count, nil
}

// leafName returns the last hierarchy segment of a catalog path.
func leafName(path string) string {
	if i := strings.LastIndexAny(path, "./"); i >= 0 {
		return path[i+1:]
	}
	return path
}
