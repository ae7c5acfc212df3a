// Package catalog loads the endpoint catalog once, normalizes it and serves
// fresh endpoint forms by id.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/insightone/insightone-mcp/internal/schema"
	"github.com/insightone/insightone-mcp/pkg/client"
	"github.com/insightone/insightone-mcp/pkg/explorer"
)

// ErrNotFound is returned when no endpoint has the requested id.
var ErrNotFound = errors.New("endpoint not found")

// LoadFunc fetches the catalog and its raw JSON payload.
type LoadFunc func(ctx context.Context) (*client.Catalog, []byte, error)

// FromClient loads the catalog from the catalog route.
func FromClient(c *client.Client) LoadFunc {
	return c.FetchCatalog
}

// FromFile loads the catalog from an offline snapshot.
func FromFile(path string) LoadFunc {
	return func(ctx context.Context) (*client.Catalog, []byte, error) {
		return client.LoadCatalogFile(path)
	}
}

// Rename records an endpoint whose id was suffixed to keep ids unique.
type Rename struct {
	Name string `json:"name"`
	From string `json:"from"`
	To   string `json:"to"`
}

// Info describes the loaded catalog.
type Info struct {
	Endpoints int                 `json:"endpoints"`
	ByTier    map[client.Tier]int `json:"by_tier"`
	LoadedAt  time.Time           `json:"loaded_at"`
	Warnings  []string            `json:"warnings,omitempty"`
	Renamed   []Rename            `json:"renamed,omitempty"`
}

// Store holds the normalized catalog. It is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	endpoints []explorer.Endpoint
	byID      map[string]int
	info      Info
	loaded    bool

	load   LoadFunc
	ttl    time.Duration
	onLoad []func([]explorer.Endpoint)
	group  singleflight.Group
}

// Option configures a Store.
type Option func(*Store)

// WithTTL reloads the catalog when it is older than ttl. Zero loads it once.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// OnLoad registers fn to receive every newly loaded snapshot.
func OnLoad(fn func([]explorer.Endpoint)) Option {
	return func(s *Store) {
		s.onLoad = append(s.onLoad, fn)
	}
}

// NewStore creates a Store. Nothing is fetched until first use.
func NewStore(load LoadFunc, opts ...Option) *Store {
	s := &Store{
		load: load,
		byID: make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ensure loads the catalog unless a fresh copy is already held. Concurrent
// callers share one fetch. When a reload fails and an older catalog is held,
// the older catalog keeps being served.
func (s *Store) Ensure(ctx context.Context) error {
	s.mu.RLock()
	loaded, stale := s.loaded, s.isStale()
	s.mu.RUnlock()

	if loaded && !stale {
		return nil
	}

	_, err := s.reload(ctx, false)
	if err != nil && loaded {
		slog.Warn("catalog reload failed, serving previous catalog", slog.String("error", err.Error()))
		return nil
	}
	return err
}

// Refresh reloads the catalog unconditionally.
func (s *Store) Refresh(ctx context.Context) (*Info, error) {
	return s.reload(ctx, true)
}

func (s *Store) isStale() bool {
	return s.ttl > 0 && time.Since(s.info.LoadedAt) > s.ttl
}

// reload fetches the catalog through the singleflight group. Unless force is
// set, a catalog loaded by a flight that finished in the meantime is reused.
func (s *Store) reload(ctx context.Context, force bool) (*Info, error) {
	key := "ensure"
	if force {
		key = "refresh"
	}
	v, err, _ := s.group.Do(key, func() (any, error) {
		if !force {
			s.mu.RLock()
			fresh, info := s.loaded && !s.isStale(), s.info
			s.mu.RUnlock()
			if fresh {
				return info, nil
			}
		}
		return s.fetch(ctx)
	})
	if err != nil {
		return nil, err
	}
	info := v.(Info)
	return &info, nil
}

func (s *Store) fetch(ctx context.Context) (Info, error) {
	start := time.Now()

	cat, raw, err := s.load(ctx)
	if err != nil {
		return Info{}, fmt.Errorf("loading catalog: %w", err)
	}

	var warnings []string
	if res, err := schema.ValidateCatalog(raw); err != nil {
		warnings = append(warnings, err.Error())
	} else if !res.Valid {
		warnings = res.Errors
	}
	for _, w := range warnings {
		slog.Warn("catalog payload does not match schema", slog.String("violation", w))
	}

	endpoints, byID, renamed := normalize(cat)
	for _, r := range renamed {
		slog.Warn("duplicate endpoint id renamed",
			slog.String("name", r.Name),
			slog.String("from", r.From),
			slog.String("to", r.To),
		)
	}

	info := Info{
		Endpoints: len(endpoints),
		ByTier:    make(map[client.Tier]int, len(client.Tiers)),
		LoadedAt:  time.Now(),
		Warnings:  warnings,
		Renamed:   renamed,
	}
	for _, t := range client.Tiers {
		info.ByTier[t] = len(cat.Tier(t))
	}

	s.mu.Lock()
	s.endpoints = endpoints
	s.byID = byID
	s.info = info
	s.loaded = true
	s.mu.Unlock()

	slog.Info("catalog loaded",
		slog.Int("endpoints", info.Endpoints),
		slog.Int("warnings", len(warnings)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	for _, fn := range s.onLoad {
		fn(s.Snapshot())
	}
	return info, nil
}

// normalize converts every descriptor in tier order. Endpoints whose id is
// already taken get the first free suffix _2, _3, ...
func normalize(cat *client.Catalog) ([]explorer.Endpoint, map[string]int, []Rename) {
	endpoints := make([]explorer.Endpoint, 0, cat.Len())
	byID := make(map[string]int, cat.Len())
	var renamed []Rename

	for _, tier := range client.Tiers {
		for _, raw := range cat.Tier(tier) {
			ep := explorer.NormalizeEndpoint(raw, tier)
			if _, taken := byID[ep.ID]; taken {
				base := ep.ID
				for n := 2; ; n++ {
					candidate := base + "_" + strconv.Itoa(n)
					if _, taken := byID[candidate]; !taken {
						ep.ID = candidate
						break
					}
				}
				renamed = append(renamed, Rename{Name: ep.Name, From: base, To: ep.ID})
			}
			byID[ep.ID] = len(endpoints)
			endpoints = append(endpoints, ep)
		}
	}
	return endpoints, byID, renamed
}

// Get returns a fresh copy of the endpoint with parameter values reset to
// their defaults.
func (s *Store) Get(ctx context.Context, id string) (*explorer.Endpoint, error) {
	if err := s.Ensure(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	ep := s.endpoints[i].Clone()
	ep.Reset()
	return ep, nil
}

// List returns the endpoints in catalog order, optionally restricted to one
// tier (empty tier means all).
func (s *Store) List(ctx context.Context, tier client.Tier) ([]explorer.Endpoint, error) {
	if err := s.Ensure(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]explorer.Endpoint, 0, len(s.endpoints))
	for i := range s.endpoints {
		if tier != "" && s.endpoints[i].Category != tier {
			continue
		}
		out = append(out, *s.endpoints[i].Clone())
	}
	return out, nil
}

// Snapshot returns copies of the loaded endpoints without triggering a load.
func (s *Store) Snapshot() []explorer.Endpoint {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]explorer.Endpoint, len(s.endpoints))
	for i := range s.endpoints {
		out[i] = *s.endpoints[i].Clone()
	}
	return out
}

// Info describes the loaded catalog. ok is false before the first load.
func (s *Store) Info() (info Info, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.info, s.loaded
}
