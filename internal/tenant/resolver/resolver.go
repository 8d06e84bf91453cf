// Package resolver maps inbound host names to tenants through an immutable
// snapshot cache. Readers never take a lock: the whole key map lives behind a
// single atomic pointer and every refresh or point insert swaps in a newly
// built map.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/chowstack/chowstack/internal/clock"
	"github.com/chowstack/chowstack/internal/config"
	"github.com/chowstack/chowstack/internal/tenant/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var (
	refreshTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chowstack_tenant_cache_refresh_total",
		Help: "Number of full tenant cache rebuilds.",
	})
	refreshFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chowstack_tenant_cache_refresh_failures_total",
		Help: "Number of tenant cache rebuilds that failed.",
	})
)

type snapshot struct {
	byKey       map[string]*domain.Tenant
	refreshedAt time.Time
}

type Resolver struct {
	repo     domain.Repository
	clk      clock.Clock
	ttl      time.Duration
	domain   string
	platform *config.PlatformHolder
	log      *zap.Logger

	snap atomic.Pointer[snapshot]
}

func New(repo domain.Repository, clk clock.Clock, cfg config.Config, platform *config.PlatformHolder, log *zap.Logger) *Resolver {
	return &Resolver{
		repo:     repo,
		clk:      clk,
		ttl:      cfg.TenantCacheTTL,
		domain:   cfg.PlatformDomain,
		platform: platform,
		log:      log,
	}
}

// Resolve maps a raw Host header to a tenant. A (nil, nil) return means the
// host carries no tenant context (loopback, reserved subdomain, the platform
// apex itself); callers decide whether that is acceptable.
func (r *Resolver) Resolve(ctx context.Context, host string) (*domain.Tenant, error) {
	key, ok := CandidateKey(host, r.domain, r.platform.Current().ReservedSubdomains)
	if !ok {
		return nil, nil
	}

	snap := r.snap.Load()
	if snap == nil || r.clk.Now().Sub(snap.refreshedAt) >= r.ttl {
		fresh, err := r.refresh(ctx)
		switch {
		case err == nil:
			snap = fresh
		case snap != nil:
			// Directory unreachable but we still hold entries: keep serving
			// them until the store recovers.
			r.log.Warn("tenant cache refresh failed, serving stale entries",
				zap.Error(err),
				zap.Duration("stale_for", r.clk.Now().Sub(snap.refreshedAt)),
			)
		default:
			return nil, fmt.Errorf("%w: %v", domain.ErrTenantUnavailable, err)
		}
	}

	if tenant, hit := snap.byKey[key]; hit {
		return tenant, nil
	}

	// Miss: single point query. A negative result is never cached, so a
	// nonexistent tenant re-queries every time; bounded by real traffic.
	tenant, err := r.repo.FindActiveByKey(ctx, key)
	if errors.Is(err, domain.ErrTenantNotFound) {
		return nil, domain.ErrTenantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTenantUnavailable, err)
	}

	r.insert(snap, tenant)
	return tenant, nil
}

// Invalidate drops the entire cache. The next Resolve rebuilds it.
func (r *Resolver) Invalidate() {
	r.snap.Store(nil)
}

func (r *Resolver) refresh(ctx context.Context) (*snapshot, error) {
	refreshTotal.Inc()
	tenants, err := r.repo.ListActive(ctx)
	if err != nil {
		refreshFailures.Inc()
		return nil, err
	}

	byKey := make(map[string]*domain.Tenant, len(tenants)*2)
	for i := range tenants {
		indexTenant(byKey, &tenants[i])
	}

	fresh := &snapshot{byKey: byKey, refreshedAt: r.clk.Now()}
	r.snap.Store(fresh)
	return fresh, nil
}

// insert publishes a point-lookup result by rebuilding the key map. Racing
// inserts or a concurrent refresh may drop each other's entry; the loser is
// re-fetched on its next miss, so last-writer-wins is safe here.
func (r *Resolver) insert(snap *snapshot, tenant *domain.Tenant) {
	byKey := make(map[string]*domain.Tenant, len(snap.byKey)+2)
	for k, v := range snap.byKey {
		byKey[k] = v
	}
	indexTenant(byKey, tenant)
	r.snap.Store(&snapshot{byKey: byKey, refreshedAt: snap.refreshedAt})
}

// indexTenant registers a tenant under both of its lookup keys; a tenant with
// a custom domain occupies two entries pointing at the same record.
func indexTenant(byKey map[string]*domain.Tenant, tenant *domain.Tenant) {
	byKey[tenant.ShortName] = tenant
	if tenant.CustomDomain != nil && *tenant.CustomDomain != "" {
		byKey[*tenant.CustomDomain] = tenant
	}
}
