package access

import (
	"context"
	"fmt"
)

// GrantSource fetches the currently-valid permission grants for a user.
// It is the only external collaborator of this package; in production it
// is backed by the grant store database.
type GrantSource interface {
	FetchGrantsForUser(ctx context.Context, userID string) ([]PermissionGrant, error)
}

// PermissionCache is an advisory cache for aggregated permissions. A miss
// or a failed read simply falls through to a fresh fetch; the cache can
// never grant access beyond what the grant store holds.
type PermissionCache interface {
	GetEffective(ctx context.Context, userID string) (EffectivePermissions, bool)
	SetEffective(ctx context.Context, userID string, eff EffectivePermissions)
	InvalidateUser(ctx context.Context, userID string)
}

// Resolver turns a user id into effective permissions by fetching grants
// and aggregating them.
type Resolver struct {
	source GrantSource
	cache  PermissionCache
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithCache enables advisory caching of aggregated permissions.
func WithCache(cache PermissionCache) ResolverOption {
	return func(r *Resolver) { r.cache = cache }
}

// NewResolver constructs a Resolver over the given grant source.
func NewResolver(source GrantSource, opts ...ResolverOption) (*Resolver, error) {
	if source == nil {
		return nil, fmt.Errorf("access: grant source is required")
	}
	r := &Resolver{source: source}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Effective returns the user's aggregated permissions. A transport failure
// is reported as ErrUnavailable so callers can distinguish "could not
// verify" from an authoritative empty result; zero grants is not an error
// and resolves to empty sets.
func (r *Resolver) Effective(ctx context.Context, userID string) (EffectivePermissions, error) {
	if r.cache != nil {
		if eff, ok := r.cache.GetEffective(ctx, userID); ok {
			return eff, nil
		}
	}
	grants, err := r.source.FetchGrantsForUser(ctx, userID)
	if err != nil {
		return EffectivePermissions{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	eff := Aggregate(grants)
	if r.cache != nil {
		r.cache.SetEffective(ctx, userID, eff)
	}
	return eff, nil
}

// Grants returns the user's raw grants, bypassing the cache. Navigation
// rendering needs the denormalized module values, not the flat sets.
func (r *Resolver) Grants(ctx context.Context, userID string) ([]PermissionGrant, error) {
	grants, err := r.source.FetchGrantsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return grants, nil
}

// Invalidate drops any cached permissions for the user. Grant mutations
// happen in an external administrative flow; this is the refresh hook it
// calls afterwards.
func (r *Resolver) Invalidate(ctx context.Context, userID string) {
	if r.cache != nil {
		r.cache.InvalidateUser(ctx, userID)
	}
}
