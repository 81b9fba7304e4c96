package cache

import (
	"context"
	"testing"
	"time"

	"gudam.org/internal/access"
)

func TestKeyString(t *testing.T) {
	k := Key{Resource: "effective_permissions", Params: "user-1"}
	if k.String() != "effective_permissions:user-1" {
		t.Fatalf("unexpected key %q", k.String())
	}
}

func TestDisabledCacheIsInert(t *testing.T) {
	c := New(nil, "", time.Minute)
	if c.Enabled() {
		t.Fatalf("nil client must disable the cache")
	}

	ctx := context.Background()
	c.Set(ctx, Key{Resource: "r", Params: "p"}, []byte("v"))
	if _, ok := c.Get(ctx, Key{Resource: "r", Params: "p"}); ok {
		t.Fatalf("disabled cache must always miss")
	}
	c.Invalidate(ctx, Key{Resource: "r", Params: "p"})
}

func TestPermissionsMissOnDisabledCache(t *testing.T) {
	p := NewPermissions(New(nil, "", 0))
	ctx := context.Background()

	if _, ok := p.GetEffective(ctx, "user-1"); ok {
		t.Fatalf("expected miss")
	}
	p.SetEffective(ctx, "user-1", access.EffectivePermissions{
		Capabilities: access.CapabilitySet{"booking_view": {}},
		Companies:    access.CompanySet{1: {}},
	})
	p.InvalidateUser(ctx, "user-1")
}
