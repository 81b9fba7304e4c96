package session

import (
	"context"
	"slices"
	"testing"
	"time"
)

func TestMintAndParse(t *testing.T) {
	t.Setenv(secretEnvVariable, "test-secret")
	ResetSecretForTests()
	t.Cleanup(ResetSecretForTests)

	token, err := MintToken("user-42", []string{"Manager", "viewer", "manager"}, false, 30*time.Minute)
	if err != nil {
		t.Fatalf("MintToken: %v", err)
	}

	claims, err := Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.Subject != "user-42" {
		t.Fatalf("unexpected subject %s", claims.Subject)
	}
	if !slices.Contains(claims.Roles, "manager") || !slices.Contains(claims.Roles, "viewer") {
		t.Fatalf("roles were not preserved: %v", claims.Roles)
	}
	if len(claims.Roles) != 2 {
		t.Fatalf("expected deduplicated roles, got %v", claims.Roles)
	}
	if claims.Superuser {
		t.Fatalf("superuser flag leaked into regular token")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	t.Setenv(secretEnvVariable, "test-secret")
	ResetSecretForTests()
	t.Cleanup(ResetSecretForTests)

	if _, err := MintToken("user-1", nil, false, 0); err == nil {
		t.Fatalf("expected ttl validation error")
	}

	token, err := MintToken("user-1", nil, false, time.Millisecond)
	if err != nil {
		t.Fatalf("MintToken: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, err := Parse(token); err == nil {
		t.Fatalf("expected expired token to fail")
	}
}

func TestParseRejectsForeignSignature(t *testing.T) {
	t.Setenv(secretEnvVariable, "first-secret")
	ResetSecretForTests()
	token, err := MintToken("user-1", nil, true, time.Minute)
	if err != nil {
		t.Fatalf("MintToken: %v", err)
	}

	t.Setenv(secretEnvVariable, "second-secret")
	ResetSecretForTests()
	t.Cleanup(ResetSecretForTests)
	if _, err := Parse(token); err == nil {
		t.Fatalf("token signed with a different secret must fail")
	}
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = ContextWithUser(ctx, "user-7", []string{"Admin", "Admin", "viewer"}, true)

	id, ok := UserIDFromContext(ctx)
	if !ok || id != "user-7" {
		t.Fatalf("unexpected user id %q, ok=%v", id, ok)
	}
	roles := RolesFromContext(ctx)
	if len(roles) != 2 {
		t.Fatalf("expected deduplicated roles, got %v", roles)
	}
	if !HasRole(ctx, "admin") || !HasRole(ctx, "viewer") {
		t.Fatalf("HasRole missing expected roles: %v", roles)
	}
	if HasRole(ctx, "operator") {
		t.Fatalf("unexpected role found")
	}
	if !IsSuperuser(ctx) {
		t.Fatalf("superuser flag lost")
	}
	if IsSuperuser(context.Background()) {
		t.Fatalf("empty context must not be superuser")
	}
}
