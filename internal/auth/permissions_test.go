package auth

import (
	"strings"
	"testing"

	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain/models"
)

func TestPermissionCatalogLoads(t *testing.T) {
	reg, err := NewPermissionRegistry()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	if len(reg.AllPermissions()) == 0 {
		t.Fatal("catalog has no permissions")
	}

	// Admin holds every permission in the catalog
	admin := reg.ForRole(models.RoleAdmin)
	if len(admin) != len(reg.AllPermissions()) {
		t.Errorf("admin has %d permissions, catalog has %d", len(admin), len(reg.AllPermissions()))
	}
}

func TestRolePermissionBoundaries(t *testing.T) {
	reg, err := NewPermissionRegistry()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	tests := []struct {
		role       string
		permission string
		want       bool
	}{
		{models.RoleAdmin, "users.delete", true},
		{models.RoleEditor, "documents.write", true},
		{models.RoleEditor, "users.write", false},
		{models.RoleEditor, "contracts.sign", true},
		{models.RoleViewer, "documents.read", true},
		{models.RoleViewer, "documents.write", false},
		{models.RoleViewer, "contracts.sign", false},
		{"unknown", "documents.read", false},
	}

	for _, tt := range tests {
		t.Run(tt.role+"/"+tt.permission, func(t *testing.T) {
			if got := reg.HasPermission(tt.role, tt.permission); got != tt.want {
				t.Errorf("HasPermission(%s, %s) = %v, want %v", tt.role, tt.permission, got, tt.want)
			}
		})
	}
}

func TestViewerIsReadOnly(t *testing.T) {
	reg, err := NewPermissionRegistry()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	for _, p := range reg.ForRole(models.RoleViewer) {
		if !strings.HasSuffix(p, ".read") {
			t.Errorf("viewer granted non-read permission %q", p)
		}
	}
}

func TestUnknownRoleHasNoPermissions(t *testing.T) {
	reg, err := NewPermissionRegistry()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	if perms := reg.ForRole("superuser"); len(perms) != 0 {
		t.Errorf("unknown role granted %v", perms)
	}
}
