package auth

import (
	"embed"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed config/permissions.yaml
var permissionFiles embed.FS

type permissionCatalog struct {
	Permissions []string            `yaml:"permissions"`
	Roles       map[string][]string `yaml:"roles"`
}

// PermissionRegistry maps roles to the permissions they grant.
type PermissionRegistry struct {
	catalog permissionCatalog
}

// NewPermissionRegistry loads the embedded role catalog.
func NewPermissionRegistry() (*PermissionRegistry, error) {
	data, err := permissionFiles.ReadFile("config/permissions.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read permissions catalog: %w", err)
	}

	var catalog permissionCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to unmarshal permissions catalog: %w", err)
	}

	known := make(map[string]bool, len(catalog.Permissions))
	for _, p := range catalog.Permissions {
		known[p] = true
	}
	for role, perms := range catalog.Roles {
		for _, p := range perms {
			if !known[p] {
				return nil, fmt.Errorf("role %s grants unknown permission %s", role, p)
			}
		}
	}

	return &PermissionRegistry{catalog: catalog}, nil
}

// ForRole returns the permissions granted to a role, empty for unknown
// roles.
func (r *PermissionRegistry) ForRole(role string) []string {
	perms := r.catalog.Roles[role]
	out := make([]string, len(perms))
	copy(out, perms)
	return out
}

// HasPermission reports whether a role grants a permission.
func (r *PermissionRegistry) HasPermission(role, permission string) bool {
	return slices.Contains(r.catalog.Roles[role], permission)
}

// AllPermissions returns the full permission catalog.
func (r *PermissionRegistry) AllPermissions() []string {
	out := make([]string, len(r.catalog.Permissions))
	copy(out, r.catalog.Permissions)
	return out
}
