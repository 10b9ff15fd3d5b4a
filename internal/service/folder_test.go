package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/httputil"
)

func newTestFolderService() (*FolderService, *fakeFolderRepo) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := newFakeFolderRepo()
	audit := NewAuditRecorder(&fakeAuditRepo{}, logger)
	return NewFolderService(repo, audit, logger), repo
}

func testActor() Actor {
	return Actor{UserID: "user-1", Email: "admin@example.com", IPAddress: "127.0.0.1"}
}

func present(v *string) httputil.OptionalString {
	return httputil.OptionalString{Present: true, Value: v}
}

func strptr(s string) *string { return &s }

func TestFolderCreateDefaultsAndPath(t *testing.T) {
	svc, _ := newTestFolderService()
	ctx := context.Background()

	root, err := svc.Create(ctx, testActor(), &CreateFolderRequest{Name: "  Legal  "})
	if err != nil {
		t.Fatalf("create root: %v", err)
	}
	if root.Name != "Legal" {
		t.Errorf("name not trimmed: %q", root.Name)
	}
	if root.Path != "/" {
		t.Errorf("root path = %q, want /", root.Path)
	}
	if root.Color == "" || root.Icon == "" {
		t.Errorf("defaults not applied: color=%q icon=%q", root.Color, root.Icon)
	}

	child, err := svc.Create(ctx, testActor(), &CreateFolderRequest{Name: "Contracts", ParentID: &root.ID})
	if err != nil {
		t.Fatalf("create child: %v", err)
	}
	if child.Path != "/Legal/" {
		t.Errorf("child path = %q, want /Legal/", child.Path)
	}
}

func TestFolderCreateValidation(t *testing.T) {
	svc, _ := newTestFolderService()
	ctx := context.Background()

	tests := []struct {
		name       string
		folderName string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"too long", string(make([]byte, 101))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, testActor(), &CreateFolderRequest{Name: tt.folderName})
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("got %v, want validation error", err)
			}
		})
	}
}

func TestFolderCreateDuplicateSibling(t *testing.T) {
	svc, _ := newTestFolderService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, testActor(), &CreateFolderRequest{Name: "Reports"}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := svc.Create(ctx, testActor(), &CreateFolderRequest{Name: "Reports"})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("got %v, want conflict", err)
	}

	var conflict *domain.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("error is not a ConflictError: %v", err)
	}
	if conflict.ResourceType != "folder" || conflict.ResourceID == "" {
		t.Errorf("conflict detail incomplete: %+v", conflict)
	}

	// Same name is fine under a different parent
	parent, err := svc.Create(ctx, testActor(), &CreateFolderRequest{Name: "Archive"})
	if err != nil {
		t.Fatalf("create parent: %v", err)
	}
	if _, err := svc.Create(ctx, testActor(), &CreateFolderRequest{Name: "Reports", ParentID: &parent.ID}); err != nil {
		t.Errorf("nested duplicate name rejected: %v", err)
	}
}

func TestFolderCreateMissingParentFallsBackToRoot(t *testing.T) {
	svc, _ := newTestFolderService()
	ctx := context.Background()

	ghost := "no-such-folder"
	folder, err := svc.Create(ctx, testActor(), &CreateFolderRequest{Name: "Orphan", ParentID: &ghost})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if folder.Path != "/" {
		t.Errorf("path = %q, want /", folder.Path)
	}
	if folder.ParentID == nil || *folder.ParentID != ghost {
		t.Errorf("dangling parent reference not preserved: %v", folder.ParentID)
	}
}

func TestFolderMoveMissingParentFallsBackToRoot(t *testing.T) {
	svc, _ := newTestFolderService()
	ctx := context.Background()
	actor := testActor()

	parent, err := svc.Create(ctx, actor, &CreateFolderRequest{Name: "Archive"})
	if err != nil {
		t.Fatalf("create parent: %v", err)
	}
	folder, err := svc.Create(ctx, actor, &CreateFolderRequest{Name: "Reports", ParentID: &parent.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	ghost := "no-such-folder"
	moved, err := svc.Update(ctx, actor, folder.ID, &UpdateFolderRequest{ParentID: present(&ghost)})
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if moved.Path != "/" {
		t.Errorf("path = %q, want /", moved.Path)
	}
	if moved.ParentID == nil || *moved.ParentID != ghost {
		t.Errorf("dangling parent reference not preserved: %v", moved.ParentID)
	}
}

func TestFolderMoveCycleRejected(t *testing.T) {
	svc, _ := newTestFolderService()
	ctx := context.Background()
	actor := testActor()

	a, _ := svc.Create(ctx, actor, &CreateFolderRequest{Name: "A"})
	b, _ := svc.Create(ctx, actor, &CreateFolderRequest{Name: "B", ParentID: &a.ID})
	c, _ := svc.Create(ctx, actor, &CreateFolderRequest{Name: "C", ParentID: &b.ID})

	tests := []struct {
		name   string
		folder string
		dest   string
	}{
		{"into own child", a.ID, b.ID},
		{"into own grandchild", a.ID, c.ID},
		{"into itself", a.ID, a.ID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Update(ctx, actor, tt.folder, &UpdateFolderRequest{ParentID: present(&tt.dest)})
			if !errors.Is(err, domain.ErrCycle) {
				t.Errorf("got %v, want cycle error", err)
			}
		})
	}
}

func TestFolderMoveRecomputesOwnPathOnly(t *testing.T) {
	svc, repo := newTestFolderService()
	ctx := context.Background()
	actor := testActor()

	a, _ := svc.Create(ctx, actor, &CreateFolderRequest{Name: "A"})
	b, _ := svc.Create(ctx, actor, &CreateFolderRequest{Name: "B", ParentID: &a.ID})
	c, _ := svc.Create(ctx, actor, &CreateFolderRequest{Name: "C", ParentID: &b.ID})

	dest, _ := svc.Create(ctx, actor, &CreateFolderRequest{Name: "Dest"})

	moved, err := svc.Update(ctx, actor, b.ID, &UpdateFolderRequest{ParentID: present(&dest.ID)})
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if moved.Path != "/Dest/" {
		t.Errorf("moved path = %q, want /Dest/", moved.Path)
	}

	// Descendant stored paths are intentionally left stale
	stored, _ := repo.GetByID(ctx, c.ID)
	if stored.Path != "/A/B/" {
		t.Errorf("descendant path rewritten to %q, want stale /A/B/", stored.Path)
	}
}

func TestFolderMoveToRootWithNull(t *testing.T) {
	svc, _ := newTestFolderService()
	ctx := context.Background()
	actor := testActor()

	a, _ := svc.Create(ctx, actor, &CreateFolderRequest{Name: "A"})
	b, _ := svc.Create(ctx, actor, &CreateFolderRequest{Name: "B", ParentID: &a.ID})

	moved, err := svc.Update(ctx, actor, b.ID, &UpdateFolderRequest{ParentID: present(nil)})
	if err != nil {
		t.Fatalf("move to root: %v", err)
	}
	if moved.ParentID != nil {
		t.Errorf("parent = %v, want nil", moved.ParentID)
	}
	if moved.Path != "/" {
		t.Errorf("path = %q, want /", moved.Path)
	}
}

func TestFolderRenameConflictAtDestination(t *testing.T) {
	svc, _ := newTestFolderService()
	ctx := context.Background()
	actor := testActor()

	svc.Create(ctx, actor, &CreateFolderRequest{Name: "Taken"})
	other, _ := svc.Create(ctx, actor, &CreateFolderRequest{Name: "Original"})

	_, err := svc.Update(ctx, actor, other.ID, &UpdateFolderRequest{Name: strptr("Taken")})
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("got %v, want conflict", err)
	}

	// Renaming to its own name is a no-op, not a conflict
	if _, err := svc.Update(ctx, actor, other.ID, &UpdateFolderRequest{Name: strptr("Original")}); err != nil {
		t.Errorf("self rename failed: %v", err)
	}
}

func TestFolderDeleteBlockedByChildren(t *testing.T) {
	svc, _ := newTestFolderService()
	ctx := context.Background()
	actor := testActor()

	parent, _ := svc.Create(ctx, actor, &CreateFolderRequest{Name: "Parent"})
	child, _ := svc.Create(ctx, actor, &CreateFolderRequest{Name: "Child", ParentID: &parent.ID})

	if err := svc.Delete(ctx, actor, parent.ID); !errors.Is(err, domain.ErrNotEmpty) {
		t.Fatalf("got %v, want not-empty error", err)
	}

	// After deleting the child, the parent can go
	if err := svc.Delete(ctx, actor, child.ID); err != nil {
		t.Fatalf("delete child: %v", err)
	}
	if err := svc.Delete(ctx, actor, parent.ID); err != nil {
		t.Fatalf("delete parent after child removed: %v", err)
	}
}

func TestFolderDeleteNotFound(t *testing.T) {
	svc, _ := newTestFolderService()

	err := svc.Delete(context.Background(), testActor(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("got %v, want not found", err)
	}
}

func TestFolderTreeOrderingAndPaths(t *testing.T) {
	svc, _ := newTestFolderService()
	ctx := context.Background()
	actor := testActor()

	b, _ := svc.Create(ctx, actor, &CreateFolderRequest{Name: "Beta"})
	svc.Create(ctx, actor, &CreateFolderRequest{Name: "Alpha"})
	svc.Create(ctx, actor, &CreateFolderRequest{Name: "Nested", ParentID: &b.ID})

	tree, err := svc.Tree(ctx)
	if err != nil {
		t.Fatalf("tree: %v", err)
	}

	if len(tree) != 2 {
		t.Fatalf("got %d roots, want 2", len(tree))
	}
	if tree[0].Name != "Alpha" || tree[1].Name != "Beta" {
		t.Errorf("roots out of order: %q, %q", tree[0].Name, tree[1].Name)
	}
	if len(tree[1].Children) != 1 {
		t.Fatalf("Beta has %d children, want 1", len(tree[1].Children))
	}
	if got := tree[1].Children[0].Path; got != "/Beta/" {
		t.Errorf("nested path = %q, want /Beta/", got)
	}
}

func TestFolderTreePathsSurviveStaleStoredPaths(t *testing.T) {
	svc, _ := newTestFolderService()
	ctx := context.Background()
	actor := testActor()

	a, _ := svc.Create(ctx, actor, &CreateFolderRequest{Name: "A"})
	b, _ := svc.Create(ctx, actor, &CreateFolderRequest{Name: "B", ParentID: &a.ID})
	svc.Create(ctx, actor, &CreateFolderRequest{Name: "C", ParentID: &b.ID})
	dest, _ := svc.Create(ctx, actor, &CreateFolderRequest{Name: "Dest"})

	if _, err := svc.Update(ctx, actor, b.ID, &UpdateFolderRequest{ParentID: present(&dest.ID)}); err != nil {
		t.Fatalf("move: %v", err)
	}

	tree, err := svc.Tree(ctx)
	if err != nil {
		t.Fatalf("tree: %v", err)
	}

	// Find C under Dest/B and confirm its live-computed path
	var found bool
	for _, root := range tree {
		if root.Name != "Dest" {
			continue
		}
		for _, child := range root.Children {
			if child.Name != "B" {
				continue
			}
			for _, grandchild := range child.Children {
				if grandchild.Name == "C" {
					found = true
					if grandchild.Path != "/Dest/B/" {
						t.Errorf("C path = %q, want /Dest/B/", grandchild.Path)
					}
				}
			}
		}
	}
	if !found {
		t.Fatal("C not found under Dest/B after move")
	}
}

func TestFolderListFlat(t *testing.T) {
	svc, _ := newTestFolderService()
	ctx := context.Background()
	actor := testActor()

	root, _ := svc.Create(ctx, actor, &CreateFolderRequest{Name: "Root"})
	svc.Create(ctx, actor, &CreateFolderRequest{Name: "Child", ParentID: &root.ID})

	all, err := svc.List(ctx, nil)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("all = %d, want 2", len(all))
	}

	roots, err := svc.List(ctx, strptr(""))
	if err != nil {
		t.Fatalf("list roots: %v", err)
	}
	if len(roots) != 1 || roots[0].Name != "Root" {
		t.Errorf("roots = %+v, want just Root", roots)
	}

	children, err := svc.List(ctx, &root.ID)
	if err != nil {
		t.Fatalf("list children: %v", err)
	}
	if len(children) != 1 || children[0].Name != "Child" {
		t.Errorf("children = %+v, want just Child", children)
	}
}
