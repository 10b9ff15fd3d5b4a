package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain/models"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain/repositories"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/httputil"
)

// FolderService manages the folder hierarchy of one tenant.
type FolderService struct {
	folders repositories.FolderRepository
	audit   *AuditRecorder
	logger  *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(folders repositories.FolderRepository, audit *AuditRecorder, logger *slog.Logger) *FolderService {
	return &FolderService{
		folders: folders,
		audit:   audit,
		logger:  logger,
	}
}

// CreateFolderRequest carries folder creation input.
type CreateFolderRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parentId"`
	Color    string  `json:"color"`
	Icon     string  `json:"icon"`
}

// UpdateFolderRequest carries rename/move/restyle input. ParentID uses
// tri-state presence: absent leaves the parent alone, null moves the
// folder to the root.
type UpdateFolderRequest struct {
	Name     *string                 `json:"name"`
	ParentID httputil.OptionalString `json:"parentId"`
	Color    *string                 `json:"color"`
	Icon     *string                 `json:"icon"`
}

func validateFolderName(name string) error {
	return validation.Validate(name,
		validation.Required.Error("folder name is required"),
		validation.Length(1, 100).Error("folder name must be at most 100 characters"),
	)
}

// Create creates a folder under the requested parent. The stored path
// is the parent's path plus the parent's name. A parent ID that matches
// no folder is kept as given and the folder is placed at the root path.
func (s *FolderService) Create(ctx context.Context, actor Actor, req *CreateFolderRequest) (*models.Folder, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateFolderName(req.Name); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	if req.ParentID != nil && *req.ParentID == "" {
		req.ParentID = nil
	}

	existing, err := s.folders.GetByNameAndParent(ctx, req.Name, req.ParentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &domain.ConflictError{
			Message:      fmt.Sprintf("a folder named %q already exists in this location", req.Name),
			ResourceType: "folder",
			ResourceID:   existing.ID,
		}
	}

	path := "/"
	if req.ParentID != nil {
		parent, err := s.folders.GetByID(ctx, *req.ParentID)
		switch {
		case err == nil:
			path = parent.Path + parent.Name + "/"
		case errors.Is(err, domain.ErrNotFound):
			// Parent vanished between lookup and create, keep the
			// reference and file the folder at the root path.
			s.logger.Warn("parent folder not found, creating at root path", "parent_id", *req.ParentID)
		default:
			return nil, err
		}
	}

	now := time.Now()
	folder := &models.Folder{
		ID:        uuid.NewString(),
		Name:      req.Name,
		ParentID:  req.ParentID,
		Path:      path,
		Color:     req.Color,
		Icon:      req.Icon,
		CreatedBy: actor.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if folder.Color == "" {
		folder.Color = models.DefaultFolderColor
	}
	if folder.Icon == "" {
		folder.Icon = models.DefaultFolderIcon
	}

	if err := s.folders.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"parent_id", folder.ParentID,
		"path", folder.Path,
	)
	s.audit.Record(ctx, actor, models.ActionCreate, models.EntityFolder, &folder.ID, map[string]any{"name": folder.Name})

	return folder, nil
}

// Get retrieves a folder together with its immediate children.
func (s *FolderService) Get(ctx context.Context, id string) (*models.Folder, []models.Folder, error) {
	folder, err := s.folders.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	children, err := s.folders.ListChildren(ctx, &folder.ID)
	if err != nil {
		return nil, nil, err
	}

	return folder, children, nil
}

// List lists folders flat. A nil parentID returns every folder, a
// pointer to "" returns only root folders, anything else returns the
// children of that folder.
func (s *FolderService) List(ctx context.Context, parentID *string) ([]models.Folder, error) {
	if parentID == nil {
		return s.folders.ListAll(ctx)
	}
	if *parentID == "" {
		return s.folders.ListChildren(ctx, nil)
	}
	return s.folders.ListChildren(ctx, parentID)
}

// Tree returns the whole hierarchy as nested nodes ordered by name.
// Paths are computed live from the tree walk, so they are correct even
// when stored paths have gone stale after a move.
func (s *FolderService) Tree(ctx context.Context) ([]*models.FolderTreeNode, error) {
	folders, err := s.folders.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	byParent := make(map[string][]models.Folder)
	for _, f := range folders {
		key := ""
		if f.ParentID != nil {
			key = *f.ParentID
		}
		byParent[key] = append(byParent[key], f)
	}

	var build func(parentKey, basePath string) []*models.FolderTreeNode
	build = func(parentKey, basePath string) []*models.FolderTreeNode {
		nodes := make([]*models.FolderTreeNode, 0, len(byParent[parentKey]))
		for _, f := range byParent[parentKey] {
			f.Path = basePath
			node := &models.FolderTreeNode{Folder: f}
			node.Children = build(f.ID, basePath+f.Name+"/")
			nodes = append(nodes, node)
		}
		return nodes
	}

	return build("", "/"), nil
}

// Update renames, moves, or restyles a folder. Moves are checked for
// cycles by walking the destination's ancestor chain; a destination
// parent that matches no folder is kept as given and the folder lands
// at the root path, as on create. Descendant paths are not rewritten.
func (s *FolderService) Update(ctx context.Context, actor Actor, id string, req *UpdateFolderRequest) (*models.Folder, error) {
	folder, err := s.folders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := folder.Name
	if req.Name != nil {
		name = strings.TrimSpace(*req.Name)
		if err := validateFolderName(name); err != nil {
			return nil, &domain.ValidationError{Message: err.Error()}
		}
	}

	parentID := folder.ParentID
	if req.ParentID.Present {
		parentID = req.ParentID.Value
		if parentID != nil && *parentID == "" {
			parentID = nil
		}
	}

	// Re-derive the stored path when the folder moves
	path := folder.Path
	moved := !sameParent(folder.ParentID, parentID)
	if moved {
		path = "/"
		if parentID != nil {
			if *parentID == folder.ID {
				return nil, &domain.CycleError{Message: "a folder cannot be its own parent"}
			}

			parent, err := s.folders.GetByID(ctx, *parentID)
			switch {
			case err == nil:
				if err := s.checkNoCycle(ctx, folder.ID, parent); err != nil {
					return nil, err
				}
				path = parent.Path + parent.Name + "/"
			case errors.Is(err, domain.ErrNotFound):
				// Destination parent vanished, keep the reference and
				// file the folder at the root path, same as create.
				s.logger.Warn("parent folder not found, moving to root path", "parent_id", *parentID)
			default:
				return nil, err
			}
		}
	}

	if name != folder.Name || moved {
		existing, err := s.folders.GetByNameAndParent(ctx, name, parentID)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != folder.ID {
			return nil, &domain.ConflictError{
				Message:      fmt.Sprintf("a folder named %q already exists in this location", name),
				ResourceType: "folder",
				ResourceID:   existing.ID,
			}
		}
	}

	folder.Name = name
	folder.ParentID = parentID
	folder.Path = path
	if req.Color != nil {
		folder.Color = *req.Color
	}
	if req.Icon != nil {
		folder.Icon = *req.Icon
	}
	folder.UpdatedAt = time.Now()

	if err := s.folders.Update(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder updated",
		"id", folder.ID,
		"name", folder.Name,
		"parent_id", folder.ParentID,
		"path", folder.Path,
	)
	s.audit.Record(ctx, actor, models.ActionUpdate, models.EntityFolder, &folder.ID, map[string]any{"name": folder.Name})

	return folder, nil
}

// Delete removes a folder. Folders that still contain child folders
// cannot be deleted.
func (s *FolderService) Delete(ctx context.Context, actor Actor, id string) error {
	folder, err := s.folders.GetByID(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.folders.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &domain.NotEmptyError{Message: "folder contains subfolders, delete or move them first"}
	}

	if err := s.folders.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("folder deleted", "id", id, "name", folder.Name)
	s.audit.Record(ctx, actor, models.ActionDelete, models.EntityFolder, &id, map[string]any{"name": folder.Name})

	return nil
}

// checkNoCycle walks up from the destination parent and fails when the
// folder being moved shows up among its ancestors.
func (s *FolderService) checkNoCycle(ctx context.Context, folderID string, parent *models.Folder) error {
	for current := parent; current.ParentID != nil; {
		if *current.ParentID == folderID {
			return &domain.CycleError{Message: "cannot move a folder into its own subtree"}
		}

		next, err := s.folders.GetByID(ctx, *current.ParentID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Broken ancestor chain ends the walk
				return nil
			}
			return err
		}
		current = next
	}
	return nil
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
