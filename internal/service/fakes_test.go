package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain/models"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain/repositories"
)

// In-memory repository fakes shared by the service tests.

type fakeFolderRepo struct {
	folders map[string]*models.Folder
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{folders: make(map[string]*models.Folder)}
}

func (f *fakeFolderRepo) Create(_ context.Context, folder *models.Folder) error {
	for _, existing := range f.folders {
		if existing.Name == folder.Name && sameParent(existing.ParentID, folder.ParentID) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("a folder named %q already exists in this location", folder.Name),
				ResourceType: "folder",
				ResourceID:   existing.ID,
			}
		}
	}
	cp := *folder
	f.folders[folder.ID] = &cp
	return nil
}

func (f *fakeFolderRepo) GetByID(_ context.Context, id string) (*models.Folder, error) {
	folder, ok := f.folders[id]
	if !ok {
		return nil, &domain.NotFoundError{Message: "folder " + id + " not found"}
	}
	cp := *folder
	return &cp, nil
}

func (f *fakeFolderRepo) GetByNameAndParent(_ context.Context, name string, parentID *string) (*models.Folder, error) {
	for _, folder := range f.folders {
		if folder.Name == name && sameParent(folder.ParentID, parentID) {
			cp := *folder
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeFolderRepo) ListChildren(_ context.Context, parentID *string) ([]models.Folder, error) {
	var out []models.Folder
	for _, folder := range f.folders {
		if sameParent(folder.ParentID, parentID) {
			out = append(out, *folder)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeFolderRepo) ListAll(_ context.Context) ([]models.Folder, error) {
	out := make([]models.Folder, 0, len(f.folders))
	for _, folder := range f.folders {
		out = append(out, *folder)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeFolderRepo) CountChildren(_ context.Context, parentID string) (int, error) {
	count := 0
	for _, folder := range f.folders {
		if folder.ParentID != nil && *folder.ParentID == parentID {
			count++
		}
	}
	return count, nil
}

func (f *fakeFolderRepo) Update(_ context.Context, folder *models.Folder) error {
	if _, ok := f.folders[folder.ID]; !ok {
		return &domain.NotFoundError{Message: "folder " + folder.ID + " not found"}
	}
	for _, existing := range f.folders {
		if existing.ID != folder.ID && existing.Name == folder.Name && sameParent(existing.ParentID, folder.ParentID) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("a folder named %q already exists in this location", folder.Name),
				ResourceType: "folder",
				ResourceID:   existing.ID,
			}
		}
	}
	cp := *folder
	f.folders[folder.ID] = &cp
	return nil
}

func (f *fakeFolderRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.folders[id]; !ok {
		return &domain.NotFoundError{Message: "folder " + id + " not found"}
	}
	delete(f.folders, id)
	return nil
}

type fakeAuditRepo struct {
	entries []models.AuditLog
}

func (f *fakeAuditRepo) Create(_ context.Context, entry *models.AuditLog) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeAuditRepo) List(_ context.Context, filter repositories.ListAuditLogsFilter) ([]models.AuditLog, int, error) {
	var out []models.AuditLog
	for i := len(f.entries) - 1; i >= 0; i-- {
		e := f.entries[i]
		if filter.Action != "" && e.Action != filter.Action {
			continue
		}
		if filter.EntityType != "" && e.EntityType != filter.EntityType {
			continue
		}
		out = append(out, e)
	}
	return out, len(out), nil
}

type fakeContractRepo struct {
	contracts map[string]*models.Contract
}

func newFakeContractRepo() *fakeContractRepo {
	return &fakeContractRepo{contracts: make(map[string]*models.Contract)}
}

func (f *fakeContractRepo) Create(_ context.Context, contract *models.Contract) error {
	cp := *contract
	f.contracts[contract.ID] = &cp
	return nil
}

func (f *fakeContractRepo) GetByID(_ context.Context, id string) (*models.Contract, error) {
	contract, ok := f.contracts[id]
	if !ok {
		return nil, &domain.NotFoundError{Message: "contract " + id + " not found"}
	}
	cp := *contract
	cp.Parties = append([]models.Party(nil), contract.Parties...)
	cp.AuditTrail = append([]models.TrailEntry(nil), contract.AuditTrail...)
	return &cp, nil
}

func (f *fakeContractRepo) List(_ context.Context, filter repositories.ListContractsFilter) ([]models.Contract, int, error) {
	var out []models.Contract
	for _, c := range f.contracts {
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(c.Title), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, *c)
	}
	return out, len(out), nil
}

func (f *fakeContractRepo) Update(_ context.Context, contract *models.Contract) error {
	if _, ok := f.contracts[contract.ID]; !ok {
		return &domain.NotFoundError{Message: "contract " + contract.ID + " not found"}
	}
	cp := *contract
	f.contracts[contract.ID] = &cp
	return nil
}

func (f *fakeContractRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.contracts[id]; !ok {
		return &domain.NotFoundError{Message: "contract " + id + " not found"}
	}
	delete(f.contracts, id)
	return nil
}

type fakeTemplateRepo struct {
	templates map[string]*models.Template
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{templates: make(map[string]*models.Template)}
}

func (f *fakeTemplateRepo) Create(_ context.Context, tmpl *models.Template) error {
	cp := *tmpl
	f.templates[tmpl.ID] = &cp
	return nil
}

func (f *fakeTemplateRepo) GetByID(_ context.Context, id string) (*models.Template, error) {
	tmpl, ok := f.templates[id]
	if !ok {
		return nil, &domain.NotFoundError{Message: "template " + id + " not found"}
	}
	cp := *tmpl
	return &cp, nil
}

func (f *fakeTemplateRepo) List(_ context.Context, filter repositories.ListTemplatesFilter) ([]models.Template, int, error) {
	var out []models.Template
	for _, tmpl := range f.templates {
		if filter.Type != "" && tmpl.Type != filter.Type {
			continue
		}
		out = append(out, *tmpl)
	}
	return out, len(out), nil
}

func (f *fakeTemplateRepo) Update(_ context.Context, tmpl *models.Template) error {
	if _, ok := f.templates[tmpl.ID]; !ok {
		return &domain.NotFoundError{Message: "template " + tmpl.ID + " not found"}
	}
	cp := *tmpl
	f.templates[tmpl.ID] = &cp
	return nil
}

func (f *fakeTemplateRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.templates[id]; !ok {
		return &domain.NotFoundError{Message: "template " + id + " not found"}
	}
	delete(f.templates, id)
	return nil
}
