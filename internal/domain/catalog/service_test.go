package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/praxis/praxis/internal/platform/apperr"
)

type mockRepo struct {
	items map[uuid.UUID]*Item
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: make(map[uuid.UUID]*Item)}
}

func (m *mockRepo) Create(_ context.Context, it *Item) error {
	it.ID = uuid.New()
	m.items[it.ID] = it
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, tenantID, id uuid.UUID) (*Item, error) {
	it, ok := m.items[id]
	if !ok || it.TenantID != tenantID {
		return nil, apperr.ErrNotFound
	}
	return it, nil
}

func (m *mockRepo) Update(_ context.Context, it *Item) (int64, error) {
	existing, ok := m.items[it.ID]
	if !ok || existing.TenantID != it.TenantID {
		return 0, nil
	}
	m.items[it.ID] = it
	return 1, nil
}

func (m *mockRepo) Delete(_ context.Context, tenantID, id uuid.UUID) (int64, error) {
	it, ok := m.items[id]
	if !ok || it.TenantID != tenantID {
		return 0, nil
	}
	delete(m.items, id)
	return 1, nil
}

func (m *mockRepo) List(_ context.Context, tenantID uuid.UUID, activeOnly bool, limit, offset int) ([]*Item, int, error) {
	var items []*Item
	for _, it := range m.items {
		if it.TenantID != tenantID {
			continue
		}
		if activeOnly && !it.IsActive {
			continue
		}
		items = append(items, it)
	}
	return items, len(items), nil
}

func TestCreateItemRequiresName(t *testing.T) {
	svc := NewService(newMockRepo())
	err := svc.CreateItem(context.Background(), &Item{TenantID: uuid.New()})
	if !apperr.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestCreateItemDefaultsDuration(t *testing.T) {
	svc := NewService(newMockRepo())
	it := &Item{TenantID: uuid.New(), Name: "Individual therapy"}
	if err := svc.CreateItem(context.Background(), it); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if it.Duration != DefaultDurationMinutes {
		t.Errorf("duration = %d, want %d", it.Duration, DefaultDurationMinutes)
	}
}

func TestListItemsActiveFilter(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	tenant := uuid.New()

	active := &Item{TenantID: tenant, Name: "Active", IsActive: true}
	inactive := &Item{TenantID: tenant, Name: "Inactive", IsActive: false}
	for _, it := range []*Item{active, inactive} {
		if err := svc.CreateItem(context.Background(), it); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	items, total, err := svc.ListItems(context.Background(), tenant, true, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || items[0].Name != "Active" {
		t.Errorf("active filter returned %d items", total)
	}
}

func TestDeleteItemWrongTenant(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	it := &Item{TenantID: uuid.New(), Name: "Individual therapy"}
	if err := svc.CreateItem(context.Background(), it); err != nil {
		t.Fatalf("create: %v", err)
	}

	err := svc.DeleteItem(context.Background(), uuid.New(), it.ID)
	if err != apperr.ErrNotFound {
		t.Errorf("expected not found, got %v", err)
	}
	if len(repo.items) != 1 {
		t.Error("cross-tenant delete must not remove the item")
	}
}
