package patient

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/praxis/praxis/internal/platform/apperr"
)

type mockRepo struct {
	patients map[uuid.UUID]*Patient
}

func newMockRepo() *mockRepo {
	return &mockRepo{patients: make(map[uuid.UUID]*Patient)}
}

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, tenantID, id uuid.UUID) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok || p.TenantID != tenantID {
		return nil, apperr.ErrNotFound
	}
	return p, nil
}

func (m *mockRepo) Update(_ context.Context, p *Patient) (int64, error) {
	existing, ok := m.patients[p.ID]
	if !ok || existing.TenantID != p.TenantID {
		return 0, nil
	}
	m.patients[p.ID] = p
	return 1, nil
}

func (m *mockRepo) Delete(_ context.Context, tenantID, id uuid.UUID) (int64, error) {
	p, ok := m.patients[id]
	if !ok || p.TenantID != tenantID {
		return 0, nil
	}
	delete(m.patients, id)
	return 1, nil
}

func (m *mockRepo) List(_ context.Context, tenantID uuid.UUID, limit, offset int) ([]*Patient, int, error) {
	var items []*Patient
	for _, p := range m.patients {
		if p.TenantID == tenantID {
			items = append(items, p)
		}
	}
	return items, len(items), nil
}

func TestCreatePatientRequiresName(t *testing.T) {
	svc := NewService(newMockRepo())
	err := svc.CreatePatient(context.Background(), &Patient{TenantID: uuid.New()})
	if !apperr.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestCreatePatientDefaultsStatus(t *testing.T) {
	svc := NewService(newMockRepo())
	p := &Patient{TenantID: uuid.New(), FullName: "Ana Souza"}
	if err := svc.CreatePatient(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Status != DefaultStatus {
		t.Errorf("status = %q, want %q", p.Status, DefaultStatus)
	}
}

func TestUpdatePatientWrongTenant(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	p := &Patient{TenantID: uuid.New(), FullName: "Ana Souza"}
	if err := svc.CreatePatient(context.Background(), p); err != nil {
		t.Fatalf("create: %v", err)
	}

	foreign := *p
	foreign.TenantID = uuid.New()
	err := svc.UpdatePatient(context.Background(), &foreign)
	if err != apperr.ErrNotFound {
		t.Errorf("expected not found for foreign tenant, got %v", err)
	}
}

func TestDeletePatientNotFound(t *testing.T) {
	svc := NewService(newMockRepo())
	err := svc.DeletePatient(context.Background(), uuid.New(), uuid.New())
	if err != apperr.ErrNotFound {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestListPatientsScopedToTenant(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	tenant := uuid.New()
	for _, name := range []string{"Ana Souza", "Bruno Lima"} {
		if err := svc.CreatePatient(context.Background(), &Patient{TenantID: tenant, FullName: name}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if err := svc.CreatePatient(context.Background(), &Patient{TenantID: uuid.New(), FullName: "Other Tenant"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	items, total, err := svc.ListPatients(context.Background(), tenant, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Errorf("expected 2 patients for tenant, got %d", total)
	}
}
