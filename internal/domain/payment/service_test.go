package payment

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/praxis/praxis/internal/platform/apperr"
)

type mockRepo struct {
	payments map[uuid.UUID]*Payment
}

func newMockRepo() *mockRepo {
	return &mockRepo{payments: make(map[uuid.UUID]*Payment)}
}

func (m *mockRepo) Create(_ context.Context, p *Payment) error {
	p.ID = uuid.New()
	m.payments[p.ID] = p
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, tenantID, id uuid.UUID) (*Payment, error) {
	p, ok := m.payments[id]
	if !ok || p.TenantID != tenantID {
		return nil, apperr.ErrNotFound
	}
	return p, nil
}

func (m *mockRepo) Update(_ context.Context, p *Payment) (int64, error) {
	existing, ok := m.payments[p.ID]
	if !ok || existing.TenantID != p.TenantID {
		return 0, nil
	}
	m.payments[p.ID] = p
	return 1, nil
}

func (m *mockRepo) Delete(_ context.Context, tenantID, id uuid.UUID) (int64, error) {
	p, ok := m.payments[id]
	if !ok || p.TenantID != tenantID {
		return 0, nil
	}
	delete(m.payments, id)
	return 1, nil
}

func (m *mockRepo) ListByPatient(_ context.Context, tenantID, patientID uuid.UUID, limit, offset int) ([]*Payment, int, error) {
	var items []*Payment
	for _, p := range m.payments {
		if p.TenantID == tenantID && p.PatientID == patientID {
			items = append(items, p)
		}
	}
	return items, len(items), nil
}

func (m *mockRepo) List(_ context.Context, tenantID uuid.UUID, limit, offset int) ([]*Payment, int, error) {
	var items []*Payment
	for _, p := range m.payments {
		if p.TenantID == tenantID {
			items = append(items, p)
		}
	}
	return items, len(items), nil
}

func TestCreatePaymentValidation(t *testing.T) {
	svc := NewService(newMockRepo())

	cases := map[string]*Payment{
		"missing patient": {TenantID: uuid.New(), Amount: 150, PaymentType: "pix"},
		"missing amount":  {TenantID: uuid.New(), PatientID: uuid.New(), PaymentType: "pix"},
		"missing type":    {TenantID: uuid.New(), PatientID: uuid.New(), Amount: 150},
	}
	for name, p := range cases {
		if err := svc.CreatePayment(context.Background(), p); !apperr.IsValidation(err) {
			t.Errorf("%s: expected validation error, got %v", name, err)
		}
	}
}

func TestCreatePaymentDefaultsStatus(t *testing.T) {
	svc := NewService(newMockRepo())
	p := &Payment{TenantID: uuid.New(), PatientID: uuid.New(), Amount: 150, PaymentType: "pix"}
	if err := svc.CreatePayment(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Status != DefaultStatus {
		t.Errorf("status = %q, want %q", p.Status, DefaultStatus)
	}
}

func TestListPaymentsByPatient(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	tenant := uuid.New()
	patient := uuid.New()

	for _, pid := range []uuid.UUID{patient, patient, uuid.New()} {
		p := &Payment{TenantID: tenant, PatientID: pid, Amount: 100, PaymentType: "card"}
		if err := svc.CreatePayment(context.Background(), p); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	_, total, err := svc.ListPayments(context.Background(), tenant, &patient, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 {
		t.Errorf("expected 2 payments for patient, got %d", total)
	}
}

func TestUpdatePaymentWrongTenant(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	p := &Payment{TenantID: uuid.New(), PatientID: uuid.New(), Amount: 100, PaymentType: "card"}
	if err := svc.CreatePayment(context.Background(), p); err != nil {
		t.Fatalf("create: %v", err)
	}

	foreign := *p
	foreign.TenantID = uuid.New()
	if err := svc.UpdatePayment(context.Background(), &foreign); err != apperr.ErrNotFound {
		t.Errorf("expected not found, got %v", err)
	}
}
