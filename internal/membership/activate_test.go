package membership

import (
	"context"
	"errors"
	"testing"
	"time"

	"astra_back_end/internal/models"
	"astra_back_end/internal/payment"
)

type fakeStore struct {
	pending     *models.MembershipRequest
	appended    []*models.MembershipRequest
	appendErr   error
	activated   []string
	activateErr error
}

func (f *fakeStore) PendingRequest(ctx context.Context, userID string) (*models.MembershipRequest, error) {
	return f.pending, nil
}

func (f *fakeStore) AppendRequest(ctx context.Context, req *models.MembershipRequest) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, req)
	return nil
}

func (f *fakeStore) ActivateProfile(ctx context.Context, userID string, plan Plan, validUntil time.Time) error {
	if f.activateErr != nil {
		return f.activateErr
	}
	f.activated = append(f.activated, plan.ID)
	return nil
}

type fakeProcessor struct {
	err     error
	charged []float64
}

func (f *fakeProcessor) Charge(ctx context.Context, amount float64, email string, metadata map[string]string) (*payment.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.charged = append(f.charged, amount)
	return &payment.Result{PaymentID: "pay-1", Method: payment.MethodStripe}, nil
}

func TestRequestPlanActivates(t *testing.T) {
	store := &fakeStore{}
	svc := &Service{Store: store}
	proc := &fakeProcessor{}

	req, err := svc.RequestPlan(context.Background(), "u1", "ada@example.com", "Ada", "gold", "", proc)
	if err != nil {
		t.Fatalf("RequestPlan: %v", err)
	}

	if req.Status != "approved" || req.Type != "new" {
		t.Errorf("demande = %+v", req)
	}
	if len(proc.charged) != 1 || proc.charged[0] != 19.99 {
		t.Errorf("montant facturé = %v, attendu 19.99", proc.charged)
	}
	if len(store.appended) != 1 || len(store.activated) != 1 {
		t.Errorf("écritures = %d historique, %d activation", len(store.appended), len(store.activated))
	}
}

func TestRequestPlanBlockedByPending(t *testing.T) {
	store := &fakeStore{pending: &models.MembershipRequest{Status: "pending"}}
	svc := &Service{Store: store}
	proc := &fakeProcessor{}

	_, err := svc.RequestPlan(context.Background(), "u1", "ada@example.com", "Ada", "gold", "", proc)
	if !errors.Is(err, ErrRequestPending) {
		t.Errorf("attendu ErrRequestPending, obtenu %v", err)
	}
	// aucun paiement déclenché
	if len(proc.charged) != 0 {
		t.Errorf("paiement déclenché malgré une demande en attente")
	}
}

func TestUpgradeEligibility(t *testing.T) {
	tests := []struct {
		name       string
		planID     string
		activePlan string
		wantErr    error
		wantType   string
	}{
		{"upgrade vers tier supérieur", "platinum", "gold", nil, "upgrade"},
		{"downgrade refusé", "silver", "gold", ErrNotEligible, ""},
		{"même plan refusé", "gold", "gold", ErrNotEligible, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			svc := &Service{Store: store}

			req, err := svc.RequestPlan(context.Background(), "u1", "ada@example.com", "Ada",
				tt.planID, tt.activePlan, &fakeProcessor{})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, attendu %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && req.Type != tt.wantType {
				t.Errorf("Type = %q, attendu %q", req.Type, tt.wantType)
			}
		})
	}
}

func TestDeclinedPaymentStopsActivation(t *testing.T) {
	store := &fakeStore{}
	svc := &Service{Store: store}
	proc := &fakeProcessor{err: &payment.DeclinedError{Reason: "carte refusée"}}

	_, err := svc.RequestPlan(context.Background(), "u1", "ada@example.com", "Ada", "gold", "", proc)
	var declined *payment.DeclinedError
	if !errors.As(err, &declined) {
		t.Fatalf("attendu DeclinedError, obtenu %v", err)
	}
	if len(store.appended) != 0 || len(store.activated) != 0 {
		t.Errorf("écritures effectuées malgré le refus de paiement")
	}
}

func TestActivationFailureAfterPayment(t *testing.T) {
	// le paiement passe mais l'écriture échoue : l'incohérence doit être
	// remontée avec l'erreur dédiée, jamais masquée
	tests := []struct {
		name  string
		store *fakeStore
	}{
		{"historique en échec", &fakeStore{appendErr: errors.New("scylla down")}},
		{"activation profil en échec", &fakeStore{activateErr: errors.New("scylla down")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &Service{Store: tt.store}
			_, err := svc.RequestPlan(context.Background(), "u1", "ada@example.com", "Ada", "gold", "", &fakeProcessor{})
			if !errors.Is(err, ErrActivationAfterPayment) {
				t.Errorf("attendu ErrActivationAfterPayment, obtenu %v", err)
			}
		})
	}
}

func TestUnknownPlanRejected(t *testing.T) {
	svc := &Service{Store: &fakeStore{}}
	proc := &fakeProcessor{}
	if _, err := svc.RequestPlan(context.Background(), "u1", "ada@example.com", "Ada", "diamond", "", proc); err == nil {
		t.Errorf("plan inconnu accepté")
	}
	if len(proc.charged) != 0 {
		t.Errorf("paiement déclenché pour un plan inconnu")
	}
}
