package membership

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"astra_back_end/internal/models"
	"astra_back_end/internal/payment"
)

// ValidityWindow est la durée d'un abonnement activé.
const ValidityWindow = 30 * 24 * time.Hour

var (
	ErrRequestPending = errors.New("une demande d'abonnement est déjà en attente")
	ErrNotEligible    = errors.New("plan non éligible")

	// ErrActivationAfterPayment signale l'état incohérent visible : le
	// paiement est capturé mais l'activation n'a pas abouti. Aucune
	// compensation automatique n'existe, le support doit intervenir.
	ErrActivationAfterPayment = errors.New("paiement capturé mais activation échouée, contactez le support")
)

// Store persiste l'historique des demandes et les champs d'abonnement du profil.
type Store interface {
	PendingRequest(ctx context.Context, userID string) (*models.MembershipRequest, error)
	AppendRequest(ctx context.Context, req *models.MembershipRequest) error
	ActivateProfile(ctx context.Context, userID string, plan Plan, validUntil time.Time) error
}

// Service orchestre la souscription : contrôle d'éligibilité, paiement, puis
// les deux écritures non transactionnelles (historique + profil).
type Service struct {
	Store Store
}

// RequestPlan souscrit l'utilisateur au plan demandé. activePlanID est le
// plan actif courant du profil, vide sinon.
func (s *Service) RequestPlan(ctx context.Context, userID, userEmail, userName, planID, activePlanID string, proc payment.Processor) (*models.MembershipRequest, error) {
	plan, ok := PlanByID(planID)
	if !ok {
		return nil, fmt.Errorf("plan inconnu: %s", planID)
	}

	// Contrôle côté serveur : une seule demande en attente par utilisateur
	pending, err := s.Store.PendingRequest(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return nil, ErrRequestPending
	}

	requestType := "new"
	if activePlanID != "" {
		current, _ := PlanByID(activePlanID)
		if plan.Tier <= current.Tier {
			return nil, ErrNotEligible
		}
		requestType = "upgrade"
	}

	result, err := proc.Charge(ctx, plan.Price, userEmail, map[string]string{
		"user_id": userID,
		"plan_id": plan.ID,
	})
	if err != nil {
		return nil, err
	}

	req := &models.MembershipRequest{
		UserID:    userID,
		UserEmail: userEmail,
		UserName:  userName,
		PlanID:    plan.ID,
		PlanName:  plan.Name,
		Status:    "approved",
		Type:      requestType,
		PaymentID: result.PaymentID,
		Amount:    plan.Price,
		CreatedAt: time.Now(),
	}

	// À partir d'ici le paiement est capturé : tout échec d'écriture est
	// remonté comme incohérence, jamais masqué ni compensé.
	if err := s.Store.AppendRequest(ctx, req); err != nil {
		log.Printf("❌ Historique d'abonnement non écrit pour %s (paiement %s): %v", userID, result.PaymentID, err)
		return nil, ErrActivationAfterPayment
	}

	if err := s.Store.ActivateProfile(ctx, userID, plan, time.Now().Add(ValidityWindow)); err != nil {
		log.Printf("❌ Activation du profil échouée pour %s (paiement %s): %v", userID, result.PaymentID, err)
		return nil, ErrActivationAfterPayment
	}

	log.Printf("👑 Abonnement %s activé pour %s (%s)", plan.Name, userID, requestType)
	return req, nil
}
