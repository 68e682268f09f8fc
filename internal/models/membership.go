package models

import "time"

// MembershipRequest est une entrée de l'historique append-only des demandes
// d'abonnement.
type MembershipRequest struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserEmail string    `json:"userEmail"`
	UserName  string    `json:"userName"`
	PlanID    string    `json:"planId"`
	PlanName  string    `json:"planName"`
	Status    string    `json:"status"`
	Type      string    `json:"type"`
	PaymentID string    `json:"paymentId"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
}
