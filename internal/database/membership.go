package database

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"astra_back_end/internal/membership"
	"astra_back_end/internal/models"
)

// ScyllaMembership implémente membership.Store : historique append-only dans
// membership_requests_by_user, champs d'abonnement dans profiles.
type ScyllaMembership struct{}

func (ScyllaMembership) PendingRequest(ctx context.Context, userID string) (*models.MembershipRequest, error) {
	session, err := GetUsersSession()
	if err != nil {
		return nil, err
	}

	// Filtrage client sur la partition utilisateur : pas d'index secondaire
	// sur status.
	const q = `SELECT request_id, plan_id, plan_name, status, type, payment_id, amount, created_at
		FROM membership_requests_by_user WHERE user_id = ?`
	iter := session.Query(q, userID).WithContext(ctx).Iter()

	var r models.MembershipRequest
	var found *models.MembershipRequest
	for iter.Scan(&r.ID, &r.PlanID, &r.PlanName, &r.Status, &r.Type, &r.PaymentID, &r.Amount, &r.CreatedAt) {
		if r.Status == "pending" {
			pending := r
			pending.UserID = userID
			found = &pending
			break
		}
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return found, nil
}

func (ScyllaMembership) AppendRequest(ctx context.Context, req *models.MembershipRequest) error {
	session, err := GetUsersSession()
	if err != nil {
		return err
	}

	req.ID = uuid.New().String()
	return session.Query(`INSERT INTO membership_requests_by_user
		(user_id, request_id, user_email, user_name, plan_id, plan_name, status, type, payment_id, amount, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		req.UserID, req.ID, req.UserEmail, req.UserName, req.PlanID, req.PlanName,
		req.Status, req.Type, req.PaymentID, req.Amount, req.CreatedAt).
		WithContext(ctx).Exec()
}

func (ScyllaMembership) ActivateProfile(ctx context.Context, userID string, plan membership.Plan, validUntil time.Time) error {
	session, err := GetUsersSession()
	if err != nil {
		return err
	}

	return session.Query(`UPDATE profiles SET membership_status = ?, membership_plan = ?,
		membership_plan_name = ?, membership_valid_until = ? WHERE user_id = ?`,
		"active", plan.ID, plan.Name, validUntil, userID).
		WithContext(ctx).Exec()
}

// ActivePlanID retourne le plan actif du profil, vide si aucun.
func ActivePlanID(ctx context.Context, userID string) (string, error) {
	profile, err := GetProfile(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if profile.MembershipStatus != "active" {
		return "", nil
	}
	return profile.MembershipPlan, nil
}
