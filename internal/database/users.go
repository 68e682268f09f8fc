package database

import (
	"context"
	"errors"
	"time"

	"github.com/gocql/gocql"

	"astra_back_end/internal/models"
)

// ErrUserNotFound distingue un compte ou profil inexistant d'une panne.
var ErrUserNotFound = errors.New("utilisateur introuvable")

// GetUserByEmail retrouve un compte via la table d'index users_by_email.
func GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	session, err := GetUsersSession()
	if err != nil {
		return nil, err
	}

	var userID string
	err = session.Query(`SELECT user_id FROM users_by_email WHERE email = ?`, email).
		WithContext(ctx).Scan(&userID)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return GetUserByID(ctx, userID)
}

func GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	session, err := GetUsersSession()
	if err != nil {
		return nil, err
	}

	u := models.User{ID: userID}
	err = session.Query(`SELECT email, password, name, provider, provider_id FROM users WHERE user_id = ?`, userID).
		WithContext(ctx).Scan(&u.Email, &u.Password, &u.Name, &u.Provider, &u.ProviderID)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// InsertUser crée le compte et son index par email.
func InsertUser(ctx context.Context, u *models.User) error {
	session, err := GetUsersSession()
	if err != nil {
		return err
	}

	now := time.Now()
	if err := session.Query(`INSERT INTO users (user_id, email, password, name, provider, provider_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.Password, u.Name, u.Provider, u.ProviderID, now).
		WithContext(ctx).Exec(); err != nil {
		return err
	}
	return session.Query(`INSERT INTO users_by_email (email, user_id) VALUES (?, ?)`, u.Email, u.ID).
		WithContext(ctx).Exec()
}

// GetProfile lit le profil de livraison/abonnement. ErrUserNotFound si le
// profil n'a jamais été enregistré.
func GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	session, err := GetUsersSession()
	if err != nil {
		return nil, err
	}

	p := models.UserProfile{UserID: userID}
	var validUntil time.Time
	err = session.Query(`SELECT first_name, last_name, age, phone_number, alternative_phone_number,
		pin_code, address, city, membership_status, membership_plan, membership_plan_name, membership_valid_until
		FROM profiles WHERE user_id = ?`, userID).
		WithContext(ctx).Scan(&p.FirstName, &p.LastName, &p.Age, &p.PhoneNumber, &p.AlternativePhoneNumber,
		&p.PinCode, &p.Address, &p.City, &p.MembershipStatus, &p.MembershipPlan, &p.MembershipPlanName, &validUntil)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if !validUntil.IsZero() {
		p.MembershipValidUntil = &validUntil
	}
	return &p, nil
}

// SaveProfile écrit le profil complet (création au premier enregistrement).
// Les champs d'abonnement ne sont pas touchés ici.
func SaveProfile(ctx context.Context, p *models.UserProfile) error {
	session, err := GetUsersSession()
	if err != nil {
		return err
	}

	return session.Query(`UPDATE profiles SET first_name = ?, last_name = ?, age = ?, phone_number = ?,
		alternative_phone_number = ?, pin_code = ?, address = ?, city = ? WHERE user_id = ?`,
		p.FirstName, p.LastName, p.Age, p.PhoneNumber,
		p.AlternativePhoneNumber, p.PinCode, p.Address, p.City, p.UserID).
		WithContext(ctx).Exec()
}
