package models

import "time"

type User struct {
	ID         string     `json:"id"`
	Email      string     `json:"email"`
	Password   string     `json:"-"`
	Name       string     `json:"name"`
	Provider   string     `json:"provider"`
	ProviderID string     `json:"provider_id,omitempty"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
}

// UserProfile regroupe les informations de livraison et d'abonnement
// rattachées au compte.
type UserProfile struct {
	UserID                 string     `json:"userId"`
	FirstName              string     `json:"firstName"`
	LastName               string     `json:"lastName"`
	Age                    int        `json:"age,omitempty"`
	PhoneNumber            string     `json:"phoneNumber"`
	AlternativePhoneNumber string     `json:"alternativePhoneNumber,omitempty"`
	PinCode                string     `json:"pinCode"`
	Address                string     `json:"address"`
	City                   string     `json:"city"`
	MembershipStatus       string     `json:"membershipStatus"`
	MembershipPlan         string     `json:"membershipPlan,omitempty"`
	MembershipPlanName     string     `json:"membershipPlanName,omitempty"`
	MembershipValidUntil   *time.Time `json:"membershipValidUntil,omitempty"`
}

// IsComplete indique si le profil permet de passer commande :
// téléphone, adresse, code postal et ville doivent être renseignés.
func (p UserProfile) IsComplete() bool {
	return p.PhoneNumber != "" && p.Address != "" && p.PinCode != "" && p.City != ""
}
