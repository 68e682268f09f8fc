package membership

// Plan est une entrée du catalogue statique à trois niveaux. Le tier sert
// uniquement à la comparaison d'éligibilité upgrade.
type Plan struct {
	ID         string   `json:"id"`
	Tier       int      `json:"tier"`
	Name       string   `json:"name"`
	Price      float64  `json:"price"`
	PriceLabel string   `json:"priceLabel"`
	Features   []string `json:"features"`
}

var plans = []Plan{
	{
		ID:         "silver",
		Tier:       1,
		Name:       "Silver",
		Price:      9.99,
		PriceLabel: "$9.99/mo",
		Features:   []string{"Early Access to Drops", "Free Standard Shipping", "5% Off All Orders"},
	},
	{
		ID:         "gold",
		Tier:       2,
		Name:       "Gold",
		Price:      19.99,
		PriceLabel: "$19.99/mo",
		Features:   []string{"Everything in Silver", "Priority Dispatch (12h)", "10% Off All Orders", "Exclusive Gold-Only Items"},
	},
	{
		ID:         "platinum",
		Tier:       3,
		Name:       "Platinum",
		Price:      49.99,
		PriceLabel: "$49.99/mo",
		Features:   []string{"Everything in Gold", "Same-Day Dispatch", "20% Off All Orders", "Personal Stylist Support", "VIP Events Access"},
	},
}

// Plans retourne le catalogue dans l'ordre croissant des tiers.
func Plans() []Plan {
	out := make([]Plan, len(plans))
	copy(out, plans)
	return out
}

// PlanByID retrouve un plan du catalogue.
func PlanByID(id string) (Plan, bool) {
	for _, p := range plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}

// ButtonState est l'état dérivé du bouton d'un plan pour un utilisateur donné.
type ButtonState struct {
	Text     string `json:"text"`
	Disabled bool   `json:"disabled"`
}

// PlanButtonState applique les priorités : une demande en attente (quel que
// soit le plan) bloque tout ; sinon le plan actif décide upgrade/downgrade ;
// sinon tout est ouvert.
func PlanButtonState(plan Plan, activePlanID string, hasPending bool) ButtonState {
	if hasPending {
		return ButtonState{Text: "Request Pending", Disabled: true}
	}

	if activePlanID != "" {
		if activePlanID == plan.ID {
			return ButtonState{Text: "Current Plan", Disabled: true}
		}
		currentTier := 0
		if current, ok := PlanByID(activePlanID); ok {
			currentTier = current.Tier
		}
		if plan.Tier > currentTier {
			return ButtonState{Text: "Upgrade", Disabled: false}
		}
		return ButtonState{Text: "Downgrade Unavailable", Disabled: true}
	}

	return ButtonState{Text: "Request Access", Disabled: false}
}
