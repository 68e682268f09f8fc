package membership

import "testing"

func TestPlansOrderedByTier(t *testing.T) {
	plans := Plans()
	if len(plans) != 3 {
		t.Fatalf("attendu 3 plans, obtenu %d", len(plans))
	}
	for i := 1; i < len(plans); i++ {
		if plans[i].Tier <= plans[i-1].Tier {
			t.Errorf("plans non ordonnés par tier: %v puis %v", plans[i-1].Tier, plans[i].Tier)
		}
	}
}

func TestPlanButtonState(t *testing.T) {
	gold, _ := PlanByID("gold")
	silver, _ := PlanByID("silver")
	platinum, _ := PlanByID("platinum")

	tests := []struct {
		name       string
		plan       Plan
		activePlan string
		hasPending bool
		wantText   string
		wantOff    bool
	}{
		{"demande en attente bloque tout", silver, "", true, "Request Pending", true},
		{"demande en attente même sur plan actif", gold, "gold", true, "Request Pending", true},
		{"plan actif courant", gold, "gold", false, "Current Plan", true},
		{"tier supérieur proposé en upgrade", platinum, "gold", false, "Upgrade", false},
		{"tier inférieur indisponible", silver, "gold", false, "Downgrade Unavailable", true},
		{"aucun plan actif", gold, "", false, "Request Access", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlanButtonState(tt.plan, tt.activePlan, tt.hasPending)
			if got.Text != tt.wantText {
				t.Errorf("Text = %q, attendu %q", got.Text, tt.wantText)
			}
			if got.Disabled != tt.wantOff {
				t.Errorf("Disabled = %v, attendu %v", got.Disabled, tt.wantOff)
			}
		})
	}
}

func TestPlanByID(t *testing.T) {
	if _, ok := PlanByID("diamond"); ok {
		t.Errorf("plan inconnu trouvé")
	}
	p, ok := PlanByID("platinum")
	if !ok || p.Tier != 3 || p.Price != 49.99 {
		t.Errorf("platinum = %+v", p)
	}
}
