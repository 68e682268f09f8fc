package orders

import "testing"

func TestTimelineProgression(t *testing.T) {
	tests := []struct {
		status        string
		wantCompleted []bool
		wantActive    []bool
	}{
		{StatusPending,
			[]bool{false, false, false, false},
			[]bool{true, false, false, false}},
		{StatusShipped,
			[]bool{true, false, false, false},
			[]bool{true, true, false, false}},
		{StatusOutForDelivery,
			[]bool{true, true, false, false},
			[]bool{true, true, true, false}},
		{StatusDelivered,
			[]bool{true, true, true, false},
			[]bool{true, true, true, true}},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			steps := Timeline(tt.status)
			if len(steps) != 4 {
				t.Fatalf("attendu 4 étapes, obtenu %d", len(steps))
			}
			for i, step := range steps {
				if step.Completed != tt.wantCompleted[i] {
					t.Errorf("étape %s: Completed = %v, attendu %v", step.ID, step.Completed, tt.wantCompleted[i])
				}
				if step.Active != tt.wantActive[i] {
					t.Errorf("étape %s: Active = %v, attendu %v", step.ID, step.Active, tt.wantActive[i])
				}
			}
		})
	}
}

func TestTimelineLabels(t *testing.T) {
	steps := Timeline(StatusPending)
	wantLabels := []string{"Order Placed", "Shipped", "Out for Delivery", "Delivered"}
	for i, want := range wantLabels {
		if steps[i].Label != want {
			t.Errorf("label %d = %q, attendu %q", i, steps[i].Label, want)
		}
	}
}

func TestCancelledHasNoTimeline(t *testing.T) {
	if steps := Timeline(StatusCancelled); steps != nil {
		t.Errorf("commande annulée : attendu timeline nil, obtenu %v", steps)
	}
}

func TestUnknownStatusMarksNothing(t *testing.T) {
	for _, step := range Timeline("statut-inconnu") {
		if step.Completed || step.Active {
			t.Errorf("statut inconnu : étape %s marquée", step.ID)
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusShipped, StatusOutForDelivery, StatusDelivered, StatusCancelled} {
		if !ValidStatus(s) {
			t.Errorf("statut %q devrait être valide", s)
		}
	}
	if ValidStatus("refunded") {
		t.Errorf("statut inconnu accepté")
	}
}
