package orders

// Statuts de commande, dans l'ordre de progression de la livraison.
const (
	StatusPending        = "pending"
	StatusShipped        = "shipped"
	StatusOutForDelivery = "out-for-delivery"
	StatusDelivered      = "delivered"
	StatusCancelled      = "cancelled"
)

var statusSteps = []struct {
	id    string
	label string
}{
	{StatusPending, "Order Placed"},
	{StatusShipped, "Shipped"},
	{StatusOutForDelivery, "Out for Delivery"},
	{StatusDelivered, "Delivered"},
}

type TimelineStep struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Completed bool   `json:"completed"`
	Active    bool   `json:"active"`
}

// Timeline dérive l'avancement d'une commande : une étape est complétée si
// son index est strictement inférieur au statut courant, active s'il est
// inférieur ou égal. Une commande annulée n'a pas de timeline.
func Timeline(status string) []TimelineStep {
	if status == StatusCancelled {
		return nil
	}

	current := -1
	for i, step := range statusSteps {
		if step.id == status {
			current = i
			break
		}
	}

	steps := make([]TimelineStep, len(statusSteps))
	for i, step := range statusSteps {
		steps[i] = TimelineStep{
			ID:        step.id,
			Label:     step.label,
			Completed: current != -1 && i < current,
			Active:    current != -1 && i <= current,
		}
	}
	return steps
}

// ValidStatus vérifie qu'un statut fait partie du cycle de vie connu.
func ValidStatus(status string) bool {
	if status == StatusCancelled {
		return true
	}
	for _, step := range statusSteps {
		if step.id == status {
			return true
		}
	}
	return false
}
