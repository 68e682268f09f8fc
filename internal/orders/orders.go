package orders

import (
	"context"
	"errors"
	"sort"

	"astra_back_end/internal/models"
)

// ErrNotFound distingue une commande inexistante d'une panne du store.
var ErrNotFound = errors.New("commande introuvable")

// Store expose les lectures de commandes. La liste n'a aucun ordre distant
// garanti : le tri se fait toujours côté client.
type Store interface {
	Insert(ctx context.Context, order *models.Order) (string, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	UpdateStatus(ctx context.Context, id, userID, status string) error
}

// SortByCreatedAtDesc trie les commandes de la plus récente à la plus ancienne.
func SortByCreatedAtDesc(list []models.Order) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}
