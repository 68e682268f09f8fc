package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math"

	"astra_back_end/internal/models"
)

// MaxQuantity est la limite serveur par ligne de panier. L'ancien front ne
// l'imposait que côté UI ; ici elle est vérifiée à chaque mutation.
const MaxQuantity = 10

var (
	ErrInvalidQuantity = errors.New("quantité invalide")
	ErrQuantityLimit   = errors.New("quantité maximale de 10 par article")
)

// Storage persiste le snapshot complet du panier : une clé par utilisateur,
// réécrite à chaque mutation.
type Storage interface {
	Load(ctx context.Context, userID string) ([]byte, error)
	Save(ctx context.Context, userID string, data []byte) error
	Delete(ctx context.Context, userID string) error
}

// Store tient les lignes du panier d'un utilisateur et les resynchronise
// avec le Storage à chaque mutation.
type Store struct {
	userID  string
	storage Storage
	items   []models.CartItem
}

// NewStore recharge le snapshot existant. Un snapshot corrompu ou absent
// donne un panier vide, jamais une erreur.
func NewStore(ctx context.Context, userID string, storage Storage) *Store {
	s := &Store{userID: userID, storage: storage}

	data, err := storage.Load(ctx, userID)
	if err != nil {
		log.Printf("⚠️ Lecture panier impossible pour %s: %v", userID, err)
		return s
	}
	if len(data) == 0 {
		return s
	}
	if err := json.Unmarshal(data, &s.items); err != nil {
		log.Printf("⚠️ Snapshot panier corrompu pour %s, panier réinitialisé", userID)
		s.items = nil
	}
	return s
}

// Items retourne une copie des lignes du panier.
func (s *Store) Items() []models.CartItem {
	out := make([]models.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// Add fusionne l'article dans la ligne existante (même productId) ou en crée
// une nouvelle, puis persiste le snapshot.
func (s *Store) Add(ctx context.Context, item models.CartItem, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}

	found := false
	for i := range s.items {
		if s.items[i].ProductID == item.ProductID {
			if s.items[i].Quantity+qty > MaxQuantity {
				return ErrQuantityLimit
			}
			s.items[i].Quantity += qty
			found = true
			break
		}
	}
	if !found {
		if qty > MaxQuantity {
			return ErrQuantityLimit
		}
		item.Quantity = qty
		s.items = append(s.items, item)
	}

	return s.save(ctx)
}

// Remove supprime la ligne. Idempotent : un productId absent n'est pas une erreur.
func (s *Store) Remove(ctx context.Context, productID string) error {
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	s.items = kept
	return s.save(ctx)
}

// SetQuantity remplace la quantité d'une ligne. n < 1 est ignoré.
func (s *Store) SetQuantity(ctx context.Context, productID string, n int) error {
	if n < 1 {
		return nil
	}
	if n > MaxQuantity {
		return ErrQuantityLimit
	}
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = n
			return s.save(ctx)
		}
	}
	return nil
}

// Clear vide le panier, utilisé après une commande validée.
func (s *Store) Clear(ctx context.Context) error {
	s.items = nil
	return s.storage.Delete(ctx, s.userID)
}

// Count est la somme des quantités.
func (s *Store) Count() int {
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// Total est le montant remisé du panier, arrondi à 2 décimales.
func (s *Store) Total() float64 {
	return Total(s.items)
}

func (s *Store) save(ctx context.Context) error {
	data, err := json.Marshal(s.items)
	if err != nil {
		return err
	}
	return s.storage.Save(ctx, s.userID, data)
}

// FinalPrice applique la remise au prix catalogue.
func FinalPrice(price, offerPercentage float64) float64 {
	if offerPercentage > 0 {
		return price - price*(offerPercentage/100)
	}
	return price
}

// Total calcule le montant remisé d'un ensemble de lignes, arrondi à 2 décimales.
func Total(items []models.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += FinalPrice(item.Price, item.OfferPercentage) * float64(item.Quantity)
	}
	return math.Round(total*100) / 100
}
