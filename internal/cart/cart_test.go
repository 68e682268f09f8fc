package cart

import (
	"context"
	"errors"
	"testing"

	"astra_back_end/internal/models"
)

// memStorage est un Storage en mémoire pour les tests.
type memStorage struct {
	data    map[string][]byte
	saveErr error
}

func newMemStorage() *memStorage {
	return &memStorage{data: map[string][]byte{}}
}

func (m *memStorage) Load(ctx context.Context, userID string) ([]byte, error) {
	return m.data[userID], nil
}

func (m *memStorage) Save(ctx context.Context, userID string, data []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data[userID] = data
	return nil
}

func (m *memStorage) Delete(ctx context.Context, userID string) error {
	delete(m.data, userID)
	return nil
}

func TestFinalPrice(t *testing.T) {
	tests := []struct {
		name  string
		price float64
		offer float64
		want  float64
	}{
		{"sans remise", 50, 0, 50},
		{"remise 10 pour cent", 100, 10, 90},
		{"remise 25 pour cent", 80, 25, 60},
		{"remise négative ignorée", 50, -5, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FinalPrice(tt.price, tt.offer); got != tt.want {
				t.Errorf("FinalPrice(%v, %v) = %v, attendu %v", tt.price, tt.offer, got, tt.want)
			}
		})
	}
}

func TestTotal(t *testing.T) {
	// 2 x (100 remisé à 90) + 1 x 50 = 230.00
	items := []models.CartItem{
		{ProductID: "a", Price: 100, OfferPercentage: 10, Quantity: 2},
		{ProductID: "b", Price: 50, Quantity: 1},
	}
	if got := Total(items); got != 230.00 {
		t.Errorf("Total = %v, attendu 230.00", got)
	}

	if got := Total(nil); got != 0 {
		t.Errorf("Total(nil) = %v, attendu 0", got)
	}
}

func TestAddMergesSameProduct(t *testing.T) {
	ctx := context.Background()
	s := NewStore(ctx, "u1", newMemStorage())

	item := models.CartItem{ProductID: "p1", Name: "Veste", Price: 120}
	if err := s.Add(ctx, item, 2); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Add(ctx, item, 3); err != nil {
		t.Fatalf("Add: %v", err)
	}

	items := s.Items()
	if len(items) != 1 {
		t.Fatalf("attendu 1 ligne, obtenu %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Errorf("quantité fusionnée = %d, attendu 5", items[0].Quantity)
	}
}

func TestAddRejectsOverLimit(t *testing.T) {
	ctx := context.Background()
	s := NewStore(ctx, "u1", newMemStorage())

	item := models.CartItem{ProductID: "p1", Price: 10}
	if err := s.Add(ctx, item, 8); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Add(ctx, item, 3); !errors.Is(err, ErrQuantityLimit) {
		t.Errorf("attendu ErrQuantityLimit, obtenu %v", err)
	}
	// la ligne n'a pas bougé
	if got := s.Items()[0].Quantity; got != 8 {
		t.Errorf("quantité = %d, attendu 8", got)
	}

	if err := s.Add(ctx, item, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("attendu ErrInvalidQuantity, obtenu %v", err)
	}
}

func TestSetQuantity(t *testing.T) {
	ctx := context.Background()
	s := NewStore(ctx, "u1", newMemStorage())
	s.Add(ctx, models.CartItem{ProductID: "p1", Price: 10}, 4)

	// n < 1 est ignoré sans erreur
	if err := s.SetQuantity(ctx, "p1", 0); err != nil {
		t.Fatalf("SetQuantity(0): %v", err)
	}
	if err := s.SetQuantity(ctx, "p1", -3); err != nil {
		t.Fatalf("SetQuantity(-3): %v", err)
	}
	if got := s.Items()[0].Quantity; got != 4 {
		t.Errorf("quantité après n<1 = %d, attendu 4", got)
	}

	if err := s.SetQuantity(ctx, "p1", 7); err != nil {
		t.Fatalf("SetQuantity(7): %v", err)
	}
	if got := s.Items()[0].Quantity; got != 7 {
		t.Errorf("quantité = %d, attendu 7", got)
	}

	if err := s.SetQuantity(ctx, "p1", 11); !errors.Is(err, ErrQuantityLimit) {
		t.Errorf("attendu ErrQuantityLimit, obtenu %v", err)
	}

	// productId inconnu : no-op
	if err := s.SetQuantity(ctx, "absent", 3); err != nil {
		t.Fatalf("SetQuantity inconnu: %v", err)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := NewStore(ctx, "u1", newMemStorage())
	s.Add(ctx, models.CartItem{ProductID: "p1", Price: 10}, 1)

	if err := s.Remove(ctx, "p1"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := s.Remove(ctx, "p1"); err != nil {
		t.Fatalf("Remove répété: %v", err)
	}
	if len(s.Items()) != 0 {
		t.Errorf("panier non vide après Remove")
	}
}

func TestClearThenReload(t *testing.T) {
	ctx := context.Background()
	storage := newMemStorage()

	s := NewStore(ctx, "u1", storage)
	s.Add(ctx, models.CartItem{ProductID: "p1", Price: 10}, 2)
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	reloaded := NewStore(ctx, "u1", storage)
	if len(reloaded.Items()) != 0 {
		t.Errorf("panier rechargé non vide après Clear")
	}
}

func TestSnapshotSurvivesReload(t *testing.T) {
	ctx := context.Background()
	storage := newMemStorage()

	s := NewStore(ctx, "u1", storage)
	s.Add(ctx, models.CartItem{ProductID: "p1", Price: 100, OfferPercentage: 10}, 2)

	reloaded := NewStore(ctx, "u1", storage)
	if got := reloaded.Count(); got != 2 {
		t.Errorf("Count après rechargement = %d, attendu 2", got)
	}
	if got := reloaded.Total(); got != 180.00 {
		t.Errorf("Total après rechargement = %v, attendu 180.00", got)
	}
}

func TestCorruptSnapshotGivesEmptyCart(t *testing.T) {
	ctx := context.Background()
	storage := newMemStorage()
	storage.data["u1"] = []byte("{pas du json[")

	s := NewStore(ctx, "u1", storage)
	if len(s.Items()) != 0 {
		t.Errorf("snapshot corrompu : attendu panier vide")
	}

	// le panier reste utilisable
	if err := s.Add(ctx, models.CartItem{ProductID: "p1", Price: 10}, 1); err != nil {
		t.Fatalf("Add après snapshot corrompu: %v", err)
	}
}

func TestAddPropagatesSaveError(t *testing.T) {
	ctx := context.Background()
	storage := newMemStorage()
	storage.saveErr = errors.New("redis indisponible")

	s := NewStore(ctx, "u1", storage)
	if err := s.Add(ctx, models.CartItem{ProductID: "p1", Price: 10}, 1); err == nil {
		t.Errorf("attendu une erreur de sauvegarde")
	}
}
