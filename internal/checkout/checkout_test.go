package checkout

import (
	"context"
	"errors"
	"testing"

	"astra_back_end/internal/cart"
	"astra_back_end/internal/models"
	"astra_back_end/internal/payment"
)

type memStorage struct {
	data map[string][]byte
}

func (m *memStorage) Load(ctx context.Context, userID string) ([]byte, error) {
	return m.data[userID], nil
}

func (m *memStorage) Save(ctx context.Context, userID string, data []byte) error {
	m.data[userID] = data
	return nil
}

func (m *memStorage) Delete(ctx context.Context, userID string) error {
	delete(m.data, userID)
	return nil
}

type fakeOrders struct {
	inserted  []*models.Order
	insertErr error
}

func (f *fakeOrders) Insert(ctx context.Context, order *models.Order) (string, error) {
	if f.insertErr != nil {
		return "", f.insertErr
	}
	f.inserted = append(f.inserted, order)
	return "order-1", nil
}

type fakeProcessor struct {
	err     error
	charged []float64
}

func (f *fakeProcessor) Charge(ctx context.Context, amount float64, email string, metadata map[string]string) (*payment.Result, error) {
	f.charged = append(f.charged, amount)
	if f.err != nil {
		return nil, f.err
	}
	return &payment.Result{PaymentID: "pay-1", Method: payment.MethodStripe}, nil
}

func validShipping() models.ShippingDetails {
	return models.ShippingDetails{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Address:  "12 rue des Machines",
		City:     "Paris",
		ZipCode:  "75003",
		Country:  "France",
		Phone:    "+33600000000",
	}
}

func cartWith(t *testing.T, items ...models.CartItem) *cart.Store {
	t.Helper()
	ctx := context.Background()
	s := cart.NewStore(ctx, "u1", &memStorage{data: map[string][]byte{}})
	for _, item := range items {
		if err := s.Add(ctx, item, item.Quantity); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	return s
}

func TestEmptyCartCannotStartCheckout(t *testing.T) {
	s := cart.NewStore(context.Background(), "u1", &memStorage{data: map[string][]byte{}})
	if _, err := NewCartSession("u1", "ada@example.com", s, &fakeOrders{}); !errors.Is(err, ErrEmptyCart) {
		t.Errorf("attendu ErrEmptyCart, obtenu %v", err)
	}
}

func TestShippingValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.ShippingDetails)
		want   error
	}{
		{"complet", func(d *models.ShippingDetails) {}, nil},
		{"nom manquant", func(d *models.ShippingDetails) { d.FullName = "" }, ErrMissingShipping},
		{"ville manquante", func(d *models.ShippingDetails) { d.City = "" }, ErrMissingShipping},
		{"email invalide", func(d *models.ShippingDetails) { d.Email = "pas-un-email" }, ErrInvalidEmail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cartWith(t, models.CartItem{ProductID: "p1", Price: 10, Quantity: 1})
			session, err := NewCartSession("u1", "ada@example.com", c, &fakeOrders{})
			if err != nil {
				t.Fatalf("NewCartSession: %v", err)
			}

			d := validShipping()
			tt.mutate(&d)

			err = session.SetShipping(d)
			if !errors.Is(err, tt.want) {
				t.Errorf("SetShipping = %v, attendu %v", err, tt.want)
			}
			if tt.want != nil && session.State() != StateCollectingShipping {
				t.Errorf("état après validation échouée = %v", session.State())
			}
		})
	}
}

func TestTotalFrozenAtEntry(t *testing.T) {
	ctx := context.Background()
	c := cartWith(t, models.CartItem{ProductID: "p1", Price: 100, OfferPercentage: 10, Quantity: 2})

	orders := &fakeOrders{}
	session, err := NewCartSession("u1", "ada@example.com", c, orders)
	if err != nil {
		t.Fatalf("NewCartSession: %v", err)
	}

	// le panier change pendant le checkout : le montant figé ne bouge pas
	if err := c.SetQuantity(ctx, "p1", 9); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}

	if session.Total() != 180.00 {
		t.Errorf("Total = %v, attendu 180.00 figé à l'entrée", session.Total())
	}

	if err := session.SetShipping(validShipping()); err != nil {
		t.Fatalf("SetShipping: %v", err)
	}

	proc := &fakeProcessor{}
	if _, err := session.Submit(ctx, proc); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if proc.charged[0] != 180.00 {
		t.Errorf("montant facturé = %v, attendu 180.00", proc.charged[0])
	}
	if orders.inserted[0].TotalAmount != 180.00 {
		t.Errorf("montant commande = %v, attendu 180.00", orders.inserted[0].TotalAmount)
	}
}

func TestDeclinedPaymentIsResumable(t *testing.T) {
	ctx := context.Background()
	c := cartWith(t, models.CartItem{ProductID: "p1", Price: 50, Quantity: 1})

	session, err := NewCartSession("u1", "ada@example.com", c, &fakeOrders{})
	if err != nil {
		t.Fatalf("NewCartSession: %v", err)
	}
	if err := session.SetShipping(validShipping()); err != nil {
		t.Fatalf("SetShipping: %v", err)
	}

	declined := &fakeProcessor{err: &payment.DeclinedError{Reason: "carte refusée"}}
	if _, err := session.Submit(ctx, declined); err == nil {
		t.Fatal("attendu un refus de paiement")
	}
	if session.State() != StateAwaitingPayment {
		t.Errorf("état après refus = %v, attendu awaiting-payment", session.State())
	}

	// retour en arrière possible, puis nouvel essai qui aboutit
	if err := session.Back(); err != nil {
		t.Fatalf("Back: %v", err)
	}
	if err := session.SetShipping(validShipping()); err != nil {
		t.Fatalf("SetShipping: %v", err)
	}
	if _, err := session.Submit(ctx, &fakeProcessor{}); err != nil {
		t.Fatalf("Submit après refus: %v", err)
	}
	if session.State() != StateSucceeded {
		t.Errorf("état final = %v", session.State())
	}
}

func TestInsertFailureEndsSession(t *testing.T) {
	ctx := context.Background()
	c := cartWith(t, models.CartItem{ProductID: "p1", Price: 50, Quantity: 1})

	orders := &fakeOrders{insertErr: errors.New("scylla down")}
	session, _ := NewCartSession("u1", "ada@example.com", c, orders)
	session.SetShipping(validShipping())

	if _, err := session.Submit(ctx, &fakeProcessor{}); !errors.Is(err, ErrOrderNotPlaced) {
		t.Errorf("attendu ErrOrderNotPlaced, obtenu %v", err)
	}
	if session.State() != StateFailed {
		t.Errorf("état = %v, attendu failed", session.State())
	}

	// la session est terminée : un second Submit est rejeté
	if _, err := session.Submit(ctx, &fakeProcessor{}); !errors.Is(err, ErrInvalidState) {
		t.Errorf("attendu ErrInvalidState, obtenu %v", err)
	}
}

func TestDoubleSubmitRejected(t *testing.T) {
	ctx := context.Background()
	c := cartWith(t, models.CartItem{ProductID: "p1", Price: 50, Quantity: 1})

	session, _ := NewCartSession("u1", "ada@example.com", c, &fakeOrders{})
	session.SetShipping(validShipping())

	if _, err := session.Submit(ctx, &fakeProcessor{}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := session.Submit(ctx, &fakeProcessor{}); !errors.Is(err, ErrInvalidState) {
		t.Errorf("double Submit: attendu ErrInvalidState, obtenu %v", err)
	}
}

func TestCartClearedOnlyForCartCheckout(t *testing.T) {
	ctx := context.Background()
	c := cartWith(t, models.CartItem{ProductID: "p1", Price: 50, Quantity: 2})

	session, _ := NewCartSession("u1", "ada@example.com", c, &fakeOrders{})
	session.SetShipping(validShipping())
	if _, err := session.Submit(ctx, &fakeProcessor{}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if c.Count() != 0 {
		t.Errorf("panier non vidé après commande validée")
	}
}

func TestBuyNowBypassesCart(t *testing.T) {
	ctx := context.Background()
	c := cartWith(t, models.CartItem{ProductID: "autre", Price: 99, Quantity: 1})

	line := models.CartItem{ProductID: "p1", Name: "Veste", Price: 100, OfferPercentage: 20, Quantity: 1}
	orders := &fakeOrders{}
	session, err := NewBuyNowSession("u1", "ada@example.com", line, orders)
	if err != nil {
		t.Fatalf("NewBuyNowSession: %v", err)
	}

	if session.Total() != 80.00 {
		t.Errorf("Total buy-now = %v, attendu 80.00", session.Total())
	}

	session.SetShipping(validShipping())
	if _, err := session.Submit(ctx, &fakeProcessor{}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	// le panier n'a pas été touché
	if c.Count() != 1 {
		t.Errorf("panier modifié par un achat direct")
	}
	if len(orders.inserted[0].Items) != 1 || orders.inserted[0].Items[0].ProductID != "p1" {
		t.Errorf("commande buy-now incorrecte: %+v", orders.inserted[0].Items)
	}
}

func TestBuyNowEnforcesQuantityLimit(t *testing.T) {
	// la limite par ligne s'applique aussi hors panier : pas de commande
	// directe à 500 exemplaires
	line := models.CartItem{ProductID: "p1", Price: 100, Quantity: 500}
	orders := &fakeOrders{}
	if _, err := NewBuyNowSession("u1", "ada@example.com", line, orders); !errors.Is(err, cart.ErrQuantityLimit) {
		t.Fatalf("attendu ErrQuantityLimit, obtenu %v", err)
	}
	if len(orders.inserted) != 0 {
		t.Errorf("commande créée malgré la quantité hors limite")
	}

	// la limite exacte reste acceptée
	line.Quantity = cart.MaxQuantity
	session, err := NewBuyNowSession("u1", "ada@example.com", line, orders)
	if err != nil {
		t.Fatalf("NewBuyNowSession à la limite: %v", err)
	}
	if session.Total() != 1000.00 {
		t.Errorf("Total = %v, attendu 1000.00", session.Total())
	}
}

func TestOrderFreezesLinePrices(t *testing.T) {
	ctx := context.Background()
	c := cartWith(t, models.CartItem{ProductID: "p1", Price: 100, OfferPercentage: 30, Quantity: 1})

	orders := &fakeOrders{}
	session, _ := NewCartSession("u1", "ada@example.com", c, orders)
	session.SetShipping(validShipping())
	if _, err := session.Submit(ctx, &fakeProcessor{}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	item := orders.inserted[0].Items[0]
	if item.FinalPrice != 70.00 {
		t.Errorf("FinalPrice figé = %v, attendu 70.00", item.FinalPrice)
	}
	if item.Price != 100 || item.OfferPercentage != 30 {
		t.Errorf("prix catalogue non conservés: %+v", item)
	}
	if orders.inserted[0].Status != "pending" {
		t.Errorf("statut initial = %q, attendu pending", orders.inserted[0].Status)
	}
	if orders.inserted[0].UserEmail != "ada@example.com" {
		t.Errorf("email commande = %q", orders.inserted[0].UserEmail)
	}
}
