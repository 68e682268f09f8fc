package checkout

import (
	"context"
	"errors"
	"log"
	"net/mail"
	"time"

	"astra_back_end/internal/cart"
	"astra_back_end/internal/models"
	"astra_back_end/internal/payment"
)

// États du parcours de commande. Les transitions sont strictement ordonnées,
// seul un refus de paiement ou Back ramène en arrière.
type State string

const (
	StateCollectingShipping State = "collecting-shipping"
	StateAwaitingPayment    State = "awaiting-payment"
	StatePlacingOrder       State = "placing-order"
	StateSucceeded          State = "succeeded"
	StateFailed             State = "failed"
)

var (
	ErrEmptyCart       = errors.New("panier vide")
	ErrInvalidState    = errors.New("transition de commande invalide")
	ErrOrderNotPlaced  = errors.New("la commande n'a pas pu être enregistrée, veuillez réessayer")
	ErrMissingShipping = errors.New("tous les champs de livraison sont requis")
	ErrInvalidEmail    = errors.New("adresse e-mail invalide")
)

// OrderStore persiste la commande finale et retourne son identifiant.
type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) (string, error)
}

// CartClearer vide le panier après une commande validée.
type CartClearer interface {
	Clear(ctx context.Context) error
}

// Session porte un checkout du formulaire de livraison jusqu'à la commande.
// Les lignes et le total sont figés à l'entrée : une variation du catalogue
// en cours de parcours ne change pas le montant facturé.
type Session struct {
	state     State
	userID    string
	userEmail string
	items     []models.CartItem
	total     float64
	shipping  models.ShippingDetails
	cart      CartClearer // nil pour un achat direct
	orders    OrderStore
}

// NewCartSession démarre un checkout sur le contenu courant du panier.
func NewCartSession(userID, userEmail string, c *cart.Store, orders OrderStore) (*Session, error) {
	items := c.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	return &Session{
		state:     StateCollectingShipping,
		userID:    userID,
		userEmail: userEmail,
		items:     items,
		total:     c.Total(),
		cart:      c,
		orders:    orders,
	}, nil
}

// NewBuyNowSession démarre un checkout sur une seule ligne fournie hors
// panier. Le panier n'est ni lu ni vidé. La limite de quantité par ligne
// s'applique comme pour le panier.
func NewBuyNowSession(userID, userEmail string, line models.CartItem, orders OrderStore) (*Session, error) {
	if line.ProductID == "" || line.Quantity < 1 {
		return nil, ErrEmptyCart
	}
	if line.Quantity > cart.MaxQuantity {
		return nil, cart.ErrQuantityLimit
	}
	return &Session{
		state:     StateCollectingShipping,
		userID:    userID,
		userEmail: userEmail,
		items:     []models.CartItem{line},
		total:     cart.Total([]models.CartItem{line}),
		orders:    orders,
	}, nil
}

func (s *Session) State() State   { return s.state }
func (s *Session) Total() float64 { return s.total }
func (s *Session) Items() []models.CartItem {
	out := make([]models.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// SetShipping valide le formulaire de livraison et passe en attente de
// paiement. Une validation échouée laisse l'état inchangé.
func (s *Session) SetShipping(d models.ShippingDetails) error {
	if s.state != StateCollectingShipping {
		return ErrInvalidState
	}
	if err := validateShipping(d); err != nil {
		return err
	}
	s.shipping = d
	s.state = StateAwaitingPayment
	return nil
}

// Back revient au formulaire de livraison depuis l'attente de paiement.
func (s *Session) Back() error {
	if s.state != StateAwaitingPayment {
		return ErrInvalidState
	}
	s.state = StateCollectingShipping
	return nil
}

// Submit délègue au collaborateur de paiement puis enregistre la commande.
// Un refus de paiement laisse la session en attente, reprenable ; un échec
// d'écriture termine la session en échec sans commande créée.
func (s *Session) Submit(ctx context.Context, proc payment.Processor) (string, error) {
	if s.state != StateAwaitingPayment {
		return "", ErrInvalidState
	}

	result, err := proc.Charge(ctx, s.total, s.shipping.Email, map[string]string{
		"user_id": s.userID,
	})
	if err != nil {
		// Refus ou panne : la session reste en attente, reprenable
		return "", err
	}

	s.state = StatePlacingOrder

	order := s.buildOrder(result)
	orderID, err := s.orders.Insert(ctx, order)
	if err != nil {
		log.Printf("❌ Enregistrement commande échoué pour %s: %v", s.userID, err)
		s.state = StateFailed
		return "", ErrOrderNotPlaced
	}

	if s.cart != nil {
		if err := s.cart.Clear(ctx); err != nil {
			log.Printf("⚠️ Panier non vidé après la commande %s: %v", orderID, err)
		}
	}

	s.state = StateSucceeded
	return orderID, nil
}

// buildOrder fige chaque ligne avec son prix remisé au moment de l'achat.
func (s *Session) buildOrder(result *payment.Result) *models.Order {
	items := make([]models.OrderItem, 0, len(s.items))
	for _, line := range s.items {
		items = append(items, models.OrderItem{
			ProductID:       line.ProductID,
			Name:            line.Name,
			Price:           line.Price,
			OfferPercentage: line.OfferPercentage,
			FinalPrice:      cart.FinalPrice(line.Price, line.OfferPercentage),
			Quantity:        line.Quantity,
			Image:           line.ImageURL,
		})
	}

	return &models.Order{
		UserID:          s.userID,
		UserEmail:       s.shipping.Email,
		Items:           items,
		TotalAmount:     s.total,
		ShippingDetails: s.shipping,
		Status:          "pending",
		PaymentMethod:   result.Method,
		PaymentID:       result.PaymentID,
		CreatedAt:       time.Now(),
	}
}

func validateShipping(d models.ShippingDetails) error {
	if d.FullName == "" || d.Email == "" || d.Address == "" ||
		d.City == "" || d.ZipCode == "" || d.Country == "" || d.Phone == "" {
		return ErrMissingShipping
	}
	if _, err := mail.ParseAddress(d.Email); err != nil {
		return ErrInvalidEmail
	}
	return nil
}
