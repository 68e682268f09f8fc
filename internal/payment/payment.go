package payment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
)

// Labels enregistrés sur la commande selon le moyen de paiement choisi.
const (
	MethodStripe = "Stripe"
	MethodCOD    = "Cash on Delivery"
)

// DeclinedError est une erreur métier remontée telle quelle à l'acheteur
// (carte refusée, fonds insuffisants...). Le flow reste reprenable.
type DeclinedError struct {
	Reason string
}

func (e *DeclinedError) Error() string {
	return e.Reason
}

// Result est le jeton consommé pour finaliser l'écriture de la commande.
type Result struct {
	PaymentID string
	Method    string
}

// Processor encapsule le collaborateur de paiement externe.
type Processor interface {
	Charge(ctx context.Context, amount float64, email string, metadata map[string]string) (*Result, error)
}

// StripeProcessor crée un PaymentIntent pour le montant remisé.
type StripeProcessor struct {
	Currency string
}

func (p *StripeProcessor) Charge(ctx context.Context, amount float64, email string, metadata map[string]string) (*Result, error) {
	currency := p.Currency
	if currency == "" {
		currency = "usd"
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(amount * 100)),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		ReceiptEmail: stripe.String(email),
		Metadata:     metadata,
	}
	params.Context = ctx

	intent, err := paymentintent.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeCard {
			// Refus carte : message utilisateur, pas une panne
			return nil, &DeclinedError{Reason: stripeErr.Msg}
		}
		log.Printf("❌ Erreur Stripe: %v", err)
		return nil, err
	}

	log.Printf("💳 PaymentIntent créé: %s (%.2f %s) pour %s", intent.ID, amount, currency, email)
	return &Result{PaymentID: intent.ID, Method: MethodStripe}, nil
}

// CODProcessor simule le pseudo-paiement "à la livraison" : toujours accepté
// après un délai fixe, sans autorisation externe.
type CODProcessor struct {
	Delay time.Duration
}

func (p *CODProcessor) Charge(ctx context.Context, amount float64, email string, metadata map[string]string) (*Result, error) {
	delay := p.Delay
	if delay == 0 {
		delay = 1500 * time.Millisecond
	}

	select {
	case <-time.After(delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return &Result{
		PaymentID: fmt.Sprintf("cod_%d", time.Now().UnixMilli()),
		Method:    MethodCOD,
	}, nil
}
