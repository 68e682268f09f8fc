package payement

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"astra_back_end/internal/cart"
	"astra_back_end/internal/checkout"
	"astra_back_end/internal/database"
	"astra_back_end/internal/models"
	"astra_back_end/internal/payment"
	"astra_back_end/internal/utils"
)

type checkoutInput struct {
	Shipping      models.ShippingDetails `json:"shipping"`
	PaymentMethod string                 `json:"paymentMethod"`

	// BuyNow court-circuite le panier : une seule ligne, le panier n'est
	// ni lu ni vidé.
	BuyNow *struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	} `json:"buyNow,omitempty"`
}

// Checkout déroule le parcours complet : livraison, paiement, commande.
func Checkout(c *gin.Context) {
	userID := c.GetString("user_id")
	userEmail := c.GetString("email")

	var input checkoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	// Le profil doit être complet avant de pouvoir commander
	profile, err := database.GetProfile(ctx, userID)
	if err != nil && !errors.Is(err, database.ErrUserNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}
	if profile == nil || !profile.IsComplete() {
		c.JSON(http.StatusPreconditionFailed, gin.H{
			"error": "Profil incomplet : téléphone, adresse, code postal et ville requis",
		})
		return
	}

	session, err := buildSession(c, userID, userEmail, input)
	if err != nil {
		return // la réponse est déjà écrite
	}

	if err := session.SetShipping(input.Shipping); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	proc, err := processorFor(input.PaymentMethod)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	orderID, err := session.Submit(ctx, proc)
	if err != nil {
		var declined *payment.DeclinedError
		switch {
		case errors.As(err, &declined):
			// Paiement refusé : le client peut corriger et réessayer
			c.JSON(http.StatusPaymentRequired, gin.H{"error": declined.Reason, "declined": true})
		case errors.Is(err, checkout.ErrOrderNotPlaced):
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur paiement"})
		}
		return
	}

	// Confirmation par e-mail, best-effort
	if order, err := (database.ScyllaOrders{}).GetByID(ctx, orderID); err == nil {
		go func(o models.Order) {
			if err := utils.SendOrderConfirmationEmail(o); err != nil {
				log.Printf("⚠️ Email de confirmation non envoyé pour %s: %v", o.ID, err)
			}
		}(*order)
	}

	log.Printf("💳 Commande %s créée pour %s (%s)", orderID, userID, input.PaymentMethod)
	c.JSON(http.StatusCreated, gin.H{
		"orderId": orderID,
		"total":   session.Total(),
		"status":  "pending",
	})
}

func buildSession(c *gin.Context, userID, userEmail string, input checkoutInput) (*checkout.Session, error) {
	ctx := c.Request.Context()

	if input.BuyNow != nil {
		qty := input.BuyNow.Quantity
		if qty == 0 {
			qty = 1
		}
		product, err := database.GetProductByID(ctx, input.BuyNow.ProductID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
			return nil, err
		}
		line := models.CartItem{
			ProductID:       product.ID.String(),
			Name:            product.Name,
			Price:           product.Price,
			OfferPercentage: product.OfferPercentage,
			Quantity:        qty,
			Category:        product.Category,
		}
		if len(product.ImageURLs) > 0 {
			line.ImageURL = product.ImageURLs[0]
		}
		session, err := checkout.NewBuyNowSession(userID, userEmail, line, database.ScyllaOrders{})
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return nil, err
		}
		return session, nil
	}

	store := cart.NewStore(ctx, userID, &cart.RedisStorage{Client: database.Redis})
	session, err := checkout.NewCartSession(userID, userEmail, store, database.ScyllaOrders{})
	if errors.Is(err, checkout.ErrEmptyCart) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le panier est vide"})
		return nil, err
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return nil, err
	}
	return session, nil
}

func processorFor(method string) (payment.Processor, error) {
	switch method {
	case payment.MethodStripe, "":
		return &payment.StripeProcessor{}, nil
	case payment.MethodCOD, "COD":
		return &payment.CODProcessor{}, nil
	default:
		return nil, errors.New("méthode de paiement non supportée: " + method)
	}
}
