package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"astra_back_end/internal/cart"
	"astra_back_end/internal/database"
	"astra_back_end/internal/models"
)

func cartStorage() *cart.RedisStorage {
	return &cart.RedisStorage{Client: database.Redis}
}

func loadCart(c *gin.Context) *cart.Store {
	return cart.NewStore(c.Request.Context(), c.GetString("user_id"), cartStorage())
}

func cartResponse(s *cart.Store) gin.H {
	items := s.Items()
	if items == nil {
		items = []models.CartItem{}
	}
	return gin.H{
		"items": items,
		"total": s.Total(),
		"count": s.Count(),
	}
}

// GetCart retourne le panier courant avec son total.
func GetCart(c *gin.Context) {
	s := loadCart(c)
	c.JSON(http.StatusOK, cartResponse(s))
}

// AddToCart ajoute un produit au panier. Le prix et la remise sont relus du
// catalogue au moment de l'ajout, jamais depuis le client.
func AddToCart(c *gin.Context) {
	var input struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}

	ctx := c.Request.Context()
	product, err := database.GetProductByID(ctx, input.ProductID)
	if errors.Is(err, database.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	s := loadCart(c)
	item := models.CartItem{
		ProductID:       product.ID.String(),
		Name:            product.Name,
		Price:           product.Price,
		OfferPercentage: product.OfferPercentage,
		Category:        product.Category,
	}
	if len(product.ImageURLs) > 0 {
		item.ImageURL = product.ImageURLs[0]
	}

	if err := s.Add(ctx, item, input.Quantity); err != nil {
		switch {
		case errors.Is(err, cart.ErrQuantityLimit):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité maximale atteinte pour ce produit"})
		case errors.Is(err, cart.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		}
		return
	}

	c.JSON(http.StatusOK, cartResponse(s))
}

// UpdateCartQuantity fixe la quantité d'une ligne du panier.
func UpdateCartQuantity(c *gin.Context) {
	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s := loadCart(c)
	if err := s.SetQuantity(c.Request.Context(), c.Param("productId"), input.Quantity); err != nil {
		if errors.Is(err, cart.ErrQuantityLimit) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité maximale atteinte pour ce produit"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(http.StatusOK, cartResponse(s))
}

// RemoveFromCart retire une ligne du panier. Idempotent.
func RemoveFromCart(c *gin.Context) {
	s := loadCart(c)
	if err := s.Remove(c.Request.Context(), c.Param("productId")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}
	c.JSON(http.StatusOK, cartResponse(s))
}

// ClearCart vide entièrement le panier.
func ClearCart(c *gin.Context) {
	s := loadCart(c)
	if err := s.Clear(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}
	c.JSON(http.StatusOK, cartResponse(s))
}
