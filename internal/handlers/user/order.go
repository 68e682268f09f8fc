package user

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"astra_back_end/internal/database"
	"astra_back_end/internal/models"
	"astra_back_end/internal/orders"
	"astra_back_end/internal/utils"
)

// GetMyOrders retourne l'historique de commandes, du plus récent au plus ancien.
func GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")

	list, err := (database.ScyllaOrders{}).ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	orders.SortByCreatedAtDesc(list)
	if list == nil {
		list = []models.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": list})
}

// GetOrderByID retourne le détail d'une commande avec sa timeline de statut.
// Une commande inexistante ou appartenant à un autre compte donne un 404.
func GetOrderByID(c *gin.Context) {
	userID := c.GetString("user_id")

	order, err := (database.ScyllaOrders{}).GetByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, orders.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}
	if order.UserID != userID {
		// Même réponse qu'une commande inexistante : pas de fuite d'information
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order":    order,
		"timeline": orders.Timeline(order.Status),
	})
}

// GetOrderQR génère le QR code de suivi de la commande en PNG.
func GetOrderQR(c *gin.Context) {
	userID := c.GetString("user_id")

	order, err := (database.ScyllaOrders{}).GetByID(c.Request.Context(), c.Param("id"))
	if err != nil || order.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	size, _ := strconv.Atoi(c.DefaultQuery("size", "256"))
	png, err := utils.GenerateOrderQR(order.ID, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération QR"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// GetOrderInvoice rend la facture de la commande en PDF.
func GetOrderInvoice(c *gin.Context) {
	userID := c.GetString("user_id")

	order, err := (database.ScyllaOrders{}).GetByID(c.Request.Context(), c.Param("id"))
	if err != nil || order.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	pdf, err := utils.RenderOrderInvoicePDF(order.ID)
	if err != nil {
		log.Printf("❌ Génération facture échouée pour %s: %v", order.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération facture"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="facture-`+order.ID+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// UpdateOrderStatus change le statut d'une commande (admin). Le client est
// prévenu par e-mail et par une notification dans son flux.
func UpdateOrderStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !orders.ValidStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut invalide: " + input.Status})
		return
	}

	ctx := c.Request.Context()
	store := database.ScyllaOrders{}

	order, err := store.GetByID(ctx, c.Param("id"))
	if errors.Is(err, orders.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	if err := store.UpdateStatus(ctx, order.ID, order.UserID, input.Status); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour statut"})
		return
	}
	order.Status = input.Status

	// E-mail et notification sont best-effort : le statut est déjà changé
	go func(o models.Order, status string) {
		_ = utils.SendOrderStatusEmail(o, status)
	}(*order, input.Status)

	notif := &models.Notification{
		UserID:  order.UserID,
		Type:    "order",
		Title:   "Commande " + order.ID,
		Message: statusNotifMessage(input.Status),
		Link:    "/order/" + order.ID,
	}
	if err := database.CreateNotification(ctx, notif); err != nil {
		log.Printf("⚠️ Notification de statut non créée pour %s: %v", order.ID, err)
	}

	log.Printf("📦 Commande %s → %s", order.ID, input.Status)
	c.JSON(http.StatusOK, gin.H{
		"order":    order,
		"timeline": orders.Timeline(order.Status),
	})
}

func statusNotifMessage(status string) string {
	switch status {
	case "shipped":
		return "Votre commande a été expédiée"
	case "out-for-delivery":
		return "Votre commande est en cours de livraison"
	case "delivered":
		return "Votre commande a été livrée"
	case "cancelled":
		return "Votre commande a été annulée"
	default:
		return "Le statut de votre commande a été mis à jour"
	}
}
