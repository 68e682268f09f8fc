package user

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"astra_back_end/internal/database"
	"astra_back_end/internal/membership"
	"astra_back_end/internal/models"
	"astra_back_end/internal/payment"
	"astra_back_end/internal/utils"
)

// GetMembershipPlans retourne les plans avec l'état du bouton d'action pour
// le compte courant : plan actif, demande en attente, éligibilité upgrade.
func GetMembershipPlans(c *gin.Context) {
	userID := c.GetString("user_id")
	ctx := c.Request.Context()

	activePlanID, err := database.ActivePlanID(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	pending, err := (database.ScyllaMembership{}).PendingRequest(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	type planView struct {
		membership.Plan
		Button membership.ButtonState `json:"button"`
	}

	views := make([]planView, 0, 3)
	for _, p := range membership.Plans() {
		views = append(views, planView{
			Plan:   p,
			Button: membership.PlanButtonState(p, activePlanID, pending != nil),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"plans":      views,
		"activePlan": activePlanID,
	})
}

// Subscribe souscrit le compte au plan demandé : paiement puis activation.
func Subscribe(c *gin.Context) {
	userID := c.GetString("user_id")
	userEmail := c.GetString("email")
	userName := c.GetString("name")

	var input struct {
		PlanID        string `json:"planId"`
		PaymentMethod string `json:"paymentMethod"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	activePlanID, err := database.ActivePlanID(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	var proc payment.Processor = &payment.StripeProcessor{}
	if input.PaymentMethod == payment.MethodCOD || input.PaymentMethod == "COD" {
		proc = &payment.CODProcessor{}
	}

	svc := &membership.Service{Store: database.ScyllaMembership{}}
	req, err := svc.RequestPlan(ctx, userID, userEmail, userName, input.PlanID, activePlanID, proc)
	if err != nil {
		var declined *payment.DeclinedError
		switch {
		case errors.As(err, &declined):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": declined.Reason, "declined": true})
		case errors.Is(err, membership.ErrRequestPending):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, membership.ErrNotEligible):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, membership.ErrActivationAfterPayment):
			// Paiement capturé mais activation échouée : l'erreur doit
			// être visible telle quelle, pas de retry automatique
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	// Confirmation e-mail + notification, best-effort
	go func(email string, r models.MembershipRequest) {
		if err := utils.SendMembershipActivatedEmail(email, r); err != nil {
			log.Printf("⚠️ Email d'activation non envoyé à %s: %v", email, err)
		}
	}(userEmail, *req)

	notif := &models.Notification{
		UserID:  userID,
		Type:    "membership",
		Title:   "Abonnement " + req.PlanName + " activé",
		Message: "Votre abonnement est actif pour 30 jours",
		Link:    "/membership",
	}
	if err := database.CreateNotification(ctx, notif); err != nil {
		log.Printf("⚠️ Notification d'abonnement non créée pour %s: %v", userID, err)
	}

	c.JSON(http.StatusCreated, gin.H{"request": req})
}
