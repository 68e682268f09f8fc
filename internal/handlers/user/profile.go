package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"astra_back_end/internal/database"
	"astra_back_end/internal/geocode"
	"astra_back_end/internal/models"
)

// GetProfile retourne le profil de livraison et d'abonnement du compte.
func GetProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	profile, err := database.GetProfile(c.Request.Context(), userID)
	if errors.Is(err, database.ErrUserNotFound) {
		// Pas encore de profil : renvoyer une coquille vide plutôt qu'un 404
		c.JSON(http.StatusOK, gin.H{
			"profile":  models.UserProfile{UserID: userID},
			"complete": false,
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":  profile,
		"complete": profile.IsComplete(),
	})
}

// SaveProfile enregistre les champs de livraison du profil. Les champs
// d'abonnement ne sont jamais modifiables par cette route.
func SaveProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var input models.UserProfile
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.UserID = userID

	if err := database.SaveProfile(c.Request.Context(), &input); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde profil"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":  input,
		"complete": input.IsComplete(),
	})
}

// ReverseGeocode résout des coordonnées GPS en adresse pour pré-remplir le
// formulaire de profil.
func ReverseGeocode(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
	if errLat != nil || errLon != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètres lat/lon invalides"})
		return
	}

	addr, err := geocode.NewClient().Reverse(c.Request.Context(), lat, lon)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Géocodage indisponible"})
		return
	}

	c.JSON(http.StatusOK, addr)
}
