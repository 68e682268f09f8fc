package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"astra_back_end/internal/database"
	"astra_back_end/internal/models"
	"astra_back_end/internal/notifications"
)

func feedFor(c *gin.Context) *notifications.Feed {
	return &notifications.Feed{
		UserID: c.GetString("user_id"),
		Store:  database.ScyllaNotifications{},
	}
}

// GetNotifications retourne le flux avec le compteur non-lu.
func GetNotifications(c *gin.Context) {
	items, unread, err := feedFor(c).List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}
	if items == nil {
		items = []models.Notification{}
	}
	c.JSON(http.StatusOK, gin.H{
		"notifications": items,
		"unreadCount":   unread,
	})
}

// MarkNotificationRead marque une notification comme lue. Toujours 200 : un
// échec de marquage ne casse pas l'interface, il finit dans le log.
func MarkNotificationRead(c *gin.Context) {
	feedFor(c).MarkRead(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// MarkAllNotificationsRead marque tout le flux comme lu en une seule écriture
// groupée.
func MarkAllNotificationsRead(c *gin.Context) {
	feedFor(c).MarkAllRead(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ClearNotifications vide le flux en une seule écriture groupée.
func ClearNotifications(c *gin.Context) {
	feedFor(c).ClearAll(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
