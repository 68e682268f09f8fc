package user

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"astra_back_end/internal/database"
	"astra_back_end/internal/models"
	"astra_back_end/internal/notifications"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Autoriser toutes les origines (à ajuster en production)
		return true
	},
}

// NotificationsWebSocket pousse le flux de notifications en temps réel. À
// chaque signal sur le canal Redis du compte, le flux complet est relu et
// renvoyé au client avec son compteur non-lu.
func NotificationsWebSocket(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubsub := database.Redis.Subscribe(ctx, "notifications:"+userID)
	defer pubsub.Close()
	ch := pubsub.Channel()

	feed := &notifications.Feed{UserID: userID, Store: database.ScyllaNotifications{}}

	// État initial à la connexion
	if err := pushFeed(ctx, conn, feed); err != nil {
		return
	}

	// Détecter la fermeture côté client
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if msg.Payload != "changed" {
				continue
			}
			if err := pushFeed(ctx, conn, feed); err != nil {
				log.Printf("⚠️ Push notifications interrompu pour %s: %v", userID, err)
				return
			}
		case <-closed:
			return
		}
	}
}

func pushFeed(ctx context.Context, conn *websocket.Conn, feed *notifications.Feed) error {
	items, unread, err := feed.List(ctx)
	if err != nil {
		log.Printf("⚠️ Lecture du flux échouée pour %s: %v", feed.UserID, err)
		return nil // erreur de lecture : on garde la connexion
	}
	if items == nil {
		items = []models.Notification{}
	}
	return conn.WriteJSON(map[string]interface{}{
		"type":          "notifications",
		"notifications": items,
		"unreadCount":   unread,
	})
}
