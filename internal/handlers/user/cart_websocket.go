package user

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"astra_back_end/internal/cart"
	"astra_back_end/internal/database"
)

// CartWebSocket synchronise le panier en temps réel entre les onglets d'un
// même compte : chaque mutation publiée sur le canal Redis déclenche un
// renvoi de l'état complet.
func CartWebSocket(c *gin.Context) {
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

	pubsub := database.Redis.Subscribe(ctx, "cart:"+userID)
	defer pubsub.Close()
	ch := pubsub.Channel()

	if err := conn.WriteJSON(map[string]interface{}{
		"type":    "connected",
		"message": "Synchronisation panier activée",
	}); err != nil {
		return
	}

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
			if msg.Payload != "updated" && msg.Payload != "cleared" {
				continue
			}

			s := cart.NewStore(ctx, userID, &cart.RedisStorage{Client: database.Redis})
			if err := conn.WriteJSON(map[string]interface{}{
				"type":  "cart_updated",
				"items": s.Items(),
				"total": s.Total(),
				"count": s.Count(),
			}); err != nil {
				return
			}
		case <-closed:
			return
		}
	}
}
