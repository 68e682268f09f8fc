package cart

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const snapshotTTL = 30 * 24 * time.Hour

// RedisStorage stocke le panier sérialisé sous une clé unique cart:<userID>
// et publie chaque changement sur le canal du même nom pour la synchro live.
type RedisStorage struct {
	Client *redis.Client
}

func (r *RedisStorage) Load(ctx context.Context, userID string) ([]byte, error) {
	data, err := r.Client.Get(ctx, "cart:"+userID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

func (r *RedisStorage) Save(ctx context.Context, userID string, data []byte) error {
	if err := r.Client.Set(ctx, "cart:"+userID, data, snapshotTTL).Err(); err != nil {
		return err
	}
	r.publish(ctx, userID, "updated")
	return nil
}

func (r *RedisStorage) Delete(ctx context.Context, userID string) error {
	if err := r.Client.Del(ctx, "cart:"+userID).Err(); err != nil {
		return err
	}
	r.publish(ctx, userID, "cleared")
	return nil
}

// La publication est un signal best-effort : un échec n'invalide pas la mutation.
func (r *RedisStorage) publish(ctx context.Context, userID, event string) {
	if err := r.Client.Publish(ctx, "cart:"+userID, event).Err(); err != nil {
		log.Printf("⚠️ Publication panier échouée pour %s: %v", userID, err)
	}
}
