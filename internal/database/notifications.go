package database

import (
	"context"
	"log"
	"time"

	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"astra_back_end/internal/models"
)

// ScyllaNotifications implémente notifications.Store sur la table
// notifications_by_user. Les opérations groupées passent par un batch
// atomique sur la partition de l'utilisateur, et chaque mutation est
// signalée sur le canal Redis notifications:<userID> pour le flux live.
type ScyllaNotifications struct{}

func notifChannel(userID string) string {
	return "notifications:" + userID
}

func publishNotifChange(ctx context.Context, userID string) {
	if err := Redis.Publish(ctx, notifChannel(userID), "changed").Err(); err != nil {
		log.Printf("⚠️ Signal notifications non publié pour %s: %v", userID, err)
	}
}

func (ScyllaNotifications) ListByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	session, err := GetUsersSession()
	if err != nil {
		return nil, err
	}

	const q = `SELECT notification_id, type, title, message, link, read, created_at
		FROM notifications_by_user WHERE user_id = ?`
	iter := session.Query(q, userID).WithContext(ctx).Iter()

	var list []models.Notification
	var n models.Notification
	for iter.Scan(&n.ID, &n.Type, &n.Title, &n.Message, &n.Link, &n.Read, &n.CreatedAt) {
		n.UserID = userID
		list = append(list, n)
		n = models.Notification{}
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return list, nil
}

func (ScyllaNotifications) MarkRead(ctx context.Context, userID, id string) error {
	session, err := GetUsersSession()
	if err != nil {
		return err
	}

	if err := session.Query(`UPDATE notifications_by_user SET read = true WHERE user_id = ? AND notification_id = ?`,
		userID, id).WithContext(ctx).Exec(); err != nil {
		return err
	}
	publishNotifChange(ctx, userID)
	return nil
}

func (ScyllaNotifications) MarkAllRead(ctx context.Context, userID string, ids []string) error {
	session, err := GetUsersSession()
	if err != nil {
		return err
	}

	batch := session.NewBatch(gocql.LoggedBatch).WithContext(ctx)
	for _, id := range ids {
		batch.Query(`UPDATE notifications_by_user SET read = true WHERE user_id = ? AND notification_id = ?`, userID, id)
	}
	if err := session.ExecuteBatch(batch); err != nil {
		return err
	}
	publishNotifChange(ctx, userID)
	return nil
}

func (ScyllaNotifications) DeleteAll(ctx context.Context, userID string, ids []string) error {
	session, err := GetUsersSession()
	if err != nil {
		return err
	}

	batch := session.NewBatch(gocql.LoggedBatch).WithContext(ctx)
	for _, id := range ids {
		batch.Query(`DELETE FROM notifications_by_user WHERE user_id = ? AND notification_id = ?`, userID, id)
	}
	if err := session.ExecuteBatch(batch); err != nil {
		return err
	}
	publishNotifChange(ctx, userID)
	return nil
}

// CreateNotification insère une notification pour un utilisateur (changement
// de statut de commande, activation d'abonnement...).
func CreateNotification(ctx context.Context, n *models.Notification) error {
	session, err := GetUsersSession()
	if err != nil {
		return err
	}

	n.ID = uuid.New().String()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	if err := session.Query(`INSERT INTO notifications_by_user
		(user_id, notification_id, type, title, message, link, read, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		n.UserID, n.ID, n.Type, n.Title, n.Message, n.Link, n.Read, n.CreatedAt).
		WithContext(ctx).Exec(); err != nil {
		return err
	}
	publishNotifChange(ctx, n.UserID)
	return nil
}
