package notifications

import (
	"context"
	"log"

	"astra_back_end/internal/models"
)

// Store expose les notifications d'un utilisateur. MarkAllRead et DeleteAll
// doivent être des écritures batch atomiques côté store.
type Store interface {
	ListByUser(ctx context.Context, userID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string, ids []string) error
	DeleteAll(ctx context.Context, userID string, ids []string) error
}

// Feed tient la comptabilité lu/non-lu d'un utilisateur. Les mutations
// échouent silencieusement dans le log : pas de blocage, pas de retry.
type Feed struct {
	UserID string
	Store  Store
}

// List retourne les notifications courantes et le compteur non-lu.
func (f *Feed) List(ctx context.Context) ([]models.Notification, int, error) {
	items, err := f.Store.ListByUser(ctx, f.UserID)
	if err != nil {
		return nil, 0, err
	}
	return items, UnreadCount(items), nil
}

// MarkRead passe une notification en lue.
func (f *Feed) MarkRead(ctx context.Context, id string) {
	if err := f.Store.MarkRead(ctx, f.UserID, id); err != nil {
		log.Printf("⚠️ Notification %s non marquée lue: %v", id, err)
	}
}

// MarkAllRead passe toutes les notifications non lues en lues, en un seul
// batch atomique.
func (f *Feed) MarkAllRead(ctx context.Context) {
	items, err := f.Store.ListByUser(ctx, f.UserID)
	if err != nil {
		log.Printf("⚠️ Lecture des notifications échouée pour %s: %v", f.UserID, err)
		return
	}

	var unread []string
	for _, n := range items {
		if !n.Read {
			unread = append(unread, n.ID)
		}
	}
	if len(unread) == 0 {
		return
	}

	if err := f.Store.MarkAllRead(ctx, f.UserID, unread); err != nil {
		log.Printf("⚠️ Marquage groupé échoué pour %s: %v", f.UserID, err)
	}
}

// ClearAll supprime toutes les notifications de l'utilisateur, en un seul
// batch atomique.
func (f *Feed) ClearAll(ctx context.Context) {
	items, err := f.Store.ListByUser(ctx, f.UserID)
	if err != nil {
		log.Printf("⚠️ Lecture des notifications échouée pour %s: %v", f.UserID, err)
		return
	}

	ids := make([]string, 0, len(items))
	for _, n := range items {
		ids = append(ids, n.ID)
	}
	if len(ids) == 0 {
		return
	}

	if err := f.Store.DeleteAll(ctx, f.UserID, ids); err != nil {
		log.Printf("⚠️ Suppression groupée échouée pour %s: %v", f.UserID, err)
	}
}

// UnreadCount compte les notifications non lues.
func UnreadCount(items []models.Notification) int {
	count := 0
	for _, n := range items {
		if !n.Read {
			count++
		}
	}
	return count
}
