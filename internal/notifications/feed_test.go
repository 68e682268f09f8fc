package notifications

import (
	"context"
	"errors"
	"testing"

	"astra_back_end/internal/models"
)

type fakeStore struct {
	items       []models.Notification
	markedAll   [][]string
	deletedAll  [][]string
	listErr     error
	mutationErr error
}

func (f *fakeStore) ListByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.items, nil
}

func (f *fakeStore) MarkRead(ctx context.Context, userID, id string) error {
	if f.mutationErr != nil {
		return f.mutationErr
	}
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Read = true
		}
	}
	return nil
}

func (f *fakeStore) MarkAllRead(ctx context.Context, userID string, ids []string) error {
	if f.mutationErr != nil {
		return f.mutationErr
	}
	f.markedAll = append(f.markedAll, ids)
	return nil
}

func (f *fakeStore) DeleteAll(ctx context.Context, userID string, ids []string) error {
	if f.mutationErr != nil {
		return f.mutationErr
	}
	f.deletedAll = append(f.deletedAll, ids)
	return nil
}

func feedWith(store *fakeStore) *Feed {
	return &Feed{UserID: "u1", Store: store}
}

func TestListCountsUnread(t *testing.T) {
	store := &fakeStore{items: []models.Notification{
		{ID: "n1", Read: true},
		{ID: "n2"},
		{ID: "n3"},
	}}

	items, unread, err := feedWith(store).List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 3 {
		t.Errorf("items = %d, attendu 3", len(items))
	}
	if unread != 2 {
		t.Errorf("unread = %d, attendu 2", unread)
	}
}

func TestMarkAllReadBatchesOnlyUnread(t *testing.T) {
	store := &fakeStore{items: []models.Notification{
		{ID: "n1", Read: true},
		{ID: "n2"},
		{ID: "n3"},
	}}

	feedWith(store).MarkAllRead(context.Background())

	if len(store.markedAll) != 1 {
		t.Fatalf("attendu un seul batch, obtenu %d", len(store.markedAll))
	}
	got := store.markedAll[0]
	if len(got) != 2 || got[0] != "n2" || got[1] != "n3" {
		t.Errorf("ids du batch = %v, attendu [n2 n3]", got)
	}
}

func TestMarkAllReadSkipsEmptyBatch(t *testing.T) {
	store := &fakeStore{items: []models.Notification{{ID: "n1", Read: true}}}

	feedWith(store).MarkAllRead(context.Background())

	if len(store.markedAll) != 0 {
		t.Errorf("batch envoyé alors que tout est déjà lu")
	}
}

func TestClearAllBatchesEverything(t *testing.T) {
	store := &fakeStore{items: []models.Notification{
		{ID: "n1", Read: true},
		{ID: "n2"},
	}}

	feedWith(store).ClearAll(context.Background())

	if len(store.deletedAll) != 1 {
		t.Fatalf("attendu un seul batch, obtenu %d", len(store.deletedAll))
	}
	if got := store.deletedAll[0]; len(got) != 2 {
		t.Errorf("ids supprimés = %v, attendu les 2", got)
	}
}

func TestMutationsFailSilently(t *testing.T) {
	// une mutation en échec finit dans le log, jamais en panique ni en erreur
	store := &fakeStore{
		items:       []models.Notification{{ID: "n1"}},
		mutationErr: errors.New("scylla down"),
	}
	feed := feedWith(store)

	feed.MarkRead(context.Background(), "n1")
	feed.MarkAllRead(context.Background())
	feed.ClearAll(context.Background())
}

func TestListErrorPropagates(t *testing.T) {
	store := &fakeStore{listErr: errors.New("scylla down")}
	if _, _, err := feedWith(store).List(context.Background()); err == nil {
		t.Errorf("attendu une erreur de lecture")
	}
}

func TestUnreadCount(t *testing.T) {
	if got := UnreadCount(nil); got != 0 {
		t.Errorf("UnreadCount(nil) = %d", got)
	}
	items := []models.Notification{{Read: true}, {}, {}, {Read: true}}
	if got := UnreadCount(items); got != 2 {
		t.Errorf("UnreadCount = %d, attendu 2", got)
	}
}
