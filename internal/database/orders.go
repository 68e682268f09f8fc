package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"astra_back_end/internal/models"
	"astra_back_end/internal/orders"
)

// ScyllaOrders implémente orders.Store sur le keyspace orders : une table
// orders par identifiant et une table orders_by_user par partition
// utilisateur. Les lignes et l'adresse de livraison sont figées en JSON.
type ScyllaOrders struct{}

func (ScyllaOrders) Insert(ctx context.Context, order *models.Order) (string, error) {
	session, err := GetOrdersSession()
	if err != nil {
		return "", err
	}

	orderID := uuid.New().String()
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return "", err
	}
	shippingJSON, err := json.Marshal(order.ShippingDetails)
	if err != nil {
		return "", err
	}

	// Les deux tables sont écrites dans un même batch : une commande lisible
	// au détail est toujours présente dans l'historique.
	batch := session.NewBatch(gocql.LoggedBatch).WithContext(ctx)
	batch.Query(`INSERT INTO orders (order_id, user_id, user_email, items, total_amount, shipping, status, payment_method, payment_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		orderID, order.UserID, order.UserEmail, string(itemsJSON), order.TotalAmount,
		string(shippingJSON), order.Status, order.PaymentMethod, order.PaymentID, order.CreatedAt)
	batch.Query(`INSERT INTO orders_by_user (user_id, order_id, user_email, items, total_amount, shipping, status, payment_method, payment_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.UserID, orderID, order.UserEmail, string(itemsJSON), order.TotalAmount,
		string(shippingJSON), order.Status, order.PaymentMethod, order.PaymentID, order.CreatedAt)
	if err := session.ExecuteBatch(batch); err != nil {
		return "", err
	}

	order.ID = orderID
	return orderID, nil
}

func (ScyllaOrders) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	session, err := GetOrdersSession()
	if err != nil {
		return nil, err
	}

	const q = `SELECT order_id, user_email, items, total_amount, shipping, status, payment_method, payment_id, created_at
		FROM orders_by_user WHERE user_id = ?`
	iter := session.Query(q, userID).WithContext(ctx).Iter()

	var list []models.Order
	var o models.Order
	var itemsJSON, shippingJSON string
	for iter.Scan(&o.ID, &o.UserEmail, &itemsJSON, &o.TotalAmount, &shippingJSON,
		&o.Status, &o.PaymentMethod, &o.PaymentID, &o.CreatedAt) {
		o.UserID = userID
		if err := json.Unmarshal([]byte(itemsJSON), &o.Items); err != nil {
			return nil, fmt.Errorf("commande %s: lignes illisibles: %v", o.ID, err)
		}
		if err := json.Unmarshal([]byte(shippingJSON), &o.ShippingDetails); err != nil {
			return nil, fmt.Errorf("commande %s: livraison illisible: %v", o.ID, err)
		}
		list = append(list, o)
		o = models.Order{}
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return list, nil
}

func (ScyllaOrders) GetByID(ctx context.Context, id string) (*models.Order, error) {
	session, err := GetOrdersSession()
	if err != nil {
		return nil, err
	}

	var o models.Order
	var itemsJSON, shippingJSON string
	const q = `SELECT order_id, user_id, user_email, items, total_amount, shipping, status, payment_method, payment_id, created_at
		FROM orders WHERE order_id = ?`
	err = session.Query(q, id).WithContext(ctx).Scan(
		&o.ID, &o.UserID, &o.UserEmail, &itemsJSON, &o.TotalAmount, &shippingJSON,
		&o.Status, &o.PaymentMethod, &o.PaymentID, &o.CreatedAt)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, orders.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(itemsJSON), &o.Items); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(shippingJSON), &o.ShippingDetails); err != nil {
		return nil, err
	}
	return &o, nil
}

func (ScyllaOrders) UpdateStatus(ctx context.Context, id, userID, status string) error {
	session, err := GetOrdersSession()
	if err != nil {
		return err
	}

	batch := session.NewBatch(gocql.LoggedBatch).WithContext(ctx)
	batch.Query(`UPDATE orders SET status = ? WHERE order_id = ?`, status, id)
	batch.Query(`UPDATE orders_by_user SET status = ? WHERE user_id = ? AND order_id = ?`, status, userID, id)
	return session.ExecuteBatch(batch)
}
