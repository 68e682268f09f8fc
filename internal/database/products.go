package database

import (
	"context"
	"errors"
	"time"

	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"astra_back_end/internal/models"
)

var ErrProductNotFound = errors.New("produit introuvable")

const productColumns = `id, name, description, price, offer_percentage, stock, category, image_urls, tags, created_at, updated_at`

// ListProducts retourne le catalogue, filtré par catégorie si non vide.
func ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	session, err := GetProductsSession()
	if err != nil {
		return nil, err
	}

	q := `SELECT ` + productColumns + ` FROM products`
	args := []interface{}{}
	if category != "" {
		// index secondaire sur category
		q += ` WHERE category = ?`
		args = append(args, category)
	}

	iter := session.Query(q, args...).WithContext(ctx).Iter()

	var list []models.Product
	var p models.Product
	var createdAt, updatedAt time.Time
	for iter.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.OfferPercentage,
		&p.Stock, &p.Category, &p.ImageURLs, &p.Tags, &createdAt, &updatedAt) {
		if !createdAt.IsZero() {
			c := createdAt
			p.CreatedAt = &c
		}
		if !updatedAt.IsZero() {
			u := updatedAt
			p.UpdatedAt = &u
		}
		list = append(list, p)
		p = models.Product{}
		createdAt, updatedAt = time.Time{}, time.Time{}
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return list, nil
}

func GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	session, err := GetProductsSession()
	if err != nil {
		return nil, err
	}

	productID, err := gocql.ParseUUID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	var p models.Product
	var createdAt, updatedAt time.Time
	err = session.Query(`SELECT `+productColumns+` FROM products WHERE id = ?`, productID).
		WithContext(ctx).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.OfferPercentage,
			&p.Stock, &p.Category, &p.ImageURLs, &p.Tags, &createdAt, &updatedAt)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	if !createdAt.IsZero() {
		p.CreatedAt = &createdAt
	}
	if !updatedAt.IsZero() {
		p.UpdatedAt = &updatedAt
	}
	return &p, nil
}

func InsertProduct(ctx context.Context, p *models.Product) error {
	session, err := GetProductsSession()
	if err != nil {
		return err
	}

	if p.ID == (gocql.UUID{}) {
		p.ID = gocql.TimeUUID()
	}
	now := time.Now()
	p.CreatedAt = &now
	p.UpdatedAt = &now

	return session.Query(`INSERT INTO products (`+productColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Price, p.OfferPercentage,
		p.Stock, p.Category, p.ImageURLs, p.Tags, now, now).
		WithContext(ctx).Exec()
}

// ListReviews retourne les avis d'un produit, du plus récent au plus ancien.
func ListReviews(ctx context.Context, productID string) ([]models.Review, error) {
	session, err := GetProductsSession()
	if err != nil {
		return nil, err
	}

	const q = `SELECT review_id, user_id, user_name, rating, comment, created_at
		FROM reviews_by_product WHERE product_id = ?`
	iter := session.Query(q, productID).WithContext(ctx).Iter()

	var list []models.Review
	var r models.Review
	for iter.Scan(&r.ID, &r.UserID, &r.UserName, &r.Rating, &r.Comment, &r.CreatedAt) {
		r.ProductID = productID
		list = append(list, r)
		r = models.Review{}
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return list, nil
}

func InsertReview(ctx context.Context, r *models.Review) error {
	session, err := GetProductsSession()
	if err != nil {
		return err
	}

	r.ID = uuid.New().String()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	return session.Query(`INSERT INTO reviews_by_product
		(product_id, review_id, user_id, user_name, rating, comment, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ProductID, r.ID, r.UserID, r.UserName, r.Rating, r.Comment, r.CreatedAt).
		WithContext(ctx).Exec()
}
