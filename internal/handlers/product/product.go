package product

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"astra_back_end/internal/database"
	"astra_back_end/internal/models"
	"astra_back_end/internal/services"
)

// GetProducts liste le catalogue, avec cache Redis et filtre par catégorie.
func GetProducts(c *gin.Context) {
	ctx := c.Request.Context()
	category := c.Query("category")

	cacheKey := "products:all"
	if category != "" {
		cacheKey = "products:cat:" + category
	}

	// ✅ Vérifie le cache Redis
	if val, err := database.Redis.Get(ctx, cacheKey).Result(); err == nil && val != "" {
		var cached []models.Product
		if err := json.Unmarshal([]byte(val), &cached); err == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	list, err := database.ListProducts(ctx, category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catalogue"})
		return
	}
	if list == nil {
		list = []models.Product{}
	}

	// ✅ Met en cache
	if data, err := json.Marshal(list); err == nil {
		database.Redis.Set(ctx, cacheKey, data, time.Hour)
	}

	c.JSON(http.StatusOK, list)
}

// GetProductByID retourne le détail d'un produit avec ses avis.
func GetProductByID(c *gin.Context) {
	ctx := c.Request.Context()

	p, err := database.GetProductByID(ctx, c.Param("id"))
	if errors.Is(err, database.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	reviews, err := database.ListReviews(ctx, p.ID.String())
	if err != nil {
		log.Printf("⚠️ Lecture des avis échouée pour %s: %v", p.ID, err)
	}
	if reviews == nil {
		reviews = []models.Review{}
	}

	c.JSON(http.StatusOK, gin.H{
		"product": p,
		"reviews": reviews,
	})
}

// SearchProducts interroge Elasticsearch en texte libre.
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètre q requis"})
		return
	}

	hits, err := services.SearchProducts(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur recherche"})
		return
	}
	if hits == nil {
		hits = []map[string]interface{}{}
	}

	c.JSON(http.StatusOK, gin.H{"results": hits})
}

// CreateProduct ajoute un produit au catalogue (admin) et l'indexe pour la
// recherche.
func CreateProduct(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if p.Name == "" || p.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nom et prix requis"})
		return
	}

	ctx := c.Request.Context()
	if err := database.InsertProduct(ctx, &p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit"})
		return
	}

	// Indexation asynchrone, le catalogue Scylla fait foi
	go services.IndexProduct(p)

	// Invalide le cache liste
	database.Redis.Del(ctx, "products:all")
	if p.Category != "" {
		database.Redis.Del(ctx, "products:cat:"+p.Category)
	}

	log.Println("✅ Produit créé:", p.ID)
	c.JSON(http.StatusCreated, p)
}

// UploadProductImage stocke une image produit dans MinIO et retourne son URL.
func UploadProductImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fichier image requis"})
		return
	}

	url, err := services.UploadProductImage(c.Request.Context(), file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload image"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}

// GetSignedImageURL génère une URL signée temporaire pour un objet du bucket.
func GetSignedImageURL(c *gin.Context) {
	objectPath := c.Query("path")
	if objectPath == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètre path requis"})
		return
	}

	url, err := services.GenerateSignedURL(c.Request.Context(), objectPath, 15*time.Minute)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// GetProductReviews liste les avis d'un produit.
func GetProductReviews(c *gin.Context) {
	reviews, err := database.ListReviews(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture avis"})
		return
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// AddProductReview enregistre un avis du compte courant sur un produit.
func AddProductReview(c *gin.Context) {
	var input struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Rating < 1 || input.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "La note doit être entre 1 et 5"})
		return
	}

	ctx := c.Request.Context()
	productID := c.Param("id")

	if _, err := database.GetProductByID(ctx, productID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	review := models.Review{
		ProductID: productID,
		UserID:    c.GetString("user_id"),
		UserName:  c.GetString("name"),
		Rating:    input.Rating,
		Comment:   input.Comment,
	}
	if err := database.InsertReview(ctx, &review); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement avis"})
		return
	}

	c.JSON(http.StatusCreated, review)
}
