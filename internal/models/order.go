package models

import "time"

type OrderItem struct {
	ProductID       string  `json:"productId"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	OfferPercentage float64 `json:"offerPercentage"`
	FinalPrice      float64 `json:"finalPrice"`
	Quantity        int     `json:"quantity"`
	Image           string  `json:"image"`
}

type ShippingDetails struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	City     string `json:"city"`
	ZipCode  string `json:"zipCode"`
	Country  string `json:"country"`
	Phone    string `json:"phone"`
}

type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	UserEmail       string          `json:"userEmail"`
	Items           []OrderItem     `json:"items"`
	TotalAmount     float64         `json:"totalAmount"`
	ShippingDetails ShippingDetails `json:"shippingDetails"`
	Status          string          `json:"status"`
	PaymentMethod   string          `json:"paymentMethod"`
	PaymentID       string          `json:"paymentId"`
	CreatedAt       time.Time       `json:"createdAt"`
}
