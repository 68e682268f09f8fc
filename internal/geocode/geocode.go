package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Address est le triplet best-effort renvoyé par le géocodage inverse,
// utilisé pour préremplir le formulaire d'adresse.
type Address struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

// Client interroge le collaborateur de géocodage inverse (API compatible
// bigdatacloud). Un échec laisse le formulaire intact côté appelant.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient() *Client {
	base := os.Getenv("GEOCODE_URL")
	if base == "" {
		base = "https://api.bigdatacloud.net/data/reverse-geocode-client"
	}
	return &Client{
		BaseURL:    base,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Reverse(ctx context.Context, latitude, longitude float64) (*Address, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%f", latitude))
	q.Set("longitude", fmt.Sprintf("%f", longitude))
	q.Set("localityLanguage", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("géocodage inverse: statut %d", resp.StatusCode)
	}

	var body struct {
		City                 string `json:"city"`
		Locality             string `json:"locality"`
		Postcode             string `json:"postcode"`
		PrincipalSubdivision string `json:"principalSubdivision"`
		CountryName          string `json:"countryName"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	city := body.City
	if city == "" {
		city = body.Locality
	}

	parts := []string{}
	for _, p := range []string{body.Locality, body.PrincipalSubdivision, body.CountryName} {
		if p != "" {
			parts = append(parts, p)
		}
	}

	return &Address{
		Address:    strings.Join(parts, ", "),
		City:       city,
		PostalCode: body.Postcode,
	}, nil
}
