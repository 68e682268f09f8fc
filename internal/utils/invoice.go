package utils

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/skip2/go-qrcode"
)

// GenerateOrderQR encode l'URL de suivi d'une commande en QR PNG.
func GenerateOrderQR(orderID string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(fmt.Sprintf("%s/order/%s", FrontendBaseURL(), orderID), qrcode.Medium, size)
}

// RenderOrderInvoicePDF charge la page facture du front et l'imprime en PDF.
func RenderOrderInvoicePDF(orderID string) ([]byte, error) {
	q := url.Values{}
	q.Set("id", orderID)
	fullURL := fmt.Sprintf("%s/invoice?%s", FrontendBaseURL(), q.Encode())

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var pdfBuf []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate(fullURL),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}

// FrontendBaseURL retourne l'URL du front configurée.
func FrontendBaseURL() string {
	u := os.Getenv("FRONTEND_URL")
	if u == "" {
		return "http://localhost:5173"
	}
	return u
}
