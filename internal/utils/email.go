package utils

import (
	"fmt"
	"log"
	"os"

	"github.com/wneessen/go-mail"

	"astra_back_end/internal/models"
)

// SendEmail envoie un e-mail HTML via le SMTP configuré.
func SendEmail(to, subject, htmlBody string) error {
	msg := mail.NewMsg()

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@astra.shop"
	}
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSend(msg)
}

// SendOrderConfirmationEmail confirme la commande après le checkout.
func SendOrderConfirmationEmail(order models.Order) error {
	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td style="padding: 8px; border: 1px solid #ddd;">%s</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%d</td>
				<td style="padding: 8px; border: 1px solid #ddd;">$%.2f</td>
				<td style="padding: 8px; border: 1px solid #ddd;">$%.2f</td>
			</tr>`, item.Name, item.Quantity, item.FinalPrice, item.FinalPrice*float64(item.Quantity))
	}

	html := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Votre commande Astra est confirmée</h2>
		<p>Commande <strong>#%s</strong> — %s</p>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 8px; border: 1px solid #ddd; text-align: left;">Produit</th>
					<th style="padding: 8px; border: 1px solid #ddd; text-align: left;">Qté</th>
					<th style="padding: 8px; border: 1px solid #ddd; text-align: left;">Prix</th>
					<th style="padding: 8px; border: 1px solid #ddd; text-align: left;">Total</th>
				</tr>
			</thead>
			<tbody>%s</tbody>
		</table>
		<p style="font-size: 18px;"><strong>Total : $%.2f</strong> (%s)</p>
		<p>Livraison : %s, %s %s, %s</p>
	</div>
</body>
</html>`, order.ID, order.PaymentMethod, itemsHTML, order.TotalAmount, order.PaymentMethod,
		order.ShippingDetails.Address, order.ShippingDetails.ZipCode,
		order.ShippingDetails.City, order.ShippingDetails.Country)

	return SendEmail(order.UserEmail, "✅ Commande confirmée - Astra", html)
}

// SendOrderStatusEmail notifie un changement de statut de commande.
func SendOrderStatusEmail(order models.Order, newStatus string) error {
	subject := statusEmailSubject(newStatus)
	html := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; padding: 20px;">
	<div style="max-width: 600px; margin: auto;">
		<h2>%s</h2>
		<p>%s</p>
		<p>Commande <strong>#%s</strong> — $%.2f</p>
	</div>
</body>
</html>`, subject, statusMessage(newStatus), order.ID, order.TotalAmount)

	if err := SendEmail(order.UserEmail, subject, html); err != nil {
		log.Printf("❌ Erreur envoi email statut: %v", err)
		return err
	}

	log.Printf("📧 Email de statut envoyé: %s → %s", newStatus, order.UserEmail)
	return nil
}

// SendMembershipActivatedEmail confirme l'activation d'un abonnement.
func SendMembershipActivatedEmail(email string, req models.MembershipRequest) error {
	html := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; padding: 20px;">
	<div style="max-width: 600px; margin: auto;">
		<h2>👑 Bienvenue dans le cercle %s</h2>
		<p>Votre abonnement est actif pour 30 jours.</p>
		<p>Paiement : %s — $%.2f/mois</p>
	</div>
</body>
</html>`, req.PlanName, req.PaymentID, req.Amount)

	return SendEmail(email, fmt.Sprintf("👑 Abonnement %s activé - Astra", req.PlanName), html)
}

func statusEmailSubject(status string) string {
	switch status {
	case "shipped":
		return "📦 Votre commande a été expédiée - Astra"
	case "out-for-delivery":
		return "🚚 Votre commande est en cours de livraison - Astra"
	case "delivered":
		return "🎉 Votre commande a été livrée - Astra"
	case "cancelled":
		return "❌ Commande annulée - Astra"
	default:
		return "📋 Mise à jour de votre commande - Astra"
	}
}

func statusMessage(status string) string {
	switch status {
	case "shipped":
		return "Bonne nouvelle ! Votre commande a été expédiée et est en route vers vous."
	case "out-for-delivery":
		return "Votre commande est dans le véhicule de livraison, elle arrive aujourd'hui."
	case "delivered":
		return "Votre commande a été livrée avec succès. Nous espérons que vous en êtes satisfait !"
	case "cancelled":
		return "Votre commande a été annulée. Si vous avez des questions, contactez-nous."
	default:
		return "Le statut de votre commande a été mis à jour."
	}
}
