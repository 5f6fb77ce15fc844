package utils

import (
	"fmt"
	"log"

	"velora_back_end/internal/models"
)

// GenerateInvoiceHTML génère le HTML de la facture d'une commande, avec
// un QR code pointant vers la facture en ligne.
func GenerateInvoiceHTML(order models.Order) string {
	qrImg := ""
	if qr, err := GenerateInvoiceQR(order.ID.String()); err == nil {
		qrImg = fmt.Sprintf(`<img src="%s" alt="QR facture" width="128" height="128"/>`, qr)
	} else {
		log.Printf("⚠️ QR non généré pour %s: %v", order.ID, err)
	}

	total := order.Price * float64(order.Quantity)

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Facture</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Merci pour votre commande !</h2>
		<p>Bonjour %s,</p>
		<p>Voici le récapitulatif de votre commande <strong>%s</strong> :</p>
		<table style="width: 100%%; border-collapse: collapse;">
			<tr style="background-color: #f0f0f0;">
				<th style="padding: 8px; text-align: left;">Produit</th>
				<th style="padding: 8px;">Quantité</th>
				<th style="padding: 8px;">Prix unitaire</th>
				<th style="padding: 8px;">Total</th>
			</tr>
			<tr>
				<td style="padding: 8px;">%s</td>
				<td style="padding: 8px; text-align: center;">%d</td>
				<td style="padding: 8px; text-align: right;">%.2f€</td>
				<td style="padding: 8px; text-align: right;">%.2f€</td>
			</tr>
		</table>
		<p style="font-size: 1.2em; font-weight: bold; text-align: right;">Montant total : %.2f€</p>
		<p>Date d'achat : %s</p>
		<div style="text-align: center; margin-top: 20px;">%s</div>
		<p style="color: #666; font-size: 0.9em; text-align: center; margin-top: 20px;">
			Ceci est une facture automatique, merci de ne pas répondre à cet e-mail.
		</p>
	</div>
</body>
</html>`,
		order.CustomerName, order.ID, order.ProductName, order.Quantity,
		order.Price, total, total, order.PurchaseDate.Format("02/01/2006"), qrImg)
}
