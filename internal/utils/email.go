package utils

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/wneessen/go-mail"

	"velora_back_end/internal/config"
	"velora_back_end/internal/models"
)

// SMTPMailer est le transport mail de production (implémente
// services.Mailer). La facture part en HTML avec, si le rendu réussit,
// le PDF en pièce jointe.
type SMTPMailer struct{}

func NewSMTPMailer() *SMTPMailer {
	return &SMTPMailer{}
}

func (m *SMTPMailer) SendInvoice(ctx context.Context, order models.Order) error {
	subject := fmt.Sprintf("Facture de votre commande %s", order.ID)
	htmlBody := GenerateInvoiceHTML(order)

	// Le PDF est un plus : son échec ne bloque pas l'envoi.
	var pdf []byte
	pdf, err := RenderInvoicePDF(ctx, order)
	if err != nil {
		log.Printf("⚠️ Rendu PDF impossible pour %s: %v — envoi sans pièce jointe", order.ID, err)
		pdf = nil
	}

	return SendMail(ctx, order.CustomerEmail, subject, htmlBody, pdf)
}

// SendMail envoie un e-mail HTML via SMTP, avec pièce jointe PDF
// facultative.
func SendMail(ctx context.Context, to, subject, htmlBody string, pdfAttachment []byte) error {
	msg := mail.NewMsg()

	if err := msg.From(config.App.MailFrom); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if pdfAttachment != nil {
		msg.AttachReader("facture_velora.pdf", bytes.NewReader(pdfAttachment))
	}

	client, err := mail.NewClient(config.App.SMTPHost,
		mail.WithPort(config.App.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(config.App.SMTPUser),
		mail.WithPassword(config.App.SMTPPass),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSendWithContext(ctx, msg)
}
