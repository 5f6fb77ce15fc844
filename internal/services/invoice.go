package services

import (
	"context"
	"fmt"
	"log"

	"velora_back_end/internal/models"
	"velora_back_end/internal/store"
)

// Mailer est le transport mail consommé par le service de notification.
// L'implémentation SMTP (go-mail) vit dans internal/utils.
type Mailer interface {
	SendInvoice(ctx context.Context, order models.Order) error
}

// Notifier envoie la facture de confirmation d'une commande. L'envoi est
// un effet de bord de la création de commande : son échec n'annule jamais
// l'achat, il est seulement consigné dans email_status.
type Notifier struct {
	orders store.OrderStore
	mailer Mailer
}

func NewNotifier(orders store.OrderStore, mailer Mailer) *Notifier {
	return &Notifier{orders: orders, mailer: mailer}
}

// SendInvoice tente l'envoi une fois ; en cas d'échec, marque la commande
// failed puis réessaye exactement une fois. Succès (premier essai ou
// retry) : email_status passe à sent. Double échec : reste failed et
// l'erreur remonte au caller sans toucher au reste de la commande.
func (n *Notifier) SendInvoice(ctx context.Context, order models.Order) error {
	if err := n.mailer.SendInvoice(ctx, order); err != nil {
		log.Printf("⚠️ Échec envoi facture %s: %v — nouvelle tentative", order.ID, err)
		if markErr := n.orders.SetEmailStatus(ctx, order.ID, models.EmailFailed); markErr != nil {
			log.Printf("❌ Impossible de marquer email_status=failed pour %s: %v", order.ID, markErr)
		}

		if err := n.mailer.SendInvoice(ctx, order); err != nil {
			return fmt.Errorf("envoi facture %s: %w", order.ID, err)
		}
	}

	if err := n.orders.SetEmailStatus(ctx, order.ID, models.EmailSent); err != nil {
		return fmt.Errorf("mise à jour email_status: %w", err)
	}
	log.Printf("📧 Facture envoyée à %s pour la commande %s", order.CustomerEmail, order.ID)
	return nil
}

// Dispatch envoie en arrière-plan, pour les chemins de création de
// commande où l'appelant ne doit pas attendre ni échouer.
func (n *Notifier) Dispatch(order models.Order) {
	go func() {
		if err := n.SendInvoice(context.Background(), order); err != nil {
			log.Printf("❌ Facture non envoyée pour la commande %s: %v", order.ID, err)
		}
	}()
}
