package utils

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/skip2/go-qrcode"

	"velora_back_end/internal/config"
	"velora_back_end/internal/models"
)

// GenerateInvoiceQR génère un QR code (base64, prêt pour <img src>)
// pointant vers la facture en ligne de la commande.
func GenerateInvoiceQR(orderID string) (string, error) {
	url := fmt.Sprintf("%s/api/orders/%s/invoice", config.App.BaseURL, orderID)
	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// RenderInvoicePDF imprime la facture HTML en PDF via Chrome headless.
func RenderInvoicePDF(ctx context.Context, order models.Order) ([]byte, error) {
	html := GenerateInvoiceHTML(order)

	cctx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	// timeout pour éviter de bloquer l'envoi d'e-mail
	cctx, cancel = context.WithTimeout(cctx, 30*time.Second)
	defer cancel()

	var pdfBuf []byte
	err := chromedp.Run(cctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
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
