package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"velora_back_end/internal/models"
	"velora_back_end/internal/store"
)

var percent = decimal.NewFromInt(100)

// FinanceService agrège le registre des commandes en lecture seule.
// L'arithmétique passe par decimal pour des montants exacts à 2 décimales.
type FinanceService struct {
	orders store.OrderStore
}

func NewFinanceService(orders store.OrderStore) *FinanceService {
	return &FinanceService{orders: orders}
}

// MonthlyReport calcule chiffre d'affaires, coût, profit et marge d'un
// mois calendaire. Un mois sans commande renvoie des zéros.
func (s *FinanceService) MonthlyReport(ctx context.Context, month int, year int) (models.MonthlyReport, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	orders, err := s.orders.ListByPeriod(ctx, start, end)
	if err != nil {
		return models.MonthlyReport{}, fmt.Errorf("lecture commandes: %w", err)
	}

	revenue := decimal.Zero
	cost := decimal.Zero
	profit := decimal.Zero
	for _, o := range orders {
		revenue = revenue.Add(decimal.NewFromFloat(o.Price))
		cost = cost.Add(decimal.NewFromFloat(o.Cost))
		profit = profit.Add(decimal.NewFromFloat(o.Profit))
	}

	margin := decimal.Zero
	if !revenue.IsZero() {
		margin = profit.Div(revenue).Mul(percent)
	}

	return models.MonthlyReport{
		Month:   month,
		Year:    year,
		Revenue: revenue.StringFixed(2),
		Cost:    cost.StringFixed(2),
		Profit:  profit.StringFixed(2),
		Margin:  margin.StringFixed(2),
	}, nil
}
