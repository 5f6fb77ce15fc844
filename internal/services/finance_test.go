package services

import (
	"context"
	"testing"
	"time"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velora_back_end/internal/models"
)

func orderAt(date time.Time, price, cost float64) *models.Order {
	return &models.Order{
		ID:           gocql.UUIDFromTime(date),
		UserID:       "u1",
		Price:        price,
		Cost:         cost,
		Profit:       price - cost,
		Quantity:     1,
		Status:       models.OrderProcessing,
		EmailStatus:  models.EmailSent,
		PurchaseDate: date,
	}
}

func TestMonthlyReportEmptyMonth(t *testing.T) {
	svc := NewFinanceService(newMemOrderStore())

	report, err := svc.MonthlyReport(context.Background(), 2, 2026)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Month)
	assert.Equal(t, 2026, report.Year)
	assert.Equal(t, "0.00", report.Revenue)
	assert.Equal(t, "0.00", report.Cost)
	assert.Equal(t, "0.00", report.Profit)
	assert.Equal(t, "0.00", report.Margin)
}

func TestMonthlyReportAggregates(t *testing.T) {
	march := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	orders := newMemOrderStore(
		orderAt(march, 100, 60),
		orderAt(march.AddDate(0, 0, 5), 50, 20),
	)
	svc := NewFinanceService(orders)

	report, err := svc.MonthlyReport(context.Background(), 3, 2026)
	require.NoError(t, err)

	assert.Equal(t, "150.00", report.Revenue)
	assert.Equal(t, "80.00", report.Cost)
	assert.Equal(t, "70.00", report.Profit)
	// 70 / 150 * 100 = 46.666... -> 46.67
	assert.Equal(t, "46.67", report.Margin)
}

// Les bornes du mois sont [1er 00:00, 1er du mois suivant) en UTC.
func TestMonthlyReportCalendarBounds(t *testing.T) {
	lastOfMarch := time.Date(2026, time.March, 31, 23, 59, 59, 0, time.UTC)
	firstOfApril := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	orders := newMemOrderStore(
		orderAt(lastOfMarch, 40, 10),
		orderAt(firstOfApril, 999, 500),
	)
	svc := NewFinanceService(orders)

	report, err := svc.MonthlyReport(context.Background(), 3, 2026)
	require.NoError(t, err)
	assert.Equal(t, "40.00", report.Revenue)

	report, err = svc.MonthlyReport(context.Background(), 4, 2026)
	require.NoError(t, err)
	assert.Equal(t, "999.00", report.Revenue)
}
