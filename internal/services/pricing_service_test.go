package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivehub/rental-backend/internal/config"
	"github.com/drivehub/rental-backend/internal/models"
)

func defaultRates() config.RateTableConfig {
	return config.RateTableConfig{
		Hourly: 25.00,
		Daily:  150.00,
		Weekly: 800.00,
	}
}

func activeOffer(discount float64) models.CarOffer {
	return models.CarOffer{
		ID:                 "offer-1",
		CarID:              "car-1",
		DiscountPercentage: discount,
		IsActive:           true,
	}
}

func TestCalculateBookingPrice(t *testing.T) {
	svc := NewPricingService(defaultRates())
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Daily with discount", func(t *testing.T) {
		start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
		end := start.Add(3 * 24 * time.Hour)

		quote, err := svc.CalculateBookingPrice(
			models.DurationDaily, start, end,
			[]models.CarOffer{activeOffer(20)}, now,
		)
		require.NoError(t, err)

		assert.Equal(t, 3, quote.Units)
		assert.Equal(t, 150.00, quote.BaseRate)
		assert.Equal(t, 450.00, quote.Subtotal)
		assert.Equal(t, 20.0, quote.DiscountPercentage)
		assert.Equal(t, 360.00, quote.Total)
	})

	t.Run("Hourly without offers", func(t *testing.T) {
		start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
		end := start.Add(5 * time.Hour)

		quote, err := svc.CalculateBookingPrice(models.DurationHourly, start, end, nil, now)
		require.NoError(t, err)

		assert.Equal(t, 5, quote.Units)
		assert.Equal(t, 25.00, quote.BaseRate)
		assert.Equal(t, 125.00, quote.Total)
	})

	t.Run("Weekly", func(t *testing.T) {
		start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
		end := start.Add(2 * 7 * 24 * time.Hour)

		quote, err := svc.CalculateBookingPrice(models.DurationWeekly, start, end, nil, now)
		require.NoError(t, err)

		assert.Equal(t, 2, quote.Units)
		assert.Equal(t, 1600.00, quote.Total)
	})

	t.Run("Partial unit floors to minimum of one", func(t *testing.T) {
		start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
		end := start.Add(30 * time.Minute)

		quote, err := svc.CalculateBookingPrice(models.DurationHourly, start, end, nil, now)
		require.NoError(t, err)

		assert.Equal(t, 1, quote.Units)
		assert.Equal(t, 25.00, quote.Total)
	})

	t.Run("Partial day truncates", func(t *testing.T) {
		start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
		end := start.Add(2*24*time.Hour + 6*time.Hour)

		quote, err := svc.CalculateBookingPrice(models.DurationDaily, start, end, nil, now)
		require.NoError(t, err)

		assert.Equal(t, 2, quote.Units)
		assert.Equal(t, 300.00, quote.Total)
	})

	t.Run("Best offer wins over weaker ones", func(t *testing.T) {
		start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
		end := start.Add(24 * time.Hour)

		offers := []models.CarOffer{activeOffer(10), activeOffer(25), activeOffer(5)}
		quote, err := svc.CalculateBookingPrice(models.DurationDaily, start, end, offers, now)
		require.NoError(t, err)

		assert.Equal(t, 25.0, quote.DiscountPercentage)
		assert.Equal(t, 112.50, quote.Total)
	})

	t.Run("Expired offer is ignored", func(t *testing.T) {
		start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
		end := start.Add(24 * time.Hour)

		offerStart := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		offerEnd := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		expired := activeOffer(50)
		expired.StartDate = &offerStart
		expired.EndDate = &offerEnd

		quote, err := svc.CalculateBookingPrice(models.DurationDaily, start, end, []models.CarOffer{expired}, now)
		require.NoError(t, err)

		assert.Equal(t, 0.0, quote.DiscountPercentage)
		assert.Equal(t, 150.00, quote.Total)
	})

	t.Run("Full discount yields zero, never negative", func(t *testing.T) {
		start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
		end := start.Add(24 * time.Hour)

		quote, err := svc.CalculateBookingPrice(models.DurationDaily, start, end, []models.CarOffer{activeOffer(100)}, now)
		require.NoError(t, err)

		assert.Equal(t, 0.00, quote.Total)
		assert.GreaterOrEqual(t, quote.Total, 0.00)
	})

	t.Run("Unknown duration type bills hourly", func(t *testing.T) {
		start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
		end := start.Add(24 * time.Hour)

		quote, err := svc.CalculateBookingPrice(models.DurationType("monthly"), start, end, nil, now)
		require.NoError(t, err)

		assert.Equal(t, 24, quote.Units)
		assert.Equal(t, 25.00, quote.BaseRate)
		assert.Equal(t, 600.00, quote.Total)
	})
}

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, 112.50, roundMoney(112.5))
	assert.Equal(t, 0.33, roundMoney(1.0/3.0))
	assert.Equal(t, 120.00, roundMoney(150*0.8))
	assert.Equal(t, 2.68, roundMoney(2.675000001))
}
