package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/bakery-erp/internal/domain/inventory"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestClassifyExpiry(t *testing.T) {
	// "hoy" a media mañana: la hora no debe influir en la clasificación por día.
	now := time.Date(2026, time.March, 10, 10, 30, 0, 0, time.UTC)

	cases := []struct {
		name   string
		expiry *time.Time
		want   inventory.ExpiryStatus
	}{
		{"sin fecha", nil, inventory.ExpiryFresh},
		{"ayer", date(2026, time.March, 9), inventory.ExpiryExpired},
		{"hace un mes", date(2026, time.February, 10), inventory.ExpiryExpired},
		{"hoy", date(2026, time.March, 10), inventory.ExpiryNear},
		{"mañana", date(2026, time.March, 11), inventory.ExpiryNear},
		{"en 7 días", date(2026, time.March, 17), inventory.ExpiryNear},
		{"en 8 días", date(2026, time.March, 18), inventory.ExpiryFresh},
		{"el año siguiente", date(2027, time.January, 1), inventory.ExpiryFresh},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, inventory.ClassifyExpiry(tc.expiry, now))
		})
	}
}

func TestClassifyExpiry_FechaCero_EsFresco(t *testing.T) {
	var zero time.Time
	assert.Equal(t, inventory.ExpiryFresh, inventory.ClassifyExpiry(&zero, time.Now()))
}

func TestDaysUntil_CruzaCambioDeMes(t *testing.T) {
	now := time.Date(2026, time.February, 27, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, 2, inventory.DaysUntil(*date(2026, time.March, 1), now))
	assert.Equal(t, -27, inventory.DaysUntil(*date(2026, time.January, 31), now))
}
