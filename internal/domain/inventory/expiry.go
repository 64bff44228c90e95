package inventory

import "time"

// ExpiryStatus clasificación de frescura de un lote respecto a la fecha actual.
type ExpiryStatus string

const (
	ExpiryFresh   ExpiryStatus = "fresh"
	ExpiryNear    ExpiryStatus = "near"
	ExpiryExpired ExpiryStatus = "expired"
)

// NearExpiryDays días (inclusive) en los que un lote se considera próximo a vencer.
const NearExpiryDays = 7

// ClassifyExpiry compara días calendario: vencido si la fecha de vencimiento es anterior a hoy,
// próximo si faltan entre 0 y NearExpiryDays días, fresco en otro caso. Sin fecha = fresco.
func ClassifyExpiry(expiry *time.Time, now time.Time) ExpiryStatus {
	if expiry == nil || expiry.IsZero() {
		return ExpiryFresh
	}
	days := DaysUntil(*expiry, now)
	switch {
	case days < 0:
		return ExpiryExpired
	case days <= NearExpiryDays:
		return ExpiryNear
	default:
		return ExpiryFresh
	}
}

// DaysUntil días calendario entre now y expiry (negativo si ya pasó).
// La fecha de vencimiento se toma tal cual viene; now se reduce a su día local.
func DaysUntil(expiry, now time.Time) int {
	d := time.Date(expiry.Year(), expiry.Month(), expiry.Day(), 0, 0, 0, 0, time.UTC)
	n := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(d.Sub(n).Hours() / 24)
}
