// Package presenters holds pure display logic over backend-supplied records.
package presenters

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sommystore/storefront/app/models"
)

// cancellationFeeRate is the store's 3% fee on client-initiated cancellation.
var cancellationFeeRate = decimal.NewFromFloat(0.03)

// FormatDate renders a tracking date, or the literal "TBA" when the backend
// has not set it yet.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "TBA"
	}
	return t.Format("Jan 2, 2006")
}

// Badge is a status label with the color class a UI surface should use.
type Badge struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// StatusBadge maps an order status to its display badge: delivered renders
// as success, cancelled as danger, everything else as info.
func StatusBadge(status models.OrderStatus) Badge {
	label := string(status)
	if label != "" {
		label = strings.ToUpper(label[:1]) + label[1:]
	}

	color := "info"
	switch status {
	case models.StatusDelivered:
		color = "success"
	case models.StatusCancelled:
		color = "danger"
	}

	return Badge{Label: label, Color: color}
}

// Quote is the client-computed preview of a cancellation. It is not
// authoritative: the backend's returned fee and refund overwrite it once a
// cancel request is confirmed.
type Quote struct {
	Fee    float64 `json:"cancellationFee"`
	Refund float64 `json:"refundAmount"`
}

// CancellationQuote previews the 3% cancellation fee on an order total,
// rounded to 2 decimals, and the refund that remains.
func CancellationQuote(total float64) Quote {
	t := decimal.NewFromFloat(total)
	fee := t.Mul(cancellationFeeRate).Round(2)
	refund := t.Sub(fee)

	f, _ := fee.Float64()
	r, _ := refund.Float64()
	return Quote{Fee: f, Refund: r}
}

// CanCancel reports whether the UI should offer a cancel action.
func CanCancel(o models.Order) bool {
	return o.Status.Cancellable()
}
