// Package notify defines the notification interface and implementations
// for price-drop alert delivery.
package notify

import (
	"context"

	domain "github.com/viraladmedia/amzpulse/pkg/types"
)

// AlertPayload contains the data needed to send a price-drop alert for
// a watched product.
type AlertPayload struct {
	ProductName string
	ASIN        string
	ProductURL  string
	ImageURL    string
	Category    string
	OldPrice    float64
	NewPrice    float64
	DropPercent float64
	Grade       domain.Grade // empty when the product has no assessment
	Score       int
}

// Notifier defines the interface for sending price-drop notifications.
type Notifier interface {
	SendAlert(ctx context.Context, alert *AlertPayload) error
	SendBatchAlert(ctx context.Context, alerts []AlertPayload) error
}
