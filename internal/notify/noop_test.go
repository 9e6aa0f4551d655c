package notify

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNoOpNotifier_SendAlert(t *testing.T) {
	t.Parallel()

	n := NewNoOpNotifier(slog.New(slog.NewTextHandler(io.Discard, nil)))
	err := n.SendAlert(context.Background(), &AlertPayload{
		ProductName: "Wireless Headphones",
		ASIN:        "B000AUDIO01",
		DropPercent: 12.5,
	})
	require.NoError(t, err)
}

func TestNoOpNotifier_SendBatchAlert(t *testing.T) {
	t.Parallel()

	n := NewNoOpNotifier(slog.New(slog.NewTextHandler(io.Discard, nil)))
	alerts := []AlertPayload{
		{ProductName: "Wireless Headphones", ASIN: "B000AUDIO01", DropPercent: 12.5},
		{ProductName: "Air Fryer", ASIN: "B000KITCH01", DropPercent: 8.0},
	}

	err := n.SendBatchAlert(context.Background(), alerts)
	require.NoError(t, err)
}

func TestNoOpNotifier_SendBatchAlert_Empty(t *testing.T) {
	t.Parallel()

	n := NewNoOpNotifier(slog.New(slog.NewTextHandler(io.Discard, nil)))
	err := n.SendBatchAlert(context.Background(), nil)
	require.NoError(t, err)
}

// compile-time interface check.
var _ Notifier = (*NoOpNotifier)(nil)
var _ Notifier = (*DiscordNotifier)(nil)
