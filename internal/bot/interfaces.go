package bot

import (
	"context"
	"time"

	"github.com/Houeta/price-cage/internal/models"
	"gopkg.in/telebot.v4"
)

type API interface {
	// Handle lets you set the handler for some command name or one of the supported endpoints. It also applies middleware if such passed to the function.
	Handle(endpoint interface{}, h telebot.HandlerFunc, m ...telebot.MiddlewareFunc)
	// Start brings bot into motion by consuming incoming updates (see Bot.Updates channel).
	Start()
	// Stop gracefully shuts the poller down.
	Stop()

	Leave(chat telebot.Recipient) error

	NewContext(u telebot.Update) telebot.Context

	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

// AlertGenerator computes the price swings reported by /alerts.
type AlertGenerator interface {
	Generate(ctx context.Context, thresholdPct float64, lookback time.Duration) ([]models.Alert, error)
}
