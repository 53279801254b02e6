package external

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"weathernow.app/internal/ports"
	"weathernow.app/pkg/errors"
)

const alertSubject = "Weather Alert"

// LogChangeNotifier records weather changes in the structured log
type LogChangeNotifier struct {
	logger ports.Logger
}

var _ ports.WeatherChangeNotifier = (*LogChangeNotifier)(nil)

func NewLogChangeNotifier(logger ports.Logger) *LogChangeNotifier {
	return &LogChangeNotifier{logger: logger}
}

func (n *LogChangeNotifier) NotifyWeatherChange(ctx context.Context, change ports.WeatherChange) error {
	n.logger.Info(alertSubject,
		ports.F("location_id", change.LocationID),
		ports.F("city", change.CityName),
		ports.F("previous", change.Previous),
		ports.F("current", change.Current))
	return nil
}

// RedisChangeNotifier publishes weather changes as JSON on a Redis channel
type RedisChangeNotifier struct {
	client  *redis.Client
	channel string
}

var _ ports.WeatherChangeNotifier = (*RedisChangeNotifier)(nil)

func NewRedisChangeNotifier(client *redis.Client, channel string) (*RedisChangeNotifier, error) {
	if client == nil {
		return nil, errors.NewValidationError("redis client is required")
	}
	if channel == "" {
		return nil, errors.NewValidationError("change channel cannot be empty")
	}
	return &RedisChangeNotifier{client: client, channel: channel}, nil
}

func (n *RedisChangeNotifier) NotifyWeatherChange(ctx context.Context, change ports.WeatherChange) error {
	payload, err := json.Marshal(change)
	if err != nil {
		return errors.NewDecodingError("failed to encode weather change", err)
	}

	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		return errors.NewExternalAPIError("failed to publish weather change", err)
	}
	return nil
}

// EmailChangeNotifier emails a weather alert to a single recipient
type EmailChangeNotifier struct {
	sender    ports.EmailProvider
	recipient string
}

var _ ports.WeatherChangeNotifier = (*EmailChangeNotifier)(nil)

func NewEmailChangeNotifier(sender ports.EmailProvider, recipient string) (*EmailChangeNotifier, error) {
	if sender == nil {
		return nil, errors.NewValidationError("email provider is required")
	}
	if recipient == "" {
		return nil, errors.NewValidationError("alert recipient cannot be empty")
	}
	return &EmailChangeNotifier{sender: sender, recipient: recipient}, nil
}

func (n *EmailChangeNotifier) NotifyWeatherChange(ctx context.Context, change ports.WeatherChange) error {
	return n.sender.SendEmail(ctx, ports.EmailParams{
		To:      n.recipient,
		Subject: alertSubject,
		Body:    AlertBody(change),
	})
}

// AlertBody renders the user-facing alert text for change
func AlertBody(change ports.WeatherChange) string {
	return fmt.Sprintf("Significant weather change detected in %s: %s → %s",
		change.CityName, change.Previous, change.Current)
}

// MultiChangeNotifier fans a change out to every notifier. All notifiers are
// tried; their failures are joined.
type MultiChangeNotifier struct {
	notifiers []ports.WeatherChangeNotifier
}

var _ ports.WeatherChangeNotifier = (*MultiChangeNotifier)(nil)

func NewMultiChangeNotifier(notifiers ...ports.WeatherChangeNotifier) *MultiChangeNotifier {
	return &MultiChangeNotifier{notifiers: notifiers}
}

func (n *MultiChangeNotifier) NotifyWeatherChange(ctx context.Context, change ports.WeatherChange) error {
	var errs []error
	for _, notifier := range n.notifiers {
		if err := notifier.NotifyWeatherChange(ctx, change); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}
