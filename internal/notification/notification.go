package notification

import (
	"context"
	"log/slog"
)

const (
	// KindLogin indicates a session was established.
	KindLogin = "login"
	// KindLogout indicates a session was ended by the user.
	KindLogout = "logout"
	// KindLoginFailed indicates a rejected login exchange.
	KindLoginFailed = "login_failed"
)

// Message describes a session lifecycle event.
type Message struct {
	Kind    string
	Subject string
	Detail  string
}

// Notifier delivers session events to downstream systems.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// LoggerNotifier is a stub implementation that writes events to the logger.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier stub.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the message to the structured logger.
func (n *LoggerNotifier) Send(_ context.Context, message Message) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.Info("session event", "kind", message.Kind, "subject", message.Subject, "detail", message.Detail)
	return nil
}
