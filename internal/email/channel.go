// Package email delivers chore reminder messages through an ordered chain
// of delivery channels. Exactly one channel is attempted per message: the
// first configured one. A failure on that channel is final; fallback is by
// configuration availability, never by runtime retry.
package email

import (
	"errors"
	"log/slog"
)

// Channel names, surfaced to callers so they can distinguish a real send
// from a mock one.
const (
	ChannelAPI  = "api"
	ChannelSMTP = "smtp"
	ChannelMock = "mock"
)

// Message is one outbound email with an optional attachment.
type Message struct {
	To             string
	ToName         string
	Subject        string
	TextBody       string
	HTMLBody       string
	AttachmentName string
	AttachmentMIME string
	Attachment     []byte
}

// Channel is one delivery strategy. Configured reports whether the channel
// has everything it needs to attempt delivery.
type Channel interface {
	Name() string
	Configured() bool
	Send(m Message) error
}

// Sender tries channels in order and delivers through the first configured
// one.
type Sender struct {
	channels []Channel
	logger   *slog.Logger
}

func NewSender(logger *slog.Logger, channels ...Channel) *Sender {
	return &Sender{channels: channels, logger: logger}
}

// Send returns the name of the channel that handled the message. An error
// from the selected channel is returned as-is; later channels are never
// consulted.
func (s *Sender) Send(m Message) (string, error) {
	for _, ch := range s.channels {
		if !ch.Configured() {
			continue
		}
		if err := ch.Send(m); err != nil {
			s.logger.Error("delivery failed", "channel", ch.Name(), "to", m.To, "error", err)
			return ch.Name(), err
		}
		s.logger.Info("message delivered", "channel", ch.Name(), "to", m.To)
		return ch.Name(), nil
	}
	return "", errors.New("no delivery channel configured")
}

// MockChannel is the terminal fallback: always configured, never touches
// the network. It logs the message so a misconfigured deployment is visible
// in the output.
type MockChannel struct {
	logger *slog.Logger
}

func NewMockChannel(logger *slog.Logger) *MockChannel {
	return &MockChannel{logger: logger}
}

func (c *MockChannel) Name() string     { return ChannelMock }
func (c *MockChannel) Configured() bool { return true }

func (c *MockChannel) Send(m Message) error {
	c.logger.Info("mock delivery (email not configured)", "to", m.To, "subject", m.Subject)
	return nil
}
