package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/AdamBeresnev/brisa-tee-times/internal/metrics"
	"github.com/AdamBeresnev/brisa-tee-times/internal/teetime"
)

type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// ChatSender posts to the course staff's chat.
type ChatSender interface {
	SendChat(ctx context.Context, text string) error
}

// Notifier sends reservation confirmations. Every channel is best-effort: failures are logged and
// counted, never returned, and a nil channel is skipped.
type Notifier struct {
	email   EmailSender
	sms     SMSSender
	chat    ChatSender
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func New(logger *slog.Logger, m *metrics.Metrics, email EmailSender, sms SMSSender, chat ChatSender) *Notifier {
	return &Notifier{email: email, sms: sms, chat: chat, metrics: m, logger: logger}
}

func (n *Notifier) NotifyReservation(ctx context.Context, r teetime.Reservation) {
	log := n.logger.With("reservation_id", r.ID, "day", r.Day, "tee_time", r.TeeTime)

	switch {
	case n.email == nil:
		log.Debug("email skipped (channel disabled)")
	case r.Email == "":
		log.Debug("email skipped (no address)")
	default:
		err := n.email.SendEmail(ctx, r.Email, Subject(r), Body(r))
		n.record(log, "email", err)
	}

	if r.Phone != "" && r.SMSOptIn {
		if n.sms == nil {
			log.Debug("sms skipped (channel disabled)")
		} else {
			err := n.sms.SendSMS(ctx, r.Phone, SMSBody(r))
			n.record(log, "sms", err)
		}
	}

	if n.chat != nil {
		err := n.chat.SendChat(ctx, ChatBody(r))
		n.record(log, "chat", err)
	}
}

func (n *Notifier) record(log *slog.Logger, channel string, err error) {
	if err != nil {
		n.metrics.IncNotificationFailed(channel)
		log.Error("failed to send confirmation", "channel", channel, "error", err)
		return
	}
	n.metrics.IncNotificationSent(channel)
	log.Info("confirmation sent", "channel", channel)
}

func Subject(r teetime.Reservation) string {
	if r.Tournament == "" {
		return "Tee Time Confirmation"
	}
	return "Tee Time Confirmation for " + r.Tournament
}

func Body(r teetime.Reservation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", r.FirstName)
	if r.Tournament != "" {
		fmt.Fprintf(&b, "You're confirmed for the %s on %s at %s.\n\n", r.Tournament, r.Day, r.TeeTime)
	} else {
		fmt.Fprintf(&b, "You're confirmed on %s at %s.\n\n", r.Day, r.TeeTime)
	}
	fmt.Fprintf(&b, "Player: %s\n", r.FullName())
	if r.Country != "" {
		fmt.Fprintf(&b, "Country: %s\n", r.Country)
	}
	fmt.Fprintf(&b, "Slot: %d of %d\n\n", r.Position, teetime.MaxPlayersPerSlot)
	b.WriteString("Thanks for using Brisa!")
	return b.String()
}

func SMSBody(r teetime.Reservation) string {
	where := ""
	if r.Tournament != "" {
		where = " for the " + r.Tournament
	}
	return fmt.Sprintf("Brisa: %s is confirmed%s on %s at %s (slot %d of %d).",
		r.FullName(), where, r.Day, r.TeeTime, r.Position, teetime.MaxPlayersPerSlot)
}

func ChatBody(r teetime.Reservation) string {
	parts := []string{r.FullName()}
	if r.Tournament != "" {
		parts = append(parts, r.Tournament)
	}
	parts = append(parts, r.Day+" "+r.TeeTime, fmt.Sprintf("slot %d of %d", r.Position, teetime.MaxPlayersPerSlot))
	return "New tee time: " + strings.Join(parts, ", ")
}
