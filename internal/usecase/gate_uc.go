package usecase

import (
	"context"

	"telegram-referral-gate/internal/domain/ports/adapter"

	"github.com/rs/zerolog"
)

var _ SubscriptionGate = (*gateUC)(nil)

// SubscriptionGate decides whether a user is allowed past the welcome
// screen. Any lookup failure is reported as MembershipUnknown; the gate
// fails closed, never open.
type SubscriptionGate interface {
	Check(ctx context.Context, userID int64) adapter.Membership
}

type gateUC struct {
	bot     adapter.TelegramBotAdapter
	channel string
	log     *zerolog.Logger
}

func NewSubscriptionGate(bot adapter.TelegramBotAdapter, channel string, logger *zerolog.Logger) *gateUC {
	return &gateUC{bot: bot, channel: channel, log: logger}
}

func (g *gateUC) Check(ctx context.Context, userID int64) adapter.Membership {
	status, err := g.bot.MemberStatus(ctx, g.channel, userID)
	if err != nil {
		g.log.Debug().Err(err).Int64("user_id", userID).Msg("membership lookup failed")
		return adapter.MembershipUnknown
	}
	switch status {
	case "member", "administrator", "creator":
		return adapter.MembershipMember
	default:
		return adapter.MembershipNotMember
	}
}
