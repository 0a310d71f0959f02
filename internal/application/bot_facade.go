package application

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"telegram-referral-gate/internal/domain/ports/repository"
	"telegram-referral-gate/internal/usecase"

	"github.com/rs/zerolog"
)

// BotFacade composes the use cases into high-level bot commands. Methods
// return canned strings so the Telegram adapter just forwards them to the
// chat; keyboard rendering stays in the adapter.
type BotFacade struct {
	RegUC       usecase.RegistrationUseCase
	Gate        usecase.SubscriptionGate
	RewardUC    usecase.RewardUseCase
	BroadcastUC usecase.BroadcastUseCase
	Users       repository.UserRepository

	adminID     int64
	botUsername string
	log         *zerolog.Logger
}

func NewBotFacade(
	regUC usecase.RegistrationUseCase,
	gate usecase.SubscriptionGate,
	rewardUC usecase.RewardUseCase,
	broadcastUC usecase.BroadcastUseCase,
	users repository.UserRepository,
	adminID int64,
	logger *zerolog.Logger,
) *BotFacade {
	return &BotFacade{
		RegUC:       regUC,
		Gate:        gate,
		RewardUC:    rewardUC,
		BroadcastUC: broadcastUC,
		Users:       users,
		adminID:     adminID,
		log:         logger,
	}
}

// SetBotUsername records the bot's @-name used for referral deep links.
// Called once at startup, after the Telegram session is authorized.
func (b *BotFacade) SetBotUsername(username string) { b.botUsername = username }

// HandleStart registers the caller (attributing the referral when the
// payload is a valid integer id) and reports whether the subscription gate
// passes. When a referred registration passes the gate the referrer's
// reward state is re-evaluated.
func (b *BotFacade) HandleStart(ctx context.Context, userID int64, username, payload string) (bool, error) {
	referredBy := parseReferrer(payload)

	if _, err := b.RegUC.Register(ctx, userID, username, referredBy); err != nil {
		return false, fmt.Errorf("register: %w", err)
	}

	subscribed := b.Gate.Check(ctx, userID).Subscribed()
	if subscribed && referredBy != nil {
		// Reward failures stay local to the referrer: the new user's
		// /start flow is unaffected.
		if _, err := b.RewardUC.MaybeIssueInvite(ctx, *referredBy); err != nil {
			b.log.Warn().Err(err).Int64("referrer_id", *referredBy).Msg("reward evaluation failed")
		}
	}
	return subscribed, nil
}

// HandleCheckSubscription re-checks the gate for the "✅ Tekshirish" button.
func (b *BotFacade) HandleCheckSubscription(ctx context.Context, userID int64) bool {
	return b.Gate.Check(ctx, userID).Subscribed()
}

// HandleMenuText dispatches the four fixed menu labels; anything else gets
// the fixed use-the-menu prompt.
func (b *BotFacade) HandleMenuText(ctx context.Context, userID int64, text string) (string, error) {
	switch text {
	case MenuLabelCourse:
		return courseText, nil
	case MenuLabelTerms:
		return termsText, nil
	case MenuLabelReferral:
		return fmt.Sprintf(referralTextFmt, b.ReferralLink(userID)), nil
	case MenuLabelPoints:
		points, err := b.Users.Points(ctx, repository.NoTX, userID)
		if err != nil {
			return "", fmt.Errorf("points: %w", err)
		}
		return fmt.Sprintf(pointsTextFmt, points), nil
	default:
		return fallbackText, nil
	}
}

// HandleBroadcast runs the admin-only /sendall fan-out and returns the text
// to show the caller.
func (b *BotFacade) HandleBroadcast(ctx context.Context, fromID int64, args string) (string, error) {
	if fromID != b.adminID {
		return noPermissionText, nil
	}
	message := strings.TrimSpace(args)
	if message == "" {
		return broadcastUsageText, nil
	}
	count, err := b.BroadcastUC.BroadcastMessage(ctx, message)
	if err != nil {
		return "", fmt.Errorf("broadcast: %w", err)
	}
	return fmt.Sprintf(broadcastDoneFmt, count), nil
}

// ReferralLink formats the bot deep link carrying the user's id as the
// /start payload.
func (b *BotFacade) ReferralLink(userID int64) string {
	return fmt.Sprintf("https://t.me/%s?start=%d", b.botUsername, userID)
}

// parseReferrer treats anything but a valid integer as "no referrer".
func parseReferrer(payload string) *int64 {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil
	}
	id, err := strconv.ParseInt(payload, 10, 64)
	if err != nil {
		return nil
	}
	return &id
}
