package usecase

import (
	"context"
	"fmt"

	"telegram-referral-gate/internal/domain/ports/adapter"
	"telegram-referral-gate/internal/domain/ports/repository"
	"telegram-referral-gate/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// InviteThreshold is the number of referral points that earns the one-time
// group invite.
const InviteThreshold = 3

const (
	inviteTextFmt = "🎉 Tabriklaymiz! Siz 3 ta foydalanuvchini taklif qildingiz.\n" +
		"Bu yerda kurs guruhiga qo‘shilish havolasi 👇\n%s\n\n" +
		"❗️Eslatma: Havola faqat siz uchun va faqat 1 marta ishlaydi."
	inviteErrorText = "Havola yaratishda xatolik yuz berdi."
)

var _ RewardUseCase = (*rewardUC)(nil)

// RewardUseCase mints and delivers the one-time group invite once a
// referrer crosses the points threshold.
type RewardUseCase interface {
	// MaybeIssueInvite re-evaluates the referrer and, when
	// points >= InviteThreshold and no invite was sent yet, creates a
	// single-use invite link, DMs it, and marks the flag. Reports whether
	// an invite was issued.
	MaybeIssueInvite(ctx context.Context, referrerID int64) (bool, error)
}

type rewardUC struct {
	users   repository.UserRepository
	bot     adapter.TelegramBotAdapter
	groupID int64
	log     *zerolog.Logger
}

func NewRewardUseCase(users repository.UserRepository, bot adapter.TelegramBotAdapter, groupID int64, logger *zerolog.Logger) *rewardUC {
	return &rewardUC{users: users, bot: bot, groupID: groupID, log: logger}
}

func (u *rewardUC) MaybeIssueInvite(ctx context.Context, referrerID int64) (bool, error) {
	points, err := u.users.Points(ctx, repository.NoTX, referrerID)
	if err != nil {
		return false, fmt.Errorf("points: %w", err)
	}
	if points < InviteThreshold {
		return false, nil
	}
	sent, err := u.users.InviteSent(ctx, repository.NoTX, referrerID)
	if err != nil {
		return false, fmt.Errorf("invite flag: %w", err)
	}
	if sent {
		return false, nil
	}

	link, err := u.bot.CreateInviteLink(ctx, u.groupID, 1)
	if err != nil {
		// Flag stays false so a later qualifying referral can retry.
		u.log.Error().Err(err).Int64("referrer_id", referrerID).Msg("invite link creation failed")
		_ = u.bot.SendMessage(ctx, referrerID, inviteErrorText)
		return false, err
	}
	if err := u.bot.SendMessage(ctx, referrerID, fmt.Sprintf(inviteTextFmt, link)); err != nil {
		u.log.Error().Err(err).Int64("referrer_id", referrerID).Msg("invite delivery failed")
		return false, err
	}
	if err := u.users.MarkInviteSent(ctx, repository.NoTX, referrerID); err != nil {
		return true, fmt.Errorf("mark invite sent: %w", err)
	}
	metrics.IncInviteIssued()
	u.log.Info().Int64("referrer_id", referrerID).Msg("reward invite issued")
	return true, nil
}
