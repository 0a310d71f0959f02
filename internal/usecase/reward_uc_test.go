package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"telegram-referral-gate/internal/domain/model"
	"telegram-referral-gate/internal/domain/ports/repository"
	"telegram-referral-gate/internal/usecase"
)

func TestRewardUseCase(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()

	t.Run("does nothing below the threshold", func(t *testing.T) {
		repo := NewMockUserRepo()
		repo.Seed(&model.User{ID: 100, Points: usecase.InviteThreshold - 1})
		bot := &MockTelegramBot{}
		uc := usecase.NewRewardUseCase(repo, bot, -1002, logger)

		issued, err := uc.MaybeIssueInvite(ctx, 100)
		if err != nil {
			t.Fatalf("MaybeIssueInvite returned an error: %v", err)
		}
		if issued {
			t.Error("expected no invite below the threshold")
		}
		if len(bot.Messages()) != 0 {
			t.Errorf("expected no messages, got %d", len(bot.Messages()))
		}
	})

	t.Run("issues one invite at the threshold", func(t *testing.T) {
		repo := NewMockUserRepo()
		repo.Seed(&model.User{ID: 100, Points: usecase.InviteThreshold})
		var gotLimit int
		bot := &MockTelegramBot{
			CreateInviteLinkFunc: func(ctx context.Context, chatID int64, memberLimit int) (string, error) {
				gotLimit = memberLimit
				if chatID != -1002 {
					t.Errorf("expected invite for group -1002, got %d", chatID)
				}
				return "https://t.me/+secret", nil
			},
		}
		uc := usecase.NewRewardUseCase(repo, bot, -1002, logger)

		issued, err := uc.MaybeIssueInvite(ctx, 100)
		if err != nil {
			t.Fatalf("MaybeIssueInvite returned an error: %v", err)
		}
		if !issued {
			t.Fatal("expected an invite to be issued")
		}
		if gotLimit != 1 {
			t.Errorf("expected a single-use link (member limit 1), got %d", gotLimit)
		}
		msgs := bot.Messages()
		if len(msgs) != 1 || msgs[0].ChatID != 100 || !strings.Contains(msgs[0].Text, "https://t.me/+secret") {
			t.Errorf("expected the link delivered to the referrer, got %+v", msgs)
		}
		if sent, _ := repo.InviteSent(ctx, repository.NoTX, 100); !sent {
			t.Error("expected invite_sent to be marked")
		}

		// Further qualifying referrals must never mint a second invite.
		issued, err = uc.MaybeIssueInvite(ctx, 100)
		if err != nil {
			t.Fatalf("second MaybeIssueInvite returned an error: %v", err)
		}
		if issued {
			t.Error("expected no second invite after a successful issuance")
		}
		if len(bot.Messages()) != 1 {
			t.Errorf("expected exactly 1 message overall, got %d", len(bot.Messages()))
		}
	})

	t.Run("keeps the flag clear when link creation fails", func(t *testing.T) {
		repo := NewMockUserRepo()
		repo.Seed(&model.User{ID: 100, Points: usecase.InviteThreshold})
		bot := &MockTelegramBot{
			CreateInviteLinkFunc: func(ctx context.Context, chatID int64, memberLimit int) (string, error) {
				return "", errors.New("bot is not an admin")
			},
		}
		uc := usecase.NewRewardUseCase(repo, bot, -1002, logger)

		issued, err := uc.MaybeIssueInvite(ctx, 100)
		if err == nil {
			t.Fatal("expected an error when link creation fails")
		}
		if issued {
			t.Error("expected no invite issued")
		}
		if sent, _ := repo.InviteSent(ctx, repository.NoTX, 100); sent {
			t.Error("expected invite_sent to stay false so a retry remains possible")
		}
		// the referrer is informed with a canned message
		msgs := bot.Messages()
		if len(msgs) != 1 || msgs[0].ChatID != 100 {
			t.Fatalf("expected one failure notice to the referrer, got %+v", msgs)
		}
		if strings.Contains(msgs[0].Text, "admin") {
			t.Error("raw error text must not reach the user")
		}
	})

	t.Run("unknown referrer reads as zero points", func(t *testing.T) {
		repo := NewMockUserRepo()
		bot := &MockTelegramBot{}
		uc := usecase.NewRewardUseCase(repo, bot, -1002, logger)

		issued, err := uc.MaybeIssueInvite(ctx, 12345)
		if err != nil {
			t.Fatalf("MaybeIssueInvite returned an error: %v", err)
		}
		if issued {
			t.Error("expected no invite for an unregistered referrer")
		}
	})
}
