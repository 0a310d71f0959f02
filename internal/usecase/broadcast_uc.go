package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"telegram-referral-gate/internal/domain/ports/adapter"
	"telegram-referral-gate/internal/domain/ports/repository"
	"telegram-referral-gate/internal/infra/metrics"
	"telegram-referral-gate/internal/infra/worker"

	"github.com/rs/zerolog"
)

var _ BroadcastUseCase = (*broadcastUC)(nil)

// BroadcastUseCase fans a text message out to every registered user.
type BroadcastUseCase interface {
	// BroadcastMessage sends to each registered user independently and
	// returns the number of successful sends. A failed recipient (blocked
	// bot, deleted account) is logged and skipped.
	BroadcastMessage(ctx context.Context, message string) (int, error)
}

type broadcastUC struct {
	users repository.UserRepository
	bot   adapter.TelegramBotAdapter
	pool  *worker.Pool
	log   *zerolog.Logger
}

func NewBroadcastUseCase(users repository.UserRepository, bot adapter.TelegramBotAdapter, pool *worker.Pool, logger *zerolog.Logger) *broadcastUC {
	return &broadcastUC{users: users, bot: bot, pool: pool, log: logger}
}

func (uc *broadcastUC) BroadcastMessage(ctx context.Context, message string) (int, error) {
	ids, err := uc.users.ListIDs(ctx, repository.NoTX)
	if err != nil {
		uc.log.Error().Err(err).Msg("failed to list users for broadcast")
		return 0, fmt.Errorf("list users: %w", err)
	}

	// Throttle to respect Telegram's API limits (approx. 30 messages/sec).
	throttle := time.NewTicker(time.Second / 25)
	defer throttle.Stop()

	uc.log.Info().Int("user_count", len(ids)).Msg("starting broadcast")

	var (
		wg   sync.WaitGroup
		sent atomic.Int64
	)
	for _, id := range ids {
		select {
		case <-ctx.Done():
			wg.Wait()
			return int(sent.Load()), ctx.Err()
		case <-throttle.C:
		}

		id := id
		wg.Add(1)
		task := func(ctx context.Context) error {
			defer wg.Done()
			if err := uc.bot.SendMessage(ctx, id, message); err != nil {
				uc.log.Warn().Err(err).Int64("tg_id", id).Msg("broadcast send failed")
				metrics.IncBroadcastSend(false)
				return nil
			}
			sent.Add(1)
			metrics.IncBroadcastSend(true)
			return nil
		}
		if err := uc.pool.Submit(task); err != nil {
			wg.Done()
			uc.log.Warn().Err(err).Int64("tg_id", id).Msg("failed to submit broadcast task")
			metrics.IncBroadcastSend(false)
		}
	}
	wg.Wait()

	n := int(sent.Load())
	uc.log.Info().Int("sent", n).Int("total", len(ids)).Msg("broadcast finished")
	return n, nil
}
