package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"telegram-referral-gate/internal/domain/ports/repository"
	"telegram-referral-gate/internal/infra/worker"
	"telegram-referral-gate/internal/usecase"
)

func TestBroadcastUseCase(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()

	t.Run("reports only successful sends", func(t *testing.T) {
		ids := []int64{101, 102, 103, 104, 105}
		failing := map[int64]bool{102: true, 105: true} // blocked bot, deleted account

		repo := NewMockUserRepo()
		repo.ListIDsFunc = func(ctx context.Context, tx repository.Tx) ([]int64, error) {
			return ids, nil
		}

		var mu sync.Mutex
		delivered := map[int64]int{}
		bot := &MockTelegramBot{
			SendMessageFunc: func(ctx context.Context, chatID int64, text string) error {
				if failing[chatID] {
					return errors.New("Forbidden: bot was blocked by the user")
				}
				mu.Lock()
				delivered[chatID]++
				mu.Unlock()
				return nil
			},
		}

		pool := worker.NewPool(2, logger)
		pool.Start(ctx)
		defer pool.Stop()

		uc := usecase.NewBroadcastUseCase(repo, bot, pool, logger)

		count, err := uc.BroadcastMessage(ctx, "Hello everyone")
		if err != nil {
			t.Fatalf("BroadcastMessage returned an error: %v", err)
		}
		if want := len(ids) - len(failing); count != want {
			t.Errorf("expected %d successful sends, got %d", want, count)
		}
		mu.Lock()
		defer mu.Unlock()
		for id := range failing {
			if delivered[id] != 0 {
				t.Errorf("expected no delivery to failing recipient %d", id)
			}
		}
		for _, id := range ids {
			if !failing[id] && delivered[id] != 1 {
				t.Errorf("expected exactly one delivery to %d, got %d", id, delivered[id])
			}
		}
	})

	t.Run("propagates a registry listing failure", func(t *testing.T) {
		repo := NewMockUserRepo()
		repo.ListIDsFunc = func(ctx context.Context, tx repository.Tx) ([]int64, error) {
			return nil, errors.New("connection refused")
		}
		pool := worker.NewPool(1, logger)
		pool.Start(ctx)
		defer pool.Stop()

		uc := usecase.NewBroadcastUseCase(repo, &MockTelegramBot{}, pool, logger)
		if _, err := uc.BroadcastMessage(ctx, "hi"); err == nil {
			t.Fatal("expected an error when the user list cannot be read")
		}
	})
}
