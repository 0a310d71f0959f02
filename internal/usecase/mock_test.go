package usecase_test

import (
	"context"
	"io"
	"sync"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"telegram-referral-gate/internal/domain/model"
	"telegram-referral-gate/internal/domain/ports/adapter"
	"telegram-referral-gate/internal/domain/ports/repository"
)

// =============================
// Adapters
// =============================

// ---- Mock TelegramBotAdapter ----

type sentMessage struct {
	ChatID int64
	Text   string
}

type MockTelegramBot struct {
	mu   sync.Mutex
	Sent []sentMessage

	SendMessageFunc      func(ctx context.Context, chatID int64, text string) error
	SendButtonsFunc      func(ctx context.Context, chatID int64, text string, rows [][]adapter.InlineButton) error
	SendMenuFunc         func(ctx context.Context, chatID int64, text string, labels []string) error
	MemberStatusFunc     func(ctx context.Context, channel string, userID int64) (string, error)
	CreateInviteLinkFunc func(ctx context.Context, chatID int64, memberLimit int) (string, error)
}

var _ adapter.TelegramBotAdapter = (*MockTelegramBot)(nil)

func (m *MockTelegramBot) SendMessage(ctx context.Context, chatID int64, text string) error {
	if m.SendMessageFunc != nil {
		return m.SendMessageFunc(ctx, chatID, text)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, sentMessage{ChatID: chatID, Text: text})
	return nil
}

func (m *MockTelegramBot) Messages() []sentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]sentMessage, len(m.Sent))
	copy(out, m.Sent)
	return out
}

func (m *MockTelegramBot) SendButtons(ctx context.Context, chatID int64, text string, rows [][]adapter.InlineButton) error {
	if m.SendButtonsFunc != nil {
		return m.SendButtonsFunc(ctx, chatID, text, rows)
	}
	return nil
}

func (m *MockTelegramBot) SendMenu(ctx context.Context, chatID int64, text string, labels []string) error {
	if m.SendMenuFunc != nil {
		return m.SendMenuFunc(ctx, chatID, text, labels)
	}
	return nil
}

func (m *MockTelegramBot) MemberStatus(ctx context.Context, channel string, userID int64) (string, error) {
	if m.MemberStatusFunc != nil {
		return m.MemberStatusFunc(ctx, channel, userID)
	}
	return "member", nil
}

func (m *MockTelegramBot) CreateInviteLink(ctx context.Context, chatID int64, memberLimit int) (string, error) {
	if m.CreateInviteLinkFunc != nil {
		return m.CreateInviteLinkFunc(ctx, chatID, memberLimit)
	}
	return "https://t.me/+mockinvite", nil
}

// =============================
// Repositories
// =============================

// ---- Mock UserRepository ----

type MockUserRepo struct {
	mu   sync.Mutex
	byID map[int64]*model.User

	InsertFunc          func(ctx context.Context, tx repository.Tx, u *model.User) (bool, error)
	FindByIDFunc        func(ctx context.Context, tx repository.Tx, id int64) (*model.User, error)
	IncrementPointsFunc func(ctx context.Context, tx repository.Tx, id int64) error
	PointsFunc          func(ctx context.Context, tx repository.Tx, id int64) (int, error)
	InviteSentFunc      func(ctx context.Context, tx repository.Tx, id int64) (bool, error)
	MarkInviteSentFunc  func(ctx context.Context, tx repository.Tx, id int64) error
	ListIDsFunc         func(ctx context.Context, tx repository.Tx) ([]int64, error)
}

var _ repository.UserRepository = (*MockUserRepo)(nil)

func NewMockUserRepo() *MockUserRepo {
	return &MockUserRepo{byID: map[int64]*model.User{}}
}

func (r *MockUserRepo) Seed(u *model.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.byID[u.ID] = &cp
}

func (r *MockUserRepo) Insert(ctx context.Context, tx repository.Tx, u *model.User) (bool, error) {
	if r.InsertFunc != nil {
		return r.InsertFunc(ctx, tx, u)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[u.ID]; ok {
		return false, nil
	}
	cp := *u
	r.byID[u.ID] = &cp
	return true, nil
}

func (r *MockUserRepo) FindByID(ctx context.Context, tx repository.Tx, id int64) (*model.User, error) {
	if r.FindByIDFunc != nil {
		return r.FindByIDFunc(ctx, tx, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *MockUserRepo) IncrementPoints(ctx context.Context, tx repository.Tx, id int64) error {
	if r.IncrementPointsFunc != nil {
		return r.IncrementPointsFunc(ctx, tx, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	// like the UPDATE statement, a missing row is a silent no-op
	if u, ok := r.byID[id]; ok {
		u.Points++
	}
	return nil
}

func (r *MockUserRepo) Points(ctx context.Context, tx repository.Tx, id int64) (int, error) {
	if r.PointsFunc != nil {
		return r.PointsFunc(ctx, tx, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		return u.Points, nil
	}
	return 0, nil
}

func (r *MockUserRepo) InviteSent(ctx context.Context, tx repository.Tx, id int64) (bool, error) {
	if r.InviteSentFunc != nil {
		return r.InviteSentFunc(ctx, tx, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		return u.InviteSent, nil
	}
	return false, nil
}

func (r *MockUserRepo) MarkInviteSent(ctx context.Context, tx repository.Tx, id int64) error {
	if r.MarkInviteSentFunc != nil {
		return r.MarkInviteSentFunc(ctx, tx, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		u.InviteSent = true
	}
	return nil
}

func (r *MockUserRepo) ListIDs(ctx context.Context, tx repository.Tx) ([]int64, error) {
	if r.ListIDsFunc != nil {
		return r.ListIDsFunc(ctx, tx)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]int64, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	return ids, nil
}

// =============================
// Infra helpers for tests
// =============================

// ---- Mock TransactionManager ----

type MockTxManager struct {
	WithTxFunc func(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error
}

var _ repository.TransactionManager = (*MockTxManager)(nil)

func NewMockTxManager() *MockTxManager {
	return &MockTxManager{}
}

// WithTx runs the function immediately with NoTX unless overridden.
func (m *MockTxManager) WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	if m.WithTxFunc != nil {
		return m.WithTxFunc(ctx, txOpt, fn)
	}
	return fn(ctx, repository.NoTX)
}

// newTestLogger creates a silent zerolog.Logger so logs don't clutter test
// output.
func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}
