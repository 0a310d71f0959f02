package telegram

import (
	"context"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"telegram-referral-gate/internal/application"
	"telegram-referral-gate/internal/config"
	"telegram-referral-gate/internal/domain/ports/adapter"
	"telegram-referral-gate/internal/infra/logging"
	"telegram-referral-gate/internal/infra/metrics"
	red "telegram-referral-gate/internal/infra/redis"
)

const checkSubCallback = "check_sub"

// Router polls updates and dispatches them to the BotFacade: /start,
// /sendall, the check_sub callback, and plain menu text.
type Router struct {
	bot         *Bot
	facade      *application.BotFacade
	rateLimiter *red.RateLimiter // nil disables inbound rate limiting
	channel     string
	workers     int
	log         *zerolog.Logger
}

func NewRouter(bot *Bot, facade *application.BotFacade, rateLimiter *red.RateLimiter, cfg *config.Config, logger *zerolog.Logger) *Router {
	workers := cfg.Bot.Workers
	if workers <= 0 {
		workers = 4
	}
	return &Router{
		bot:         bot,
		facade:      facade,
		rateLimiter: rateLimiter,
		channel:     cfg.Gate.Channel,
		workers:     workers,
		log:         logger,
	}
}

func (r *Router) StartPolling(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := r.bot.api.GetUpdatesChan(u)

	var wg sync.WaitGroup
	updateChan := make(chan tgbotapi.Update, 100)

	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case up := <-updateChan:
					if err := r.handleUpdate(ctx, up); err != nil {
						r.log.Error().Err(err).Int("worker", id).Msg("update handling failed")
					}
				}
			}
		}(i)
	}

	for {
		select {
		case <-ctx.Done():
			r.bot.api.StopReceivingUpdates()
			wg.Wait()
			return ctx.Err()
		case up := <-updates:
			updateChan <- up
		}
	}
}

func (r *Router) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	ctx = logging.WithTraceID(ctx, uuid.NewString())

	if update.CallbackQuery != nil {
		return r.handleQuery(ctx, update.CallbackQuery)
	}

	msg := update.Message
	if msg == nil || msg.From == nil {
		return nil
	}
	userID := msg.From.ID
	ctx = logging.WithTgID(ctx, userID)
	log := logging.With(ctx, r.log)

	command := "message"
	if msg.IsCommand() {
		command = "/" + msg.Command()
	}
	if !r.allow(ctx, userID, command) {
		return nil
	}

	if !msg.IsCommand() {
		if msg.Text == "" {
			return nil
		}
		metrics.IncUpdate("text")
		reply, err := r.facade.HandleMenuText(ctx, userID, msg.Text)
		if err != nil {
			log.Error().Err(err).Msg("menu dispatch failed")
			return err
		}
		return r.bot.SendMessage(ctx, msg.Chat.ID, reply)
	}

	switch msg.Command() {
	case "start":
		metrics.IncUpdate("start")
		subscribed, err := r.facade.HandleStart(ctx, userID, msg.From.UserName, msg.CommandArguments())
		if err != nil {
			log.Error().Err(err).Msg("start failed")
			return err
		}
		if subscribed {
			return r.bot.SendMenu(ctx, msg.Chat.ID, application.WelcomeText, application.MenuLabels())
		}
		return r.sendGate(ctx, msg.Chat.ID)

	case "sendall":
		metrics.IncUpdate("sendall")
		reply, err := r.facade.HandleBroadcast(ctx, userID, msg.CommandArguments())
		if err != nil {
			log.Error().Err(err).Msg("broadcast failed")
			return err
		}
		return r.bot.SendMessage(ctx, msg.Chat.ID, reply)

	default:
		// unknown commands get no reply
		return nil
	}
}

func (r *Router) handleQuery(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	if query.From == nil || strings.TrimSpace(query.Data) != checkSubCallback {
		return nil
	}
	userID := query.From.ID
	ctx = logging.WithTgID(ctx, userID)
	metrics.IncUpdate("check_sub")

	if !r.allow(ctx, userID, "cb:"+checkSubCallback) {
		return nil
	}

	if !r.facade.HandleCheckSubscription(ctx, userID) {
		return r.bot.answerCallback(query.ID, application.GateFailedText, true)
	}

	if err := r.bot.answerCallback(query.ID, "", false); err != nil {
		return err
	}
	if query.Message != nil {
		if err := r.bot.editMessageText(query.Message.Chat.ID, query.Message.MessageID, application.GateConfirmedText); err != nil {
			logging.With(ctx, r.log).Warn().Err(err).Msg("gate message edit failed")
		}
	}
	return r.bot.SendMenu(ctx, userID, application.MenuText, application.MenuLabels())
}

// sendGate shows the subscribe-and-check inline keyboard.
func (r *Router) sendGate(ctx context.Context, chatID int64) error {
	rows := [][]adapter.InlineButton{
		{{Text: application.GateSubscribeText, URL: "https://t.me/" + strings.TrimPrefix(r.channel, "@")}},
		{{Text: application.GateCheckText, Data: checkSubCallback}},
	}
	return r.bot.SendButtons(ctx, chatID, application.GatePromptText, rows)
}

// allow consults the redis rate limiter when configured; lookup errors are
// logged and the update is let through.
func (r *Router) allow(ctx context.Context, userID int64, command string) bool {
	if r.rateLimiter == nil {
		return true
	}
	allowed, err := r.rateLimiter.Allow(ctx, red.UserCommandKey(userID, command), 20, time.Minute)
	if err != nil {
		r.log.Warn().Err(err).Msg("rate limiter error")
		return true
	}
	return allowed
}
