package telegram

import (
	"errors"

	accountsRepo "superspreader-analytics/repositories/accounts"
	telegramRepo "superspreader-analytics/repositories/telegram"
	baselinesService "superspreader-analytics/services/baselines"
	fibService "superspreader-analytics/services/fib"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/patrickmn/go-cache"
)

type MessageType int

const (
	MessageTypeUnknown MessageType = -1
	MessageTypeWelcome MessageType = 1
	MessageTypeHelp    MessageType = 2
	MessageTypeStop    MessageType = 4
)

const reportCacheKey = "daily_report"

var (
	ErrTokenIsMissing         = errors.New("telegram token is missing")
	ErrBotNotInitialized      = errors.New("telegram bot is not ready yet")
	ErrFailedToStartListening = errors.New("telegram bot can't start to listen command")
)

type Service interface {
	ListenAndDispatch() error
}

type Impl struct {
	bot              *gotgbot.Bot
	updater          *ext.Updater
	telegramRepo     telegramRepo.Repository
	accountsRepo     accountsRepo.Repository
	fibService       fibService.Service
	baselinesService baselinesService.Service
	topLimit         int
	cache            *cache.Cache
}
