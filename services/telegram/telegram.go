package telegram

import (
	"fmt"
	"time"

	"superspreader-analytics/models/constants"
	"superspreader-analytics/models/entities"
	"superspreader-analytics/pkg/observer"
	accountsRepo "superspreader-analytics/repositories/accounts"
	baselinesRepo "superspreader-analytics/repositories/baselines"
	telegramRepo "superspreader-analytics/repositories/telegram"
	baselinesService "superspreader-analytics/services/baselines"
	fibService "superspreader-analytics/services/fib"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
	"github.com/dustin/go-humanize"
	"github.com/go-co-op/gocron/v2"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func New(scheduler gocron.Scheduler,
	token string,
	telegramRepo telegramRepo.Repository,
	accountsRepo accountsRepo.Repository,
	fibService fibService.Service,
	baselinesService baselinesService.Service) (*Impl, error) {

	if token == "" {
		return &Impl{}, ErrTokenIsMissing
	}

	b, err := gotgbot.NewBot(token, nil)
	if err != nil {
		return &Impl{}, ErrBotNotInitialized
	}

	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		Error: func(b *gotgbot.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			log.Warn().Msg("an error occurred while handling update")
			return ext.DispatcherActionNoop
		},
		MaxRoutines: ext.DefaultMaxRoutines,
	})

	service := Impl{
		bot:              b,
		telegramRepo:     telegramRepo,
		accountsRepo:     accountsRepo,
		fibService:       fibService,
		baselinesService: baselinesService,
		topLimit:         viper.GetInt(constants.TopUsersLimit),
		cache:            cache.New(1*time.Hour, 2*time.Hour),
	}
	dispatcher.AddHandler(handlers.NewCommand("start", service.startCmd))
	dispatcher.AddHandler(handlers.NewCommand("stop", service.stopCmd))
	dispatcher.AddHandler(handlers.NewCommand("help", service.helpCmd))
	dispatcher.AddHandler(handlers.NewCommand("report", service.reportCmd))
	dispatcher.AddHandler(handlers.NewCommand("baselines", service.baselinesCmd))
	dispatcher.AddHandler(handlers.NewCommand("", service.unknownCmd))

	service.updater = ext.NewUpdater(dispatcher, nil)

	_, errJob := scheduler.NewJob(
		gocron.CronJob(viper.GetString(constants.ReportCronTab), true),
		gocron.NewTask(func() { service.sendDailyReport(-1) }),
		gocron.WithName("Send daily report"),
	)
	if errJob != nil {
		return nil, errJob
	}

	return &service, nil
}

func (service *Impl) ListenAndDispatch() error {
	err := service.updater.StartPolling(service.bot, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &gotgbot.GetUpdatesOpts{
			Timeout: 9,
			RequestOpts: &gotgbot.RequestOpts{
				Timeout: time.Second * 10,
			},
		},
	})
	if err != nil {
		return ErrFailedToStartListening
	}

	service.updater.Idle()

	return nil
}

func (service *Impl) startCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	log.Info().Str("cmd", "start").Str("username", ctx.EffectiveChat.Username).Int64(constants.LogChatID, ctx.EffectiveChat.Id).Msg("command received")
	err := service.telegramRepo.SaveOrUpdate(entities.TelegramUser{ChatID: ctx.EffectiveChat.Id, Name: ctx.EffectiveChat.Username})
	if err != nil {
		log.Error().Err(err).Str("username", ctx.EffectiveChat.Username).Int64(constants.LogChatID, ctx.EffectiveChat.Id).Msg("error on saved")
	}
	service.bot.SendMessage(ctx.EffectiveChat.Id, getMessageFromMessageType(MessageTypeWelcome), &gotgbot.SendMessageOpts{ParseMode: "Markdown"})
	return nil
}

func (service *Impl) stopCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	log.Info().Str("cmd", "stop").Str("username", ctx.EffectiveChat.Username).Int64(constants.LogChatID, ctx.EffectiveChat.Id).Msg("command received")
	err := service.telegramRepo.Delete(entities.TelegramUser{ChatID: ctx.EffectiveChat.Id})
	if err != nil {
		log.Error().Err(err).Int64(constants.LogChatID, ctx.EffectiveChat.Id).Msg("error on deleted")
	}
	service.bot.SendMessage(ctx.EffectiveChat.Id, getMessageFromMessageType(MessageTypeStop), &gotgbot.SendMessageOpts{ParseMode: "Markdown"})
	return nil
}

func (service *Impl) helpCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	log.Info().Str("cmd", "help").Str("username", ctx.EffectiveChat.Username).Int64(constants.LogChatID, ctx.EffectiveChat.Id).Msg("command received")
	service.bot.SendMessage(ctx.EffectiveChat.Id, getMessageFromMessageType(MessageTypeHelp), &gotgbot.SendMessageOpts{ParseMode: "Markdown"})
	return nil
}

func (service *Impl) unknownCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	log.Info().Str("cmd", "unknown").Str("username", ctx.EffectiveChat.Username).Int64(constants.LogChatID, ctx.EffectiveChat.Id).Msg("command received")
	service.bot.SendMessage(ctx.EffectiveChat.Id, getGenericErrorMessage(), &gotgbot.SendMessageOpts{ParseMode: "Markdown"})
	return nil
}

func (service *Impl) baselinesCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	log.Info().Str("cmd", "baselines").Str("username", ctx.EffectiveChat.Username).Int64(constants.LogChatID, ctx.EffectiveChat.Id).Msg("command received")

	msg := "📐 *Baseline Rankings*\n"
	for _, kind := range []string{baselinesRepo.KindInfluential, baselinesRepo.KindPopular} {
		scores, err := service.baselinesService.Top(kind, service.topLimit)
		if err != nil {
			log.Error().Err(err).Msg("Cannot load baseline ranking")
			service.bot.SendMessage(ctx.EffectiveChat.Id, getGenericErrorMessage(), &gotgbot.SendMessageOpts{ParseMode: "Markdown"})
			return nil
		}
		if len(scores) == 0 {
			continue
		}

		msg += fmt.Sprintf("\n*%s*\n", kind)
		for _, score := range scores {
			msg += fmt.Sprintf("%d. `%s` — %s\n", score.Rank, score.UserID, humanize.Comma(int64(score.Value)))
		}
	}

	if msg == "📐 *Baseline Rankings*\n" {
		msg += "\nNo baseline computed yet, check back after the next analysis run."
	}

	service.bot.SendMessage(ctx.EffectiveChat.Id, msg, &gotgbot.SendMessageOpts{ParseMode: "Markdown"})
	return nil
}

func (service *Impl) reportCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	log.Info().Str("cmd", "report").Str("username", ctx.EffectiveChat.Username).Int64(constants.LogChatID, ctx.EffectiveChat.Id).Msg("command received")
	service.sendDailyReport(ctx.EffectiveChat.Id)
	return nil
}

// OnNotify rebuilds the cached report whenever a new FIB ranking lands
// and pushes it to every registered chat.
func (service *Impl) OnNotify(e observer.Event) {
	log.Info().Msg("Received internal notification")
	if e.E == observer.RankingEvent {
		service.generateReport()
		service.sendDailyReport(-1)
	}
}

func (service *Impl) generateReport() {
	log.Info().Msg("Generate daily report")

	top, err := service.fibService.LatestTop(service.topLimit)
	if err != nil {
		log.Error().Err(err).Msg("Cannot load latest ranking for report")
		return
	}
	if len(top) == 0 {
		log.Warn().Msg("No ranking computed yet, report not generated")
		return
	}

	userIDs := make([]string, 0, len(top))
	for _, score := range top {
		userIDs = append(userIDs, score.UserID)
	}

	names := make(map[string]entities.Account)
	if accounts, errAccounts := service.accountsRepo.FetchByUserIDs(userIDs); errAccounts == nil {
		for _, account := range accounts {
			names[account.UserID] = account
		}
	}

	msg := "🚨 *Superspreader Watch* 📊\n\n"
	msg += fmt.Sprintf("Top %d accounts by FIB index (%s):\n\n", len(top), top[0].RunDay)
	for _, score := range top {
		label := score.UserID
		followers := ""
		if account, ok := names[score.UserID]; ok && account.ScreenName != "" {
			label = "@" + account.ScreenName
			followers = fmt.Sprintf(" — %s followers", humanize.Comma(int64(account.FollowersCount)))
		}
		msg += fmt.Sprintf("%d. `%s` — FIB *%d*%s\n", score.Rank, label, score.Score, followers)
	}
	msg += "\n📆 Ranking recomputed daily from the latest rehydrated data.\n"

	service.cache.Set(reportCacheKey, msg, cache.NoExpiration)
}

func (service *Impl) sendDailyReport(chatID int64) {
	log.Info().Msg("Send daily report")
	var users []entities.TelegramUser
	var err error
	if chatID != -1 {
		users = append(users, entities.TelegramUser{ChatID: chatID})
	} else {
		users, err = service.telegramRepo.FetchAll()
	}

	if x, found := service.cache.Get(reportCacheKey); found {
		message := x.(string)
		if len(message) > 0 && err == nil {
			for _, user := range users {
				log.Info().Str("cmd", "report").Int64(constants.LogChatID, user.ChatID).Msg("send report")
				service.bot.SendMessage(user.ChatID, message, &gotgbot.SendMessageOpts{ParseMode: "Markdown"})
			}
		}
		return
	}

	service.generateReport()
	if x, found := service.cache.Get(reportCacheKey); found {
		for _, user := range users {
			service.bot.SendMessage(user.ChatID, x.(string), &gotgbot.SendMessageOpts{ParseMode: "Markdown"})
		}
	} else {
		log.Warn().Str("cmd", "report").Msg("No report")
	}
}

func getGenericErrorMessage() string {
	msg := "😔 *Oops! Something Went Wrong*\n\n"
	msg += "It looks like I couldn't complete your request. Here's what you can try:\n"
	msg += "1️⃣ Double-check the command you typed.\n"
	msg += "2️⃣ Wait a moment and try again.\n\n"
	msg += "Type `/help` for the list of commands. 🤖"

	return msg
}

func getMessageFromMessageType(messageType MessageType) string {
	switch messageType {
	case MessageTypeHelp:
		msg := "🤖 *Superspreader Watch* – Help Guide 📢\n\n"
		msg += "This bot tracks accounts spreading low-credibility content 📈.\n\n"
		msg += "📝 *Commands available:*\n"
		msg += "✅ `/start` – Register for the daily rankings.\n"
		msg += "❌ `/stop` – Stop receiving daily rankings.\n"
		msg += "📊 `/report` – Get the latest FIB ranking instantly.\n"
		msg += "📐 `/baselines` – See the popular and influential baselines.\n"
		msg += "💡 `/help` – Show this help message.\n"

		return msg

	case MessageTypeStop:
		msg := "👋 *You've Unsubscribed* ❌\n\n"
		msg += "You will no longer receive the daily ranking.\n\n"
		msg += "If you change your mind, type `/start` anytime! 🚀\n"

		return msg

	default:
		msg := "👋 Hi! I'm *Superspreader Watch* 🤖\n\n"
		msg += "I track the accounts most responsible for spreading low-credibility content, ranked by their FIB index 📊.\n\n"
		msg += "🎉 You're now registered for the daily ranking.\n"
		msg += "❌ *Want to stop?* Type `/stop` at any time.\n\n"
		msg += "💬 *Need help?* Type `/help` for a list of commands."

		return msg
	}
}
