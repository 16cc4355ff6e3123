package application

import (
	"errors"
	"time"

	"superspreader-analytics/models/constants"
	"superspreader-analytics/models/entities"
	accountsRepo "superspreader-analytics/repositories/accounts"
	baselinesRepo "superspreader-analytics/repositories/baselines"
	botscoresRepo "superspreader-analytics/repositories/botscores"
	dismantlingRepo "superspreader-analytics/repositories/dismantling"
	fibRepo "superspreader-analytics/repositories/fib"
	telegramRepo "superspreader-analytics/repositories/telegram"
	toxicityRepo "superspreader-analytics/repositories/toxicity"
	tweetsRepo "superspreader-analytics/repositories/tweets"
	accountsService "superspreader-analytics/services/accounts"
	baselinesService "superspreader-analytics/services/baselines"
	botometerService "superspreader-analytics/services/botometer"
	dismantlingService "superspreader-analytics/services/dismantling"
	fibService "superspreader-analytics/services/fib"
	"superspreader-analytics/services/health"
	rehydrationService "superspreader-analytics/services/rehydration"
	telegramService "superspreader-analytics/services/telegram"
	timelinesService "superspreader-analytics/services/timelines"
	toxicityService "superspreader-analytics/services/toxicity"
	databases "superspreader-analytics/utils/databases"
	"superspreader-analytics/utils/insights"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func New() (*Impl, error) {
	db := databases.New()
	if errDB := db.Run(); errDB != nil {
		return nil, errDB
	}

	errMigration := db.GetDB().AutoMigrate(
		&entities.Tweet{}, &entities.TweetError{},
		&entities.Account{}, &entities.AccountError{},
		&entities.FibScore{}, &entities.BaselineScore{},
		&entities.ToxicityScore{}, &entities.BotScore{},
		&entities.DismantlingStep{}, &entities.TelegramUser{})
	if errMigration != nil {
		return nil, errMigration
	}

	probes := insights.NewProbes(db.IsConnected)
	location, err := time.LoadLocation(constants.Timezone)
	if err != nil {
		return nil, err
	}

	scheduler, errScheduler := gocron.NewScheduler(gocron.WithLocation(location))
	if errScheduler != nil {
		return nil, errScheduler
	}

	// Repositories
	tweetsRepo := tweetsRepo.New(db)
	accountsRepo := accountsRepo.New(db)
	fibRepo := fibRepo.New(db)
	baselinesRepo := baselinesRepo.New(db)
	toxicityRepo := toxicityRepo.New(db)
	botscoresRepo := botscoresRepo.New(db)
	dismantlingRepo := dismantlingRepo.New(db)
	telegramRepo := telegramRepo.New(db)

	healthService, errHealth := health.New(scheduler)
	if errHealth != nil {
		return nil, errHealth
	}
	rehydrationSvc, errRehydration := rehydrationService.New(scheduler, tweetsRepo)
	if errRehydration != nil {
		return nil, errRehydration
	}
	accountsSvc, errAccounts := accountsService.New(scheduler, accountsRepo, tweetsRepo)
	if errAccounts != nil {
		return nil, errAccounts
	}
	fibSvc, errFib := fibService.New(scheduler, tweetsRepo, fibRepo)
	if errFib != nil {
		return nil, errFib
	}
	baselinesSvc, errBaselines := baselinesService.New(scheduler, tweetsRepo, accountsRepo, baselinesRepo)
	if errBaselines != nil {
		return nil, errBaselines
	}
	dismantlingSvc, errDismantling := dismantlingService.New(scheduler, tweetsRepo, fibRepo, baselinesRepo, botscoresRepo, dismantlingRepo)
	if errDismantling != nil {
		return nil, errDismantling
	}
	toxicitySvc, errToxicity := toxicityService.New(scheduler, tweetsRepo, toxicityRepo)
	if errToxicity != nil {
		return nil, errToxicity
	}
	botometerSvc, errBotometer := botometerService.New(scheduler, tweetsRepo, botscoresRepo)
	if errBotometer != nil {
		return nil, errBotometer
	}
	timelinesSvc, errTimelines := timelinesService.New(scheduler, tweetsRepo, accountsRepo, fibRepo)
	if errTimelines != nil {
		return nil, errTimelines
	}

	app := &Impl{
		scheduler:          scheduler,
		probes:             probes,
		healthService:      healthService,
		rehydrationService: rehydrationSvc,
		accountsService:    accountsSvc,
		fibService:         fibSvc,
		baselinesService:   baselinesSvc,
		dismantlingService: dismantlingSvc,
		toxicityService:    toxicitySvc,
		botometerService:   botometerSvc,
		timelinesService:   timelinesSvc,
		db:                 db,
	}

	telegramSvc, errTg := telegramService.New(scheduler, viper.GetString(constants.TelegramBotToken),
		telegramRepo, accountsRepo, fibSvc, baselinesSvc)
	switch {
	case errors.Is(errTg, telegramService.ErrTokenIsMissing):
		log.Warn().Msg("No telegram token configured, reporting is disabled")
	case errTg != nil:
		return nil, errTg
	default:
		fibSvc.RegisterObserver(telegramSvc)
		app.telegramService = telegramSvc
	}

	return app, nil
}

func (app *Impl) Run() {
	app.scheduler.Start()
	if app.telegramService != nil {
		go app.telegramService.ListenAndDispatch()
	}
	for _, job := range app.scheduler.Jobs() {
		scheduledTime, err := job.NextRun()
		if err == nil {
			log.Info().Msgf("%v scheduled at %v", job.Name(), scheduledTime)
		}
	}

	// The probe server lives in its own goroutine so Run returns and
	// main can wait for shutdown signals.
	go app.probes.ListenAndServe()
}

func (app *Impl) Shutdown() {
	if err := app.scheduler.Shutdown(); err != nil {
		log.Error().Err(err).Msg("Cannot shutdown scheduler, continuing...")
	}
	app.db.Shutdown()
	log.Info().Msgf("Application is no longer running")
}
