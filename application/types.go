package application

import (
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
)

type Application interface {
	Run()
	Shutdown()
}

type Impl struct {
	scheduler          gocron.Scheduler
	healthService      health.Service
	rehydrationService rehydrationService.Service
	accountsService    accountsService.Service
	fibService         fibService.Service
	baselinesService   baselinesService.Service
	dismantlingService dismantlingService.Service
	toxicityService    toxicityService.Service
	botometerService   botometerService.Service
	timelinesService   timelinesService.Service
	telegramService    telegramService.Service
	db                 databases.SqlConnection
	probes             insights.Probes
}
