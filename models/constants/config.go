package constants

import (
	"github.com/rs/zerolog"
)

const (
	ExternalName = "Superspreader Analytics"
	Version      = "1.0.0"

	// All study dates and schedules are interpreted in UTC.
	Timezone = "UTC"

	ConfigFileName = ".env"

	// SQLITE_URL URL.
	SqliteURL = "SQLITE_URL"

	// Zerolog values from [trace, debug, info, warn, error, fatal, panic].
	LogLevel = "LOG_LEVEL"

	// Probe port.
	ProbePort = "PROBE_PORT"

	// Boolean; when true, rehydration also runs once at startup instead
	// of waiting for its first cron slot. The downstream jobs keep their
	// schedule since they need rehydrated data first.
	Production = "PRODUCTION"

	// Directory containing newline-delimited tweet ID files to rehydrate.
	TweetIDsDir = "TWEET_IDS_DIR"

	//nolint:gosec // False positive.
	// App-only bearer token for the Twitter V2 API.
	TwitterBearerToken = "TWITTER_BEARER_TOKEN"

	// Twitter V2 API base URL. Overridable for tests.
	TwitterBaseURL = "TWITTER_BASE_URL"

	//nolint:gosec // False positive.
	// Comma-separated ring of Perspective API keys.
	PerspectiveAPIKeys = "PERSPECTIVE_API_KEYS"

	// Perspective API base URL.
	PerspectiveBaseURL = "PERSPECTIVE_BASE_URL"

	//nolint:gosec // False positive.
	// RapidAPI key for the BotometerLite endpoint.
	BotometerAPIKey = "BOTOMETER_API_KEY"

	// BotometerLite base URL.
	BotometerBaseURL = "BOTOMETER_BASE_URL"

	// TELEGRAM BOT
	TelegramBotToken = "TELEGRAM_BOT_TOKEN"

	// Percentile above which a user counts as a superspreader.
	FibPercentileThreshold = "FIB_PERCENTILE_THRESHOLD"

	// Number of users shown in reports and pulled by the timelines job.
	TopUsersLimit = "TOP_USERS_LIMIT"

	// Number of tweets retrieved per timeline scrape.
	TweetCount = "TWEET_COUNT"

	// Study windows, YYYY-MM-DD. Baselines and FIB scores are computed on
	// [start, split); dismantling is evaluated on [split, end].
	StudyStartDate = "STUDY_START_DATE"
	StudySplitDate = "STUDY_SPLIT_DATE"
	StudyEndDate   = "STUDY_END_DATE"

	// Cron tabs.
	HealthCronTab      = "HEALTH_CRON_TAB"
	RehydrationCronTab = "REHYDRATION_CRON_TAB"
	AccountsCronTab    = "ACCOUNTS_CRON_TAB"
	FibCronTab         = "FIB_CRON_TAB"
	AnalysisCronTab    = "ANALYSIS_CRON_TAB"
	ToxicityCronTab    = "TOXICITY_CRON_TAB"
	BotometerCronTab   = "BOTOMETER_CRON_TAB"
	TimelinesCronTab   = "TIMELINES_CRON_TAB"
	ReportCronTab      = "REPORT_CRON_TAB"

	defaultSqliteURL              = "superspreader-analytics.db"
	defaultProbePort              = 9090
	defaultProduction             = false
	defaultTweetIDsDir            = "data/tweet_ids"
	defaultTwitterBearerToken     = ""
	defaultTwitterBaseURL         = "https://api.twitter.com"
	defaultPerspectiveAPIKeys     = ""
	defaultPerspectiveBaseURL     = "https://commentanalyzer.googleapis.com"
	defaultBotometerAPIKey        = ""
	defaultBotometerBaseURL       = "https://botometer-pro.p.rapidapi.com"
	defaultTelegramBotToken       = ""
	defaultFibPercentileThreshold = 99.0
	defaultTopUsersLimit          = 10
	defaultTweetCount             = 20
	defaultStudyStartDate         = "2020-01-01"
	defaultStudySplitDate         = "2020-03-01"
	defaultStudyEndDate           = "2020-11-01"
	defaultHealthCronTab          = "* * * * *"
	defaultRehydrationCronTab     = "*/30 * * * *"
	defaultAccountsCronTab        = "0 1 * * *"
	defaultFibCronTab             = "0 2 * * *"
	defaultAnalysisCronTab        = "0 3 * * *"
	defaultToxicityCronTab        = "0 */4 * * *"
	defaultBotometerCronTab       = "30 */4 * * *"
	defaultTimelinesCronTab       = "*/15 * * * *"
	defaultReportCronTab          = "0 9 * * *"
	defaultLogLevel               = zerolog.InfoLevel
)

func GetDefaultConfigValues() map[string]any {
	return map[string]any{
		SqliteURL:              defaultSqliteURL,
		LogLevel:               defaultLogLevel.String(),
		ProbePort:              defaultProbePort,
		Production:             defaultProduction,
		TweetIDsDir:            defaultTweetIDsDir,
		TwitterBearerToken:     defaultTwitterBearerToken,
		TwitterBaseURL:         defaultTwitterBaseURL,
		PerspectiveAPIKeys:     defaultPerspectiveAPIKeys,
		PerspectiveBaseURL:     defaultPerspectiveBaseURL,
		BotometerAPIKey:        defaultBotometerAPIKey,
		BotometerBaseURL:       defaultBotometerBaseURL,
		TelegramBotToken:       defaultTelegramBotToken,
		FibPercentileThreshold: defaultFibPercentileThreshold,
		TopUsersLimit:          defaultTopUsersLimit,
		TweetCount:             defaultTweetCount,
		StudyStartDate:         defaultStudyStartDate,
		StudySplitDate:         defaultStudySplitDate,
		StudyEndDate:           defaultStudyEndDate,
		HealthCronTab:          defaultHealthCronTab,
		RehydrationCronTab:     defaultRehydrationCronTab,
		AccountsCronTab:        defaultAccountsCronTab,
		FibCronTab:             defaultFibCronTab,
		AnalysisCronTab:        defaultAnalysisCronTab,
		ToxicityCronTab:        defaultToxicityCronTab,
		BotometerCronTab:       defaultBotometerCronTab,
		TimelinesCronTab:       defaultTimelinesCronTab,
		ReportCronTab:          defaultReportCronTab,
	}
}
