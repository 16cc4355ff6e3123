package constants

import "github.com/rs/zerolog"

const (
	LogFileName      = "fileName"
	LogUserID        = "userID"
	LogScreenName    = "screenName"
	LogTweetID       = "tweetID"
	LogChunkNumber   = "chunkNumber"
	LogChunkCount    = "chunkCount"
	LogRunDay        = "runDay"
	LogStrategy      = "strategy"
	LogScore         = "score"
	LogStatusCode    = "statusCode"
	LogChatID        = "chatID"
	LogLevelFallback = zerolog.InfoLevel
)
