package entities

// Tweet is a rehydrated tweet row. For retweets, the Retweeted* fields
// carry the original status; influence metrics are always attributed to
// the original poster.
type Tweet struct {
	ID                    string `gorm:"primaryKey"`
	UserID                string
	ScreenName            string
	Text                  string
	Timestamp             int64
	RetweetCount          int
	FollowersCount        int
	IsRetweet             bool
	RetweetedStatusID     string
	RetweetedUserID       string
	RetweetedRetweetCount int
	LowCredibility        bool
}

// TweetError records a tweet ID the platform refused to rehydrate
// (deleted, protected, suspended author).
type TweetError struct {
	TweetID string `gorm:"primaryKey"`
	Title   string
	Detail  string
}
