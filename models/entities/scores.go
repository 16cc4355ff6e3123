package entities

// FibScore is one row of a ranking snapshot. A snapshot is identified by
// its run day so older rankings stay queryable.
type FibScore struct {
	RunDay        string `gorm:"primaryKey"`
	UserID        string `gorm:"primaryKey"`
	Score         int
	Rank          int
	Superspreader bool
}

// BaselineScore ranks users by an alternative influence proxy.
// Kind is either "popular" (followers) or "influential" (earned retweets).
type BaselineScore struct {
	Kind   string `gorm:"primaryKey"`
	UserID string `gorm:"primaryKey"`
	Value  float64
	Rank   int
}

type ToxicityScore struct {
	TweetID       string `gorm:"primaryKey"`
	Score         float64
	LanguageError bool
}

type BotScore struct {
	TweetID        string `gorm:"primaryKey"`
	UserID         string
	Score          float64
	ProbeTimestamp int64
}

// DismantlingStep stores one point of a removal curve: the proportion of
// low-credibility retweets remaining after removing the top Removed users
// of a given ranking strategy.
type DismantlingStep struct {
	Strategy             string `gorm:"primaryKey"`
	Removed              int    `gorm:"primaryKey"`
	UserID               string
	ProportionRemaining  float64
	ProportionRemovedOwn float64
}
