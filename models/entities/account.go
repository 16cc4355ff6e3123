package entities

type Account struct {
	UserID         string `gorm:"primaryKey"`
	ScreenName     string
	Name           string
	FollowersCount int
	FollowingCount int
	TweetCount     int
	Verified       bool
	Protected      bool
	CreatedAt      string
	CollectedAt    string
}

// AccountError records a user ID for which the lookup endpoint returned
// an error object instead of a profile.
type AccountError struct {
	UserID string `gorm:"primaryKey"`
	Title  string
	Detail string
}
