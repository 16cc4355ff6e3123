// Package spread aggregates rehydrated tweets into the per-user retweet
// observations every ranking is computed from.
package spread

import "superspreader-analytics/models/entities"

type postKey struct {
	userID  string
	tweetID string
}

// UserRetweetCounts builds, for each user, the list of retweet counts
// earned by their original posts.
//
// The platform attributes every retweet to the original poster, so a
// retweet row is an observation of the original status. The same status
// can be observed many times with growing counts; only the largest
// observation is kept. Original posts that never earned a retweet carry
// no influence signal and are dropped.
func UserRetweetCounts(tweets []entities.Tweet) map[string][]int {
	maxCounts := make(map[postKey]int)

	for _, tweet := range tweets {
		var key postKey
		var count int

		switch {
		case tweet.IsRetweet:
			if tweet.RetweetedUserID == "" {
				continue
			}
			key = postKey{userID: tweet.RetweetedUserID, tweetID: tweet.RetweetedStatusID}
			count = tweet.RetweetedRetweetCount
		case tweet.RetweetCount > 0:
			key = postKey{userID: tweet.UserID, tweetID: tweet.ID}
			count = tweet.RetweetCount
		default:
			continue
		}

		if existing, ok := maxCounts[key]; !ok || count > existing {
			maxCounts[key] = count
		}
	}

	counts := make(map[string][]int)
	for key, count := range maxCounts {
		counts[key.userID] = append(counts[key.userID], count)
	}

	return counts
}

// TotalRetweets sums every deduplicated retweet count in the network.
func TotalRetweets(counts map[string][]int) int64 {
	var total int64
	for _, list := range counts {
		for _, count := range list {
			total += int64(count)
		}
	}
	return total
}

// SumFor sums the retweet counts earned by the given users. Users with
// no observations contribute zero.
func SumFor(userIDs []string, counts map[string][]int) int64 {
	var total int64
	for _, userID := range userIDs {
		for _, count := range counts[userID] {
			total += int64(count)
		}
	}
	return total
}
