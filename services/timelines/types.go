package timelines

import (
	accountsRepo "superspreader-analytics/repositories/accounts"
	fibRepo "superspreader-analytics/repositories/fib"
	tweetsRepo "superspreader-analytics/repositories/tweets"

	twitterscraper "github.com/n0madic/twitter-scraper"
)

type Service interface {
	FetchOnce()
}

type Impl struct {
	tweetCount int
	topLimit   int
	scraper    *twitterscraper.Scraper
	tweets     tweetsRepo.Repository
	accounts   accountsRepo.Repository
	fib        fibRepo.Repository
	domains    []string
}
