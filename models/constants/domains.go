package constants

// Seed subset of the Iffy+ low-credibility domain list. The full list ships
// with the study data; these are only used to tag scraped timeline tweets.
func GetLowCredibilityDomains() []string {
	var domains []string
	domains = append(domains, "infowars.com")
	domains = append(domains, "thegatewaypundit.com")
	domains = append(domains, "zerohedge.com")
	domains = append(domains, "breitbart.com")
	domains = append(domains, "wnd.com")
	domains = append(domains, "naturalnews.com")
	domains = append(domains, "bigleaguepolitics.com")

	return domains
}
