package repositories

import "regexp"

// regexQuote escapes a raw search query so it behaves as a literal
// substring match inside a $regex filter.
func regexQuote(query string) string {
	return regexp.QuoteMeta(query)
}
