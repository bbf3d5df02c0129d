package validators

import (
	"regexp"
	"strings"
)

var userNamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]{3,20}$`)

// forbiddenWords blocks impersonation handles, injection payloads and
// slurs from ever becoming usernames.
var forbiddenWords = []string{
	"admin", "root", "system",
	"select", "drop", "insert", "delete",
	"<script>", "alert", "kill", "suicide",
	"murder", "nazi", "klan",
	"sex", "porn", "xxx", "@example.com",
}

// IsUserNameAllowed reports whether a username matches the allowed
// pattern and avoids the blocklist. Availability is checked separately
// against the store.
func IsUserNameAllowed(userName string) bool {
	if !userNamePattern.MatchString(userName) {
		return false
	}
	lower := strings.ToLower(userName)
	for _, word := range forbiddenWords {
		if strings.Contains(lower, word) {
			return false
		}
	}
	return true
}
