package helpers

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// GravatarURL builds the default avatar URL for an email address.
// Size 200, PG rating, identicon fallback for addresses without a gravatar.
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=200&r=pg&d=identicon", sum)
}
