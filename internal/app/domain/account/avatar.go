package account

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// DeriveAvatar builds the deterministic gravatar URL for a contact address:
// 200px, PG-rated, "mystery man" fallback.
func DeriveAvatar(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	digest := md5.Sum([]byte(normalized))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=200&r=pg&d=mm", digest)
}
