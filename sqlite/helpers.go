package sqlite

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

// parseRFC3339 parses an RFC3339 timestamp, naming the field on failure.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// appendPagination appends LIMIT and OFFSET clauses when values are > 0.
// SQLite requires a LIMIT before OFFSET, so a bare offset uses LIMIT -1.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	} else if offset > 0 {
		query.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}

// likePattern builds a LIKE pattern matching term anywhere, escaping the
// wildcard characters with a backslash.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}

// HashContent returns the hex-encoded xxHash of content.
func HashContent(content string) string {
	var b [8]byte
	h := xxhash.Sum64String(content)
	for i := range b {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b[:])
}
