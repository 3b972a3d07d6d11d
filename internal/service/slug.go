package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxSlugLen = 60

// slugify lowercases s and joins its ASCII letters and digits with single dashes.
func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}

	out := strings.TrimRight(b.String(), "-")
	if len(out) > maxSlugLen {
		out = strings.TrimRight(out[:maxSlugLen], "-")
	}
	return out
}

// datedSlug builds "YYYY-MM-DD-<slug>". Titles without any ASCII slug
// characters get a short random suffix instead.
func datedSlug(title string, now time.Time) string {
	slug := slugify(title)
	if slug == "" {
		slug = uuid.NewString()[:8]
	}
	return now.UTC().Format("2006-01-02") + "-" + slug
}
