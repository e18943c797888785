package service

import (
	"context"
	"fmt"
	"strings"
)

// Slugify converts a title to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// uniqueSlug appends a numeric suffix until the slug is free. The probe
// count is bounded so a pathological title cannot loop forever.
func uniqueSlug(ctx context.Context, exists func(ctx context.Context, slug string) (bool, error), base string) (string, error) {
	if base == "" {
		base = "post"
	}
	slug := base
	for i := 2; i <= 50; i++ {
		taken, err := exists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
	return "", fmt.Errorf("could not find a free slug for %q", base)
}
