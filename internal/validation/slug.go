package validation

import (
	"fmt"
	"regexp"
)

var articleSlugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

const maxSlugLength = 120

// Slugs that collide with fixed routes under /articles.
var reservedArticleSlugs = map[string]struct{}{
	"admin": {},
}

// ValidateArticleSlug validates article slug format and reserved names.
func ValidateArticleSlug(slug string) error {
	if len(slug) > maxSlugLength {
		return fmt.Errorf("slug must not exceed %d characters", maxSlugLength)
	}

	if !articleSlugRegex.MatchString(slug) {
		return fmt.Errorf("slug must contain only lowercase letters, numbers, and single hyphens between them")
	}

	if _, exists := reservedArticleSlugs[slug]; exists {
		return fmt.Errorf("slug is reserved")
	}

	return nil
}
