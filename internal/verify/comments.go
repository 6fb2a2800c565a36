package verify

import (
	"strings"

	"labelaudit/internal/github"
)

// CompliantComment reports whether any comment satisfies all three
// predicate groups: it references the pull request (prRef with the
// number already substituted), contains every keyword, and contains
// every content flag. All matches are case-insensitive substring checks
// against the body, lowercased once per comment. The first comment
// passing all three groups decides the result; a comment failing any
// group is never selected regardless of the other two.
func CompliantComment(comments []github.Comment, prRef string, keywords, flags []string) bool {
	prRef = strings.ToLower(prRef)
	for _, c := range comments {
		body := strings.ToLower(c.Body)
		if !strings.Contains(body, prRef) {
			continue
		}
		if !containsAll(body, keywords) {
			continue
		}
		if containsAll(body, flags) {
			return true
		}
	}
	return false
}

func containsAll(lowerBody string, wants []string) bool {
	for _, w := range wants {
		if !strings.Contains(lowerBody, strings.ToLower(w)) {
			return false
		}
	}
	return true
}
