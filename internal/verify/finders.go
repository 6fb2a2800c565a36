package verify

import (
	"context"
	"strings"

	"labelaudit/internal/github"
)

// states are scanned in order; open items take precedence over closed
// ones when both contain a match.
var states = []string{"open", "closed"}

// FindIssue returns the first issue (listing order, open before closed)
// whose title contains every keyword case-insensitively. Items surfaced
// by the shared listing endpoint that are really pull requests are
// skipped. A failed listing for one state does not abort the search.
func FindIssue(ctx context.Context, gh *github.Client, keywords []string) *github.Issue {
	for _, state := range states {
		issues, ok := gh.ListIssues(ctx, state)
		if !ok {
			continue
		}
		for i := range issues {
			if issues[i].PullRequest != nil {
				continue
			}
			if titleMatches(issues[i].Title, keywords) {
				return &issues[i]
			}
		}
	}
	return nil
}

// FindPull returns the first pull request (listing order, open before
// closed) whose title contains every keyword case-insensitively.
func FindPull(ctx context.Context, gh *github.Client, keywords []string) *github.PullRequest {
	for _, state := range states {
		pulls, ok := gh.ListPulls(ctx, state)
		if !ok {
			continue
		}
		for i := range pulls {
			if titleMatches(pulls[i].Title, keywords) {
				return &pulls[i]
			}
		}
	}
	return nil
}

func titleMatches(title string, keywords []string) bool {
	title = strings.ToLower(title)
	for _, kw := range keywords {
		if !strings.Contains(title, strings.ToLower(kw)) {
			return false
		}
	}
	return true
}
