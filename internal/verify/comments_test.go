package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"labelaudit/internal/github"
)

var (
	commentKeywords = []string{"label", "documentation", "completed"}
	commentFlags    = []string{"labels", "verified", "applied"}
)

const compliantBody = "Label documentation completed via PR #12: all labels verified and applied."

func TestCompliantComment(t *testing.T) {
	comments := []github.Comment{{Body: compliantBody}}
	assert.True(t, CompliantComment(comments, "PR #12", commentKeywords, commentFlags))
}

func TestCompliantComment_CaseInsensitive(t *testing.T) {
	comments := []github.Comment{{Body: "LABEL DOCUMENTATION COMPLETED, pr #12, LABELS VERIFIED AND APPLIED"}}
	assert.True(t, CompliantComment(comments, "PR #12", commentKeywords, commentFlags))
}

func TestCompliantComment_EachGroupRequired(t *testing.T) {
	cases := map[string]string{
		"missing pr reference": "Label documentation completed: labels verified and applied.",
		"missing keyword":      "Label documentation via PR #12: labels verified and applied.",
		"missing flag":         "Label documentation completed via PR #12: labels verified.",
		"wrong pr number":      "Label documentation completed via PR #13: labels verified and applied.",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			assert.False(t, CompliantComment([]github.Comment{{Body: body}}, "PR #12", commentKeywords, commentFlags))
		})
	}
}

func TestCompliantComment_NonCompliantBeforeCompliant(t *testing.T) {
	comments := []github.Comment{
		{Body: "PR #12 looks good"}, // fails keyword and flag groups
		{Body: compliantBody},
	}
	assert.True(t, CompliantComment(comments, "PR #12", commentKeywords, commentFlags))
}

func TestCompliantComment_NoComments(t *testing.T) {
	assert.False(t, CompliantComment(nil, "PR #12", commentKeywords, commentFlags))
}
