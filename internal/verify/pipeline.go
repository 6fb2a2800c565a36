// Package verify runs the fixed fail-fast sequence of checks that audit a
// label standardization workflow on a GitHub repository.
package verify

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"labelaudit/internal/config"
	"labelaudit/internal/github"
	"labelaudit/internal/markdown"
	"labelaudit/internal/rules"
)

// Pipeline holds the collaborators and the state threaded between steps.
// Each step is a guard clause: the first error halts the run, later steps
// produce no side effects.
type Pipeline struct {
	cfg   config.Config
	rules *rules.Ruleset
	gh    *github.Client
	log   *zap.SugaredLogger
	out   *Printer

	// accumulated by earlier steps, consumed by later ones
	docLabels []string
	issue     *github.Issue
	pr        *github.PullRequest
}

// New assembles a pipeline. Nothing is fetched until Run.
func New(cfg config.Config, rs *rules.Ruleset, gh *github.Client, log *zap.SugaredLogger, out *Printer) *Pipeline {
	return &Pipeline{cfg: cfg, rules: rs, gh: gh, log: log, out: out}
}

type step struct {
	name string
	run  func(ctx context.Context) error
}

// Run executes the nine checks in order and reports the overall result.
// Progress goes to stdout via the printer; the failing step's reason is
// logged to stderr.
func (p *Pipeline) Run(ctx context.Context) bool {
	steps := []step{
		{"verify environment configuration", p.checkEnvironment},
		{"verify request headers", p.checkHeaders},
		{"verify feature branch", p.checkBranch},
		{"verify label documentation", p.checkDocumentation},
		{"verify tracking issue", p.checkIssue},
		{"verify tracking pull request", p.checkPullRequest},
		{"verify issue label set", p.checkIssueLabels},
		{"verify completion comment", p.checkComment},
		{"verify documentation consistency", p.checkConsistency},
	}

	p.out.Banner(p.gh.Repo())
	for i, s := range steps {
		p.out.Stepf(i+1, len(steps), s.name)
		if err := s.run(ctx); err != nil {
			p.log.Errorf("%s: %v", s.name, err)
			return false
		}
	}

	p.out.Summary(p.gh.Repo(), p.rules.FeatureBranch.Name,
		p.issue.Number, p.pr.Number, len(p.rules.ExpectedLabels))
	return true
}

// Step 1: required environment variables are present. Fails before any
// API call is made.
func (p *Pipeline) checkEnvironment(context.Context) error {
	if err := p.cfg.Validate(); err != nil {
		return err
	}
	p.out.OK("environment variables configured")
	return nil
}

// Step 2: the header pair the client transport emits matches the GitHub
// API v3 contract. Guards against a misconfigured token source.
func (p *Pipeline) checkHeaders(context.Context) error {
	got := p.gh.Headers()
	if got["Authorization"] != "token "+p.cfg.Token {
		return fmt.Errorf("authorization header %q does not follow the v3 token scheme", got["Authorization"])
	}
	if got["Accept"] != github.AcceptV3 {
		return fmt.Errorf("accept header %q is not %s", got["Accept"], github.AcceptV3)
	}
	p.out.OK("request headers follow the GitHub API v3 contract")
	return nil
}

// Step 3: the feature branch exists.
func (p *Pipeline) checkBranch(ctx context.Context) error {
	name := p.rules.FeatureBranch.Name
	if !p.gh.BranchExists(ctx, name) {
		return fmt.Errorf("feature branch %s not found", name)
	}
	p.out.OK("feature branch %s exists", name)
	return nil
}

// Step 4: the label documentation exists on the feature branch and its
// table carries at least the configured number of labels. The parsed
// list is retained for the consistency check.
func (p *Pipeline) checkDocumentation(ctx context.Context) error {
	doc := p.rules.FeatureBranch.DocFile
	content, ok := p.gh.FileContent(ctx, doc, p.rules.FeatureBranch.Name)
	if !ok {
		return fmt.Errorf("label documentation %s not found", doc)
	}
	p.docLabels = markdown.ParseLabelTable(content, p.rules.DocParsing.TableHeader)
	if len(p.docLabels) < p.rules.DocParsing.MinLabelCount {
		return fmt.Errorf("documented labels: got %d, need at least %d",
			len(p.docLabels), p.rules.DocParsing.MinLabelCount)
	}
	p.out.OK("label documentation lists %d labels", len(p.docLabels))
	return nil
}

// Step 5: a tracking issue matching the title keywords exists and carries
// the required sections, body keywords and initial labels.
func (p *Pipeline) checkIssue(ctx context.Context) error {
	req := p.rules.Issue
	issue := FindIssue(ctx, p.gh, req.TitleKeywords)
	if issue == nil {
		return fmt.Errorf("no issue matches title keywords %v", req.TitleKeywords)
	}
	if missing := missingSections(issue.Body, req.RequiredSections); len(missing) > 0 {
		return fmt.Errorf("issue #%d is missing required sections: %s", issue.Number, strings.Join(missing, ", "))
	}
	if missing := missingKeywords(issue.Body, req.BodyKeywords); len(missing) > 0 {
		return fmt.Errorf("issue #%d is missing required keywords: %s", issue.Number, strings.Join(missing, ", "))
	}
	if missing := missingLabels(issue.LabelNames(), req.InitialLabels); len(missing) > 0 {
		return fmt.Errorf("issue #%d is missing initial labels: %s", issue.Number, strings.Join(missing, ", "))
	}
	p.issue = issue
	p.out.OK("issue #%d compliant (title: %s)", issue.Number, issue.Title)
	return nil
}

// Step 6: a tracking PR matching the title keywords exists, references
// the tracking issue, carries the required sections/keywords and at
// least the minimum number of labels.
func (p *Pipeline) checkPullRequest(ctx context.Context) error {
	req := p.rules.PR
	pr := FindPull(ctx, p.gh, req.TitleKeywords)
	if pr == nil {
		return fmt.Errorf("no pull request matches title keywords %v", req.TitleKeywords)
	}
	ref := p.rules.IssueRef(p.issue.Number)
	if !strings.Contains(strings.ToLower(pr.Body), strings.ToLower(ref)) {
		return fmt.Errorf("PR #%d does not reference the issue (expected %q in the body)", pr.Number, ref)
	}
	if missing := missingSections(pr.Body, req.RequiredSections); len(missing) > 0 {
		return fmt.Errorf("PR #%d is missing required sections: %s", pr.Number, strings.Join(missing, ", "))
	}
	if missing := missingKeywords(pr.Body, req.BodyKeywords); len(missing) > 0 {
		return fmt.Errorf("PR #%d is missing required keywords: %s", pr.Number, strings.Join(missing, ", "))
	}
	if len(pr.Labels) < req.MinLabelCount {
		return fmt.Errorf("PR #%d has %d labels, need at least %d", pr.Number, len(pr.Labels), req.MinLabelCount)
	}
	p.pr = pr
	p.out.OK("PR #%d compliant (title: %s)", pr.Number, pr.Title)
	return nil
}

// Step 7: every expected label is present on the tracking issue.
func (p *Pipeline) checkIssueLabels(context.Context) error {
	missing := missingLabels(p.issue.LabelNames(), p.rules.ExpectedLabels)
	if len(missing) > 0 {
		return fmt.Errorf("issue #%d is missing %d expected labels: %s",
			p.issue.Number, len(missing), preview(missing, 5))
	}
	p.out.OK("issue #%d carries all %d expected labels", p.issue.Number, len(p.rules.ExpectedLabels))
	return nil
}

// Step 8: at least one issue comment references the tracking PR and
// carries all required keywords and content flags.
func (p *Pipeline) checkComment(ctx context.Context) error {
	comments, _ := p.gh.ListComments(ctx, p.issue.Number)
	req := p.rules.Comment
	if !CompliantComment(comments, p.rules.PRRef(p.pr.Number), req.Keywords, req.ContentFlags) {
		return fmt.Errorf("issue #%d has no compliant comment referencing PR #%d", p.issue.Number, p.pr.Number)
	}
	p.out.OK("issue #%d has a compliant comment referencing PR #%d", p.issue.Number, p.pr.Number)
	return nil
}

// Step 9: the documentation covers every expected label (extra documented
// labels only warn), and the PR carries at least half of the core
// expected labels.
func (p *Pipeline) checkConsistency(context.Context) error {
	if missing := missingLabels(p.docLabels, p.rules.ExpectedLabels); len(missing) > 0 {
		return fmt.Errorf("documentation is missing %d expected labels: %s", len(missing), preview(missing, 5))
	}
	if extra := missingLabels(p.rules.ExpectedLabels, p.docLabels); len(extra) > 0 {
		p.out.Warnf("documentation lists labels outside the expected set: %s", preview(extra, 3))
	}
	p.out.OK("all %d expected labels are documented", len(p.rules.ExpectedLabels))

	core := p.rules.CoreLabels()
	missingCore := missingLabels(p.pr.LabelNames(), core)
	if len(missingCore) > len(core)/2 {
		return fmt.Errorf("PR #%d is missing too many core labels (%d of %d): %s",
			p.pr.Number, len(missingCore), len(core), preview(missingCore, 3))
	}
	p.out.OK("PR #%d core labels within tolerance (%d of %d missing)", p.pr.Number, len(missingCore), len(core))
	return nil
}

// missingSections returns the sections not found verbatim in body.
// Section headings are case-sensitive by design.
func missingSections(body string, sections []string) []string {
	var missing []string
	for _, sec := range sections {
		if !strings.Contains(body, sec) {
			missing = append(missing, sec)
		}
	}
	return missing
}

// missingKeywords returns the keywords not found in body, case-insensitively.
func missingKeywords(body string, keywords []string) []string {
	lower := strings.ToLower(body)
	var missing []string
	for _, kw := range keywords {
		if !strings.Contains(lower, strings.ToLower(kw)) {
			missing = append(missing, kw)
		}
	}
	return missing
}

// missingLabels returns the wanted labels absent from have. Membership is
// exact; listing order of want is preserved for deterministic reports.
func missingLabels(have, want []string) []string {
	set := make(map[string]struct{}, len(have))
	for _, h := range have {
		set[h] = struct{}{}
	}
	var missing []string
	for _, w := range want {
		if _, ok := set[w]; !ok {
			missing = append(missing, w)
		}
	}
	return missing
}

// preview joins at most n items, appending an ellipsis when truncated.
func preview(items []string, n int) string {
	if len(items) <= n {
		return strings.Join(items, ", ")
	}
	return strings.Join(items[:n], ", ") + ", …"
}
