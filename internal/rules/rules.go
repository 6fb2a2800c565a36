// Package rules holds the verification ruleset: every expected value the
// audit checks against. The built-in defaults describe the label color
// standardization workflow; an optional YAML file can override them.
package rules

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Branch describes the feature branch and the document it must carry.
type Branch struct {
	Name    string `yaml:"name"`
	DocFile string `yaml:"doc_file"`
}

// DocParsing configures the label-table extraction.
type DocParsing struct {
	TableHeader   string `yaml:"table_header"`
	MinLabelCount int    `yaml:"min_label_count"`
}

// IssueRequirements is what the tracking issue must satisfy.
type IssueRequirements struct {
	TitleKeywords    []string `yaml:"title_keywords"`
	BodyKeywords     []string `yaml:"body_keywords"`
	RequiredSections []string `yaml:"required_sections"`
	InitialLabels    []string `yaml:"initial_labels"`
}

// PRRequirements is what the tracking pull request must satisfy.
type PRRequirements struct {
	TitleKeywords         []string `yaml:"title_keywords"`
	BodyKeywords          []string `yaml:"body_keywords"`
	RequiredSections      []string `yaml:"required_sections"`
	MinLabelCount         int      `yaml:"min_labels_count"`
	IssueReferencePattern string   `yaml:"issue_reference_pattern"`
}

// CommentRequirements is what a compliant completion comment must contain.
type CommentRequirements struct {
	Keywords           []string `yaml:"keywords"`
	PRReferencePattern string   `yaml:"pr_reference_flag"`
	ContentFlags       []string `yaml:"content_flags"`
}

// Ruleset is the full read-only verification configuration. It is built
// once before the pipeline runs and never mutated.
type Ruleset struct {
	TargetRepo     string              `yaml:"target_repo"`
	FeatureBranch  Branch              `yaml:"feature_branch"`
	DocParsing     DocParsing          `yaml:"doc_parsing"`
	Issue          IssueRequirements   `yaml:"issue_requirements"`
	PR             PRRequirements      `yaml:"pr_requirements"`
	ExpectedLabels []string            `yaml:"expected_labels"`
	Comment        CommentRequirements `yaml:"comment_requirements"`
}

// Default returns the built-in ruleset for the label color
// standardization workflow.
func Default() *Ruleset {
	return &Ruleset{
		TargetRepo: "team-project-management",
		FeatureBranch: Branch{
			Name:    "feat/label-color-standard",
			DocFile: "docs/label-color-standardization.md",
		},
		DocParsing: DocParsing{
			TableHeader:   "| Label Name | Color Hex | Category |",
			MinLabelCount: 22,
		},
		Issue: IssueRequirements{
			TitleKeywords:    []string{"Label", "standard", "documentation"},
			BodyKeywords:     []string{"label", "color", "standard"},
			RequiredSections: []string{"## Background", "## Required Label List"},
			InitialLabels:    []string{"documentation", "enhancement"},
		},
		PR: PRRequirements{
			TitleKeywords:         []string{"Label", "standard", "documentation"},
			BodyKeywords:          []string{"label", "documentation", "standard"},
			RequiredSections:      []string{"## Summary", "## Changes"},
			MinLabelCount:         3,
			IssueReferencePattern: "Fixes #{issue_number}",
		},
		ExpectedLabels: []string{
			"bug", "enhancement", "documentation", "feature", "bug-critical",
			"bug-major", "bug-minor", "task", "question", "help-wanted",
			"good-first-issue", "priority-high", "priority-medium", "priority-low",
			"status-in-progress", "status-review", "status-done", "status-blocked",
			"component-frontend", "component-backend", "component-db", "wontfix",
		},
		Comment: CommentRequirements{
			Keywords:           []string{"label", "documentation", "completed"},
			PRReferencePattern: "PR #{pr_number}",
			ContentFlags:       []string{"labels", "verified", "applied"},
		},
	}
}

// Load returns the defaults overlaid with the YAML ruleset at path.
// Fields absent from the file keep their default values.
func Load(path string) (*Ruleset, error) {
	rs := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ruleset %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, rs); err != nil {
		return nil, fmt.Errorf("parse ruleset %s: %w", path, err)
	}
	if err := rs.Validate(); err != nil {
		return nil, fmt.Errorf("ruleset %s: %w", path, err)
	}
	return rs, nil
}

// Validate rejects rulesets that cannot drive a meaningful run.
func (r *Ruleset) Validate() error {
	switch {
	case r.TargetRepo == "":
		return fmt.Errorf("target_repo must not be empty")
	case r.FeatureBranch.Name == "":
		return fmt.Errorf("feature_branch.name must not be empty")
	case r.FeatureBranch.DocFile == "":
		return fmt.Errorf("feature_branch.doc_file must not be empty")
	case len(r.ExpectedLabels) == 0:
		return fmt.Errorf("expected_labels must not be empty")
	case r.DocParsing.MinLabelCount <= 0:
		return fmt.Errorf("doc_parsing.min_label_count must be positive")
	}
	return nil
}

// IssueRef renders the PR-body issue reference for a concrete issue number.
func (r *Ruleset) IssueRef(issueNumber int) string {
	return strings.ReplaceAll(r.PR.IssueReferencePattern, "{issue_number}", strconv.Itoa(issueNumber))
}

// PRRef renders the comment PR reference for a concrete PR number.
func (r *Ruleset) PRRef(prNumber int) string {
	return strings.ReplaceAll(r.Comment.PRReferencePattern, "{pr_number}", strconv.Itoa(prNumber))
}

// CoreLabels returns the first 10 expected labels (fewer if the list is
// shorter). They form the relaxed subset check against PR labels.
func (r *Ruleset) CoreLabels() []string {
	if len(r.ExpectedLabels) <= 10 {
		return r.ExpectedLabels
	}
	return r.ExpectedLabels[:10]
}
