package github

// Label is a repository label as it appears on issues and pull requests.
type Label struct {
	Name string `json:"name"`
}

// Issue holds the minimal issue metadata the verifier needs.
// The issues listing endpoint also surfaces pull requests; those carry a
// pull_request stub which callers use to filter them out.
type Issue struct {
	Number      int     `json:"number"`
	Title       string  `json:"title"`
	Body        string  `json:"body"`
	Labels      []Label `json:"labels"`
	PullRequest *struct {
		URL string `json:"url"`
	} `json:"pull_request,omitempty"`
}

// LabelNames returns the issue's label names in listing order.
func (i *Issue) LabelNames() []string {
	names := make([]string, 0, len(i.Labels))
	for _, l := range i.Labels {
		names = append(names, l.Name)
	}
	return names
}

// PullRequest holds the minimal pull request metadata the verifier needs.
type PullRequest struct {
	Number int     `json:"number"`
	Title  string  `json:"title"`
	Body   string  `json:"body"`
	Labels []Label `json:"labels"`
}

// LabelNames returns the PR's label names in listing order.
func (p *PullRequest) LabelNames() []string {
	names := make([]string, 0, len(p.Labels))
	for _, l := range p.Labels {
		names = append(names, l.Name)
	}
	return names
}

// Comment is a single issue comment.
type Comment struct {
	Body string `json:"body"`
}
