// Package github talks to the hosting platform through the gh CLI.
package github

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/orchestra-automation/orchestra/internal/domain"
)

// BranchInspector provides local branch state. Branch topology comes from
// the repository on disk rather than the hosting API, so it works for
// branches that were never pushed.
type BranchInspector interface {
	Branches() ([]domain.Branch, error)
	CommitsSince(branch string, since time.Time) ([]domain.Commit, error)
}

// runner executes an external command in a directory and returns stdout.
// Swappable in tests.
type runner func(dir, name string, args ...string) (string, error)

func execRun(dir, name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, string(exitErr.Stderr))
		}
		return "", fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Ensure Client implements domain.RepoGateway.
var _ domain.RepoGateway = (*Client)(nil)

// Client implements domain.RepoGateway for one repository checkout.
// Fields are ordered to minimize memory padding.
type Client struct {
	inspector BranchInspector
	log       domain.Logger
	run       runner
	repoName  string
	repoPath  string
}

// NewClient creates a Client rooted at the repository path.
func NewClient(repoName, repoPath string, inspector BranchInspector, log domain.Logger) *Client {
	return &Client{
		repoName:  repoName,
		repoPath:  repoPath,
		inspector: inspector,
		log:       log,
		run:       execRun,
	}
}

func (c *Client) gh(args ...string) (string, error) {
	return c.run(c.repoPath, "gh", args...)
}

func (c *Client) git(args ...string) (string, error) {
	return c.run(c.repoPath, "git", args...)
}

// ghAuthor is gh's nested author object.
type ghAuthor struct {
	Login string `json:"login"`
}

type ghPullRequest struct {
	Title     string   `json:"title"`
	URL       string   `json:"url"`
	UpdatedAt string   `json:"updatedAt"`
	Body      string   `json:"body"`
	Author    ghAuthor `json:"author"`
	Number    int      `json:"number"`
}

func (p ghPullRequest) toDomain() domain.PullRequest {
	return domain.PullRequest{
		Number:    p.Number,
		Title:     p.Title,
		URL:       p.URL,
		Author:    p.Author.Login,
		UpdatedAt: p.UpdatedAt,
		State:     "open",
		Body:      p.Body,
	}
}

const prFields = "number,title,url,author,updatedAt,body"

func (c *Client) listPRs(args ...string) ([]domain.PullRequest, error) {
	out, err := c.gh(args...)
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}

	var raw []ghPullRequest
	if err := json.Unmarshal([]byte(out), &raw); err != nil {
		return nil, fmt.Errorf("parse pr list: %w", err)
	}
	prs := make([]domain.PullRequest, 0, len(raw))
	for _, p := range raw {
		prs = append(prs, p.toDomain())
	}
	return prs, nil
}

// PendingReviewPRs returns open PRs that request review from the current user.
func (c *Client) PendingReviewPRs() ([]domain.PullRequest, error) {
	return c.listPRs("search", "prs", "--review-requested=@me", "--state=open", "--json="+prFields)
}

// MyOpenPRs returns open PRs authored by the current user.
func (c *Client) MyOpenPRs() ([]domain.PullRequest, error) {
	return c.listPRs("pr", "list", "--author=@me", "--state=open", "--json="+prFields)
}

// SearchInvolvedPRs returns open PRs that involve the current user.
func (c *Client) SearchInvolvedPRs() ([]domain.PullRequest, error) {
	return c.listPRs("search", "prs", "--involves=@me", "--state=open", "--json="+prFields)
}

// AssignedIssues returns open issues assigned to the current user.
func (c *Client) AssignedIssues() ([]domain.Issue, error) {
	out, err := c.gh("issue", "list", "--assignee=@me", "--state=open", "--json="+prFields)
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}

	var raw []ghPullRequest
	if err := json.Unmarshal([]byte(out), &raw); err != nil {
		return nil, fmt.Errorf("parse issue list: %w", err)
	}
	issues := make([]domain.Issue, 0, len(raw))
	for _, i := range raw {
		issues = append(issues, domain.Issue{
			Number:    i.Number,
			Title:     i.Title,
			URL:       i.URL,
			Author:    i.Author.Login,
			UpdatedAt: i.UpdatedAt,
			State:     "open",
			Body:      i.Body,
		})
	}
	return issues, nil
}

// PRComments returns conversation comments on a PR.
func (c *Client) PRComments(number int) ([]domain.Comment, error) {
	out, err := c.gh("pr", "view", strconv.Itoa(number), "--json=comments")
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}

	var raw struct {
		Comments []struct {
			Author    ghAuthor `json:"author"`
			Body      string   `json:"body"`
			CreatedAt string   `json:"createdAt"`
		} `json:"comments"`
	}
	if err := json.Unmarshal([]byte(out), &raw); err != nil {
		return nil, fmt.Errorf("parse pr comments: %w", err)
	}
	comments := make([]domain.Comment, 0, len(raw.Comments))
	for _, cm := range raw.Comments {
		comments = append(comments, domain.Comment{
			Author:    cm.Author.Login,
			Body:      cm.Body,
			CreatedAt: cm.CreatedAt,
		})
	}
	return comments, nil
}

// PRReviewComments returns inline review comments on a PR, fetched through
// the REST endpoint since gh pr view does not expose them.
func (c *Client) PRReviewComments(number int) ([]domain.Comment, error) {
	out, err := c.gh("api", fmt.Sprintf("/repos/:owner/:repo/pulls/%d/comments", number))
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}

	var raw []struct {
		User      ghAuthor `json:"user"`
		Body      string   `json:"body"`
		CreatedAt string   `json:"created_at"`
	}
	if err := json.Unmarshal([]byte(out), &raw); err != nil {
		return nil, fmt.Errorf("parse review comments: %w", err)
	}
	comments := make([]domain.Comment, 0, len(raw))
	for _, cm := range raw {
		comments = append(comments, domain.Comment{
			Author:    cm.User.Login,
			Body:      cm.Body,
			CreatedAt: cm.CreatedAt,
		})
	}
	return comments, nil
}

// CommentOnPR adds a conversation comment to a PR.
func (c *Client) CommentOnPR(number int, body string) error {
	_, err := c.gh("pr", "comment", strconv.Itoa(number), "--body", body)
	return err
}

// CommentOnIssue adds a comment to an issue.
func (c *Client) CommentOnIssue(number int, body string) error {
	_, err := c.gh("issue", "comment", strconv.Itoa(number), "--body", body)
	return err
}

// UpdatePRDescription replaces a PR body.
func (c *Client) UpdatePRDescription(number int, body string) error {
	_, err := c.gh("pr", "edit", strconv.Itoa(number), "--body", body)
	return err
}

// CreatePR opens a pull request and returns its number, parsed from the URL
// gh prints.
func (c *Client) CreatePR(opts domain.CreatePROptions) (int, error) {
	base := opts.Base
	if base == "" {
		base = "main"
	}
	args := []string{
		"pr", "create",
		"--title", opts.Title,
		"--body", opts.Body,
		"--base", base,
		"--head", opts.Branch,
	}
	if opts.Draft {
		args = append(args, "--draft")
	}

	out, err := c.gh(args...)
	if err != nil {
		return 0, err
	}
	return parsePRNumber(out)
}

func parsePRNumber(out string) (int, error) {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if !strings.Contains(line, "://") {
			continue
		}
		if idx := strings.LastIndex(line, "/"); idx >= 0 {
			if n, err := strconv.Atoi(line[idx+1:]); err == nil {
				return n, nil
			}
		}
	}
	return 0, fmt.Errorf("no PR URL in gh output: %q", out)
}

// CommitsSince returns commits on a branch newer than the given time.
func (c *Client) CommitsSince(branch string, since time.Time) ([]domain.Commit, error) {
	return c.inspector.CommitsSince(branch, since)
}

// ReadFile fetches a file's content from the default branch via the
// contents API.
func (c *Client) ReadFile(path string) (string, error) {
	out, err := c.gh("api", "/repos/:owner/:repo/contents/"+path, "--jq", ".content")
	if err != nil {
		return "", err
	}
	encoded := strings.Trim(strings.TrimSpace(out), `"`)
	// The API wraps base64 content with embedded newlines.
	encoded = strings.ReplaceAll(encoded, "\\n", "")
	encoded = strings.ReplaceAll(encoded, "\n", "")
	if encoded == "" {
		return "", fmt.Errorf("%s: empty contents response", path)
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", path, err)
	}
	return string(decoded), nil
}

// dependencyFiles maps manifest names to what they indicate.
var dependencyFiles = map[string]string{
	"package.json":     "npm/yarn projects",
	"requirements.txt": "Python pip projects",
	"Pipfile":          "Python pipenv projects",
	"pyproject.toml":   "Python poetry projects",
	"pom.xml":          "Java Maven projects",
	"build.gradle":     "Java Gradle projects",
	"Cargo.toml":       "Rust projects",
	"composer.json":    "PHP projects",
	"Gemfile":          "Ruby projects",
	"go.mod":           "Go modules",
}

var securityFiles = map[string]string{
	"SECURITY.md": "Security policy",
	".github/workflows/security.yml":        "Security CI workflow",
	".github/workflows/codeql-analysis.yml": "CodeQL analysis",
	"ARCHITECTURE.md":                       "Architecture documentation",
}

func (c *Client) fetchKnownFiles(known map[string]string) map[string]domain.RepoFile {
	found := map[string]domain.RepoFile{}
	for name, desc := range known {
		content, err := c.ReadFile(name)
		if err != nil {
			continue // Absent files are the normal case.
		}
		found[name] = domain.RepoFile{Description: desc, Content: content}
	}
	return found
}

// CheckVulnerabilities queries the platform's security advisories and
// dependency alerts. A failed check is reported in the result, not as an
// error, so weekend analysis can still run.
func (c *Client) CheckVulnerabilities() domain.VulnerabilityReport {
	var report domain.VulnerabilityReport

	if out, err := c.gh("api", "/repos/:owner/:repo/security-advisories"); err != nil {
		report.Err = err.Error()
	} else {
		report.Advisories = countJSONArray(out)
	}

	if out, err := c.gh("api", "/repos/:owner/:repo/dependabot/alerts", "--jq", "map(select(.state == \"open\"))"); err != nil {
		if report.Err == "" {
			report.Err = err.Error()
		}
	} else {
		report.Alerts = countJSONArray(out)
	}
	return report
}

func countJSONArray(out string) int {
	if out == "" {
		return 0
	}
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(out), &items); err != nil {
		return 0
	}
	return len(items)
}

// GatherWorkdayData aggregates PRs, issues and branch state. Best-effort:
// each failed probe logs a warning and leaves its slice empty.
func (c *Client) GatherWorkdayData() *domain.RepoData {
	data := &domain.RepoData{}

	var err error
	if data.PendingReviews, err = c.PendingReviewPRs(); err != nil {
		c.log.Warn(c.repoName, "github", fmt.Sprintf("pending reviews: %v", err))
	}
	if data.MyPRs, err = c.MyOpenPRs(); err != nil {
		c.log.Warn(c.repoName, "github", fmt.Sprintf("my open prs: %v", err))
	}
	if data.AssignedIssues, err = c.AssignedIssues(); err != nil {
		c.log.Warn(c.repoName, "github", fmt.Sprintf("assigned issues: %v", err))
	}
	if data.Branches, err = c.inspector.Branches(); err != nil {
		c.log.Warn(c.repoName, "github", fmt.Sprintf("branches: %v", err))
	}
	return data
}

// GatherWeekendData aggregates the wider maintenance view.
func (c *Client) GatherWeekendData() *domain.WeekendData {
	data := &domain.WeekendData{
		DependencyFiles: c.fetchKnownFiles(dependencyFiles),
		SecurityFiles:   c.fetchKnownFiles(securityFiles),
		Vulnerabilities: c.CheckVulnerabilities(),
	}

	var err error
	if data.Branches, err = c.inspector.Branches(); err != nil {
		c.log.Warn(c.repoName, "github", fmt.Sprintf("branches: %v", err))
	}
	if data.MyPRs, err = c.MyOpenPRs(); err != nil {
		c.log.Warn(c.repoName, "github", fmt.Sprintf("my open prs: %v", err))
	}
	return data
}
