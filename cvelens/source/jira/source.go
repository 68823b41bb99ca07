package jira

import (
	"fmt"
	"strings"

	"github.com/cvelens/cvelens/cvelens/source"
	"github.com/cvelens/cvelens/internal/log"
)

// SourceType is the registry identifier for the Jira adapter.
const SourceType = "jira"

const defaultPageSize = 100

// searchFields is the field set requested per issue page.
const searchFields = "summary,status,resolution,priority,assignee,reporter," +
	"customfield_12316142,customfield_12326740,created,updated,resolutiondate,duedate,project,labels"

// Config holds everything needed to talk to one Jira server.
type Config struct {
	Server   string
	Token    string
	Labels   []string
	PageSize int
}

// Source is the Jira implementation of source.Source.
type Source struct {
	config Config
	client *client
}

func New(cfg Config) (*Source, error) {
	if cfg.Server == "" {
		return nil, fmt.Errorf("no jira server configured")
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	return &Source{
		config: cfg,
		client: newClient(cfg.Server, cfg.Token),
	}, nil
}

func (s *Source) Type() string {
	return SourceType
}

func (s *Source) DisplayName() string {
	return "Jira"
}

// Check probes connectivity by fetching the authenticated user.
func (s *Source) Check() (bool, string) {
	log.Debugf("testing jira connection to %s", s.config.Server)
	user, err := s.client.myself()
	if err != nil {
		return false, fmt.Sprintf("connection failed: %v", err)
	}

	name := user.DisplayName
	if name == "" {
		name = user.Name
	}
	return true, fmt.Sprintf("connected as %s", name)
}

// FetchTrackers returns a lazy, page-at-a-time iterator over all issues
// matching the filters. A page fetch failure is fatal to the whole sequence.
func (s *Source) FetchTrackers(filters source.FetchFilters) (source.RecordIterator, error) {
	if len(filters.ProjectKeys) == 0 {
		return nil, source.ErrNoProjectKeys
	}

	jql := s.buildJQL(filters)
	log.Infof("fetching jira issues with JQL: %s", jql)

	return &recordIterator{
		client:   s.client,
		jql:      jql,
		pageSize: s.config.PageSize,
	}, nil
}

func (s *Source) buildJQL(filters source.FetchFilters) string {
	quotedKeys := make([]string, len(filters.ProjectKeys))
	for idx, key := range filters.ProjectKeys {
		quotedKeys[idx] = fmt.Sprintf("%q", key)
	}
	parts := []string{
		fmt.Sprintf("project IN (%s)", strings.Join(quotedKeys, ", ")),
	}

	if filters.Since != nil {
		parts = append(parts, fmt.Sprintf("updated >= %q", filters.Since.Format("2006-01-02 15:04")))
	}

	// only issues carrying a tracker label are CVE remediation work
	if len(s.config.Labels) > 0 {
		quotedLabels := make([]string, len(s.config.Labels))
		for idx, label := range s.config.Labels {
			quotedLabels[idx] = fmt.Sprintf("%q", label)
		}
		parts = append(parts, fmt.Sprintf("labels IN (%s)", strings.Join(quotedLabels, ", ")))
	}

	return strings.Join(parts, " AND ")
}

// FetchProjects lists all projects visible with the configured credentials.
func (s *Source) FetchProjects() ([]source.ProjectRef, error) {
	projects, err := s.client.projects()
	if err != nil {
		return nil, fmt.Errorf("unable to fetch jira projects: %w", err)
	}

	refs := make([]source.ProjectRef, len(projects))
	for idx, p := range projects {
		refs[idx] = source.ProjectRef{
			Key:  p.Key,
			Name: p.Name,
		}
	}
	return refs, nil
}

// recordIterator pages through search results by offset, converting each
// issue as it is consumed.
type recordIterator struct {
	client   *client
	jql      string
	pageSize int
	startAt  int
	total    int
	buffer   []source.Record
	current  source.Record
	err      error
	done     bool
}

func (i *recordIterator) Next() bool {
	if i.err != nil {
		return false
	}
	if len(i.buffer) == 0 {
		if i.done || !i.fetchPage() {
			return false
		}
	}
	if len(i.buffer) == 0 {
		return false
	}

	i.current = i.buffer[0]
	i.buffer = i.buffer[1:]
	return true
}

func (i *recordIterator) Record() source.Record {
	return i.current
}

func (i *recordIterator) Err() error {
	return i.err
}

func (i *recordIterator) fetchPage() bool {
	log.Debugf("fetching jira issues %d to %d", i.startAt, i.startAt+i.pageSize)
	issues, err := i.client.searchIssues(i.jql, i.startAt, i.pageSize, searchFields)
	if err != nil {
		i.err = fmt.Errorf("jira search failed: %w", err)
		return false
	}

	if len(issues) == 0 {
		if i.total == 0 {
			log.Warnf("no jira issues found matching JQL: %s", i.jql)
		}
		i.done = true
		return false
	}

	for _, iss := range issues {
		i.buffer = append(i.buffer, convertIssue(iss))
	}
	i.total += len(issues)
	i.startAt += len(issues)

	if len(issues) < i.pageSize {
		log.Debugf("reached end of jira results (total=%d)", i.total)
		i.done = true
	}
	return true
}
