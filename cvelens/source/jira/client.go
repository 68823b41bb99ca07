package jira

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hashicorp/go-cleanhttp"
)

const apiPath = "/rest/api/2"

// client is a minimal Jira REST client (server/data-center flavor, bearer
// token auth). It is constructed eagerly at adapter creation time; there is
// no lazy connection state.
type client struct {
	server string
	token  string
	http   *http.Client
}

func newClient(server, token string) *client {
	return &client{
		server: strings.TrimRight(server, "/"),
		token:  token,
		http:   cleanhttp.DefaultPooledClient(),
	}
}

type namedValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type userValue struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

type projectValue struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

type issueFields struct {
	Summary        string          `json:"summary"`
	Status         *namedValue     `json:"status"`
	Resolution     *namedValue     `json:"resolution"`
	Priority       *namedValue     `json:"priority"`
	Assignee       *userValue      `json:"assignee"`
	Reporter       *userValue      `json:"reporter"`
	Created        string          `json:"created"`
	Updated        string          `json:"updated"`
	ResolutionDate string          `json:"resolutiondate"`
	DueDate        string          `json:"duedate"`
	Project        projectValue    `json:"project"`
	Labels         []string        `json:"labels"`
	SeverityField  json.RawMessage `json:"customfield_12316142"`
	SLADateField   json.RawMessage `json:"customfield_12326740"`
}

type issue struct {
	Key    string      `json:"key"`
	Fields issueFields `json:"fields"`
}

type searchResponse struct {
	StartAt    int     `json:"startAt"`
	MaxResults int     `json:"maxResults"`
	Total      int     `json:"total"`
	Issues     []issue `json:"issues"`
}

func (c *client) searchIssues(jql string, startAt, maxResults int, fields string) ([]issue, error) {
	params := url.Values{}
	params.Set("jql", jql)
	params.Set("startAt", strconv.Itoa(startAt))
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("fields", fields)

	var response searchResponse
	if err := c.get("/search?"+params.Encode(), &response); err != nil {
		return nil, err
	}
	return response.Issues, nil
}

type myselfResponse struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

func (c *client) myself() (*myselfResponse, error) {
	var response myselfResponse
	if err := c.get("/myself", &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (c *client) projects() ([]projectValue, error) {
	var response []projectValue
	if err := c.get("/project", &response); err != nil {
		return nil, err
	}
	return response, nil
}

func (c *client) get(path string, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, c.server+apiPath+path, nil)
	if err != nil {
		return fmt.Errorf("unable to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("unable to reach jira: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("jira responded with %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("unable to decode jira response: %w", err)
	}
	return nil
}
