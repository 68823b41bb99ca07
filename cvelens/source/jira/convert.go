package jira

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/scylladb/go-set/strset"

	"github.com/cvelens/cvelens/cvelens/source"
)

// cvePattern extracts CVE identifiers from issue summary text.
var cvePattern = regexp.MustCompile(`(?i)CVE-\d{4}-\d{4,}`)

// dateLayouts are the formats Jira returns depending on the field kind
// (timestamps vs. plain dates).
var dateLayouts = []string{
	"2006-01-02T15:04:05.000-0700",
	time.RFC3339,
	"2006-01-02",
}

func convertIssue(i issue) source.Record {
	fields := i.Fields

	return source.Record{
		SourceKey:    i.Key,
		SourceType:   SourceType,
		ProjectKey:   fields.Project.Key,
		Summary:      fields.Summary,
		Status:       namedValueString(fields.Status),
		Resolution:   namedValueString(fields.Resolution),
		Priority:     namedValueString(fields.Priority),
		Severity:     extractSeverity(fields.SeverityField),
		Assignee:     userValueString(fields.Assignee),
		Reporter:     userValueString(fields.Reporter),
		CreatedDate:  parseDate(fields.Created),
		UpdatedDate:  parseDate(fields.Updated),
		ResolvedDate: parseDate(fields.ResolutionDate),
		DueDate:      parseDate(fields.DueDate),
		SLADate:      extractSLADate(fields.SLADateField),
		CVEIDs:       extractCVEIDs(fields.Summary),
		Labels:       fields.Labels,
	}
}

func namedValueString(v *namedValue) string {
	if v == nil {
		return ""
	}
	if v.Name != "" {
		return v.Name
	}
	return v.Value
}

func userValueString(v *userValue) string {
	if v == nil {
		return ""
	}
	if v.DisplayName != "" {
		return v.DisplayName
	}
	return v.Name
}

// extractSeverity reads the severity custom field, which may be an object
// with a "value" or "name" key, or a plain string. Absent or unparseable
// values map to empty (best-effort field mapping).
func extractSeverity(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var obj namedValue
	if err := json.Unmarshal(raw, &obj); err == nil {
		if obj.Value != "" {
			return obj.Value
		}
		if obj.Name != "" {
			return obj.Name
		}
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str
	}
	return ""
}

// extractSLADate reads the SLA target date custom field (a date string).
func extractSLADate(raw json.RawMessage) *time.Time {
	if len(raw) == 0 {
		return nil
	}

	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return nil
	}
	return parseDate(str)
}

// parseDate parses a Jira date string, returning nil for absent or
// unrecognized values rather than failing the record.
func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}

// extractCVEIDs scans the given text for CVE identifiers, deduplicated and
// upper-cased. The result is sorted for deterministic ordering.
func extractCVEIDs(text string) []string {
	matches := cvePattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	ids := strset.New()
	for _, m := range matches {
		ids.Add(strings.ToUpper(m))
	}

	result := ids.List()
	sort.Strings(result)
	return result
}
