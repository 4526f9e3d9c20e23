package activity

import (
	"strings"
	"time"
)

// Stream identifies one of the two independent activity sources.
type Stream string

const (
	StreamStandup  Stream = "standup"
	StreamTrackify Stream = "trackify"
)

// Record is the normalized shape shared by both streams. Source-specific
// field naming is absorbed by the per-stream DTOs below so nothing past this
// package ever touches a raw payload.
type Record struct {
	Stream       Stream    `json:"stream"`
	User         string    `json:"user"`
	Date         time.Time `json:"date"`
	Project      string    `json:"project"`
	TaskCount    int       `json:"taskCount"`
	CommitCount  int       `json:"commitCount"`
	Satisfaction int       `json:"satisfaction"`
	HasObstacles bool      `json:"hasObstacles"`
	Obstacles    string    `json:"obstacles"`
	// Duration is the raw "H:MM:SS" timesheet duration; empty when the
	// source omitted it. Parse with ParseDurationHours.
	Duration string `json:"duration,omitempty"`
}

// standupDTO mirrors one element of the standup API's data array.
type standupDTO struct {
	UserName     string `json:"user_name"`
	Date         string `json:"date"`
	ProjectName  string `json:"project_name"`
	TaskCount    int    `json:"task_count"`
	CommitCount  int    `json:"commit_count"`
	Satisfaction int    `json:"satisfaction"`
	HasObstacles bool   `json:"has_obstacles"`
	Obstacles    string `json:"obstacles"`
}

// trackifyDTO mirrors one element of the trackify timesheet API's data array.
type trackifyDTO struct {
	UserName    string  `json:"user_name"`
	Date        string  `json:"date"`
	ProjectName string  `json:"project_name"`
	Duration    *string `json:"duration"`
}

func (d standupDTO) toRecord() Record {
	return Record{
		Stream:       StreamStandup,
		User:         strings.TrimSpace(d.UserName),
		Date:         parseRecordDate(d.Date),
		Project:      d.ProjectName,
		TaskCount:    d.TaskCount,
		CommitCount:  d.CommitCount,
		Satisfaction: d.Satisfaction,
		HasObstacles: d.HasObstacles,
		Obstacles:    d.Obstacles,
	}
}

func (d trackifyDTO) toRecord() Record {
	rec := Record{
		Stream:  StreamTrackify,
		User:    strings.TrimSpace(d.UserName),
		Date:    parseRecordDate(d.Date),
		Project: d.ProjectName,
	}
	if d.Duration != nil {
		rec.Duration = *d.Duration
	}
	return rec
}

var recordDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseRecordDate accepts the date formats the two APIs are known to emit.
// An unparseable date yields the zero time; the indexer skips and counts
// such records rather than failing the batch.
func parseRecordDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range recordDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
