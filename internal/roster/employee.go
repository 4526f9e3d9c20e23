package roster

import (
	"strings"

	"scorecard/internal/activity"

	"github.com/rs/zerolog/log"
)

// Employee is one normalized roster entry. Mandatory flags are resolved at
// ingestion; downstream code never sees the raw document values.
type Employee struct {
	UserID            string `json:"userId" bson:"userId"`
	Department        string `json:"department" bson:"department"`
	StandupMandatory  bool   `json:"standupMandatory" bson:"standupMandatory"`
	TrackifyMandatory bool   `json:"trackifyMandatory" bson:"trackifyMandatory"`
}

// MandatoryFor reports whether the employee must report on the given stream.
func (e Employee) MandatoryFor(stream activity.Stream) bool {
	if stream == activity.StreamTrackify {
		return e.TrackifyMandatory
	}
	return e.StandupMandatory
}

// NormalizeRoster converts raw roster documents into typed employees.
// Documents without a usable user id are dropped and counted. Mandatory
// flags accept numeric 1 or boolean true only; anything else, including the
// string "1", normalizes to false.
func NormalizeRoster(docs []map[string]interface{}) (employees []Employee, dropped int) {
	employees = make([]Employee, 0, len(docs))
	for _, doc := range docs {
		userID := strings.TrimSpace(stringField(doc, "userId", "user_id", "userName", "user_name"))
		if userID == "" {
			dropped++
			continue
		}
		employees = append(employees, Employee{
			UserID:            userID,
			Department:        strings.TrimSpace(stringField(doc, "department")),
			StandupMandatory:  flagSet(doc, "standupMandatory", "standup_mandatory", "standup"),
			TrackifyMandatory: flagSet(doc, "trackifyMandatory", "trackify_mandatory", "trackify"),
		})
	}
	if dropped > 0 {
		log.Warn().Int("dropped", dropped).Msg("Roster documents without a user id were dropped")
	}
	return employees, dropped
}

func stringField(doc map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if s, ok := doc[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func flagSet(doc map[string]interface{}, keys ...string) bool {
	for _, key := range keys {
		v, ok := doc[key]
		if !ok {
			continue
		}
		return flagValue(v)
	}
	return false
}

// flagValue is deliberately strict: the historical data holds both numeric
// and boolean flags, but string "1" was never a set flag and must stay false.
func flagValue(v interface{}) bool {
	switch n := v.(type) {
	case bool:
		return n
	case int:
		return n == 1
	case int32:
		return n == 1
	case int64:
		return n == 1
	case float64:
		return n == 1
	default:
		return false
	}
}
