package roster

import "scorecard/internal/activity"

// MandatoryFor returns the user ids required to report on the given stream,
// in roster order.
func MandatoryFor(employees []Employee, stream activity.Stream) []string {
	users := []string{}
	for _, e := range employees {
		if e.MandatoryFor(stream) {
			users = append(users, e.UserID)
		}
	}
	return users
}

// FilterByDepartment keeps employees whose department matches exactly. An
// empty filter is the identity.
func FilterByDepartment(employees []Employee, department string) []Employee {
	if department == "" {
		return employees
	}
	filtered := []Employee{}
	for _, e := range employees {
		if e.Department == department {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
