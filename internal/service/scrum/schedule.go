package scrum

import (
	"sort"
	"time"

	"scrumboard/internal/domain"
	models "scrumboard/internal/domain/models/scrum"
)

const dateLayout = "2006-01-02"

// dateOnly truncates t to its calendar day. Sprint boundaries are dates.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func formatDate(t time.Time) string {
	return dateOnly(t).Format(dateLayout)
}

// CheckNewSprint decides whether a sprint spanning [start, end] can be added
// to a project whose current sprints are existing. A new sprint must end
// after it starts and start strictly after the latest existing end date.
func CheckNewSprint(existing []models.Sprint, start, end time.Time) *domain.Result {
	start, end = dateOnly(start), dateOnly(end)
	if !end.After(start) {
		return domain.Fail("sprint end date %s must be after its start date %s", formatDate(end), formatDate(start))
	}

	var last *models.Sprint
	for i := range existing {
		if last == nil || existing[i].EndDate.After(last.EndDate) {
			last = &existing[i]
		}
	}
	if last != nil && !dateOnly(last.EndDate).Before(start) {
		return domain.Fail("sprint must start after %s, the end date of sprint %q",
			formatDate(last.EndDate), last.Name)
	}
	return domain.OK()
}

// CheckSprintUpdate decides whether sprint id may move to [start, end].
//
// Neighbours are found by position in the project's sprints sorted by end
// date descending: the entry after id is the previous sprint, the entry
// before it is the next one. This matches chronological order as long as
// the sprints do not overlap, which is what this check keeps true.
func CheckSprintUpdate(existing []models.Sprint, id string, start, end time.Time) *domain.Result {
	start, end = dateOnly(start), dateOnly(end)
	if !end.After(start) {
		return domain.Fail("sprint end date %s must be after its start date %s", formatDate(end), formatDate(start))
	}

	sorted := make([]models.Sprint, len(existing))
	copy(sorted, existing)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EndDate.After(sorted[j].EndDate)
	})

	pos := -1
	for i := range sorted {
		if sorted[i].ID == id {
			pos = i
			break
		}
	}
	if pos < 0 {
		return domain.Fail("sprint %s does not belong to this project", id)
	}

	var previous, next *models.Sprint
	if pos+1 < len(sorted) {
		previous = &sorted[pos+1]
	}
	if pos > 0 {
		next = &sorted[pos-1]
	}

	switch {
	case previous == nil && next != nil:
		if !dateOnly(next.StartDate).After(end) {
			return domain.Fail("sprint must end before %s, the start date of the next sprint",
				formatDate(next.StartDate))
		}
	case previous != nil && next != nil:
		if !start.After(dateOnly(previous.EndDate)) || !end.Before(dateOnly(next.StartDate)) {
			return domain.Fail("sprint must start after %s and end before %s",
				formatDate(previous.EndDate), formatDate(next.StartDate))
		}
	case previous != nil && next == nil:
		if !dateOnly(previous.EndDate).Before(start) {
			return domain.Fail("sprint must start after %s, the end date of the previous sprint",
				formatDate(previous.EndDate))
		}
	}
	return domain.OK()
}

// CheckSprintDeletion refuses to delete the last sprint of a project.
func CheckSprintDeletion(sprintCount int) *domain.Result {
	if sprintCount <= 1 {
		return domain.Fail("a project must keep at least one sprint")
	}
	return domain.OK()
}
