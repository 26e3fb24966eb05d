package api

import (
	"time"

	"github.com/nao1215/youto/internal/resource"
	"github.com/nao1215/youto/internal/rowgateway"
)

const (
	userTrackingNotFound = "Suivi de rendez-vous de l'utilisateur non trouvé."
	userTrackingFailed   = "Erreur lors de la récupération du suivi de rendez-vous."
)

// userTrackingReport lists a user's tracked appointments while the user
// holds a subscription covering the current time.
var userTrackingReport = resource.Report{
	Path: "/user-appointement-tracking/:id",
	Query: `SELECT t.id_user, t.start_datetime, t.end_datetime
FROM appointement_tracking t
WHERE t.id_user = ?
  AND EXISTS (
    SELECT 1 FROM is_subcribed s
    WHERE s.id_user = t.id_user
      AND s.start_date <= CURRENT_TIMESTAMP
      AND s.end_date >= CURRENT_TIMESTAMP
  )
ORDER BY t.start_datetime`,
	Transform: withMinutesUsed,
	NotFound:  userTrackingNotFound,
	Failed:    userTrackingFailed,
}

// userTaskReport lists a user's tasks that are not Done. Only task columns
// are returned.
var userTaskReport = resource.Report{
	Path: "/user-task/:id",
	Query: `SELECT t.id, t.task_description, t.status, t.deadline, t.id_user
FROM todo_list t
WHERE t.id_user = ? AND t.status != 'Done'
ORDER BY t.id`,
	NotFound: userTrackingNotFound,
	Failed:   userTrackingFailed,
}

// withMinutesUsed adds totalMinutesUsed, the length of the appointment in
// minutes. It is null when either bound is missing or unreadable.
func withMinutesUsed(row rowgateway.Row) rowgateway.Row {
	start, okStart := asTime(row["start_datetime"])
	end, okEnd := asTime(row["end_datetime"])
	if !okStart || !okEnd {
		row["totalMinutesUsed"] = nil
		return row
	}
	row["totalMinutesUsed"] = end.Sub(start).Minutes()
	return row
}

// timeLayouts are the datetime encodings found in stored rows.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04",
	time.DateOnly,
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}
