package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		panic(err)
	}
}

// force timestamps into the portal's timezone, the server may be
// deployed anywhere and snapshot day-bucketing depends on IST dates
func Now() time.Time {
	return time.Now().In(Location)
}

// StartOfDay truncates t to midnight IST.
func StartOfDay(t time.Time) time.Time {
	t = t.In(Location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, Location)
}
