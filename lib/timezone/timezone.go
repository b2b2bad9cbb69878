package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Europe/Rome")
	if err != nil {
		panic(err)
	}
}

// force timezone to be Italian because the upstream league site prints
// dates and kickoff times in local Italian time, while our servers may
// end up anywhere.
func Now() time.Time {
	return time.Now().In(Location)
}
