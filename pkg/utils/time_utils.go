package utils

import "time"

// Nairobi time (EAT, +03:00). Daraja timestamps and password derivation must
// use this zone or the push request is rejected.
var nairobiLoc = func() *time.Location {
	if loc, err := time.LoadLocation("Africa/Nairobi"); err == nil {
		return loc
	}
	return time.FixedZone("EAT", 3*3600)
}()

func NowUnixSeconds() int64 { return time.Now().Unix() }

// DarajaTimestamp renders t in the provider's YYYYMMDDHHmmss format.
func DarajaTimestamp(t time.Time) string {
	return t.In(nairobiLoc).Format("20060102150405")
}

func FromUnixSecondsEAT(t int64) time.Time {
	if t <= 0 {
		return time.Time{}
	}
	return time.Unix(t, 0).In(nairobiLoc)
}

func FormatRFC3339EAT(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(nairobiLoc).Format(time.RFC3339)
}
