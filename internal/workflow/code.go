package workflow

import (
	"fmt"
	"time"
)

// Ticket codes are rendered in the helpdesk's home time zone so the date part
// matches what on-site staff see, regardless of server clock.
const codeTimeZone = "America/Bogota"

var codeLocation = loadCodeLocation()

func loadCodeLocation() *time.Location {
	loc, err := time.LoadLocation(codeTimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// FormatTicketCode derives the human-readable code YYYYMMDD-NNNN from a
// sequence number and creation timestamp. The sequence part widens past four
// digits instead of truncating. A nil timestamp falls back to the current date.
func FormatTicketCode(number int64, createdAt *time.Time) string {
	at := time.Now()
	if createdAt != nil {
		at = *createdAt
	}
	return fmt.Sprintf("%s-%04d", at.In(codeLocation).Format("20060102"), number)
}

// CodeLocation returns the helpdesk home time zone used for codes and
// report filenames.
func CodeLocation() *time.Location {
	return codeLocation
}

// SameCodeDay reports whether two instants fall on the same calendar day in
// the code time zone. Used by the requester reopen policy.
func SameCodeDay(a, b time.Time) bool {
	ay, am, ad := a.In(codeLocation).Date()
	by, bm, bd := b.In(codeLocation).Date()
	return ay == by && am == bm && ad == bd
}
