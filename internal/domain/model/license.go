package model

import (
	"fmt"
	"strings"
	"time"
)

// LicenseStatus is the derived classification of a license relative to a
// point in time.
type LicenseStatus string

const (
	StatusActive       LicenseStatus = "Active"
	StatusExpiringSoon LicenseStatus = "Expiring Soon"
	StatusExpired      LicenseStatus = "Expired"
)

// ExpiredSignal is the internal token RemainingAt returns for expired
// licenses. It is not shown to end users; the response layer substitutes a
// fixed zero-valued display string.
const ExpiredSignal = "EXPIRED"

// expiringSoonWindow is the remaining-time threshold below which a license
// is flagged as Expiring Soon.
const expiringSoonWindow = 24 * time.Hour

// License is a record of a named legal permission with a validity window.
// Licenses are immutable once created; there is no update or delete.
type License struct {
	ID             string
	Name           string
	StartDate      time.Time
	ExpirationDate time.Time
	AddedBy        string
	CreatedAt      time.Time
}

// StatusAt classifies the license relative to now. A license whose
// expiration instant equals now is already expired.
func (l License) StatusAt(now time.Time) LicenseStatus {
	if !now.Before(l.ExpirationDate) {
		return StatusExpired
	}
	if l.ExpirationDate.Sub(now) <= expiringSoonWindow {
		return StatusExpiringSoon
	}
	return StatusActive
}

// RemainingAt formats the interval from now until expiration as a
// human-readable breakdown, e.g. "1 year, 5 months, 14 days, 6 hours,
// 30 minutes". Zero-valued units are omitted; if every unit is zero the
// result is the empty string. Expired licenses yield ExpiredSignal.
func (l License) RemainingAt(now time.Time) string {
	if !now.Before(l.ExpirationDate) {
		return ExpiredSignal
	}

	years, months, days, hours, minutes := splitInterval(now, l.ExpirationDate)

	parts := make([]string, 0, 5)
	appendUnit := func(value int, unit string) {
		if value == 0 {
			return
		}
		if value == 1 {
			parts = append(parts, "1 "+unit)
			return
		}
		parts = append(parts, fmt.Sprintf("%d %ss", value, unit))
	}

	appendUnit(years, "year")
	appendUnit(months, "month")
	appendUnit(days, "day")
	appendUnit(hours, "hour")
	appendUnit(minutes, "minute")

	return strings.Join(parts, ", ")
}

// splitInterval breaks [from, to] into calendar units. Years, months, and
// days are counted by stepping with AddDate so variable month lengths and
// leap years are respected rather than assuming fixed 30-day months.
func splitInterval(from, to time.Time) (years, months, days, hours, minutes int) {
	cursor := from

	for {
		next := cursor.AddDate(1, 0, 0)
		if next.After(to) {
			break
		}
		cursor = next
		years++
	}

	for {
		next := cursor.AddDate(0, 1, 0)
		if next.After(to) {
			break
		}
		cursor = next
		months++
	}

	for {
		next := cursor.AddDate(0, 0, 1)
		if next.After(to) {
			break
		}
		cursor = next
		days++
	}

	rest := to.Sub(cursor)
	hours = int(rest / time.Hour)
	rest -= time.Duration(hours) * time.Hour
	minutes = int(rest / time.Minute)

	return years, months, days, hours, minutes
}
