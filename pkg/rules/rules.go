// Package rules answers who may do what to a reservation. Every check takes
// the current time as an argument, so the same call is testable and the
// services share one clock reading per request.
package rules

import (
	"time"

	"chedoparti/pkg/model"
)

// Lead times: how far before the start a user may still edit or cancel their
// own reservation. Admins are not bound by these; roles without a lead time
// of their own get the member one.
const (
	CoachLeadTime  = 1 * time.Hour
	MemberLeadTime = 2 * time.Hour
)

// CanCreate reports whether a role may create a reservation of the given
// type. Admins create anything, coaches classes and normal reservations,
// members only normal ones, guests nothing.
func CanCreate(role model.Role, reservationType string) bool {
	switch role {
	case model.RoleAdmin:
		return true
	case model.RoleCoach:
		return reservationType == model.TypeClass || reservationType == model.TypeNormal
	case model.RoleMember:
		return reservationType == model.TypeNormal
	}
	return false
}

// CanEdit reports whether the user may modify the reservation at time now.
// Non-admins must own it, it must not have started, not be in a terminal
// status, and the role's lead time must still be open.
func CanEdit(user model.User, r *model.Reservation, now time.Time) bool {
	return canTouch(user, r, now)
}

// CanCancel reports whether the user may cancel the reservation at time now.
// The conditions mirror CanEdit; cancellation is just the one edit that is
// always available while edits are.
func CanCancel(user model.User, r *model.Reservation, now time.Time) bool {
	return canTouch(user, r, now)
}

func canTouch(user model.User, r *model.Reservation, now time.Time) bool {
	if r == nil {
		return false
	}
	if user.Role == model.RoleAdmin {
		return !r.Terminal()
	}
	if r.Terminal() || r.OwnerID == "" || r.OwnerID != user.ID {
		return false
	}

	start, ok := StartAt(r)
	if !ok {
		return false
	}

	lead := MemberLeadTime
	if user.Role == model.RoleCoach {
		lead = CoachLeadTime
	}
	return now.Add(lead).Before(start) || now.Add(lead).Equal(start)
}

// StartAt resolves the reservation's start as a wall-clock instant in UTC.
// The second return is false when the stored date or time does not parse.
func StartAt(r *model.Reservation) (time.Time, bool) {
	day, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return time.Time{}, false
	}
	clock, err := time.Parse("15:04", r.StartTime)
	if err != nil {
		return time.Time{}, false
	}
	min := clock.Hour()*60 + clock.Minute()
	return day.Add(time.Duration(min) * time.Minute), true
}
