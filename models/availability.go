package models

import (
	"fmt"
	"strings"
	"time"

	"servicelink/utils"
)

// Weekday names in the order availability is stored.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Weekdays lists the seven fixed days, monday first.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// WeekdayOf maps a time.Weekday to the stored day name.
func WeekdayOf(d time.Weekday) Weekday {
	if d == time.Sunday {
		return Sunday
	}
	return Weekdays[int(d)-1]
}

const clockLayout = "15:04"

// TimeSlot is a window within a day, both ends in HH:MM.
type TimeSlot struct {
	Start string `bson:"start" json:"start"`
	End   string `bson:"end" json:"end"`
}

func parseClock(s string) (int, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil || len(s) != len(clockLayout) {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Minutes returns start and end as minutes from midnight.
func (s TimeSlot) Minutes() (int, int, error) {
	start, err := parseClock(s.Start)
	if err != nil {
		return 0, 0, utils.NewValidationError(err.Error(), "start")
	}
	end, err := parseClock(s.End)
	if err != nil {
		return 0, 0, utils.NewValidationError(err.Error(), "end")
	}
	return start, end, nil
}

// Validate requires two HH:MM values with start before end.
func (s TimeSlot) Validate() error {
	start, end, err := s.Minutes()
	if err != nil {
		return err
	}
	if start >= end {
		return utils.NewValidationError("slot start must be before end", "start", "end")
	}
	return nil
}

// Contains reports whether the wall-clock time of t falls inside the slot (end exclusive).
func (s TimeSlot) Contains(t time.Time) bool {
	start, end, err := s.Minutes()
	if err != nil {
		return false
	}
	m := t.Hour()*60 + t.Minute()
	return m >= start && m < end
}

func (s TimeSlot) String() string { return s.Start + "-" + s.End }

// WeekdayAvailability is one day of a worker's weekly schedule.
type WeekdayAvailability struct {
	Day       Weekday    `bson:"day" json:"day"`
	Available bool       `bson:"available" json:"available"`
	Slots     []TimeSlot `bson:"slots" json:"slots"`
}

// Availability holds exactly one entry per weekday.
type Availability struct {
	Weekdays []WeekdayAvailability `bson:"weekdays" json:"weekdays"`
}

// DefaultAvailability is Monday to Friday 09:00-17:00.
func DefaultAvailability() Availability {
	days := make([]WeekdayAvailability, 0, len(Weekdays))
	for _, d := range Weekdays {
		wa := WeekdayAvailability{Day: d, Slots: []TimeSlot{}}
		if d != Saturday && d != Sunday {
			wa.Available = true
			wa.Slots = []TimeSlot{{Start: "09:00", End: "17:00"}}
		}
		days = append(days, wa)
	}
	return Availability{Weekdays: days}
}

// Validate checks the seven days are present once each with valid, non-overlapping slots.
func (a Availability) Validate() error {
	if len(a.Weekdays) != len(Weekdays) {
		return utils.NewValidationError("availability must list all seven weekdays", "availability")
	}
	seen := make(map[Weekday]bool, len(Weekdays))
	for _, wa := range a.Weekdays {
		day := Weekday(strings.ToLower(string(wa.Day)))
		if !isWeekday(day) || seen[day] {
			return utils.NewValidationError(fmt.Sprintf("invalid or repeated weekday %q", wa.Day), "availability")
		}
		seen[day] = true
		if wa.Available && len(wa.Slots) == 0 {
			return utils.NewValidationError(fmt.Sprintf("%s is available but has no slots", day), "availability")
		}
		for i, s := range wa.Slots {
			if err := s.Validate(); err != nil {
				return err
			}
			start, end, _ := s.Minutes()
			for _, prev := range wa.Slots[:i] {
				ps, pe, _ := prev.Minutes()
				if start < pe && ps < end {
					return utils.NewValidationError(fmt.Sprintf("overlapping slots on %s", day), "availability")
				}
			}
		}
	}
	return nil
}

func isWeekday(d Weekday) bool {
	for _, w := range Weekdays {
		if w == d {
			return true
		}
	}
	return false
}

// Day returns the entry for a weekday.
func (a Availability) Day(d time.Weekday) (WeekdayAvailability, bool) {
	name := WeekdayOf(d)
	for _, wa := range a.Weekdays {
		if Weekday(strings.ToLower(string(wa.Day))) == name {
			return wa, true
		}
	}
	return WeekdayAvailability{}, false
}

// SlotsFor returns the slots offered on an available weekday.
func (a Availability) SlotsFor(d time.Weekday) []TimeSlot {
	wa, ok := a.Day(d)
	if !ok || !wa.Available {
		return nil
	}
	return wa.Slots
}

// Offers reports whether slot is one of the slots offered on date's weekday.
func (a Availability) Offers(date time.Time, slot TimeSlot) bool {
	for _, s := range a.SlotsFor(date.Weekday()) {
		if s == slot {
			return true
		}
	}
	return false
}

// AvailableAt reports whether t falls inside any slot of its weekday.
func (a Availability) AvailableAt(t time.Time) bool {
	for _, s := range a.SlotsFor(t.Weekday()) {
		if s.Contains(t) {
			return true
		}
	}
	return false
}

// Clone deep-copies the schedule.
func (a Availability) Clone() Availability {
	days := make([]WeekdayAvailability, len(a.Weekdays))
	for i, wa := range a.Weekdays {
		wa.Slots = append([]TimeSlot(nil), wa.Slots...)
		days[i] = wa
	}
	return Availability{Weekdays: days}
}
