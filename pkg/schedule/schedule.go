package schedule

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/GlebRadaev/payledger/internal/domain"
)

var weekdays = []rrule.Weekday{rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA}

// Rule builds the recurrence for a payout schedule, anchored at from.
func Rule(s domain.PayoutSchedule, from time.Time) (*rrule.RRule, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	loc, _ := s.Location()
	hour, minute, _ := s.Cutoff()

	opt := rrule.ROption{
		Dtstart:  from.In(loc).Truncate(time.Second),
		Byhour:   []int{hour},
		Byminute: []int{minute},
		Bysecond: []int{0},
	}
	switch s.Frequency {
	case domain.FrequencyDaily:
		opt.Freq = rrule.DAILY
	case domain.FrequencyWeekly:
		opt.Freq = rrule.WEEKLY
		opt.Byweekday = []rrule.Weekday{weekdays[s.DayOfWeek]}
	case domain.FrequencyMonthly:
		opt.Freq = rrule.MONTHLY
		opt.Bymonthday = []int{s.DayOfMonth}
	}

	rule, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, fmt.Errorf("build payout rule: %w", err)
	}
	return rule, nil
}

// Next returns the first payout cutoff strictly after t.
func Next(s domain.PayoutSchedule, t time.Time) (time.Time, error) {
	rule, err := Rule(s, t)
	if err != nil {
		return time.Time{}, err
	}
	next := rule.After(t, false)
	if next.IsZero() {
		return time.Time{}, fmt.Errorf("%w: schedule has no occurrence after %s", domain.ErrInvalidConfig, t.Format(time.RFC3339))
	}
	return next, nil
}
