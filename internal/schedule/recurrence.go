// Package schedule holds the pure recurrence rules: period windows,
// period keys, and statutory due dates per category.
package schedule

import (
	"fmt"
	"time"

	"filingdesk/internal/domain"
)

// Period is the concrete window a recurrence pattern resolves to for a
// point in time. Key uniquely identifies the period for idempotency
// ("2026-08" for monthly, "2026" for yearly).
type Period struct {
	Start time.Time
	End   time.Time
	Key   string
}

// PeriodFor resolves the period window containing asOf for a pattern.
// The custom pattern has no generation rule and returns
// domain.ErrPatternNotSupported.
func PeriodFor(pattern domain.RecurrencePattern, asOf time.Time) (*Period, error) {
	switch pattern {
	case domain.PatternMonthly:
		start := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location())
		end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
		return &Period{Start: start, End: end, Key: start.Format("2006-01")}, nil
	case domain.PatternYearly:
		start := time.Date(asOf.Year(), time.January, 1, 0, 0, 0, 0, asOf.Location())
		end := time.Date(asOf.Year(), time.December, 31, 23, 59, 59, int(time.Second-time.Nanosecond), asOf.Location())
		return &Period{Start: start, End: end, Key: start.Format("2006")}, nil
	case domain.PatternCustom:
		return nil, domain.ErrPatternNotSupported
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrPatternNotSupported, pattern)
	}
}

// DueDate computes when an obligation generated for asOf falls due.
// Monthly obligations are due on the last day of the month regardless of
// category; yearly obligations follow the statutory date for the
// category (ITR July 31, ROC September 30, everything else December 31).
func DueDate(pattern domain.RecurrencePattern, category domain.TemplateCategory, asOf time.Time) (time.Time, error) {
	switch pattern {
	case domain.PatternMonthly:
		return LastDayOfMonth(asOf), nil
	case domain.PatternYearly:
		switch category {
		case domain.CategoryITR:
			return time.Date(asOf.Year(), time.July, 31, 0, 0, 0, 0, asOf.Location()), nil
		case domain.CategoryROC:
			return time.Date(asOf.Year(), time.September, 30, 0, 0, 0, 0, asOf.Location()), nil
		default:
			return time.Date(asOf.Year(), time.December, 31, 0, 0, 0, 0, asOf.Location()), nil
		}
	default:
		return time.Time{}, domain.ErrPatternNotSupported
	}
}

// LastDayOfMonth returns midnight on the final calendar day of t's month.
func LastDayOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location())
}
