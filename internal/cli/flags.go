package cli

import (
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/spf13/pflag"
)

// dateValue is a YYYY-MM-DD flag. Empty means "today" and is resolved when
// the command runs.
type dateValue struct {
	target *string
}

var _ pflag.Value = (*dateValue)(nil)

func newDateValue(target *string) *dateValue {
	return &dateValue{target: target}
}

func (d *dateValue) String() string {
	if d.target == nil {
		return ""
	}
	return *d.target
}

func (d *dateValue) Set(s string) error {
	if err := domain.ValidateDate(s); err != nil {
		return err
	}
	*d.target = s
	return nil
}

func (d *dateValue) Type() string { return "date" }

// clockValue is a local time of day, HH:MM.
type clockValue struct {
	hour, minute int
	set          bool
}

var _ pflag.Value = (*clockValue)(nil)

func (c *clockValue) String() string {
	if !c.set {
		return ""
	}
	return strconv.Itoa(c.hour) + ":" + pad2(c.minute)
}

func (c *clockValue) Set(s string) error {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return domain.NewValidationError("time %q must use HH:MM format", s)
	}
	c.hour, c.minute, c.set = t.Hour(), t.Minute(), true
	return nil
}

func (c *clockValue) Type() string { return "HH:MM" }

// On returns the instant of this time of day on date in loc.
func (c *clockValue) On(date string, loc *time.Location) (time.Time, error) {
	start, _, err := domain.DayBounds(date, loc)
	if err != nil {
		return time.Time{}, domain.NewValidationError("%v", err)
	}
	return time.Date(start.Year(), start.Month(), start.Day(), c.hour, c.minute, 0, 0, loc), nil
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// resolveDate substitutes today for an unset date flag.
func (a *App) resolveDate(date string) string {
	if date == "" {
		return a.Shop.Today()
	}
	return date
}
