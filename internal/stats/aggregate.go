package stats

import (
	"sort"
	"time"

	"github.com/alexanderramin/shopfloor/internal/domain"
)

// Input is everything the aggregator needs for a date range. Records and
// group entries outside Dates are ignored, so callers may over-fetch.
type Input struct {
	Dates   []string
	Today   string
	Now     time.Time
	Records []*domain.CompletedRecord
	Active  []*domain.WorkSession
	Groups  []*domain.DailyGroups
}

type EmployeeStats struct {
	EmployeeID    string
	EmployeeName  string
	TotalSeconds  float64
	Groups        domain.GroupCount
	GroupsPerHour float64
	ActiveDays    int
	ActiveNow     bool
}

type DayStats struct {
	Date              string
	ActiveShopSeconds float64
	MaxConcurrent     int
	PeakAt            time.Time
	TotalGroups       int
}

type ShopStats struct {
	ActiveShopSeconds float64
	MaxConcurrent     int
	TotalSeconds      float64
	TotalGroups       domain.GroupCount
	GroupsPerHour     float64
}

type Result struct {
	From      string
	To        string
	Employees []EmployeeStats
	Shop      ShopStats
	Days      []DayStats
}

// GroupsPerHour divides groups by worked hours, reporting 0 when no time
// was logged.
func GroupsPerHour(groups int, seconds float64) float64 {
	hours := seconds / 3600
	if hours <= 0 {
		return 0
	}
	return float64(groups) / hours
}

type employeeAcc struct {
	stats      EmployeeStats
	activeDays map[string]bool
}

// Aggregate computes per-employee and shop-wide statistics over in.Dates.
// Active sessions only count when in.Today is one of the dates; a past day
// sees completed records alone.
func Aggregate(in Input) Result {
	res := Result{}
	if len(in.Dates) == 0 {
		return res
	}
	res.From, res.To = in.Dates[0], in.Dates[len(in.Dates)-1]

	inRange := make(map[string]bool, len(in.Dates))
	for _, d := range in.Dates {
		inRange[d] = true
	}

	accs := make(map[string]*employeeAcc)
	acc := func(id, name string) *employeeAcc {
		a, ok := accs[id]
		if !ok {
			a = &employeeAcc{
				stats:      EmployeeStats{EmployeeID: id},
				activeDays: make(map[string]bool),
			}
			accs[id] = a
		}
		if a.stats.EmployeeName == "" {
			a.stats.EmployeeName = name
		}
		return a
	}

	intervalsByDay := make(map[string][]Interval)
	legacyGroups := make(map[string]int)

	for _, r := range in.Records {
		if !inRange[r.Date] {
			continue
		}
		a := acc(r.EmployeeID, r.EmployeeName)
		a.stats.TotalSeconds += r.DurationSeconds
		a.activeDays[r.Date] = true
		if r.IsInterval() {
			// Rows stored without wall-clock times still count toward totals
			// but have no place on the concurrency timeline.
			if !r.StartTime.IsZero() && !r.EndTime.IsZero() {
				intervalsByDay[r.Date] = append(intervalsByDay[r.Date], Interval{Start: r.StartTime, End: r.EndTime})
			}
			legacyGroups[domain.GroupKey(r.EmployeeID, r.Date)] += r.Groups
		}
	}

	if inRange[in.Today] {
		for _, s := range in.Active {
			a := acc(s.EmployeeID, s.EmployeeName)
			a.stats.EmployeeName = firstNonEmpty(s.EmployeeName, a.stats.EmployeeName)
			a.stats.TotalSeconds += s.Elapsed(in.Now).Seconds()
			a.stats.ActiveNow = true
			a.activeDays[in.Today] = true
			intervalsByDay[in.Today] = append(intervalsByDay[in.Today], Interval{Start: s.StartTime, End: in.Now})
		}
	}

	groupsByDay := make(map[string]int)
	seenGroups := make(map[string]bool)
	for _, g := range in.Groups {
		if !inRange[g.Date] {
			continue
		}
		key := domain.GroupKey(g.EmployeeID, g.Date)
		seenGroups[key] = true
		a := acc(g.EmployeeID, "")
		a.stats.Groups = a.stats.Groups.Plus(g.Counts)
		groupsByDay[g.Date] += g.Counts.Total()
		if g.Counts.Total() > 0 {
			a.activeDays[g.Date] = true
		}
	}
	for _, r := range in.Records {
		key := domain.GroupKey(r.EmployeeID, r.Date)
		n, ok := legacyGroups[key]
		if !ok || seenGroups[key] {
			continue
		}
		// Consume once per key; several records may share it.
		delete(legacyGroups, key)
		a := accs[r.EmployeeID]
		a.stats.Groups.Standard += n
		groupsByDay[r.Date] += n
		if n > 0 {
			a.activeDays[r.Date] = true
		}
	}

	for _, d := range in.Dates {
		ivs := intervalsByDay[d]
		peak := PeakConcurrency(ivs)
		day := DayStats{
			Date:              d,
			ActiveShopSeconds: ActiveDuration(ivs).Seconds(),
			MaxConcurrent:     peak.Count,
			PeakAt:            peak.At,
			TotalGroups:       groupsByDay[d],
		}
		res.Days = append(res.Days, day)
		res.Shop.ActiveShopSeconds += day.ActiveShopSeconds
		if day.MaxConcurrent > res.Shop.MaxConcurrent {
			res.Shop.MaxConcurrent = day.MaxConcurrent
		}
	}

	for _, a := range accs {
		if a.stats.TotalSeconds < 0 {
			a.stats.TotalSeconds = 0
		}
		a.stats.EmployeeName = firstNonEmpty(a.stats.EmployeeName, a.stats.EmployeeID)
		a.stats.ActiveDays = len(a.activeDays)
		a.stats.GroupsPerHour = GroupsPerHour(a.stats.Groups.Total(), a.stats.TotalSeconds)
		res.Employees = append(res.Employees, a.stats)

		res.Shop.TotalSeconds += a.stats.TotalSeconds
		res.Shop.TotalGroups = res.Shop.TotalGroups.Plus(a.stats.Groups)
	}
	res.Shop.GroupsPerHour = GroupsPerHour(res.Shop.TotalGroups.Total(), res.Shop.TotalSeconds)

	sort.Slice(res.Employees, func(i, j int) bool {
		if res.Employees[i].EmployeeName != res.Employees[j].EmployeeName {
			return res.Employees[i].EmployeeName < res.Employees[j].EmployeeName
		}
		return res.Employees[i].EmployeeID < res.Employees[j].EmployeeID
	})

	return res
}

// ReportLines converts per-employee stats into the lines archived with a
// closed-day snapshot.
func ReportLines(employees []EmployeeStats) []domain.ReportLine {
	lines := make([]domain.ReportLine, 0, len(employees))
	for _, e := range employees {
		lines = append(lines, domain.ReportLine{
			EmployeeID:    e.EmployeeID,
			EmployeeName:  e.EmployeeName,
			TotalSeconds:  e.TotalSeconds,
			Groups:        e.Groups,
			GroupsPerHour: e.GroupsPerHour,
		})
	}
	return lines
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
