package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/shopfloor/internal/app"
	"github.com/alexanderramin/shopfloor/internal/domain"
)

func FormatSessions(sessions []app.SessionView, now time.Time, loc *time.Location) string {
	if len(sessions) == 0 {
		return Dim("Nobody is clocked in.") + "\n"
	}
	headers := []string{"EMPLOYEE", "STARTED", "ELAPSED", "CLIENT"}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		client := Dim("--")
		if s.ClientStartTime != nil {
			client = Clock(*s.ClientStartTime, loc)
		}
		rows = append(rows, []string{
			employeeLabel(s.EmployeeID, s.EmployeeName),
			Clock(s.StartTime, loc) + " " + Dim("("+Since(s.StartTime, now)+")"),
			FormatSeconds(s.ElapsedSeconds),
			client,
		})
	}
	return RenderBox("Clocked in", RenderTable(headers, rows, 2))
}

func FormatRecords(records []app.RecordView, loc *time.Location) string {
	if len(records) == 0 {
		return Dim("No records found.") + "\n"
	}
	headers := []string{"ID", "DATE", "EMPLOYEE", "KIND", "START", "END", "DURATION", ""}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		var notes []string
		if r.AdjustsID != "" {
			notes = append(notes, "adjusts "+TruncID(r.AdjustsID))
		}
		if r.ArchivedOverride {
			notes = append(notes, StyleYellow.Render("override"))
		}
		start, end := Clock(r.StartTime, loc), Clock(r.EndTime, loc)
		if r.Kind == domain.RecordAdjustment {
			start, end = Dim("--"), Dim("--")
		}
		rows = append(rows, []string{
			TruncID(r.ID),
			r.Date,
			employeeLabel(r.EmployeeID, r.EmployeeName),
			KindLabel(r.Kind),
			start,
			end,
			FormatSeconds(r.DurationSeconds),
			strings.Join(notes, " "),
		})
	}
	return RenderBox("Records", RenderTable(headers, rows, 6))
}

func FormatGroups(v app.GroupsView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Bold(v.EmployeeID), Dim(v.Date))
	for _, c := range domain.GroupCategories {
		fmt.Fprintf(&b, "  %-12s %s\n", string(c), FormatCount(v.Counts.Get(c)))
	}
	fmt.Fprintf(&b, "  %-12s %s\n", "total", Bold(FormatCount(v.Total)))
	return b.String()
}

func FormatReport(v app.ReportView) string {
	title := "Report " + v.From
	if v.To != v.From {
		title += " → " + v.To
	}

	var b strings.Builder
	if len(v.Employees) == 0 {
		b.WriteString(Dim("No activity in this period.") + "\n")
	} else {
		headers := []string{"EMPLOYEE", "WORKED", "STD", "JEW", "REC", "TOTAL", "GROUPS/H", "DAYS"}
		rows := make([][]string, 0, len(v.Employees))
		for _, e := range v.Employees {
			name := employeeLabel(e.EmployeeID, e.EmployeeName)
			if e.ActiveNow {
				name += " " + StyleGreen.Render("●")
			}
			rows = append(rows, []string{
				name,
				FormatSeconds(e.TotalSeconds),
				FormatCount(e.Groups.Standard),
				FormatCount(e.Groups.Jewelry),
				FormatCount(e.Groups.Recoverable),
				FormatCount(e.Groups.Total()),
				FormatRate(e.GroupsPerHour),
				fmt.Sprintf("%d", e.ActiveDays),
			})
		}
		b.WriteString(RenderTable(headers, rows, 1, 2, 3, 4, 5, 6, 7))
	}

	s := v.Shop
	b.WriteString("\n" + Header("Shop") + "\n")
	fmt.Fprintf(&b, "  open time       %s\n", FormatSeconds(s.ActiveShopSeconds))
	fmt.Fprintf(&b, "  worked time     %s\n", FormatSeconds(s.TotalSeconds))
	fmt.Fprintf(&b, "  peak staff      %d\n", s.MaxConcurrent)
	fmt.Fprintf(&b, "  groups          %s\n", FormatCount(s.TotalGroups.Total()))
	fmt.Fprintf(&b, "  groups/hour     %s\n", FormatRate(s.GroupsPerHour))
	return RenderBox(title, b.String())
}

func FormatSnapshot(v app.SnapshotView, loc *time.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "closed at     %s\n", v.ClosedAt.In(loc).Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "groups        %s\n", FormatCount(v.TotalGroups))
	fmt.Fprintf(&b, "peak staff    %d\n", v.MaxConcurrent)
	if v.Observation != "" {
		fmt.Fprintf(&b, "observation   %s\n", v.Observation)
	}
	if len(v.Users) > 0 {
		headers := []string{"EMPLOYEE", "WORKED", "GROUPS", "GROUPS/H"}
		rows := make([][]string, 0, len(v.Users))
		for _, u := range v.Users {
			rows = append(rows, []string{
				employeeLabel(u.EmployeeID, u.EmployeeName),
				FormatSeconds(u.TotalSeconds),
				FormatCount(u.Groups.Total()),
				FormatRate(u.GroupsPerHour),
			})
		}
		b.WriteString("\n" + RenderTable(headers, rows, 1, 2, 3))
	}
	return RenderBox("Closed day "+v.Date, b.String())
}

// FormatDashboard renders the live view shown by watch.
func FormatDashboard(v app.DashboardView, loc *time.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  %s\n\n", Bold(v.Date), DayStateBadge(v.State), Dim("updated "+Clock(v.GeneratedAt, loc)))
	b.WriteString(FormatSessions(v.Active, v.GeneratedAt, loc))
	b.WriteString("\n")
	b.WriteString(FormatReport(v.Report))
	if v.Incident != "" {
		b.WriteString("\n" + StyleYellow.Render("! "+v.Incident) + "\n")
	}
	return b.String()
}

func employeeLabel(id, name string) string {
	if name == "" || name == id {
		return id
	}
	return name + " " + Dim("("+id+")")
}
