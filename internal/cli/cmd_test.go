package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/shopfloor/internal/app"
	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/alexanderramin/shopfloor/internal/service"
	"github.com/alexanderramin/shopfloor/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const today = "2025-06-01"

// testApp wires a full App backed by an in-memory DB for CLI integration
// tests. The clock starts at noon on the fixture day.
func testApp(t *testing.T) (*App, *testutil.FixedClock) {
	t.Helper()
	clock := testutil.NewFixedClock(testutil.At(12, 0))
	shop := app.NewShop(testutil.NewTestDB(t), app.ShopConfig{
		Now:      clock.Now,
		Location: time.UTC,
	})
	return &App{
		Shop:          shop,
		IsInteractive: func() bool { return false },
		PollInterval:  time.Second,
	}, clock
}

func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// recordIDs returns the IDs of all stored records, oldest first.
func recordIDs(t *testing.T, a *App) []string {
	t.Helper()
	records, err := a.Shop.Records.List(context.Background(), service.RecordQuery{})
	require.NoError(t, err)
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	return ids
}

// --- clock ---

func TestClockCmd_InActiveOut(t *testing.T) {
	a, clock := testApp(t)

	out, err := executeCmd(t, a, "clock", "in", "e1", "--name", "Ana")
	require.NoError(t, err)
	assert.Contains(t, out, "e1 clocked in at 12:00.")

	out, err = executeCmd(t, a, "clock", "active")
	require.NoError(t, err)
	assert.Contains(t, out, "Ana (e1)")

	clock.Advance(90 * time.Minute)
	out, err = executeCmd(t, a, "clock", "out", "e1")
	require.NoError(t, err)
	assert.Contains(t, out, "1h 30m on "+today)

	out, err = executeCmd(t, a, "clock", "active")
	require.NoError(t, err)
	assert.Contains(t, out, "Nobody is clocked in.")
}

func TestClockCmd_InTwiceReportsExistingSession(t *testing.T) {
	a, clock := testApp(t)

	_, err := executeCmd(t, a, "clock", "in", "e1")
	require.NoError(t, err)
	clock.Advance(15 * time.Minute)

	out, err := executeCmd(t, a, "clock", "in", "e1")
	require.NoError(t, err)
	assert.Contains(t, out, "already clocked in since 12:00")
}

func TestClockCmd_OutWithoutSession(t *testing.T) {
	a, _ := testApp(t)

	_, err := executeCmd(t, a, "clock", "out", "ghost")
	require.Error(t, err)
	assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))
}

func TestClockCmd_ClientStart(t *testing.T) {
	a, _ := testApp(t)
	_, err := executeCmd(t, a, "clock", "in", "e1")
	require.NoError(t, err)

	out, err := executeCmd(t, a, "clock", "client-start", "e1", "--at", "11:30")
	require.NoError(t, err)
	assert.Contains(t, out, "set to 11:30")

	active, err := a.Shop.Sessions.GetActive(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.NotNil(t, active[0].ClientStartTime)
	assert.Equal(t, testutil.At(11, 30), active[0].ClientStartTime.UTC())

	out, err = executeCmd(t, a, "clock", "client-start", "e1", "--clear")
	require.NoError(t, err)
	assert.Contains(t, out, "cleared")

	_, err = executeCmd(t, a, "clock", "client-start", "e1")
	assert.Equal(t, domain.CodeValidation, domain.CodeOf(err))

	_, err = executeCmd(t, a, "clock", "client-start", "e1", "--at", "25:99")
	assert.Error(t, err)
}

// --- record ---

func TestRecordCmd_AddListEdit(t *testing.T) {
	a, _ := testApp(t)

	out, err := executeCmd(t, a, "record", "add", "--employee", "e1", "--name", "Ana", "--start", "09:00", "--end", "10:00")
	require.NoError(t, err)
	assert.Contains(t, out, "1h 00m for e1 on "+today)

	ids := recordIDs(t, a)
	require.Len(t, ids, 1)

	out, err = executeCmd(t, a, "record", "list", "--from", today, "--to", today)
	require.NoError(t, err)
	assert.Contains(t, out, ids[0][:8])
	assert.Contains(t, out, "manual")

	out, err = executeCmd(t, a, "record", "edit", ids[0][:8], "--duration", "1h30m")
	require.NoError(t, err)
	assert.Contains(t, out, "by 30m")
	assert.Len(t, recordIDs(t, a), 2)

	out, err = executeCmd(t, a, "record", "edit", ids[0], "--duration", "90m")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing to do")
	assert.Len(t, recordIDs(t, a), 2)
}

func TestRecordCmd_AddExplicitDuration(t *testing.T) {
	a, _ := testApp(t)

	out, err := executeCmd(t, a, "record", "add", "--employee", "e1", "--date", "2025-05-30",
		"--start", "09:00", "--end", "12:00", "--duration", "2h")
	require.NoError(t, err)
	assert.Contains(t, out, "2h 00m for e1 on 2025-05-30")
}

func TestRecordCmd_AddValidation(t *testing.T) {
	a, _ := testApp(t)

	_, err := executeCmd(t, a, "record", "add", "--employee", "e1", "--start", "09:00")
	assert.Equal(t, domain.CodeValidation, domain.CodeOf(err))

	_, err = executeCmd(t, a, "record", "add", "--employee", "e1", "--start", "10:00", "--end", "09:00")
	assert.Equal(t, domain.CodeValidation, domain.CodeOf(err))

	_, err = executeCmd(t, a, "record", "add", "--employee", "e1", "--date", "2025-02-30", "--start", "09:00", "--end", "10:00")
	assert.Error(t, err)

	_, err = executeCmd(t, a, "record", "add", "--start", "09:00", "--end", "10:00")
	assert.Error(t, err, "--employee is required")
}

func TestRecordCmd_AddToClosedDay(t *testing.T) {
	a, _ := testApp(t)
	_, err := executeCmd(t, a, "day", "close", "2025-05-31")
	require.NoError(t, err)

	_, err = executeCmd(t, a, "record", "add", "--employee", "e1", "--date", "2025-05-31", "--start", "09:00", "--end", "10:00")
	assert.Equal(t, domain.CodeDayClosed, domain.CodeOf(err))

	out, err := executeCmd(t, a, "record", "add", "--employee", "e1", "--date", "2025-05-31", "--start", "09:00", "--end", "10:00", "--override")
	require.NoError(t, err)
	assert.Contains(t, out, "override")
}

func TestRecordCmd_RemoveNeedsConfirmation(t *testing.T) {
	a, _ := testApp(t)
	_, err := executeCmd(t, a, "record", "add", "--employee", "e1", "--start", "09:00", "--end", "10:00")
	require.NoError(t, err)
	id := recordIDs(t, a)[0]

	_, err = executeCmd(t, a, "record", "remove", id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")

	a.IsInteractive = func() bool { return true }
	var asked string
	a.Confirm = func(title string) (bool, error) {
		asked = title
		return false, nil
	}
	out, err := executeCmd(t, a, "record", "remove", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted.")
	assert.Contains(t, asked, "Delete record")
	assert.Len(t, recordIDs(t, a), 1)

	a.Confirm = func(string) (bool, error) { return true, nil }
	out, err = executeCmd(t, a, "record", "rm", id[:8])
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted record")
	assert.Empty(t, recordIDs(t, a))
}

func TestRecordCmd_RemoveWithYes(t *testing.T) {
	a, _ := testApp(t)
	_, err := executeCmd(t, a, "record", "add", "--employee", "e1", "--start", "09:00", "--end", "10:00")
	require.NoError(t, err)
	id := recordIDs(t, a)[0]

	_, err = executeCmd(t, a, "record", "remove", id, "--yes")
	require.NoError(t, err)
	assert.Empty(t, recordIDs(t, a))
}

func TestRecordCmd_UnknownPrefix(t *testing.T) {
	a, _ := testApp(t)

	_, err := executeCmd(t, a, "record", "edit", "deadbeef", "--duration", "1h")
	assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))

	_, err = executeCmd(t, a, "record", "edit", "deadbeef")
	assert.Equal(t, domain.CodeValidation, domain.CodeOf(err))
}

// --- groups ---

func TestGroupsCmd_SetAddGet(t *testing.T) {
	a, _ := testApp(t)

	_, err := executeCmd(t, a, "groups", "set", "e1", "--standard", "5", "--recoverable", "2")
	require.NoError(t, err)

	out, err := executeCmd(t, a, "groups", "add", "e1", "--jewelry", "3", "--standard", "1")
	require.NoError(t, err)
	assert.Regexp(t, `total\s+11`, out)

	out, err = executeCmd(t, a, "groups", "get", "e1", "--date", today)
	require.NoError(t, err)
	assert.Regexp(t, `standard\s+6`, out)
	assert.Regexp(t, `jewelry\s+3`, out)
	assert.Regexp(t, `recoverable\s+2`, out)
}

func TestGroupsCmd_Validation(t *testing.T) {
	a, _ := testApp(t)

	_, err := executeCmd(t, a, "groups", "set", "e1")
	assert.Equal(t, domain.CodeValidation, domain.CodeOf(err))

	_, err = executeCmd(t, a, "groups", "set", "e1", "--standard", "-1")
	assert.Equal(t, domain.CodeValidation, domain.CodeOf(err))

	_, err = executeCmd(t, a, "groups", "get", "e1", "--date", "2025-13-01")
	assert.Error(t, err)

	_, err = executeCmd(t, a, "groups", "set", "e1", "--standard", "1", "--override")
	assert.Error(t, err, "set does not take --override")
}

func TestGroupsCmd_ClosedDayOverride(t *testing.T) {
	a, _ := testApp(t)
	_, err := executeCmd(t, a, "day", "close", "2025-05-31")
	require.NoError(t, err)

	_, err = executeCmd(t, a, "groups", "add", "e1", "--date", "2025-05-31", "--standard", "1")
	assert.Equal(t, domain.CodeDayClosed, domain.CodeOf(err))

	_, err = executeCmd(t, a, "groups", "add", "e1", "--date", "2025-05-31", "--standard", "1", "--override")
	require.NoError(t, err)
}

// --- day ---

func TestDayCmd_CloseStateSnapshotReopen(t *testing.T) {
	a, clock := testApp(t)
	ctx := context.Background()

	clock.T = testutil.At(9, 0)
	_, err := a.Shop.Sessions.Start(ctx, "e1", "Ana")
	require.NoError(t, err)
	clock.T = testutil.At(11, 0)
	_, err = a.Shop.Sessions.End(ctx, "e1")
	require.NoError(t, err)
	_, err = executeCmd(t, a, "groups", "set", "e1", "--standard", "4")
	require.NoError(t, err)

	out, err := executeCmd(t, a, "day", "close", "--observation", "quiet morning")
	require.NoError(t, err)
	assert.Contains(t, out, "CLOSED DAY "+today)
	assert.Contains(t, out, "quiet morning")
	assert.Contains(t, out, "Ana (e1)")

	out, err = executeCmd(t, a, "day", "state", today)
	require.NoError(t, err)
	assert.Contains(t, out, "CLOSED")

	out, err = executeCmd(t, a, "day", "closed")
	require.NoError(t, err)
	assert.Contains(t, out, today)

	out, err = executeCmd(t, a, "day", "snapshot", today)
	require.NoError(t, err)
	assert.Contains(t, out, "quiet morning")

	_, err = executeCmd(t, a, "day", "reopen", today)
	assert.Equal(t, domain.CodeValidation, domain.CodeOf(err))

	out, err = executeCmd(t, a, "day", "reopen", today, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "reopened")

	out, err = executeCmd(t, a, "day", "state")
	require.NoError(t, err)
	assert.Contains(t, out, "OPEN")

	_, err = executeCmd(t, a, "day", "reopen", today, "--yes")
	assert.Equal(t, domain.CodeInvalidState, domain.CodeOf(err))
}

func TestDayCmd_Incident(t *testing.T) {
	a, _ := testApp(t)

	out, err := executeCmd(t, a, "day", "incident")
	require.NoError(t, err)
	assert.Contains(t, out, "No incident recorded")

	_, err = executeCmd(t, a, "day", "incident", "--set", "till jammed")
	require.NoError(t, err)

	out, err = executeCmd(t, a, "day", "incident", today)
	require.NoError(t, err)
	assert.Contains(t, out, "till jammed")
}

func TestDayCmd_EmptyLists(t *testing.T) {
	a, _ := testApp(t)

	out, err := executeCmd(t, a, "day", "closed")
	require.NoError(t, err)
	assert.Contains(t, out, "No closed days.")

	_, err = executeCmd(t, a, "day", "snapshot", today)
	assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))

	_, err = executeCmd(t, a, "day", "state", "06/01/2025")
	assert.Error(t, err)
}

// --- report ---

func TestReportCmd_DayRangeMonth(t *testing.T) {
	a, _ := testApp(t)
	_, err := executeCmd(t, a, "record", "add", "--employee", "e1", "--name", "Ana", "--start", "09:00", "--end", "11:00")
	require.NoError(t, err)
	_, err = executeCmd(t, a, "groups", "set", "e1", "--standard", "5")
	require.NoError(t, err)

	out, err := executeCmd(t, a, "report", "day")
	require.NoError(t, err)
	assert.Contains(t, out, "REPORT "+today)
	assert.Contains(t, out, "Ana (e1)")
	assert.Contains(t, out, "2.5")

	out, err = executeCmd(t, a, "report", "range", "--from", "2025-05-25", "--to", today)
	require.NoError(t, err)
	assert.Contains(t, out, "2025-05-25 → "+today)

	out, err = executeCmd(t, a, "report", "month")
	require.NoError(t, err)
	assert.Contains(t, out, "2025-06-01 → 2025-06-30")

	_, err = executeCmd(t, a, "report", "month", "2025-6")
	assert.Equal(t, domain.CodeValidation, domain.CodeOf(err))

	_, err = executeCmd(t, a, "report", "range", "--from", today)
	assert.Error(t, err)
}

// --- watch ---

func TestWatchCmd_OnceWhenNotInteractive(t *testing.T) {
	a, _ := testApp(t)
	_, err := executeCmd(t, a, "clock", "in", "e1", "--name", "Ana")
	require.NoError(t, err)

	out, err := executeCmd(t, a, "watch")
	require.NoError(t, err)
	assert.Contains(t, out, today)
	assert.Contains(t, out, "OPEN")
	assert.Contains(t, out, "Ana (e1)")

	_, err = executeCmd(t, a, "watch", "--once", "--interval", "10ms")
	assert.Equal(t, domain.CodeValidation, domain.CodeOf(err))
}
