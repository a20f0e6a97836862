package httpapi

import (
	"net/http"

	"github.com/alexanderramin/shopfloor/internal/app"
	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/alexanderramin/shopfloor/internal/service"
	"github.com/gin-gonic/gin"
)

// GET /api/sessions
func (h *handler) listSessions(c *gin.Context) {
	sessions, err := h.shop.Sessions.GetActive(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.NewSessionViews(sessions, h.shop.Now()))
}

// POST /api/sessions  body: {"employeeId":"...","employeeName":"..."}
func (h *handler) startSession(c *gin.Context) {
	var req app.StartSessionRequest
	if !h.bind(c, &req) {
		return
	}
	sess, err := h.shop.Sessions.Start(c.Request.Context(), req.EmployeeID, req.EmployeeName)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.NewSessionView(sess, h.shop.Now()))
}

// POST /api/sessions/:employeeId/end
func (h *handler) endSession(c *gin.Context) {
	rec, err := h.shop.Sessions.End(c.Request.Context(), c.Param("employeeId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.NewRecordView(rec))
}

// PUT /api/sessions/:employeeId/client-start  body: {"timestamp":"..."|null}
func (h *handler) updateClientStart(c *gin.Context) {
	var req app.ClientStartRequest
	if !h.bind(c, &req) {
		return
	}
	sess, err := h.shop.Sessions.UpdateClientStart(c.Request.Context(), c.Param("employeeId"), req.Timestamp)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.NewSessionView(sess, h.shop.Now()))
}

// GET /api/records?from=&to=&employeeId=
func (h *handler) listRecords(c *gin.Context) {
	recs, err := h.shop.Records.List(c.Request.Context(), service.RecordQuery{
		From:       c.Query("from"),
		To:         c.Query("to"),
		EmployeeID: c.Query("employeeId"),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.NewRecordViews(recs))
}

func (h *handler) getRecord(c *gin.Context) {
	rec, err := h.shop.Records.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.NewRecordView(rec))
}

// POST /api/records
func (h *handler) addRecord(c *gin.Context) {
	var req app.AddRecordRequest
	if !h.bind(c, &req) {
		return
	}
	rec, err := h.shop.Records.Add(c.Request.Context(), req.Record(), req.Override)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, app.NewRecordView(rec))
}

// PATCH /api/records/:id/duration  body: {"durationSeconds":N,"override":bool}
func (h *handler) editDuration(c *gin.Context) {
	var req app.EditDurationRequest
	if !h.bind(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(c, err)
		return
	}
	rec, err := h.shop.Records.EditDuration(c.Request.Context(), c.Param("id"), *req.DurationSeconds, req.Override)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.NewRecordView(rec))
}

// DELETE /api/records/:id?confirm=true
func (h *handler) deleteRecord(c *gin.Context) {
	ok, err := confirmed(c)
	if err == nil {
		err = app.RequireConfirmation(ok)
	}
	if err == nil {
		err = h.shop.Records.Delete(c.Request.Context(), c.Param("id"))
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/groups/:employeeId/:date
func (h *handler) getGroups(c *gin.Context) {
	emp, date := c.Param("employeeId"), c.Param("date")
	g, err := h.shop.Groups.Get(c.Request.Context(), emp, date)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.NewGroupsView(emp, date, g))
}

// PATCH /api/groups/:employeeId/:date  body: {"mode":"set"|"add","counts":{...}|N,"override":bool}
func (h *handler) writeGroups(c *gin.Context) {
	var req app.GroupWriteRequest
	if !h.bind(c, &req) {
		return
	}
	patch, err := req.Patch()
	if err != nil {
		h.fail(c, err)
		return
	}

	ctx := c.Request.Context()
	emp, date := c.Param("employeeId"), c.Param("date")
	var g domain.GroupCount
	if req.Mode == domain.MergeAdd {
		g, err = h.shop.Groups.Add(ctx, emp, date, patch, req.Override)
	} else {
		if req.Override {
			h.fail(c, domain.NewValidationError("override is only accepted with mode %q", domain.MergeAdd))
			return
		}
		g, err = h.shop.Groups.Patch(ctx, emp, date, patch)
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.NewGroupsView(emp, date, g))
}

// GET /api/days/closed
func (h *handler) listClosedDays(c *gin.Context) {
	dates, err := h.shop.Days.ListClosed(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dates)
}

// GET /api/days/:date
func (h *handler) dayState(c *gin.Context) {
	date := c.Param("date")
	state, err := h.shop.Days.State(c.Request.Context(), date)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "state": state})
}

// POST /api/days/:date/close  body: {"observation":"..."}
func (h *handler) closeDay(c *gin.Context) {
	var req app.CloseDayRequest
	if _, err := bindOptional(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	snap, err := h.shop.Days.Close(c.Request.Context(), c.Param("date"), req.Observation)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.writeSnapshot(c, snap)
}

// POST /api/days/:date/reopen?confirm=true
func (h *handler) reopenDay(c *gin.Context) {
	ok, err := confirmed(c)
	if err == nil {
		err = app.RequireConfirmation(ok)
	}
	if err == nil {
		err = h.shop.Days.Reopen(c.Request.Context(), c.Param("date"))
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": c.Param("date"), "state": domain.DayOpen})
}

// GET /api/days/:date/snapshot
func (h *handler) snapshot(c *gin.Context) {
	snap, err := h.shop.Days.GetSnapshot(c.Request.Context(), c.Param("date"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.writeSnapshot(c, snap)
}

func (h *handler) writeSnapshot(c *gin.Context, snap *domain.ClosedDaySnapshot) {
	view, err := app.NewSnapshotView(snap)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GET /api/days/:date/incident
func (h *handler) getIncident(c *gin.Context) {
	date := c.Param("date")
	text, err := h.shop.Days.GetIncident(c.Request.Context(), date)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "text": text})
}

// PUT /api/days/:date/incident  body: {"text":"..."}
func (h *handler) setIncident(c *gin.Context) {
	var req app.IncidentRequest
	if !h.bind(c, &req) {
		return
	}
	date := c.Param("date")
	if err := h.shop.Days.SetIncident(c.Request.Context(), date, req.Text); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "text": req.Text})
}

// GET /api/reports/day/:date
func (h *handler) dayReport(c *gin.Context) {
	res, err := h.shop.Reports.Day(c.Request.Context(), c.Param("date"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.NewReportView(res))
}

// GET /api/reports/range?from=&to=
func (h *handler) rangeReport(c *gin.Context) {
	res, err := h.shop.Reports.Range(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.NewReportView(res))
}

// GET /api/reports/month/:month
func (h *handler) monthReport(c *gin.Context) {
	res, err := h.shop.Reports.Month(c.Request.Context(), c.Param("month"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.NewReportView(res))
}
