package dashboard

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	timehelper "github.com/quintafc/team-sync/pkg/timeHelper"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	DELETE(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The session we provide the HTTP transport for.
	Service *Session

	// Router for the read-only routes.
	Router Router

	// Router for the mutating routes; expected to carry the admin
	// access-code middleware.
	AdminRouter Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	h := &httpHandler{opts}

	r := opts.Router
	r.GET("/state", h.stateHandler)
	r.GET("/toasts", h.toastsHandler)
	r.GET("/export", h.exportHandler)

	a := opts.AdminRouter
	a.POST("/import", h.importHandler)
	a.POST("/members", h.addMemberHandler)
	a.POST("/members/:member_id/payment", h.updatePaymentHandler)
	a.POST("/members/:member_id/payment-status", h.paymentStatusHandler)
	a.POST("/absences", h.addAbsenceHandler)
	a.DELETE("/absences", h.removeAbsenceHandler)
	a.POST("/events", h.addEventHandler)
	a.DELETE("/events/:event_id", h.removeEventHandler)
	a.POST("/cash", h.addCashEntryHandler)
	a.DELETE("/cash/:entry_id", h.removeCashEntryHandler)
	a.POST("/extra-players", h.addExtraPlayerHandler)
	a.DELETE("/extra-players/:name", h.removeExtraPlayerHandler)
}

type httpHandler struct {
	HTTPOptions
}

// fail maps service errors onto transport codes: a declined capability is
// 403, a missing record 404, anything else 500.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrViewerMode):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
	}
	c.Abort()
}

func (s *httpHandler) stateHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"data":   s.Service.Snapshot(),
		"status": s.Service.Status(),
	})
}

func (s *httpHandler) toastsHandler(c *gin.Context) {
	toasts := s.Service.Toasts()
	if toasts == nil {
		toasts = []Toast{}
	}
	c.JSON(http.StatusOK, gin.H{"toasts": toasts})
}

func (s *httpHandler) exportHandler(c *gin.Context) {
	raw, err := s.Service.Export()
	if err != nil {
		fail(c, err)
		return
	}
	filename := fmt.Sprintf("team-dashboard-backup-%s.json", timehelper.GetTodaysDateString())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/json", raw)
}

func (s *httpHandler) importHandler(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}
	if err := s.Service.ImportData(raw); err != nil {
		if errors.Is(err, ErrViewerMode) {
			fail(c, err)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid backup file"})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "backup restored"})
}

func (s *httpHandler) addMemberHandler(c *gin.Context) {
	var request AddMemberRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	member, err := s.Service.AddMember(request.Name, request.MonthlyPayment, request.IsGoalkeeper)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"member": member})
}

func (s *httpHandler) updatePaymentHandler(c *gin.Context) {
	var request UpdatePaymentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	if err := s.Service.UpdateMemberPayment(c.Param("member_id"), request.MonthlyPayment); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payment updated"})
}

func (s *httpHandler) paymentStatusHandler(c *gin.Context) {
	var request PaymentStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	if err := s.Service.SetPaymentStatus(c.Param("member_id"), request.Month, *request.Paid); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payment status updated"})
}

func (s *httpHandler) addAbsenceHandler(c *gin.Context) {
	var request AddAbsenceRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	if err := s.Service.AddAbsence(request.MemberID, request.Date, request.Reason); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "absence recorded"})
}

func (s *httpHandler) removeAbsenceHandler(c *gin.Context) {
	var request RemoveAbsenceRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	if err := s.Service.RemoveAbsence(request.MemberID, request.Date); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "absence removed"})
}

func (s *httpHandler) addEventHandler(c *gin.Context) {
	var request AddEventRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	event, err := s.Service.AddEvent(request.Title, request.Date, request.Type, request.Description)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": event})
}

func (s *httpHandler) removeEventHandler(c *gin.Context) {
	if err := s.Service.RemoveEvent(c.Param("event_id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "event removed"})
}

func (s *httpHandler) addCashEntryHandler(c *gin.Context) {
	var request AddCashEntryRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	entry, err := s.Service.AddCashEntry(request.PlayerName, request.Amount, request.Date, request.Description)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

func (s *httpHandler) removeCashEntryHandler(c *gin.Context) {
	if err := s.Service.RemoveCashEntry(c.Param("entry_id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cash entry removed"})
}

func (s *httpHandler) addExtraPlayerHandler(c *gin.Context) {
	var request ExtraPlayerRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	if err := s.Service.AddExtraPlayer(request.Name); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "extra player added"})
}

func (s *httpHandler) removeExtraPlayerHandler(c *gin.Context) {
	if err := s.Service.RemoveExtraPlayer(c.Param("name")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "extra player removed"})
}
