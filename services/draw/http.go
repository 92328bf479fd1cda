package draw

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
}

// DrawRequest selects the participants for a lottery run.
type DrawRequest struct {
	MemberIDs    []string `json:"memberIds"`
	ExtraPlayers []string `json:"extraPlayers"`
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provide the HTTP transport for.
	Service *Service

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.POST("/teams", h.drawTeamsHandler)
	r.GET("/history", h.historyHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (s *httpHandler) drawTeamsHandler(c *gin.Context) {
	var request DrawRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	result, err := s.Service.Draw(request.MemberIDs, request.ExtraPlayers)
	if err != nil {
		if errors.Is(err, ErrNotEnoughFieldPlayers) || errors.Is(err, ErrNotEnoughGoalkeepers) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		}
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *httpHandler) historyHandler(c *gin.Context) {
	history, counts := s.Service.History()
	c.JSON(http.StatusOK, gin.H{
		"drawHistory":    history,
		"teamDrawCounts": counts,
	})
}
