package updates

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	updatesrepo "github.com/quintafc/team-sync/repos/updates"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
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
	r.GET("/posts", h.listHandler)
	r.POST("/posts", h.publishHandler)
}

type httpHandler struct {
	HTTPOptions
}

// listHandler always answers 200: remote failures already degraded to an
// empty list inside the service.
func (s *httpHandler) listHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"updates": s.Service.List(c.Request.Context())})
}

func (s *httpHandler) publishHandler(c *gin.Context) {
	var request updatesrepo.PublishRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	update, err := s.Service.Publish(c.Request.Context(), request)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, updatesrepo.ErrNotConfigured):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		}
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, gin.H{"update": update})
}
