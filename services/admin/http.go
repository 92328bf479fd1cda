package admin

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
}

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provide the HTTP transport for.
	Service *AdminService

	// Router for the open routes (login).
	Router Router

	// Router for routes that require an admin access code.
	AdminRouter Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	h := &httpHandler{opts}

	opts.Router.POST("/login", h.loginHandler)

	a := opts.AdminRouter
	a.POST("/logout", h.logoutHandler)
	a.POST("/clear", h.clearHandler)
	a.POST("/force-sync", h.forceSyncHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (s *httpHandler) loginHandler(c *gin.Context) {
	var request LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	code, err := s.Service.Login(request.Password)
	if err != nil {
		if errors.Is(err, ErrWrongPassword) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		}
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, gin.H{"accessCode": code})
}

func (s *httpHandler) logoutHandler(c *gin.Context) {
	code := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	s.Service.Logout(code)
	c.JSON(http.StatusOK, gin.H{"message": "sessão encerrada"})
}

func (s *httpHandler) clearHandler(c *gin.Context) {
	if err := s.Service.ClearData(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "dados compartilhados limpos"})
}

func (s *httpHandler) forceSyncHandler(c *gin.Context) {
	s.Service.ForceSync()
	c.JSON(http.StatusOK, gin.H{"message": "sincronização forçada"})
}
