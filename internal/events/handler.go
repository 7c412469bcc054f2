package events

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	v1 "github.com/rendezvous-lab/rendezvous/internal/api/v1"
	httperr "github.com/rendezvous-lab/rendezvous/internal/core/errors"
)

const msgInvalidJSON = "Invalid JSON body"

// RegisterRoutes registers the event-service API on r.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	users := r.Group("/users/:user_id/events")
	users.POST("", s.HandleCreate)
	users.GET("", s.HandleListOwn)
	users.GET("/:event_id", s.HandleGetOwn)
	users.PATCH("/:event_id", s.HandleUpdateByUser)

	admin := r.Group("/admin/events")
	admin.GET("", s.HandleSearchAdmin)
	admin.PATCH("/:event_id", s.HandleUpdateByAdmin)

	public := r.Group("/events")
	public.GET("", s.HandleSearchPublic)
	public.GET("/find", s.HandleFindByIDs)
	public.GET("/:event_id", s.HandleGetPublished)

	internal := r.Group("/internal")
	internal.GET("/events/:event_id", s.HandleRawByID)
	internal.GET("/users/:user_id/events/:event_id", s.HandleRawByOwner)
}

// HandleCreate handles POST /users/:user_id/events
func (s *Service) HandleCreate(c *gin.Context) {
	var in v1.NewEvent
	if !s.bindJSON(c, &in) {
		return
	}
	event, err := s.Create(c.Request.Context(), c.Param("user_id"), in)
	respond(c, http.StatusCreated, event, err)
}

// HandleListOwn handles GET /users/:user_id/events
func (s *Service) HandleListOwn(c *gin.Context) {
	events, err := s.ListOwn(c.Request.Context(), c.Param("user_id"))
	respond(c, http.StatusOK, events, err)
}

// HandleGetOwn handles GET /users/:user_id/events/:event_id
func (s *Service) HandleGetOwn(c *gin.Context) {
	event, err := s.GetOwn(c.Request.Context(), c.Param("user_id"), c.Param("event_id"))
	respond(c, http.StatusOK, event, err)
}

// HandleUpdateByUser handles PATCH /users/:user_id/events/:event_id
func (s *Service) HandleUpdateByUser(c *gin.Context) {
	var req v1.UpdateEventUserRequest
	if !s.bindJSON(c, &req) {
		return
	}
	event, err := s.UpdateByUser(c.Request.Context(), c.Param("user_id"), c.Param("event_id"), req)
	respond(c, http.StatusOK, event, err)
}

// HandleSearchAdmin handles GET /admin/events
// Query parameters: users, states, categories, rangeStart, rangeEnd
func (s *Service) HandleSearchAdmin(c *gin.Context) {
	q, err := parseAdminQuery(c.Request.URL.Query())
	if err != nil {
		writeError(c, err)
		return
	}
	events, err := s.SearchAdmin(c.Request.Context(), q)
	respond(c, http.StatusOK, events, err)
}

// HandleUpdateByAdmin handles PATCH /admin/events/:event_id
func (s *Service) HandleUpdateByAdmin(c *gin.Context) {
	var req v1.UpdateEventAdminRequest
	if !s.bindJSON(c, &req) {
		return
	}
	event, err := s.UpdateByAdmin(c.Request.Context(), c.Param("event_id"), req)
	respond(c, http.StatusOK, event, err)
}

// HandleSearchPublic handles GET /events
// Query parameters: text, categories, paid, rangeStart, rangeEnd, onlyAvailable
func (s *Service) HandleSearchPublic(c *gin.Context) {
	q, err := parsePublicQuery(c.Request.URL.Query())
	if err != nil {
		writeError(c, err)
		return
	}
	events, err := s.SearchPublic(c.Request.Context(), q)
	if err == nil {
		s.RecordHit(c.Request.Context(), c.Request.URL.Path, c.ClientIP())
	}
	respond(c, http.StatusOK, events, err)
}

// HandleGetPublished handles GET /events/:event_id
func (s *Service) HandleGetPublished(c *gin.Context) {
	event, err := s.GetPublished(c.Request.Context(), c.Param("event_id"))
	if err == nil {
		s.RecordHit(c.Request.Context(), v1.EventURI(event.ID), c.ClientIP())
	}
	respond(c, http.StatusOK, event, err)
}

// HandleFindByIDs handles GET /events/find?ids=a,b
func (s *Service) HandleFindByIDs(c *gin.Context) {
	ids := splitList(c.QueryArray("ids"))
	if len(ids) == 0 {
		writeError(c, httperr.BadRequestf("ids query parameter is required"))
		return
	}
	events, err := s.FindByIDs(c.Request.Context(), ids)
	respond(c, http.StatusOK, events, err)
}

// HandleRawByID handles GET /internal/events/:event_id
func (s *Service) HandleRawByID(c *gin.Context) {
	event, err := s.RawByID(c.Request.Context(), c.Param("event_id"))
	respond(c, http.StatusOK, event, err)
}

// HandleRawByOwner handles GET /internal/users/:user_id/events/:event_id
func (s *Service) HandleRawByOwner(c *gin.Context) {
	event, err := s.RawByOwner(c.Request.Context(), c.Param("user_id"), c.Param("event_id"))
	respond(c, http.StatusOK, event, err)
}

// bindJSON decodes the body into dst, writing the error response itself on failure.
func (s *Service) bindJSON(c *gin.Context, dst any) bool {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBodyBytes)
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		slog.Warn("Request body exceeds maximum size", "max", s.maxBodyBytes)
		c.JSON(http.StatusRequestEntityTooLarge, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Request body exceeds maximum allowed size",
			Details:   map[string]interface{}{"max_size_mb": s.maxBodyBytes / (1024 * 1024)},
		})
		return false
	}

	slog.Warn("Invalid JSON body received", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
		ErrorType: httperr.HttpInvalidJsonError,
		Message:   msgInvalidJSON,
		Details:   err.Error(),
	})
	return false
}

func respond(c *gin.Context, status int, body any, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(status, body)
}

func writeError(c *gin.Context, err error) {
	status, body := httperr.Response(err)
	if status == http.StatusInternalServerError {
		slog.Error("[Events] Request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err)
	}
	c.JSON(status, body)
}
