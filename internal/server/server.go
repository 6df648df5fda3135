package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agenthands/playbill/internal/core"
	"github.com/agenthands/playbill/internal/core/model"
	"github.com/agenthands/playbill/internal/driver"
	"github.com/agenthands/playbill/internal/logger"
)

type Server struct {
	Archive *core.Archive
	Log     *logger.Logger
}

func NewServer(archive *core.Archive, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{Archive: archive, Log: log.With("component", "server")}
}

// SetupRouter registers the same route set for every kind under its plural
// route name, e.g. /materials and /award-ceremonies.
func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", s.Health)
	for _, k := range model.Kinds {
		g := r.Group("/" + k.Route())
		g.GET("", s.List(k))
		g.POST("", s.Create(k))
		g.GET("/:uuid", s.Show(k))
		g.GET("/:uuid/edit", s.Edit(k))
		g.PUT("/:uuid", s.Update(k))
		g.DELETE("/:uuid", s.Delete(k))
	}
	return r
}

func (s *Server) Health(c *gin.Context) {
	if _, err := driver.QuerySingle(c.Request.Context(), s.Archive.Driver, driver.PingQuery, nil); err != nil {
		s.Log.Error("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) List(k model.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := s.Archive.List(c.Request.Context(), k)
		if err != nil {
			s.fail(c, k, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func (s *Server) Show(k model.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := s.Archive.Show(c.Request.Context(), k, c.Param("uuid"))
		if err != nil {
			s.fail(c, k, err)
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", data)
	}
}

func (s *Server) Edit(k model.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		e, err := s.Archive.Edit(c.Request.Context(), k, c.Param("uuid"))
		if err != nil {
			s.fail(c, k, err)
			return
		}
		c.JSON(http.StatusOK, e)
	}
}

func (s *Server) Create(k model.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		e, ok := s.decode(c, k)
		if !ok {
			return
		}
		out, err := s.Archive.Create(c.Request.Context(), e)
		s.respond(c, k, out, err)
	}
}

func (s *Server) Update(k model.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		e, ok := s.decode(c, k)
		if !ok {
			return
		}
		out, err := s.Archive.Update(c.Request.Context(), c.Param("uuid"), e)
		s.respond(c, k, out, err)
	}
}

func (s *Server) Delete(k model.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := s.Archive.Delete(c.Request.Context(), k, c.Param("uuid"))
		s.respond(c, k, out, err)
	}
}

func (s *Server) decode(c *gin.Context, k model.Kind) (model.Entity, bool) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return nil, false
	}
	e, err := model.Decode(k, body)
	if err != nil {
		s.fail(c, k, err)
		return nil, false
	}
	return e, true
}

func (s *Server) respond(c *gin.Context, k model.Kind, out core.Outcome, err error) {
	if err != nil {
		s.fail(c, k, err)
		return
	}
	status := http.StatusOK
	if out.HasErrors() {
		status = http.StatusBadRequest
	}
	c.JSON(status, out)
}

func (s *Server) fail(c *gin.Context, k model.Kind, err error) {
	switch {
	case errors.Is(err, model.ErrMalformed):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, driver.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not Found"})
	default:
		s.Log.Error("request failed", "kind", k, "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
	}
}
