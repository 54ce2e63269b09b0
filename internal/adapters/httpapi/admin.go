package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type restoreRequest struct {
	Key string `json:"key" binding:"required"`
}

func (s *server) registerAdmin(g *gin.RouterGroup) {
	g.POST("/snapshots", s.exportSnapshot)
	g.GET("/snapshots", s.listSnapshots)
	g.POST("/snapshots/restore", s.restoreSnapshot)
}

func (s *server) exportSnapshot(c *gin.Context) {
	archive, err := s.archiver.Export(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, archive)
}

func (s *server) listSnapshots(c *gin.Context) {
	archives, err := s.archiver.List(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": archives})
}

func (s *server) restoreSnapshot(c *gin.Context) {
	var in restoreRequest
	if !s.bindBody(c, &in) {
		return
	}
	archive, err := s.archiver.Restore(c.Request.Context(), in.Key)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, archive)
}
