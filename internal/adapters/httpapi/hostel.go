package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hostelcore/internal/core"
)

func (s *server) registerHostel(api *gin.RouterGroup) {
	api.POST("/students/:id/hostel", s.assignHostel)
	api.DELETE("/students/:id/hostel", s.removeFromHostel)
	api.POST("/beds/:id/maintenance", s.bedMaintenance(true))
	api.DELETE("/beds/:id/maintenance", s.bedMaintenance(false))
}

func (s *server) assignHostel(c *gin.Context) {
	var in core.HostelAssignment
	if !s.bindBody(c, &in) {
		return
	}
	student, res, err := s.svc.AssignHostel(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.noteViolations(c, res)
	c.JSON(http.StatusOK, student)
}

func (s *server) removeFromHostel(c *gin.Context) {
	student, res, err := s.svc.RemoveFromHostel(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	s.noteViolations(c, res)
	c.JSON(http.StatusOK, student)
}

func (s *server) bedMaintenance(on bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		bed, res, err := s.svc.SetBedMaintenance(c.Request.Context(), c.Param("id"), on)
		if err != nil {
			s.fail(c, err)
			return
		}
		s.noteViolations(c, res)
		c.JSON(http.StatusOK, bed)
	}
}
