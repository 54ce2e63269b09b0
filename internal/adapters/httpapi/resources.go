package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"hostelcore/internal/core"
	"hostelcore/internal/query"
)

func (s *server) registerResources(api *gin.RouterGroup) {
	svc := s.svc
	mount(s, api, "/package-types", svc.ListPackageTypes, svc.GetPackageType, svc.CreatePackageType, svc.UpdatePackageType, svc.DeletePackageType)
	mount(s, api, "/boarding-packages", svc.ListBoardingPackages, svc.GetBoardingPackage, svc.CreateBoardingPackage, svc.UpdateBoardingPackage, svc.DeleteBoardingPackage)
	mount(s, api, "/menu-items", svc.ListMenuItems, svc.GetMenuItem, svc.CreateMenuItem, svc.UpdateMenuItem, svc.DeleteMenuItem)
	mount(s, api, "/meal-types", svc.ListMealTypes, svc.GetMealType, svc.CreateMealType, svc.UpdateMealType, svc.DeleteMealType)
	mount(s, api, "/package-menu-items", svc.ListPackageMenuItems, svc.GetPackageMenuItem, svc.CreatePackageMenuItem, svc.UpdatePackageMenuItem, svc.DeletePackageMenuItem)
	mount(s, api, "/meal-packages", svc.ListMealPackages, svc.GetMealPackage, svc.CreateMealPackage, svc.UpdateMealPackage, svc.DeleteMealPackage)
	lookups := mount(s, api, "/lookups", svc.ListLookups, svc.GetLookup, svc.CreateLookup, svc.UpdateLookup, svc.DeleteLookup)
	lookups.GET("/names", s.lookupNames)
	mount(s, api, "/persons", svc.ListPersons, svc.GetPerson, svc.CreatePerson, svc.UpdatePerson, svc.DeletePerson)
	mount(s, api, "/staff", svc.ListStaff, svc.GetStaff, svc.CreateStaff, svc.UpdateStaff, svc.DeleteStaff)
	mount(s, api, "/rooms", svc.ListRooms, svc.GetRoom, svc.CreateRoom, svc.UpdateRoom, svc.DeleteRoom)
	mount(s, api, "/beds", svc.ListBeds, svc.GetBed, svc.CreateBed, svc.UpdateBed, svc.DeleteBed)
	mount(s, api, "/guardians", svc.ListGuardians, svc.GetGuardian, svc.CreateGuardian, svc.UpdateGuardian, svc.DeleteGuardian)
	mount(s, api, "/academic-classes", svc.ListAcademicClasses, svc.GetAcademicClass, svc.CreateAcademicClass, svc.UpdateAcademicClass, svc.DeleteAcademicClass)
	mount(s, api, "/students", svc.ListStudents, svc.GetStudent, svc.CreateStudent, svc.UpdateStudent, svc.DeleteStudent)
}

// mount registers list, detail, create, update (PATCH and PUT), and delete
// routes for one entity. E is the stored entity, F its filter, L the list
// item shape, D the detail shape, and P the patch.
func mount[E, F, L, D, P any](
	s *server,
	api *gin.RouterGroup,
	path string,
	list func(context.Context, F, int, int) (query.Page[L], error),
	get func(context.Context, string) (D, error),
	create func(context.Context, E) (E, core.Result, error),
	update func(context.Context, string, P) (E, core.Result, error),
	remove func(context.Context, string) (core.Result, error),
) *gin.RouterGroup {
	g := api.Group(path)

	g.GET("", func(c *gin.Context) {
		page, limit, field, err := paging(c)
		if err != nil {
			s.badRequest(c, field, err)
			return
		}
		filter, err := bindFilter[F](c)
		if err != nil {
			s.badRequest(c, "query", err)
			return
		}
		out, err := list(c.Request.Context(), filter, page, limit)
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})

	g.GET("/:id", func(c *gin.Context) {
		out, err := get(c.Request.Context(), c.Param("id"))
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})

	g.POST("", func(c *gin.Context) {
		var in E
		if !s.bindBody(c, &in) {
			return
		}
		out, res, err := create(c.Request.Context(), in)
		if err != nil {
			s.fail(c, err)
			return
		}
		s.noteViolations(c, res)
		c.JSON(http.StatusCreated, out)
	})

	patch := func(c *gin.Context) {
		var in P
		if !s.bindBody(c, &in) {
			return
		}
		out, res, err := update(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			s.fail(c, err)
			return
		}
		s.noteViolations(c, res)
		c.JSON(http.StatusOK, out)
	}
	g.PATCH("/:id", patch)
	g.PUT("/:id", patch)

	g.DELETE("/:id", func(c *gin.Context) {
		res, err := remove(c.Request.Context(), c.Param("id"))
		if err != nil {
			s.fail(c, err)
			return
		}
		s.noteViolations(c, res)
		c.Status(http.StatusNoContent)
	})
	return g
}

// bindBody decodes a JSON body, answering 400 on failure.
func (s *server) bindBody(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("request body is empty")
		}
		s.badRequest(c, "body", err)
		return false
	}
	return true
}

// noteViolations surfaces non-blocking rule findings in a header.
func (s *server) noteViolations(c *gin.Context, res core.Result) {
	for _, v := range res.Violations {
		c.Writer.Header().Add("X-Rule-Violation", v.Rule+": "+v.Message)
	}
}

func (s *server) lookupNames(c *gin.Context) {
	out, err := s.svc.LookupNames(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
