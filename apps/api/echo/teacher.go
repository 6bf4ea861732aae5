package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/AhmadXRAUF940/attendance--tracker/core/attendance"
	"github.com/AhmadXRAUF940/attendance--tracker/core/school"
)

type teacherApi struct {
	schoolSvc *school.Service
	attSvc    *attendance.Service
	validate  *validator.Validate
}

func registerTeacherAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps *ServerDeps) {
	api := teacherApi{
		schoolSvc: deps.SchoolSvc,
		attSvc:    deps.AttendanceSvc,
		validate:  deps.Validate,
	}

	tg := g.Group("/teacher", jwt, teacherMiddleware())
	tg.GET("/allocations", api.allocations)
	tg.GET("/sections/:id/class-data", api.classData)
	tg.POST("/sections/:id/attendance", api.markAttendance)
}

// Handlers

func (api *teacherApi) allocations(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	uid, err := claims.UserID()
	if err != nil {
		return errUnauthorized
	}

	allocs, err := api.schoolSvc.Allocations(ctx.Request().Context(), uid)
	if err != nil {
		return errors.Wrap(err, "querying teacher allocations")
	}
	if allocs == nil {
		allocs = []school.GradeClasses{}
	}
	return ctx.JSON(http.StatusOK, allocs)
}

func (api *teacherApi) classData(ctx echo.Context) error {
	section, grade, err := api.authorizedSection(ctx)
	if err != nil {
		return err
	}

	var query attendance.MonthQuery
	if err = ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to MonthQuery")
	}
	if err = query.Validate(api.validate); err != nil {
		return err
	}

	roster, err := api.schoolSvc.Roster(ctx.Request().Context(), section.ID)
	if err != nil {
		return errors.Wrap(err, "querying section roster")
	}

	records, err := api.attSvc.SectionRecords(ctx.Request().Context(), section.ID, query.Month)
	if err != nil {
		return errors.Wrap(err, "querying section attendance")
	}
	byStudent := attendance.ByStudent(records)

	students := make([]classDataStudent, 0, len(roster))
	for _, entry := range roster {
		recs := byStudent[entry.StudentID]
		students = append(students, classDataStudent{
			RosterEntry: entry,
			Attendance:  attendance.DateMap(recs),
			Stats:       attendance.ComputeStats(recs),
		})
	}

	return ctx.JSON(http.StatusOK, ClassDataResponse{
		Section:  section,
		Grade:    grade,
		Students: students,
	})
}

func (api *teacherApi) markAttendance(ctx echo.Context) error {
	var sheet attendance.MarkSheet
	if err := ctx.Bind(&sheet); err != nil {
		return errors.Wrap(err, "binding to MarkSheet")
	}
	if err := sheet.Validate(api.validate); err != nil {
		return err
	}

	section, _, err := api.authorizedSection(ctx)
	if err != nil {
		return err
	}

	claims, _ := getContextClaims(ctx)
	uid, err := claims.UserID()
	if err != nil {
		return errUnauthorized
	}

	count, err := api.attSvc.Mark(ctx.Request().Context(), uid, section.ID, sheet)
	if err != nil {
		return errors.Wrap(err, "marking attendance")
	}

	return ctx.JSON(http.StatusOK, MarkResponse{
		Message:      "attendance saved",
		UpdatedCount: count,
	})
}

// authorizedSection resolves the :id path param and checks that the requesting
// teacher is allocated to it. Missing sections 404 before the allocation check;
// a teacher without an allocation is rejected the same way as an
// unauthenticated request.
func (api *teacherApi) authorizedSection(ctx echo.Context) (school.Section, school.Grade, error) {
	sectionID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return school.Section{}, school.Grade{}, errHttpNotFound
	}

	section, err := api.schoolSvc.GetSection(ctx.Request().Context(), sectionID)
	if err != nil {
		if errors.Cause(err) == school.ErrSectionNotFound {
			return school.Section{}, school.Grade{}, errHttpNotFound
		}
		return school.Section{}, school.Grade{}, errors.Wrap(err, "finding section by ID")
	}
	grade, err := api.schoolSvc.GetGrade(ctx.Request().Context(), section.GradeID)
	if err != nil {
		if errors.Cause(err) == school.ErrGradeNotFound {
			return school.Section{}, school.Grade{}, errHttpNotFound
		}
		return school.Section{}, school.Grade{}, errors.Wrap(err, "finding grade by ID")
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return school.Section{}, school.Grade{}, errors.Wrap(err, "getting context claims")
	}
	uid, err := claims.UserID()
	if err != nil {
		return school.Section{}, school.Grade{}, errUnauthorized
	}

	allocated, err := api.schoolSvc.IsAllocated(ctx.Request().Context(), uid, section.ID)
	if err != nil {
		return school.Section{}, school.Grade{}, errors.Wrap(err, "checking teacher allocation")
	}
	if !allocated {
		return school.Section{}, school.Grade{}, errUnauthorized
	}
	return section, grade, nil
}

type (
	ClassDataResponse struct {
		Section  school.Section     `json:"section"`
		Grade    school.Grade       `json:"grade"`
		Students []classDataStudent `json:"students"`
	}

	classDataStudent struct {
		school.RosterEntry
		Attendance map[string]attendance.Status `json:"attendance"`
		Stats      attendance.Stats             `json:"stats"`
	}

	MarkResponse struct {
		Message      string `json:"message"`
		UpdatedCount int    `json:"updated_count"`
	}
)
