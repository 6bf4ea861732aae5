package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/AhmadXRAUF940/attendance--tracker/core/attendance"
	"github.com/AhmadXRAUF940/attendance--tracker/core/school"
)

type studentApi struct {
	schoolSvc *school.Service
	attSvc    *attendance.Service
	validate  *validator.Validate
}

func registerStudentAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps *ServerDeps) {
	api := studentApi{
		schoolSvc: deps.SchoolSvc,
		attSvc:    deps.AttendanceSvc,
		validate:  deps.Validate,
	}

	sg := g.Group("/student", jwt, studentMiddleware())
	sg.GET("/attendance", api.attendance)
}

// attendance returns the requesting student's own history and stats; the
// student profile is always resolved from the token subject.
func (api *studentApi) attendance(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	uid, err := claims.UserID()
	if err != nil {
		return errUnauthorized
	}

	details, err := api.schoolSvc.StudentDetails(ctx.Request().Context(), uid)
	if err != nil {
		if cause := errors.Cause(err); cause == school.ErrStudentNotFound ||
			cause == school.ErrSectionNotFound || cause == school.ErrGradeNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding student details")
	}

	var query attendance.MonthQuery
	if err = ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to MonthQuery")
	}
	if err = query.Validate(api.validate); err != nil {
		return err
	}

	records, stats, err := api.attSvc.StudentHistory(ctx.Request().Context(), details.Student.ID, query.Month)
	if err != nil {
		return errors.Wrap(err, "querying student attendance")
	}
	if records == nil {
		records = []attendance.Record{}
	}

	return ctx.JSON(http.StatusOK, StudentAttendanceResponse{
		Student: StudentSummary{
			FirstName:   details.User.FirstName,
			LastName:    details.User.LastName,
			RollNo:      details.Student.RollNo,
			SectionName: details.Section.Name,
			GradeName:   details.Grade.Name,
		},
		Attendance: records,
		Stats:      stats,
	})
}

type (
	StudentSummary struct {
		FirstName   string `json:"first_name"`
		LastName    string `json:"last_name"`
		RollNo      int    `json:"roll_no"`
		SectionName string `json:"section_name"`
		GradeName   string `json:"grade_name"`
	}

	StudentAttendanceResponse struct {
		Student    StudentSummary      `json:"student"`
		Attendance []attendance.Record `json:"attendance"`
		Stats      attendance.Stats    `json:"stats"`
	}
)
