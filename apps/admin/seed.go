package main

import (
	"context"

	"github.com/pkg/errors"

	"github.com/AhmadXRAUF940/attendance--tracker/core/school"
	"github.com/AhmadXRAUF940/attendance--tracker/core/user"
)

const seedPassword = "ChangeMe@123"

// seed loads the demo data set: two teachers, two grades with three sections,
// three students in section 1-A and the teacher allocations. It is a no-op if
// the data is already there.
func (cli *commandLine) seed() error {
	ctx := context.Background()

	if _, err := cli.usrSvc.GetByInstitutionID(ctx, "TCH-1001"); err == nil {
		logger.Print("seed data already loaded; nothing to do")
		return nil
	} else if errors.Cause(err) != user.ErrNotFound {
		return err
	}

	teacher1, err := cli.seedUser(ctx, "TCH-1001", user.RoleTeacher, "Ayesha", "Khan", "Assistant Teacher")
	if err != nil {
		return err
	}
	teacher2, err := cli.seedUser(ctx, "TCH-1002", user.RoleTeacher, "Imran", "Ali", "Senior Teacher")
	if err != nil {
		return err
	}

	grade1, err := cli.schoolSvc.CreateGrade(ctx, "Grade 1")
	if err != nil {
		return err
	}
	grade2, err := cli.schoolSvc.CreateGrade(ctx, "Grade 2")
	if err != nil {
		return err
	}

	section1A, err := cli.schoolSvc.CreateSection(ctx, grade1.ID, "1-A")
	if err != nil {
		return err
	}
	section1B, err := cli.schoolSvc.CreateSection(ctx, grade1.ID, "1-B")
	if err != nil {
		return err
	}
	section2A, err := cli.schoolSvc.CreateSection(ctx, grade2.ID, "2-A")
	if err != nil {
		return err
	}

	allocations := []school.Allocation{
		{TeacherUserID: teacher1.ID, GradeID: grade1.ID, SectionID: section1A.ID},
		{TeacherUserID: teacher1.ID, GradeID: grade1.ID, SectionID: section1B.ID},
		{TeacherUserID: teacher2.ID, GradeID: grade2.ID, SectionID: section2A.ID},
	}
	for _, alloc := range allocations {
		if _, err = cli.schoolSvc.CreateAllocation(ctx, alloc); err != nil {
			return err
		}
	}

	students := []struct {
		instID, first, last string
		rollNo              int
	}{
		{"STD-2001", "Ali", "Khan", 1},
		{"STD-2002", "Zara", "Bibi", 2},
		{"STD-2003", "Bilal", "Ahmad", 3},
	}
	for _, st := range students {
		usr, err := cli.seedUser(ctx, st.instID, user.RoleStudent, st.first, st.last, "")
		if err != nil {
			return err
		}
		_, err = cli.schoolSvc.CreateStudent(ctx, school.Student{
			UserID:    usr.ID,
			SectionID: section1A.ID,
			RollNo:    st.rollNo,
		})
		if err != nil {
			return err
		}
	}

	logger.Print("seed data loaded")
	return nil
}

func (cli *commandLine) seedUser(ctx context.Context, instID, role, first, last, rank string) (user.User, error) {
	nu := user.NewUser{
		InstitutionID:   instID,
		Role:            role,
		FirstName:       first,
		LastName:        last,
		Rank:            rank,
		Password:        seedPassword,
		PasswordConfirm: seedPassword,
	}
	if err := nu.Validate(cli.validate, cli.usrSvc); err != nil {
		return user.User{}, errors.Wrapf(err, "validating seed user %s", instID)
	}
	usr, err := cli.usrSvc.Create(ctx, nu)
	return usr, errors.Wrapf(err, "creating seed user %s", instID)
}
