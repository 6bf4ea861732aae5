package school_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/pkg/errors"

	"github.com/AhmadXRAUF940/attendance--tracker/core"
	"github.com/AhmadXRAUF940/attendance--tracker/core/school"
	"github.com/AhmadXRAUF940/attendance--tracker/core/user"
	dummydb "github.com/AhmadXRAUF940/attendance--tracker/storage/database/dummy"
	testutil "github.com/AhmadXRAUF940/attendance--tracker/tests"
)

func setup(t *testing.T) (*school.Service, school.Repository, user.Repository) {
	t.Helper()
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open(): %v", err)
	}
	repo := dummydb.NewSchoolRepository(db)
	return school.NewService(repo), repo, dummydb.NewUserRepository(db)
}

func TestService_Allocations(t *testing.T) {
	ctx := context.Background()
	svc, repo, usrRepo := setup(t)

	teacher := testutil.CreateUser(t, usrRepo, "TCH-1001", user.RoleTeacher, "Ayesha", "Khan", "Assistant Teacher", "")
	other := testutil.CreateUser(t, usrRepo, "TCH-1002", user.RoleTeacher, "Imran", "Ali", "Senior Teacher", "")

	grade1 := testutil.CreateGrade(t, repo, "Grade 1")
	grade2 := testutil.CreateGrade(t, repo, "Grade 2")
	sec1A := testutil.CreateSection(t, repo, grade1.ID, "1-A")
	sec1B := testutil.CreateSection(t, repo, grade1.ID, "1-B")
	sec2A := testutil.CreateSection(t, repo, grade2.ID, "2-A")

	testutil.CreateAllocation(t, repo, teacher.ID, grade1.ID, sec1A.ID)
	testutil.CreateAllocation(t, repo, teacher.ID, grade1.ID, sec1B.ID)
	testutil.CreateAllocation(t, repo, teacher.ID, grade2.ID, sec2A.ID)
	testutil.CreateAllocation(t, repo, other.ID, grade2.ID, sec2A.ID)

	t.Run("groups sections by grade", func(t *testing.T) {
		allocs, err := svc.Allocations(ctx, teacher.ID)
		if err != nil {
			t.Fatalf("Allocations(): %v", err)
		}

		want := []school.GradeClasses{
			{GradeID: grade1.ID, GradeName: "Grade 1", Sections: []school.SectionRef{
				{ID: sec1A.ID, Name: "1-A"},
				{ID: sec1B.ID, Name: "1-B"},
			}},
			{GradeID: grade2.ID, GradeName: "Grade 2", Sections: []school.SectionRef{
				{ID: sec2A.ID, Name: "2-A"},
			}},
		}
		if !reflect.DeepEqual(allocs, want) {
			t.Errorf("Allocations() = %+v, want %+v", allocs, want)
		}
	})

	t.Run("only own allocations", func(t *testing.T) {
		allocs, err := svc.Allocations(ctx, other.ID)
		if err != nil {
			t.Fatalf("Allocations(): %v", err)
		}
		if len(allocs) != 1 || len(allocs[0].Sections) != 1 {
			t.Errorf("Allocations() = %+v", allocs)
		}
	})

	t.Run("no allocations", func(t *testing.T) {
		allocs, err := svc.Allocations(ctx, 999)
		if err != nil {
			t.Fatalf("Allocations(): %v", err)
		}
		if len(allocs) != 0 {
			t.Errorf("Allocations() = %+v, want none", allocs)
		}
	})
}

func TestService_IsAllocated(t *testing.T) {
	ctx := context.Background()
	svc, repo, usrRepo := setup(t)

	teacher := testutil.CreateUser(t, usrRepo, "TCH-1001", user.RoleTeacher, "Ayesha", "Khan", "", "")
	grade := testutil.CreateGrade(t, repo, "Grade 1")
	sec1A := testutil.CreateSection(t, repo, grade.ID, "1-A")
	sec1B := testutil.CreateSection(t, repo, grade.ID, "1-B")
	testutil.CreateAllocation(t, repo, teacher.ID, grade.ID, sec1A.ID)

	tests := []struct {
		name      string
		teacherID int
		sectionID int
		want      bool
	}{
		{name: "allocated", teacherID: teacher.ID, sectionID: sec1A.ID, want: true},
		{name: "not allocated", teacherID: teacher.ID, sectionID: sec1B.ID, want: false},
		{name: "unknown teacher", teacherID: 999, sectionID: sec1A.ID, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.IsAllocated(ctx, tt.teacherID, tt.sectionID)
			if err != nil {
				t.Fatalf("IsAllocated(): %v", err)
			}
			if got != tt.want {
				t.Errorf("IsAllocated() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestService_CreateStudent(t *testing.T) {
	ctx := context.Background()
	svc, repo, usrRepo := setup(t)

	grade := testutil.CreateGrade(t, repo, "Grade 1")
	sec1A := testutil.CreateSection(t, repo, grade.ID, "1-A")
	sec1B := testutil.CreateSection(t, repo, grade.ID, "1-B")
	usr1 := testutil.CreateUser(t, usrRepo, "STD-2001", user.RoleStudent, "Ali", "Khan", "", "")
	usr2 := testutil.CreateUser(t, usrRepo, "STD-2002", user.RoleStudent, "Zara", "Bibi", "", "")

	if _, err := svc.CreateStudent(ctx, school.Student{UserID: usr1.ID, SectionID: sec1A.ID, RollNo: 1}); err != nil {
		t.Fatalf("CreateStudent(): %v", err)
	}

	t.Run("duplicate roll number in section rejected", func(t *testing.T) {
		_, err := svc.CreateStudent(ctx, school.Student{UserID: usr2.ID, SectionID: sec1A.ID, RollNo: 1})
		var vErr *core.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("CreateStudent() error = %v, want ValidationError", err)
		}
	})

	t.Run("same roll number in another section ok", func(t *testing.T) {
		if _, err := svc.CreateStudent(ctx, school.Student{UserID: usr2.ID, SectionID: sec1B.ID, RollNo: 1}); err != nil {
			t.Fatalf("CreateStudent(): %v", err)
		}
	})

	t.Run("unknown section rejected", func(t *testing.T) {
		_, err := svc.CreateStudent(ctx, school.Student{UserID: usr2.ID, SectionID: 999, RollNo: 5})
		if errors.Cause(err) != school.ErrSectionNotFound {
			t.Errorf("CreateStudent() error = %v, want ErrSectionNotFound", err)
		}
	})
}

func TestService_StudentDetails(t *testing.T) {
	ctx := context.Background()
	svc, repo, usrRepo := setup(t)

	grade := testutil.CreateGrade(t, repo, "Grade 1")
	section := testutil.CreateSection(t, repo, grade.ID, "1-A")
	usr := testutil.CreateUser(t, usrRepo, "STD-2001", user.RoleStudent, "Ali", "Khan", "", "")
	st := testutil.CreateStudent(t, repo, usr.ID, section.ID, 1)

	t.Run("found", func(t *testing.T) {
		details, err := svc.StudentDetails(ctx, usr.ID)
		if err != nil {
			t.Fatalf("StudentDetails(): %v", err)
		}
		if details.Student.ID != st.ID || details.User.ID != usr.ID ||
			details.Section.ID != section.ID || details.Grade.ID != grade.ID {
			t.Errorf("StudentDetails() = %+v", details)
		}
	})

	t.Run("no student profile", func(t *testing.T) {
		_, err := svc.StudentDetails(ctx, 999)
		if errors.Cause(err) != school.ErrStudentNotFound {
			t.Errorf("StudentDetails() error = %v, want ErrStudentNotFound", err)
		}
	})
}

func TestService_Roster(t *testing.T) {
	ctx := context.Background()
	svc, repo, usrRepo := setup(t)

	grade := testutil.CreateGrade(t, repo, "Grade 1")
	section := testutil.CreateSection(t, repo, grade.ID, "1-A")

	// created out of roll order on purpose
	usrB := testutil.CreateUser(t, usrRepo, "STD-2002", user.RoleStudent, "Zara", "Bibi", "", "")
	usrA := testutil.CreateUser(t, usrRepo, "STD-2001", user.RoleStudent, "Ali", "Khan", "", "")
	testutil.CreateStudent(t, repo, usrB.ID, section.ID, 2)
	testutil.CreateStudent(t, repo, usrA.ID, section.ID, 1)

	roster, err := svc.Roster(ctx, section.ID)
	if err != nil {
		t.Fatalf("Roster(): %v", err)
	}
	if len(roster) != 2 {
		t.Fatalf("roster = %d entries, want 2", len(roster))
	}
	if roster[0].RollNo != 1 || roster[0].FirstName != "Ali" {
		t.Errorf("roster[0] = %+v, want roll 1 Ali", roster[0])
	}
	if roster[1].RollNo != 2 || roster[1].FirstName != "Zara" {
		t.Errorf("roster[1] = %+v, want roll 2 Zara", roster[1])
	}
}
