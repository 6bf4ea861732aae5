package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/AhmadXRAUF940/attendance--tracker/core/attendance"
	"github.com/AhmadXRAUF940/attendance--tracker/core/school"
	"github.com/AhmadXRAUF940/attendance--tracker/core/user"
)

func CreateUser(
	t *testing.T,
	repo user.Repository,
	instID, role, first, last, rank, pwd string,
) user.User {
	t.Helper()
	usr := user.User{
		InstitutionID: instID,
		Role:          role,
		FirstName:     first,
		LastName:      last,
		Rank:          rank,
		CreatedAt:     time.Now().UTC(),
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser(): %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser(): %v", err)
	}
	return usr
}

func CreateGrade(t *testing.T, repo school.Repository, name string) school.Grade {
	t.Helper()
	grade, err := repo.CreateGrade(context.Background(), name)
	if err != nil {
		t.Fatalf("CreateGrade(): %v", err)
	}
	return grade
}

func CreateSection(t *testing.T, repo school.Repository, gradeID int, name string) school.Section {
	t.Helper()
	section, err := repo.CreateSection(context.Background(), gradeID, name)
	if err != nil {
		t.Fatalf("CreateSection(): %v", err)
	}
	return section
}

func CreateStudent(t *testing.T, repo school.Repository, userID, sectionID, rollNo int) school.Student {
	t.Helper()
	st, err := repo.CreateStudent(context.Background(), school.Student{
		UserID:    userID,
		SectionID: sectionID,
		RollNo:    rollNo,
	})
	if err != nil {
		t.Fatalf("CreateStudent(): %v", err)
	}
	return st
}

func CreateAllocation(t *testing.T, repo school.Repository, teacherUserID, gradeID, sectionID int) school.Allocation {
	t.Helper()
	alloc, err := repo.CreateAllocation(context.Background(), school.Allocation{
		TeacherUserID: teacherUserID,
		GradeID:       gradeID,
		SectionID:     sectionID,
	})
	if err != nil {
		t.Fatalf("CreateAllocation(): %v", err)
	}
	return alloc
}

func MarkRecord(
	t *testing.T,
	repo attendance.Repository,
	studentID int,
	date string,
	status attendance.Status,
	markedBy int,
) attendance.Record {
	t.Helper()
	rec, err := repo.UpsertRecord(context.Background(), attendance.Record{
		StudentID: studentID,
		Date:      date,
		Status:    status,
		MarkedBy:  &markedBy,
		MarkedAt:  time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("MarkRecord(): %v", err)
	}
	return rec
}
