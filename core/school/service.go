package school

import (
	"context"
	"errors"

	"github.com/AhmadXRAUF940/attendance--tracker/core"
)

var (
	// errors
	ErrGradeNotFound   = errors.New("grade not found")
	ErrSectionNotFound = errors.New("section not found")
	ErrStudentNotFound = errors.New("student profile not found")
	ErrRollNoTaken     = errors.New("this roll number is already taken in this section")
)

type (
	Repository interface {
		CreateGrade(ctx context.Context, name string) (Grade, error)
		CreateSection(ctx context.Context, gradeID int, name string) (Section, error)
		CreateStudent(ctx context.Context, st Student) (Student, error)
		CreateAllocation(ctx context.Context, alloc Allocation) (Allocation, error)
		GetGrade(ctx context.Context, id int) (Grade, error)
		GetSection(ctx context.Context, id int) (Section, error)
		GetStudentByUserID(ctx context.Context, userID int) (Student, error)
		GetStudentDetails(ctx context.Context, userID int) (StudentDetails, error)
		// QueryRosterBySection returns a section's students with their user
		// attributes, ordered by roll number.
		QueryRosterBySection(ctx context.Context, sectionID int) ([]RosterEntry, error)
		QueryTeacherAllocations(ctx context.Context, teacherUserID int) ([]TeacherClass, error)
		HasAllocation(ctx context.Context, teacherUserID, sectionID int) (bool, error)
		CheckRollNoUniqueness(ctx context.Context, sectionID, rollNo int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) CreateGrade(ctx context.Context, name string) (Grade, error) {
	return svc.repo.CreateGrade(ctx, core.CleanString(name))
}

func (svc *Service) CreateSection(ctx context.Context, gradeID int, name string) (Section, error) {
	if _, err := svc.repo.GetGrade(ctx, gradeID); err != nil {
		return Section{}, err
	}
	return svc.repo.CreateSection(ctx, gradeID, core.CleanString(name))
}

// CreateStudent enrolls a student user into a section. The roll number must be
// unique within the section.
func (svc *Service) CreateStudent(ctx context.Context, st Student) (Student, error) {
	if _, err := svc.repo.GetSection(ctx, st.SectionID); err != nil {
		return Student{}, err
	}
	if err := svc.repo.CheckRollNoUniqueness(ctx, st.SectionID, st.RollNo); err != nil {
		if err == ErrRollNoTaken {
			return Student{}, core.NewValidationError(err, core.FieldError{Field: "roll_no", Error: err.Error()})
		}
		return Student{}, err
	}
	return svc.repo.CreateStudent(ctx, st)
}

func (svc *Service) CreateAllocation(ctx context.Context, alloc Allocation) (Allocation, error) {
	if _, err := svc.repo.GetGrade(ctx, alloc.GradeID); err != nil {
		return Allocation{}, err
	}
	if _, err := svc.repo.GetSection(ctx, alloc.SectionID); err != nil {
		return Allocation{}, err
	}
	return svc.repo.CreateAllocation(ctx, alloc)
}

func (svc *Service) GetGrade(ctx context.Context, id int) (Grade, error) {
	return svc.repo.GetGrade(ctx, id)
}

func (svc *Service) GetSection(ctx context.Context, id int) (Section, error) {
	return svc.repo.GetSection(ctx, id)
}

func (svc *Service) Roster(ctx context.Context, sectionID int) ([]RosterEntry, error) {
	return svc.repo.QueryRosterBySection(ctx, sectionID)
}

func (svc *Service) StudentDetails(ctx context.Context, userID int) (StudentDetails, error) {
	return svc.repo.GetStudentDetails(ctx, userID)
}

// Allocations returns the teacher's classes grouped by grade,
// in first-seen order.
func (svc *Service) Allocations(ctx context.Context, teacherUserID int) ([]GradeClasses, error) {
	classes, err := svc.repo.QueryTeacherAllocations(ctx, teacherUserID)
	if err != nil {
		return nil, err
	}

	grouped := make([]GradeClasses, 0, len(classes))
	idx := make(map[int]int, len(classes))
	for _, cls := range classes {
		i, ok := idx[cls.Grade.ID]
		if !ok {
			i = len(grouped)
			idx[cls.Grade.ID] = i
			grouped = append(grouped, GradeClasses{GradeID: cls.Grade.ID, GradeName: cls.Grade.Name})
		}
		grouped[i].Sections = append(grouped[i].Sections, SectionRef{ID: cls.Section.ID, Name: cls.Section.Name})
	}
	return grouped, nil
}

// IsAllocated reports whether the teacher holds an allocation for the section.
func (svc *Service) IsAllocated(ctx context.Context, teacherUserID, sectionID int) (bool, error) {
	return svc.repo.HasAllocation(ctx, teacherUserID, sectionID)
}
