package dummydb

import (
	"context"
	"sort"

	"github.com/AhmadXRAUF940/attendance--tracker/core/school"
)

type schoolRepository struct {
	db    *schoolTable
	users *userTable
}

var _ school.Repository = (*schoolRepository)(nil) // interface compliance check

func NewSchoolRepository(db *DB) *schoolRepository {
	return &schoolRepository{db: db.school, users: db.user}
}

func (repo *schoolRepository) CreateGrade(_ context.Context, name string) (school.Grade, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.gradePK++
	grade := school.Grade{ID: repo.db.gradePK, Name: name}
	repo.db.grades[grade.ID] = &grade
	return grade, nil
}

func (repo *schoolRepository) CreateSection(_ context.Context, gradeID int, name string) (school.Section, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.sectionPK++
	section := school.Section{ID: repo.db.sectionPK, GradeID: gradeID, Name: name}
	repo.db.sections[section.ID] = &section
	return section, nil
}

func (repo *schoolRepository) CreateStudent(_ context.Context, st school.Student) (school.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, other := range repo.db.students {
		if other.SectionID == st.SectionID && other.RollNo == st.RollNo {
			return school.Student{}, school.ErrRollNoTaken
		}
	}

	repo.db.studentPK++
	st.ID = repo.db.studentPK
	repo.db.students[st.ID] = &st
	return st, nil
}

func (repo *schoolRepository) CreateAllocation(_ context.Context, alloc school.Allocation) (school.Allocation, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.allocationPK++
	alloc.ID = repo.db.allocationPK
	repo.db.allocations[alloc.ID] = &alloc
	return alloc, nil
}

func (repo *schoolRepository) GetGrade(_ context.Context, id int) (school.Grade, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if grade, ok := repo.db.grades[id]; ok {
		return *grade, nil
	}
	return school.Grade{}, school.ErrGradeNotFound
}

func (repo *schoolRepository) GetSection(_ context.Context, id int) (school.Section, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if section, ok := repo.db.sections[id]; ok {
		return *section, nil
	}
	return school.Section{}, school.ErrSectionNotFound
}

func (repo *schoolRepository) GetStudentByUserID(_ context.Context, userID int) (school.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	return repo.getStudentByUserID(userID)
}

func (repo *schoolRepository) getStudentByUserID(userID int) (school.Student, error) {
	for _, st := range repo.db.students {
		if st.UserID == userID {
			return *st, nil
		}
	}
	return school.Student{}, school.ErrStudentNotFound
}

func (repo *schoolRepository) GetStudentDetails(ctx context.Context, userID int) (school.StudentDetails, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	st, err := repo.getStudentByUserID(userID)
	if err != nil {
		return school.StudentDetails{}, err
	}
	section, ok := repo.db.sections[st.SectionID]
	if !ok {
		return school.StudentDetails{}, school.ErrSectionNotFound
	}
	grade, ok := repo.db.grades[section.GradeID]
	if !ok {
		return school.StudentDetails{}, school.ErrGradeNotFound
	}

	repo.users.RLock()
	usr, ok := repo.users.table[st.UserID]
	repo.users.RUnlock()
	if !ok {
		return school.StudentDetails{}, school.ErrStudentNotFound
	}

	return school.StudentDetails{Student: st, User: *usr, Section: *section, Grade: *grade}, nil
}

func (repo *schoolRepository) QueryRosterBySection(_ context.Context, sectionID int) ([]school.RosterEntry, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var roster []school.RosterEntry
	for _, st := range repo.db.students {
		if st.SectionID != sectionID {
			continue
		}
		entry := school.RosterEntry{StudentID: st.ID, RollNo: st.RollNo, UserID: st.UserID}
		repo.users.RLock()
		if usr, ok := repo.users.table[st.UserID]; ok {
			entry.FirstName = usr.FirstName
			entry.LastName = usr.LastName
		}
		repo.users.RUnlock()
		roster = append(roster, entry)
	}
	sort.Slice(roster, func(i, j int) bool { return roster[i].RollNo < roster[j].RollNo })
	return roster, nil
}

func (repo *schoolRepository) QueryTeacherAllocations(_ context.Context, teacherUserID int) ([]school.TeacherClass, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var classes []school.TeacherClass
	for _, alloc := range repo.db.allocations {
		if alloc.TeacherUserID != teacherUserID {
			continue
		}
		grade, ok := repo.db.grades[alloc.GradeID]
		if !ok {
			continue
		}
		section, ok := repo.db.sections[alloc.SectionID]
		if !ok {
			continue
		}
		classes = append(classes, school.TeacherClass{Grade: *grade, Section: *section})
	}
	sort.Slice(classes, func(i, j int) bool {
		if classes[i].Grade.ID != classes[j].Grade.ID {
			return classes[i].Grade.ID < classes[j].Grade.ID
		}
		return classes[i].Section.ID < classes[j].Section.ID
	})
	return classes, nil
}

func (repo *schoolRepository) HasAllocation(_ context.Context, teacherUserID, sectionID int) (bool, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, alloc := range repo.db.allocations {
		if alloc.TeacherUserID == teacherUserID && alloc.SectionID == sectionID {
			return true, nil
		}
	}
	return false, nil
}

func (repo *schoolRepository) CheckRollNoUniqueness(_ context.Context, sectionID, rollNo int) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, st := range repo.db.students {
		if st.SectionID == sectionID && st.RollNo == rollNo {
			return school.ErrRollNoTaken
		}
	}
	return nil
}
