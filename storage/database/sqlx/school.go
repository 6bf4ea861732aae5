package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/AhmadXRAUF940/attendance--tracker/core/school"
)

const pqUniqueViolation = "23505"

type schoolRepository struct {
	db *sqlx.DB
}

var _ school.Repository = (*schoolRepository)(nil) // interface compliance check

func NewSchoolRepository(db *sqlx.DB) *schoolRepository {
	return &schoolRepository{db: db}
}

func (repo schoolRepository) CreateGrade(ctx context.Context, name string) (school.Grade, error) {
	grade := school.Grade{Name: name}
	err := repo.db.QueryRowContext(ctx,
		`INSERT INTO grades (name) VALUES ($1) RETURNING id`, name,
	).Scan(&grade.ID)
	if err != nil {
		return school.Grade{}, errors.Wrap(err, "inserting grade")
	}
	return grade, nil
}

func (repo schoolRepository) CreateSection(ctx context.Context, gradeID int, name string) (school.Section, error) {
	section := school.Section{GradeID: gradeID, Name: name}
	err := repo.db.QueryRowContext(ctx,
		`INSERT INTO sections (grade_id, name) VALUES ($1, $2) RETURNING id`, gradeID, name,
	).Scan(&section.ID)
	if err != nil {
		return school.Section{}, errors.Wrap(err, "inserting section")
	}
	return section, nil
}

func (repo schoolRepository) CreateStudent(ctx context.Context, st school.Student) (school.Student, error) {
	err := repo.db.QueryRowContext(ctx,
		`INSERT INTO students (user_id, section_id, roll_no) VALUES ($1, $2, $3) RETURNING id`,
		st.UserID, st.SectionID, st.RollNo,
	).Scan(&st.ID)
	if err != nil {
		// the (section_id, roll_no) key closes the check-then-insert window
		if pqErr, ok := errors.Cause(err).(*pq.Error); ok && pqErr.Code == pqUniqueViolation {
			return school.Student{}, school.ErrRollNoTaken
		}
		return school.Student{}, errors.Wrap(err, "inserting student")
	}
	return st, nil
}

func (repo schoolRepository) CreateAllocation(ctx context.Context, alloc school.Allocation) (school.Allocation, error) {
	err := repo.db.QueryRowContext(ctx,
		`INSERT INTO teacher_allocations (teacher_user_id, grade_id, section_id)
		 VALUES ($1, $2, $3) RETURNING id`,
		alloc.TeacherUserID, alloc.GradeID, alloc.SectionID,
	).Scan(&alloc.ID)
	if err != nil {
		return school.Allocation{}, errors.Wrap(err, "inserting allocation")
	}
	return alloc, nil
}

func (repo schoolRepository) GetGrade(ctx context.Context, id int) (school.Grade, error) {
	var grade school.Grade
	err := repo.db.QueryRowContext(ctx,
		`SELECT id, name FROM grades WHERE id = $1`, id,
	).Scan(&grade.ID, &grade.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return school.Grade{}, school.ErrGradeNotFound
		}
		return school.Grade{}, errors.Wrap(err, "finding grade")
	}
	return grade, nil
}

func (repo schoolRepository) GetSection(ctx context.Context, id int) (school.Section, error) {
	var section school.Section
	err := repo.db.QueryRowContext(ctx,
		`SELECT id, grade_id, name FROM sections WHERE id = $1`, id,
	).Scan(&section.ID, &section.GradeID, &section.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return school.Section{}, school.ErrSectionNotFound
		}
		return school.Section{}, errors.Wrap(err, "finding section")
	}
	return section, nil
}

func (repo schoolRepository) GetStudentByUserID(ctx context.Context, userID int) (school.Student, error) {
	var st school.Student
	err := repo.db.QueryRowContext(ctx,
		`SELECT id, user_id, section_id, roll_no FROM students WHERE user_id = $1`, userID,
	).Scan(&st.ID, &st.UserID, &st.SectionID, &st.RollNo)
	if err != nil {
		if err == sql.ErrNoRows {
			return school.Student{}, school.ErrStudentNotFound
		}
		return school.Student{}, errors.Wrap(err, "finding student by user ID")
	}
	return st, nil
}

func (repo schoolRepository) GetStudentDetails(ctx context.Context, userID int) (school.StudentDetails, error) {
	var (
		details school.StudentDetails
		usr     userRow
	)
	err := repo.db.QueryRowContext(ctx,
		`SELECT st.id, st.user_id, st.section_id, st.roll_no,
		        u.id, u.institution_id, u.role, u.first_name, u.last_name, u.rank, u.password_hash, u.created_at,
		        sec.id, sec.grade_id, sec.name,
		        g.id, g.name
		 FROM students st
		 JOIN users u ON u.id = st.user_id
		 JOIN sections sec ON sec.id = st.section_id
		 JOIN grades g ON g.id = sec.grade_id
		 WHERE st.user_id = $1`, userID,
	).Scan(
		&details.Student.ID, &details.Student.UserID, &details.Student.SectionID, &details.Student.RollNo,
		&usr.ID, &usr.InstitutionID, &usr.Role, &usr.FirstName, &usr.LastName, &usr.Rank, &usr.PasswordHash, &usr.CreatedAt,
		&details.Section.ID, &details.Section.GradeID, &details.Section.Name,
		&details.Grade.ID, &details.Grade.Name,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return school.StudentDetails{}, school.ErrStudentNotFound
		}
		return school.StudentDetails{}, errors.Wrap(err, "finding student details")
	}
	details.User = usr.toUser()
	return details, nil
}

func (repo schoolRepository) QueryRosterBySection(ctx context.Context, sectionID int) ([]school.RosterEntry, error) {
	rows, err := repo.db.QueryContext(ctx,
		`SELECT st.id, st.roll_no, st.user_id, u.first_name, u.last_name
		 FROM students st
		 JOIN users u ON u.id = st.user_id
		 WHERE st.section_id = $1
		 ORDER BY st.roll_no`, sectionID)
	if err != nil {
		return nil, errors.Wrap(err, "querying section roster")
	}
	defer func() { _ = rows.Close() }()

	var roster []school.RosterEntry
	for rows.Next() {
		var entry school.RosterEntry
		if err = rows.Scan(&entry.StudentID, &entry.RollNo, &entry.UserID, &entry.FirstName, &entry.LastName); err != nil {
			return nil, errors.Wrap(err, "scanning roster entry")
		}
		roster = append(roster, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "querying section roster")
	}
	return roster, nil
}

func (repo schoolRepository) QueryTeacherAllocations(ctx context.Context, teacherUserID int) ([]school.TeacherClass, error) {
	rows, err := repo.db.QueryContext(ctx,
		`SELECT g.id, g.name, sec.id, sec.grade_id, sec.name
		 FROM teacher_allocations ta
		 JOIN grades g ON g.id = ta.grade_id
		 JOIN sections sec ON sec.id = ta.section_id
		 WHERE ta.teacher_user_id = $1
		 ORDER BY g.id, sec.id`, teacherUserID)
	if err != nil {
		return nil, errors.Wrap(err, "querying teacher allocations")
	}
	defer func() { _ = rows.Close() }()

	var classes []school.TeacherClass
	for rows.Next() {
		var cls school.TeacherClass
		if err = rows.Scan(&cls.Grade.ID, &cls.Grade.Name, &cls.Section.ID, &cls.Section.GradeID, &cls.Section.Name); err != nil {
			return nil, errors.Wrap(err, "scanning teacher allocation")
		}
		classes = append(classes, cls)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "querying teacher allocations")
	}
	return classes, nil
}

func (repo schoolRepository) HasAllocation(ctx context.Context, teacherUserID, sectionID int) (bool, error) {
	var allocated bool
	err := repo.db.GetContext(ctx, &allocated,
		`SELECT EXISTS (SELECT 1 FROM teacher_allocations WHERE teacher_user_id = $1 AND section_id = $2)`,
		teacherUserID, sectionID)
	if err != nil {
		return false, errors.Wrap(err, "checking allocation")
	}
	return allocated, nil
}

func (repo schoolRepository) CheckRollNoUniqueness(ctx context.Context, sectionID, rollNo int) error {
	var exists bool
	err := repo.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM students WHERE section_id = $1 AND roll_no = $2)`, sectionID, rollNo)
	if err != nil {
		return errors.Wrap(err, "checking roll number uniqueness")
	}
	if exists {
		return school.ErrRollNoTaken
	}
	return nil
}
