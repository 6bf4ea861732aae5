package school

import "github.com/AhmadXRAUF940/attendance--tracker/core/user"

type Grade struct {
	ID   int    `json:"id"`
	Name string `json:"name"` // e.g. "Grade 1"
}

type Section struct {
	ID      int    `json:"id"`
	GradeID int    `json:"grade_id"`
	Name    string `json:"name"` // e.g. "1-A"
}

// Student links a student User to exactly one Section.
// RollNo is unique within the section.
type Student struct {
	ID        int `json:"id"`
	UserID    int `json:"user_id"`
	SectionID int `json:"section_id"`
	RollNo    int `json:"roll_no"`
}

// Allocation is a teaching assignment: one teacher User to one (Grade, Section)
// pair. A teacher may hold many; a section may have many allocated teachers.
type Allocation struct {
	ID            int `json:"id"`
	TeacherUserID int `json:"teacher_user_id"`
	GradeID       int `json:"grade_id"`
	SectionID     int `json:"section_id"`
}

// TeacherClass is one allocation resolved to its grade and section.
type TeacherClass struct {
	Grade   Grade   `json:"grade"`
	Section Section `json:"section"`
}

// GradeClasses groups a teacher's allocated sections under their grade.
type GradeClasses struct {
	GradeID   int          `json:"grade_id"`
	GradeName string       `json:"grade_name"`
	Sections  []SectionRef `json:"sections"`
}

type SectionRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// RosterEntry is one student of a section with their identity attributes,
// as needed by the teacher's class view.
type RosterEntry struct {
	StudentID int    `json:"id"`
	RollNo    int    `json:"roll_no"`
	UserID    int    `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// StudentDetails is a student profile resolved to its user, section and grade.
type StudentDetails struct {
	Student Student   `json:"student"`
	User    user.User `json:"user"`
	Section Section   `json:"section"`
	Grade   Grade     `json:"grade"`
}
