package dummydb

import (
	"sync"

	"github.com/AhmadXRAUF940/attendance--tracker/core/attendance"
	"github.com/AhmadXRAUF940/attendance--tracker/core/school"
	"github.com/AhmadXRAUF940/attendance--tracker/core/user"
)

// DB is an in-memory stand-in for the SQL store, used by tests.
type (
	DB struct {
		user       *userTable
		school     *schoolTable
		attendance *attendanceTable
	}

	userTable struct {
		sync.RWMutex
		pkCount int
		table   map[int]*user.User
	}

	// schoolTable holds all enrollment entities under one lock; they are
	// only ever written together (seeding) and read per request.
	schoolTable struct {
		sync.RWMutex
		gradePK      int
		sectionPK    int
		studentPK    int
		allocationPK int
		grades       map[int]*school.Grade
		sections     map[int]*school.Section
		students     map[int]*school.Student
		allocations  map[int]*school.Allocation
	}

	attendanceTable struct {
		sync.RWMutex
		pkCount int
		table   map[int]*attendance.Record
	}
)

func Open() (*DB, error) {
	db := &DB{
		user: &userTable{table: make(map[int]*user.User)},
		school: &schoolTable{
			grades:      make(map[int]*school.Grade),
			sections:    make(map[int]*school.Section),
			students:    make(map[int]*school.Student),
			allocations: make(map[int]*school.Allocation),
		},
		attendance: &attendanceTable{table: make(map[int]*attendance.Record)},
	}
	return db, nil
}
