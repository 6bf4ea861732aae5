package dummydb

import (
	"context"
	"sort"

	"github.com/AhmadXRAUF940/attendance--tracker/core/attendance"
)

type attendanceRepository struct {
	db     *attendanceTable
	school *schoolTable
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *DB) *attendanceRepository {
	return &attendanceRepository{db: db.attendance, school: db.school}
}

func (repo *attendanceRepository) UpsertRecord(_ context.Context, rec attendance.Record) (attendance.Record, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, existing := range repo.db.table {
		if existing.StudentID == rec.StudentID && existing.Date == rec.Date {
			existing.Status = rec.Status
			existing.MarkedBy = rec.MarkedBy
			existing.MarkedAt = rec.MarkedAt
			return *existing, nil
		}
	}

	repo.db.pkCount++
	rec.ID = repo.db.pkCount
	repo.db.table[rec.ID] = &rec
	return rec, nil
}

func (repo *attendanceRepository) QueryByStudent(_ context.Context, studentID int, month string) ([]attendance.Record, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var records []attendance.Record
	for _, rec := range repo.db.table {
		if rec.StudentID != studentID {
			continue
		}
		if !attendance.MatchesMonth(rec.Date, month) {
			continue
		}
		records = append(records, *rec)
	}
	sortRecords(records)
	return records, nil
}

func (repo *attendanceRepository) QueryBySection(_ context.Context, sectionID int, month string) ([]attendance.Record, error) {
	repo.school.RLock()
	sectionStudents := make(map[int]bool)
	for _, st := range repo.school.students {
		if st.SectionID == sectionID {
			sectionStudents[st.ID] = true
		}
	}
	repo.school.RUnlock()

	repo.db.RLock()
	defer repo.db.RUnlock()

	var records []attendance.Record
	for _, rec := range repo.db.table {
		if !sectionStudents[rec.StudentID] {
			continue
		}
		if !attendance.MatchesMonth(rec.Date, month) {
			continue
		}
		records = append(records, *rec)
	}
	sortRecords(records)
	return records, nil
}

func sortRecords(records []attendance.Record) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date < records[j].Date
		}
		return records[i].StudentID < records[j].StudentID
	})
}
