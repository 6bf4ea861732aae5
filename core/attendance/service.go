package attendance

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

type (
	Repository interface {
		// UpsertRecord inserts the record or, when one already exists for the
		// same (StudentID, Date) pair, overwrites its status and marking
		// metadata in place. Implementations must make this a single
		// conditional write so concurrent marks of the same pair cannot
		// produce duplicate rows; the later write wins.
		UpsertRecord(ctx context.Context, rec Record) (Record, error)
		// QueryByStudent returns a student's records, optionally restricted
		// to a YYYY-MM month (prefix match on the date string).
		QueryByStudent(ctx context.Context, studentID int, month string) ([]Record, error)
		// QueryBySection returns the records of every student enrolled in the
		// section, optionally restricted to a YYYY-MM month.
		QueryBySection(ctx context.Context, sectionID int, month string) ([]Record, error)
	}

	// Broadcaster pushes a cache-invalidation signal to connected viewers
	// after a section's attendance changes. Fire-and-forget; delivery is not
	// guaranteed and the engine never blocks on it.
	Broadcaster interface {
		AttendanceUpdated(sectionID int)
	}

	Service struct {
		repo        Repository
		broadcaster Broadcaster
	}
)

func NewService(repo Repository, broadcaster Broadcaster) *Service {
	return &Service{repo: repo, broadcaster: broadcaster}
}

// Mark persists a validated sheet of (student, date, status) marks for a
// section, then notifies connected viewers. Each pair ends up with exactly
// one record reflecting the latest submitted status.
//
// The batch is not transactional across records: a store failure mid-batch
// surfaces the error with the earlier records already persisted. Each record
// is independently meaningful, so partial application is acceptable here and
// converges on the next successful mark.
func (svc *Service) Mark(ctx context.Context, teacherUserID, sectionID int, sheet MarkSheet) (int, error) {
	now := time.Now().UTC()
	for _, m := range sheet.Records {
		rec := Record{
			StudentID: m.StudentID,
			Date:      sheet.Date,
			Status:    m.Status,
			MarkedBy:  &teacherUserID,
			MarkedAt:  now,
		}
		if _, err := svc.repo.UpsertRecord(ctx, rec); err != nil {
			return 0, errors.Wrapf(err, "upserting record for student %d on %s", m.StudentID, sheet.Date)
		}
	}

	if svc.broadcaster != nil {
		svc.broadcaster.AttendanceUpdated(sectionID)
	}
	return len(sheet.Records), nil
}

// StudentHistory returns a student's records and their aggregate stats,
// optionally restricted to a month.
func (svc *Service) StudentHistory(ctx context.Context, studentID int, month string) ([]Record, Stats, error) {
	records, err := svc.repo.QueryByStudent(ctx, studentID, month)
	if err != nil {
		return nil, Stats{}, errors.Wrap(err, "querying student records")
	}
	return records, ComputeStats(records), nil
}

// SectionRecords returns all records of a section's students, optionally
// restricted to a month.
func (svc *Service) SectionRecords(ctx context.Context, sectionID int, month string) ([]Record, error) {
	records, err := svc.repo.QueryBySection(ctx, sectionID, month)
	if err != nil {
		return nil, errors.Wrap(err, "querying section records")
	}
	return records, nil
}
