package service

import (
	"math"
	"sort"

	"github.com/noah-isme/drivedesk-gateway/internal/dto"
	"github.com/noah-isme/drivedesk-gateway/internal/models"
)

// DeriveStudents projects exactly one Student per enrollment, preserving order.
func DeriveStudents(enrollments []models.Enrollment) []models.Student {
	students := make([]models.Student, 0, len(enrollments))
	for _, e := range enrollments {
		students = append(students, models.Student{
			ID:                e.StudentID,
			Name:              e.StudentName,
			Email:             e.StudentEmail,
			Phone:             e.StudentPhone,
			EnrollmentID:      e.ID,
			EnrollmentStatus:  e.EnrollmentStatus,
			DocumentsVerified: e.DocumentsVerified,
		})
	}
	return students
}

// DeriveAnalytics summarises the collections of a single batch.
func DeriveAnalytics(sessions []models.Session, students []models.Student, teachers []models.Teacher) models.AnalyticsSummary {
	completed := 0
	for _, s := range sessions {
		if s.Status == models.SessionStatusCompleted {
			completed++
		}
	}
	return models.AnalyticsSummary{
		TotalSessions:     len(sessions),
		CompletedSessions: completed,
		TotalStudents:     len(students),
		TotalTeachers:     len(teachers),
	}
}

// DeriveDistribution counts sessions per category. Percentages are
// 100*count/total rounded half away from zero; a zero total yields 0 for every
// category. Sessions outside categories count towards the total only.
func DeriveDistribution(sessions []models.Session, categories []models.SessionType) models.Distribution {
	counts := make(map[models.SessionType]int, len(categories))
	for _, s := range sessions {
		counts[s.SessionType]++
	}
	total := len(sessions)

	dist := make(models.Distribution, len(categories))
	for _, category := range categories {
		count := counts[category]
		dist[category] = models.DistributionEntry{Count: count, Percentage: percentage(count, total)}
	}
	return dist
}

func percentage(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(count) / float64(total)))
}

// DeriveEnrollmentBreakdown feeds the performance overview.
func DeriveEnrollmentBreakdown(students []models.Student, teachers []models.Teacher) models.EnrollmentBreakdown {
	var b models.EnrollmentBreakdown
	for _, s := range students {
		switch s.EnrollmentStatus {
		case models.EnrollmentStatusApproved:
			b.ApprovedStudents++
		case models.EnrollmentStatusPending:
			b.PendingStudents++
		}
		if s.DocumentsVerified {
			b.DocumentsVerified++
		}
	}
	for _, t := range teachers {
		if t.IsApproved {
			b.ApprovedTeachers++
		}
	}
	return b
}

// AssignableTeachers filters teachers sessions may be booked with.
func AssignableTeachers(teachers []models.Teacher) []models.Teacher {
	out := make([]models.Teacher, 0, len(teachers))
	for _, t := range teachers {
		if t.Assignable() {
			out = append(out, t)
		}
	}
	return out
}

// ApprovedStudents filters students whose enrollment was approved.
func ApprovedStudents(students []models.Student) []models.Student {
	out := make([]models.Student, 0, len(students))
	for _, s := range students {
		if s.EnrollmentStatus == models.EnrollmentStatusApproved {
			out = append(out, s)
		}
	}
	return out
}

// RecentSessions returns at most n sessions, latest scheduled first.
func RecentSessions(sessions []models.Session, n int) []models.Session {
	sorted := make([]models.Session, len(sessions))
	copy(sorted, sessions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ScheduledAt.After(sorted[j].ScheduledAt.Time)
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// DistributionRows orders a distribution by categories for rendering.
func DistributionRows(dist models.Distribution, categories []models.SessionType) []dto.DistributionRow {
	rows := make([]dto.DistributionRow, 0, len(categories))
	for _, category := range categories {
		entry := dist[category]
		rows = append(rows, dto.DistributionRow{SessionType: category, Count: entry.Count, Percentage: entry.Percentage})
	}
	return rows
}

// derive recomputes every derived field of snap from its own collections.
func derive(snap *dto.Snapshot) {
	snap.Students = DeriveStudents(snap.Enrollments)
	snap.Analytics = DeriveAnalytics(snap.Sessions, snap.Students, snap.Teachers)
	snap.Distribution = DeriveDistribution(snap.SchoolSessions, models.SessionTypes)
	snap.Breakdown = DeriveEnrollmentBreakdown(snap.Students, snap.Teachers)
}
