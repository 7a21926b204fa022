package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/drivedesk-gateway/internal/dto"
	"github.com/noah-isme/drivedesk-gateway/internal/models"
	appErrors "github.com/noah-isme/drivedesk-gateway/pkg/errors"
	"github.com/noah-isme/drivedesk-gateway/pkg/export"
)

// ExportDataset names an exportable table.
type ExportDataset string

// Exportable datasets.
const (
	DatasetSchedules ExportDataset = "schedules"
	DatasetTeachers  ExportDataset = "teachers"
	DatasetStudents  ExportDataset = "students"
	DatasetAnalytics ExportDataset = "analytics"
)

// ExportFile is a rendered export ready to be streamed.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

// ExportService renders snapshot collections as CSV or PDF.
type ExportService struct {
	snapshots snapshotReader
	csv       csvRenderer
	pdf       pdfRenderer
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(snapshots snapshotReader, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		snapshots: snapshots,
		csv:       csv,
		pdf:       pdf,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Export renders dataset of the principal's snapshot in format.
func (s *ExportService) Export(ctx context.Context, p models.Principal, dataset ExportDataset, rawFormat string) (*ExportFile, error) {
	format, err := export.ParseFormat(rawFormat)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	snap, err := s.snapshots.Snapshot(ctx, p)
	if err != nil {
		return nil, err
	}
	data, err := BuildDataset(snap, dataset)
	if err != nil {
		return nil, err
	}

	var body []byte
	switch format {
	case export.FormatPDF:
		body, err = s.pdf.Render(data)
	default:
		body, err = s.csv.Render(data)
	}
	if err != nil {
		s.logger.Error("export render failed", zap.String("dataset", string(dataset)), zap.String("format", string(format)), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	return &ExportFile{
		Filename:    fmt.Sprintf("%s_%s.%s", dataset, s.now().Format("20060102_150405"), format),
		ContentType: format.ContentType(),
		Body:        body,
	}, nil
}

// BuildDataset projects one snapshot collection into a table.
func BuildDataset(snap *dto.Snapshot, dataset ExportDataset) (export.Dataset, error) {
	switch dataset {
	case DatasetSchedules:
		return schedulesDataset(snap), nil
	case DatasetTeachers:
		return teachersDataset(snap), nil
	case DatasetStudents:
		return studentsDataset(snap), nil
	case DatasetAnalytics:
		return analyticsDataset(snap), nil
	}
	return export.Dataset{}, appErrors.Clone(appErrors.ErrNotFound, "unknown export dataset")
}

func schedulesDataset(snap *dto.Snapshot) export.Dataset {
	data := export.Dataset{
		Title:   "Scheduled Sessions",
		Headers: []string{"Session", "Student", "Teacher", "Type", "Scheduled At", "Duration (min)", "Location", "Status"},
	}
	for _, session := range snap.SchoolSessions {
		location := ""
		if session.Location != nil {
			location = *session.Location
		}
		scheduled := ""
		if !session.ScheduledAt.IsZero() {
			scheduled = session.ScheduledAt.Format("2006-01-02 15:04")
		}
		data.Rows = append(data.Rows, []string{
			session.ID.String(),
			fallback(session.StudentName, session.StudentID.String()),
			fallback(session.TeacherName, session.TeacherID.String()),
			string(session.SessionType),
			scheduled,
			strconv.Itoa(session.DurationMinutes),
			location,
			string(session.Status),
		})
	}
	return data
}

func teachersDataset(snap *dto.Snapshot) export.Dataset {
	data := export.Dataset{
		Title:   "Teachers",
		Headers: []string{"Name", "Email", "Phone", "Teaches", "Rating", "Approved"},
	}
	for _, t := range snap.Teachers {
		data.Rows = append(data.Rows, []string{
			t.UserDetails.FullName(),
			t.UserDetails.Email,
			t.UserDetails.Phone,
			teachesLabel(t),
			strconv.FormatFloat(t.Rating, 'f', 1, 64),
			yesNo(t.IsApproved),
		})
	}
	return data
}

func studentsDataset(snap *dto.Snapshot) export.Dataset {
	data := export.Dataset{
		Title:   "Students",
		Headers: []string{"Name", "Email", "Phone", "Enrollment", "Status", "Documents Verified"},
	}
	for _, st := range snap.Students {
		data.Rows = append(data.Rows, []string{
			st.Name,
			st.Email,
			st.Phone,
			st.EnrollmentID.String(),
			string(st.EnrollmentStatus),
			yesNo(st.DocumentsVerified),
		})
	}
	return data
}

func analyticsDataset(snap *dto.Snapshot) export.Dataset {
	data := export.Dataset{
		Title:   "Session Distribution",
		Headers: []string{"Session Type", "Count", "Percentage"},
	}
	for _, row := range DistributionRows(snap.Distribution, models.SessionTypes) {
		data.Rows = append(data.Rows, []string{
			string(row.SessionType),
			strconv.Itoa(row.Count),
			strconv.Itoa(row.Percentage) + "%",
		})
	}
	return data
}

func teachesLabel(t models.Teacher) string {
	var parts []string
	if t.CanTeachMale {
		parts = append(parts, "male")
	}
	if t.CanTeachFemale {
		parts = append(parts, "female")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func fallback(value, alt string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return alt
}
