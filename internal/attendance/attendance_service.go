package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	attendanceerrors "go-hrms/internal/attendance/errors"
	"go-hrms/internal/face"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/money"
	"go-hrms/internal/shared/period"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	ActionCheckIn  = "check_in"
	ActionCheckOut = "check_out"
)

type Service interface {
	Mark(ctx context.Context, actorID string, req MarkAttendanceRequest) (AttendanceResponse, error)
	MarkByFace(ctx context.Context, req FaceAttendanceRequest) (FaceAttendanceResponse, error)
	List(ctx context.Context, filter ListFilter) ([]AttendanceResponse, error)
	Summary(ctx context.Context, employeeID, month string) (SummaryResponse, error)
	ListForEmployees(ctx context.Context, ids []uuid.UUID, month string) ([]AttendanceResponse, error)
}

type service struct {
	db            *sql.DB
	repo          Repository
	face          face.Client
	minConfidence float64
	now           func() time.Time
	logger        *zap.Logger
}

func NewService(db *sql.DB, repo Repository, faceClient face.Client, minConfidence float64, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		db:            db,
		repo:          repo,
		face:          faceClient,
		minConfidence: minConfidence,
		now:           time.Now,
		logger:        l,
	}
}

func (s *service) Mark(ctx context.Context, actorID string, req MarkAttendanceRequest) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("mark attendance requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.String("date", req.Date),
	)

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployee
	}
	date, err := period.ParseDate(req.Date)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidDate
	}
	if !money.IsFinite(req.OvertimeHours) || req.OvertimeHours < 0 {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidOvertime
	}

	row := &Attendance{
		ID:             uuid.New(),
		EmployeeID:     employeeID,
		AttendanceDate: date,
		Status:         req.Status,
		OvertimeHours:  money.Round2(decimal.NewFromFloat(req.OvertimeHours)),
		IsHoliday:      req.IsHoliday || req.Status == StatusHoliday,
		CheckInTime:    req.CheckInTime,
		CheckOutTime:   req.CheckOutTime,
		Method:         MethodManual,
	}
	if actor, err := uuid.Parse(actorID); err == nil {
		row.MarkedBy = &actor
	}
	if row.CheckInTime != nil && row.CheckOutTime != nil {
		if row.CheckOutTime.Before(*row.CheckInTime) {
			return AttendanceResponse{}, attendanceerrors.ErrInvalidTimeRange
		}
		row.WorkingHours = workingHours(*row.CheckInTime, *row.CheckOutTime)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("mark attendance begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := ensureActiveEmployee(ctx, qtx, employeeID); err != nil {
		s.logger.Warn("mark attendance rejected", zap.String("employee_id", req.EmployeeID), zap.Error(err))
		return AttendanceResponse{}, err
	}

	// No pre-check: the unique index is the only arbiter for (employee, date).
	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Warn("mark attendance persist failed", zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("mark attendance commit failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("mark attendance success",
		zap.String("request_id", rid),
		zap.String("attendance_id", row.ID.String()),
	)
	return mapToResponse(*row), nil
}

func (s *service) MarkByFace(ctx context.Context, req FaceAttendanceRequest) (FaceAttendanceResponse, error) {
	match, err := s.face.Recognize(ctx, req.Image)
	if err != nil {
		return FaceAttendanceResponse{}, err
	}

	employeeID, err := uuid.Parse(match.EmployeeID)
	if err != nil || match.Confidence < s.minConfidence {
		s.logger.Warn("face not recognized",
			zap.String("employee_id", match.EmployeeID),
			zap.Float64("confidence", match.Confidence),
		)
		return FaceAttendanceResponse{}, attendanceerrors.ErrFaceNotRecognized
	}

	now := s.now().UTC()
	today := period.Today(now)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("face attendance begin tx failed", zap.Error(err))
		return FaceAttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := ensureActiveEmployee(ctx, qtx, employeeID); err != nil {
		return FaceAttendanceResponse{}, err
	}

	existing, err := qtx.FindByEmployeeAndDate(ctx, employeeID, today)
	action := ActionCheckIn
	var row *Attendance

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		row = &Attendance{
			ID:             uuid.New(),
			EmployeeID:     employeeID,
			AttendanceDate: today,
			Status:         StatusPresent,
			CheckInTime:    &now,
			Method:         MethodFace,
		}
		if err := qtx.Create(ctx, row); err != nil {
			return FaceAttendanceResponse{}, mapRepositoryError(err)
		}
	case err != nil:
		s.logger.Error("face attendance lookup failed", zap.Error(err))
		return FaceAttendanceResponse{}, err
	case existing.CheckOutTime != nil:
		return FaceAttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedOut
	default:
		action = ActionCheckOut
		row = existing
		row.CheckOutTime = &now
		if row.CheckInTime != nil {
			row.WorkingHours = workingHours(*row.CheckInTime, now)
		}
		if err := qtx.UpdateCheckOut(ctx, row); err != nil {
			return FaceAttendanceResponse{}, mapRepositoryError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("face attendance commit failed", zap.Error(err))
		return FaceAttendanceResponse{}, err
	}

	s.logger.Info("face attendance recorded",
		zap.String("employee_id", employeeID.String()),
		zap.String("action", action),
		zap.Float64("confidence", match.Confidence),
	)
	return FaceAttendanceResponse{
		Action:     action,
		Confidence: match.Confidence,
		Attendance: mapToResponse(*row),
	}, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]AttendanceResponse, error) {
	q := Query{}
	if filter.EmployeeID != "" {
		id, err := uuid.Parse(filter.EmployeeID)
		if err != nil {
			return nil, attendanceerrors.ErrInvalidEmployee
		}
		q.EmployeeIDs = []uuid.UUID{id}
	}
	if err := applyMonth(&q, filter.Month); err != nil {
		return nil, err
	}

	rows, err := s.repo.FindAll(ctx, q)
	if err != nil {
		s.logger.Error("list attendance failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) Summary(ctx context.Context, employeeID, month string) (SummaryResponse, error) {
	if employeeID == "" || month == "" {
		return SummaryResponse{}, attendanceerrors.ErrSummaryParamsRequired
	}
	id, err := uuid.Parse(employeeID)
	if err != nil {
		return SummaryResponse{}, attendanceerrors.ErrInvalidEmployee
	}

	q := Query{EmployeeIDs: []uuid.UUID{id}}
	if err := applyMonth(&q, month); err != nil {
		return SummaryResponse{}, err
	}

	rows, err := s.repo.FindAll(ctx, q)
	if err != nil {
		return SummaryResponse{}, err
	}

	summary := SummaryResponse{EmployeeID: employeeID, Month: month, TotalDays: len(rows)}
	overtime := decimal.Zero
	for _, r := range rows {
		switch r.Status {
		case StatusPresent:
			summary.Present++
		case StatusAbsent:
			summary.Absent++
		case StatusHalfDay:
			summary.HalfDay++
		}
		if r.CountsAsHoliday() {
			summary.Holiday++
		}
		overtime = overtime.Add(r.OvertimeHours)
	}
	summary.OvertimeHours = money.Float(overtime)
	return summary, nil
}

func (s *service) ListForEmployees(ctx context.Context, ids []uuid.UUID, month string) ([]AttendanceResponse, error) {
	if len(ids) == 0 {
		return []AttendanceResponse{}, nil
	}
	q := Query{EmployeeIDs: ids}
	if err := applyMonth(&q, month); err != nil {
		return nil, err
	}

	rows, err := s.repo.FindAll(ctx, q)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func applyMonth(q *Query, month string) error {
	if month == "" {
		return nil
	}
	m, err := period.ParseMonth(month)
	if err != nil {
		return attendanceerrors.ErrInvalidMonth
	}
	q.From, q.To = m.Start, m.End
	return nil
}

func ensureActiveEmployee(ctx context.Context, repo Repository, employeeID uuid.UUID) error {
	status, err := repo.GetEmployeeStatus(ctx, employeeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return attendanceerrors.ErrInvalidEmployee
	}
	if err != nil {
		return err
	}
	if status != "active" {
		return attendanceerrors.ErrInvalidEmployee
	}
	return nil
}

func workingHours(in, out time.Time) decimal.Decimal {
	return money.Round2(decimal.NewFromFloat(out.Sub(in).Hours()))
}

func mapRepositoryError(err error) error {
	if apperror.UniqueConstraint(err) == "uq_attendance_employee_date" {
		return attendanceerrors.ErrAttendanceExists
	}
	return err
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:            a.ID.String(),
		EmployeeID:    a.EmployeeID.String(),
		EmployeeName:  a.EmployeeName,
		EmployeeCode:  a.EmployeeCode,
		Date:          a.AttendanceDate.Format(period.DateLayout),
		Status:        a.Status,
		OvertimeHours: money.Float(a.OvertimeHours),
		IsHoliday:     a.IsHoliday,
		CheckInTime:   a.CheckInTime,
		CheckOutTime:  a.CheckOutTime,
		WorkingHours:  money.Float(a.WorkingHours),
		Method:        a.Method,
	}
	if a.MarkedBy != nil {
		resp.MarkedBy = a.MarkedBy.String()
	}
	return resp
}

func mapToListResponse(rows []Attendance) []AttendanceResponse {
	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res
}
