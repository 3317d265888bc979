package attendance_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrms/internal/attendance"
	attendanceerrors "go-hrms/internal/attendance/errors"
	"go-hrms/internal/employeescope"
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceService struct {
	MarkFn             func(ctx context.Context, actorID string, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error)
	MarkByFaceFn       func(ctx context.Context, req attendance.FaceAttendanceRequest) (attendance.FaceAttendanceResponse, error)
	ListFn             func(ctx context.Context, filter attendance.ListFilter) ([]attendance.AttendanceResponse, error)
	SummaryFn          func(ctx context.Context, employeeID, month string) (attendance.SummaryResponse, error)
	ListForEmployeesFn func(ctx context.Context, ids []uuid.UUID, month string) ([]attendance.AttendanceResponse, error)
}

func (f *fakeAttendanceService) Mark(ctx context.Context, actorID string, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
	return f.MarkFn(ctx, actorID, req)
}
func (f *fakeAttendanceService) MarkByFace(ctx context.Context, req attendance.FaceAttendanceRequest) (attendance.FaceAttendanceResponse, error) {
	return f.MarkByFaceFn(ctx, req)
}
func (f *fakeAttendanceService) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.AttendanceResponse, error) {
	return f.ListFn(ctx, filter)
}
func (f *fakeAttendanceService) Summary(ctx context.Context, employeeID, month string) (attendance.SummaryResponse, error) {
	return f.SummaryFn(ctx, employeeID, month)
}
func (f *fakeAttendanceService) ListForEmployees(ctx context.Context, ids []uuid.UUID, month string) ([]attendance.AttendanceResponse, error) {
	return f.ListForEmployeesFn(ctx, ids, month)
}

type resolverFunc func(ctx context.Context, identity employeescope.Identity) ([]uuid.UUID, error)

func (f resolverFunc) Resolve(ctx context.Context, identity employeescope.Identity) ([]uuid.UUID, error) {
	return f(ctx, identity)
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Meta  map[string]any  `json:"meta"`
	Error *apiError       `json:"error"`
}

func mustDecodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

func jsonContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestAttendanceHandler_Mark(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.NewString()

	t.Run("rejects unknown status", func(t *testing.T) {
		c, w := jsonContext(http.MethodPost, "/attendance",
			`{"employee_id":"`+employeeID+`","date":"2025-03-03","status":"late"}`)

		attendance.NewHandler(&fakeAttendanceService{}, nil).Mark(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := mustDecodeEnvelope(t, w.Body.Bytes())
		require.NotNil(t, env.Error)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})

	t.Run("passes actor and returns 201", func(t *testing.T) {
		svc := &fakeAttendanceService{
			MarkFn: func(_ context.Context, actorID string, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
				assert.Equal(t, "admin-1", actorID)
				assert.Equal(t, attendance.StatusHalfDay, req.Status)
				return attendance.AttendanceResponse{EmployeeID: req.EmployeeID, Status: req.Status}, nil
			},
		}
		c, w := jsonContext(http.MethodPost, "/attendance",
			`{"employee_id":"`+employeeID+`","date":"2025-03-03","status":"half-day"}`)
		c.Set(middleware.ContextUserID, "admin-1")

		attendance.NewHandler(svc, nil).Mark(c)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("duplicate maps to 409", func(t *testing.T) {
		svc := &fakeAttendanceService{
			MarkFn: func(context.Context, string, attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
				return attendance.AttendanceResponse{}, attendanceerrors.ErrAttendanceExists
			},
		}
		c, w := jsonContext(http.MethodPost, "/attendance",
			`{"employee_id":"`+employeeID+`","date":"2025-03-03","status":"present"}`)

		attendance.NewHandler(svc, nil).Mark(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestAttendanceHandler_MarkByFace(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		action string
		status int
	}{
		{"check in", attendance.ActionCheckIn, http.StatusCreated},
		{"check out", attendance.ActionCheckOut, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeAttendanceService{
				MarkByFaceFn: func(context.Context, attendance.FaceAttendanceRequest) (attendance.FaceAttendanceResponse, error) {
					return attendance.FaceAttendanceResponse{Action: tc.action, Confidence: 0.9}, nil
				},
			}
			c, w := jsonContext(http.MethodPost, "/attendance/face", `{"image":"abc"}`)

			attendance.NewHandler(svc, nil).MarkByFace(c)

			assert.Equal(t, tc.status, w.Code)
		})
	}

	t.Run("not recognized", func(t *testing.T) {
		svc := &fakeAttendanceService{
			MarkByFaceFn: func(context.Context, attendance.FaceAttendanceRequest) (attendance.FaceAttendanceResponse, error) {
				return attendance.FaceAttendanceResponse{}, attendanceerrors.ErrFaceNotRecognized
			},
		}
		c, w := jsonContext(http.MethodPost, "/attendance/face", `{"image":"abc"}`)

		attendance.NewHandler(svc, nil).MarkByFace(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAttendanceHandler_GetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeAttendanceService{
		ListFn: func(_ context.Context, filter attendance.ListFilter) ([]attendance.AttendanceResponse, error) {
			assert.Equal(t, "2025-02", filter.Month)
			return []attendance.AttendanceResponse{{ID: "a"}, {ID: "b"}, {ID: "c"}}, nil
		},
	}
	c, w := jsonContext(http.MethodGet, "/attendance?month=2025-02&page=2&page_size=2", "")

	attendance.NewHandler(svc, nil).GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	var items []attendance.AttendanceResponse
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "c", items[0].ID)
	assert.EqualValues(t, 3, env.Meta["total"])
}

func TestAttendanceHandler_GetMine(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ids := []uuid.UUID{uuid.New(), uuid.New()}

	t.Run("uses resolved scope", func(t *testing.T) {
		scope := resolverFunc(func(_ context.Context, identity employeescope.Identity) ([]uuid.UUID, error) {
			assert.Equal(t, "emp@example.com", identity.Email)
			assert.Equal(t, "EMP-0001", identity.EmployeeCode)
			return ids, nil
		})
		svc := &fakeAttendanceService{
			ListForEmployeesFn: func(_ context.Context, got []uuid.UUID, month string) ([]attendance.AttendanceResponse, error) {
				assert.Equal(t, ids, got)
				assert.Equal(t, "2025-01", month)
				return []attendance.AttendanceResponse{{ID: "x"}}, nil
			},
		}
		c, w := jsonContext(http.MethodGet, "/me/attendance?month=2025-01", "")
		c.Set(middleware.ContextUserID, ids[0].String())
		c.Set(middleware.ContextEmail, "emp@example.com")
		c.Set(middleware.ContextEmployeeCode, "EMP-0001")

		attendance.NewHandler(svc, scope).GetMine(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("resolver failure is redacted", func(t *testing.T) {
		scope := resolverFunc(func(context.Context, employeescope.Identity) ([]uuid.UUID, error) {
			return nil, errors.New("dial tcp: connection refused")
		})
		c, w := jsonContext(http.MethodGet, "/me/attendance", "")

		attendance.NewHandler(&fakeAttendanceService{}, scope).GetMine(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
	})
}
