package payroll_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrms/internal/employeescope"
	"go-hrms/internal/middleware"
	"go-hrms/internal/payroll"
	payrollerrors "go-hrms/internal/payroll/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

type fakePayrollService struct {
	payroll.Service
	generateFn         func(ctx context.Context, actorID string, req payroll.GeneratePayrollRequest) (payroll.PayrollResponse, error)
	listFn             func(ctx context.Context, filter payroll.ListFilter) ([]payroll.PayrollResponse, error)
	getByIDFn          func(ctx context.Context, id string) (payroll.PayrollResponse, error)
	listForEmployeesFn func(ctx context.Context, ids []uuid.UUID) ([]payroll.PayrollResponse, error)
	payslipFn          func(ctx context.Context, id string) (payroll.Document, error)
	exportFn           func(ctx context.Context, month string) (payroll.Document, error)
}

func (f *fakePayrollService) Generate(ctx context.Context, actorID string, req payroll.GeneratePayrollRequest) (payroll.PayrollResponse, error) {
	return f.generateFn(ctx, actorID, req)
}
func (f *fakePayrollService) List(ctx context.Context, filter payroll.ListFilter) ([]payroll.PayrollResponse, error) {
	return f.listFn(ctx, filter)
}
func (f *fakePayrollService) GetByID(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakePayrollService) ListForEmployees(ctx context.Context, ids []uuid.UUID) ([]payroll.PayrollResponse, error) {
	return f.listForEmployeesFn(ctx, ids)
}
func (f *fakePayrollService) Payslip(ctx context.Context, id string) (payroll.Document, error) {
	return f.payslipFn(ctx, id)
}
func (f *fakePayrollService) Export(ctx context.Context, month string) (payroll.Document, error) {
	return f.exportFn(ctx, month)
}

type resolverFunc func(ctx context.Context, identity employeescope.Identity) ([]uuid.UUID, error)

func (f resolverFunc) Resolve(ctx context.Context, identity employeescope.Identity) ([]uuid.UUID, error) {
	return f(ctx, identity)
}

func TestPayrollHandler_Generate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	actorID := uuid.NewString()
	employeeID := uuid.NewString()

	t.Run("created", func(t *testing.T) {
		svc := &fakePayrollService{
			generateFn: func(_ context.Context, aid string, req payroll.GeneratePayrollRequest) (payroll.PayrollResponse, error) {
				assert.Equal(t, actorID, aid)
				assert.Equal(t, employeeID, req.EmployeeID)
				require.NotNil(t, req.OvertimeHours)
				assert.Equal(t, 4.5, *req.OvertimeHours)
				require.Len(t, req.Adjustments, 1)
				return payroll.PayrollResponse{ID: uuid.NewString(), EmployeeID: req.EmployeeID, Month: req.Month, FinalSalary: 1234.5}, nil
			},
		}
		h := payroll.NewHandler(svc, nil)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"employee_id":"` + employeeID + `","month":"2026-06","overtime_hours":4.5,"adjustments":[{"label":"Bonus","amount":250}]}`
		c.Request = httptest.NewRequest(http.MethodPost, "/payrolls", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set(middleware.ContextUserID, actorID)

		h.Generate(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := mustDecodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("missing month fails binding", func(t *testing.T) {
		h := payroll.NewHandler(&fakePayrollService{}, nil)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/payrolls", strings.NewReader(`{"employee_id":"`+employeeID+`"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Generate(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate month", func(t *testing.T) {
		svc := &fakePayrollService{
			generateFn: func(context.Context, string, payroll.GeneratePayrollRequest) (payroll.PayrollResponse, error) {
				return payroll.PayrollResponse{}, payrollerrors.ErrPayrollExists
			},
		}
		h := payroll.NewHandler(svc, nil)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/payrolls", strings.NewReader(`{"employee_id":"`+employeeID+`","month":"2026-06"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Generate(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := mustDecodeEnvelope(t, w.Body.Bytes())
		require.NotNil(t, env.Error)
		assert.Equal(t, payrollerrors.ErrPayrollExists.Code, env.Error.Code)
	})
}

func TestPayrollHandler_GetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakePayrollService{
		listFn: func(_ context.Context, filter payroll.ListFilter) ([]payroll.PayrollResponse, error) {
			assert.Equal(t, "2026-06", filter.Month)
			return []payroll.PayrollResponse{{ID: "a"}, {ID: "b"}, {ID: "c"}}, nil
		},
	}
	h := payroll.NewHandler(svc, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/payrolls?month=2026-06&page=2&page_size=2", nil)

	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	var items []payroll.PayrollResponse
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "c", items[0].ID)
	assert.EqualValues(t, 3, env.Meta["total"])
}

func TestPayrollHandler_Documents(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakePayrollService{
		payslipFn: func(_ context.Context, id string) (payroll.Document, error) {
			if id == "missing" {
				return payroll.Document{}, payrollerrors.ErrPayrollNotFound
			}
			return payroll.Document{Filename: "payslip.pdf", ContentType: "application/pdf", Body: []byte("%PDF-1.3")}, nil
		},
		exportFn: func(_ context.Context, month string) (payroll.Document, error) {
			if month == "" {
				return payroll.Document{}, payrollerrors.ErrMonthRequired
			}
			return payroll.Document{Filename: "register.xlsx", ContentType: "application/octet-stream", Body: []byte("PK")}, nil
		},
	}
	h := payroll.NewHandler(svc, nil)

	t.Run("payslip streams the file", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/payrolls/x/payslip", nil)
		c.Params = gin.Params{{Key: "id", Value: "x"}}

		h.Payslip(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "payslip.pdf")
		assert.Equal(t, "%PDF-1.3", w.Body.String())
	})

	t.Run("payslip not found", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/payrolls/missing/payslip", nil)
		c.Params = gin.Params{{Key: "id", Value: "missing"}}

		h.Payslip(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("export without month", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/payrolls/export", nil)

		h.Export(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("export", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/payrolls/export?month=2026-06", nil)

		h.Export(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Disposition"), "register.xlsx")
	})
}

func TestPayrollHandler_GetMine(t *testing.T) {
	gin.SetMode(gin.TestMode)
	own := uuid.New()

	t.Run("lists payrolls of the resolved scope", func(t *testing.T) {
		svc := &fakePayrollService{
			listForEmployeesFn: func(_ context.Context, ids []uuid.UUID) ([]payroll.PayrollResponse, error) {
				assert.Equal(t, []uuid.UUID{own}, ids)
				return []payroll.PayrollResponse{{ID: "p1", EmployeeID: own.String()}}, nil
			},
		}
		scope := resolverFunc(func(_ context.Context, identity employeescope.Identity) ([]uuid.UUID, error) {
			assert.Equal(t, own.String(), identity.ID)
			return []uuid.UUID{own}, nil
		})
		h := payroll.NewHandler(svc, scope)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/me/payrolls", nil)
		c.Set(middleware.ContextUserID, own.String())

		h.GetMine(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("scope failure is redacted", func(t *testing.T) {
		scope := resolverFunc(func(context.Context, employeescope.Identity) ([]uuid.UUID, error) {
			return nil, errors.New("connection refused")
		})
		h := payroll.NewHandler(&fakePayrollService{}, scope)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/me/payrolls", nil)

		h.GetMine(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
	})
}
