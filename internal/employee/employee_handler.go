package employee

import (
	"cmp"
	"net/http"
	"slices"
	"strings"

	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("employee request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.Error(err),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create employee validation failed", zap.Error(err))
		response.ValidationError(c, err)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	resp, err := h.service.GetAll(c.Request.Context(), ListFilter{
		Q:      c.Query("q"),
		Status: c.Query("status"),
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	sortEmployees(resp, c.DefaultQuery("sort_by", "name"), c.DefaultQuery("sort_dir", "asc"))

	page, pageSize := response.PageParams(c)
	items, meta := response.Paginate(resp, page, pageSize)
	response.Success(c, http.StatusOK, items, &meta)
}

var employeeOrderings = map[string]func(a, b EmployeeResponse) int{
	"name":          func(a, b EmployeeResponse) int { return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)) },
	"email":         func(a, b EmployeeResponse) int { return cmp.Compare(a.Email, b.Email) },
	"employee_code": func(a, b EmployeeResponse) int { return cmp.Compare(a.EmployeeCode, b.EmployeeCode) },
	"salary":        func(a, b EmployeeResponse) int { return cmp.Compare(a.Salary, b.Salary) },
	// joining_date is YYYY-MM-DD so lexical order is chronological.
	"joining_date": func(a, b EmployeeResponse) int { return cmp.Compare(a.JoiningDate, b.JoiningDate) },
}

// sortEmployees orders in place; unknown sort keys fall back to name.
func sortEmployees(items []EmployeeResponse, sortBy, sortDir string) {
	order, ok := employeeOrderings[strings.ToLower(strings.TrimSpace(sortBy))]
	if !ok {
		order = employeeOrderings["name"]
	}
	if strings.EqualFold(strings.TrimSpace(sortDir), "desc") {
		asc := order
		order = func(a, b EmployeeResponse) int { return asc(b, a) }
	}
	slices.SortStableFunc(items, order)
}

func (h *Handler) GetOptions(c *gin.Context) {
	resp, err := h.service.GetOptions(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	id := c.Param("id")
	h.logger.Debug("http get employee by id", zap.String("employee_id", id))

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update employee validation failed", zap.Error(err))
		response.ValidationError(c, err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Deactivate(c *gin.Context) {
	id := c.Param("id")
	h.logger.Debug("http deactivate employee", zap.String("employee_id", id))

	if err := h.service.Deactivate(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deactivated": true}, nil)
}
