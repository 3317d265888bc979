package compensation_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrms/internal/compensation"
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorBody struct {
	Error struct {
		Code    string            `json:"code"`
		Details []json.RawMessage `json:"details"`
	} `json:"error"`
}

func TestCompensationHandler_AssignSalaries(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("nothing valid returns rejected entries", func(t *testing.T) {
		h := compensation.NewHandler(compensation.NewService(nil, newFakeRepo()))
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/compensation/salaries/assign",
			strings.NewReader(`{"assignments":[{"id":"x","salary":1},{"salary":"abc"}]}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.AssignSalaries(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var body errorBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "INVALID_INPUT", body.Error.Code)
		assert.Len(t, body.Error.Details, 2)
	})

	t.Run("mixed body succeeds", func(t *testing.T) {
		repo := newFakeRepo()
		id := repo.addEmployee("100")
		h := compensation.NewHandler(compensation.NewService(nil, repo))
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/compensation/salaries/assign",
			strings.NewReader(`{"assignments":[{"employee_id":"`+id.String()+`","salary":"250.5"},{"salary":1}]}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.AssignSalaries(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Data compensation.AssignSalariesResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, 2, body.Data.Requested)
		assert.Equal(t, 1, body.Data.Rejected)
		assert.Equal(t, int64(1), body.Data.ModifiedCount)
	})
}

type policyServiceStub struct {
	compensation.Service
	actor string
}

func (s *policyServiceStub) UpdatePolicy(_ context.Context, actorID string, req compensation.UpdatePolicyRequest) (compensation.PolicyResponse, error) {
	s.actor = actorID
	return compensation.PolicyResponse{Key: compensation.PolicyKey, TaxRatePercent: req.TaxRatePercent}, nil
}

func TestCompensationHandler_UpdatePolicyPassesActor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	stub := &policyServiceStub{}
	actor := uuid.NewString()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/compensation/policy",
		strings.NewReader(`{"tax_rate_percent":5,"deductions":[]}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.ContextUserID, actor)

	compensation.NewHandler(stub).UpdatePolicy(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, actor, stub.actor)
}
