package leave_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrms/internal/leave"
	leaveerrors "go-hrms/internal/leave/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeLeaveService struct {
	createFn        func(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error)
	getByIDFn       func(ctx context.Context, id string) (leave.LeaveResponse, error)
	getAllFn        func(ctx context.Context) ([]leave.LeaveResponse, error)
	getByEmployeeFn func(ctx context.Context, employeeID string) ([]leave.LeaveResponse, error)
	getByStatusFn   func(ctx context.Context, status string) ([]leave.LeaveResponse, error)
	approveFn       func(ctx context.Context, id string, req leave.ApproveLeaveRequest) (leave.LeaveResponse, error)
	rejectFn        func(ctx context.Context, id string, req leave.RejectLeaveRequest) (leave.LeaveResponse, error)
	cancelFn        func(ctx context.Context, id string) (leave.LeaveResponse, error)
}

func (f *fakeLeaveService) Create(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	return f.createFn(ctx, req)
}
func (f *fakeLeaveService) GetByID(ctx context.Context, id string) (leave.LeaveResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeLeaveService) GetAll(ctx context.Context) ([]leave.LeaveResponse, error) {
	return f.getAllFn(ctx)
}
func (f *fakeLeaveService) GetByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveResponse, error) {
	return f.getByEmployeeFn(ctx, employeeID)
}
func (f *fakeLeaveService) GetByStatus(ctx context.Context, status string) ([]leave.LeaveResponse, error) {
	return f.getByStatusFn(ctx, status)
}
func (f *fakeLeaveService) Approve(ctx context.Context, id string, req leave.ApproveLeaveRequest) (leave.LeaveResponse, error) {
	return f.approveFn(ctx, id, req)
}
func (f *fakeLeaveService) Reject(ctx context.Context, id string, req leave.RejectLeaveRequest) (leave.LeaveResponse, error) {
	return f.rejectFn(ctx, id, req)
}
func (f *fakeLeaveService) Cancel(ctx context.Context, id string) (leave.LeaveResponse, error) {
	return f.cancelFn(ctx, id)
}

func TestLeaveHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		employeeID := uuid.New().String()
		svc := &fakeLeaveService{
			createFn: func(_ context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, employeeID, req.EmployeeID)
				assert.Equal(t, leave.TypePaid, req.Type)
				return leave.LeaveResponse{
					ID:         uuid.New().String(),
					EmployeeID: req.EmployeeID,
					Type:       req.Type,
					StartDate:  req.StartDate,
					EndDate:    req.EndDate,
					TotalDays:  2,
					Status:     leave.StatusPending,
				}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"employee_id":"` + employeeID + `","type":"PAID","start_date":"2026-03-10","end_date":"2026-03-11","reason":"family trip"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("missing employee id fails validation", func(t *testing.T) {
		svc := &fakeLeaveService{}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"type":"PAID","start_date":"2026-03-10","end_date":"2026-03-11"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
	})

	t.Run("overlap maps to conflict", func(t *testing.T) {
		svc := &fakeLeaveService{
			createFn: func(_ context.Context, _ leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrLeaveOverlap
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"employee_id":"` + uuid.New().String() + `","type":"PAID","start_date":"2026-03-10","end_date":"2026-03-11"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "CONFLICT", env.Error.Code)
	})
}

func TestLeaveHandler_GetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("status query filters by status", func(t *testing.T) {
		svc := &fakeLeaveService{
			getByStatusFn: func(_ context.Context, status string) ([]leave.LeaveResponse, error) {
				assert.Equal(t, leave.StatusPending, status)
				return []leave.LeaveResponse{{ID: uuid.New().String(), Status: status}}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/leave-requests?status=PENDING", nil)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("without status returns everything", func(t *testing.T) {
		svc := &fakeLeaveService{
			getAllFn: func(_ context.Context) ([]leave.LeaveResponse, error) {
				return []leave.LeaveResponse{}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/leave-requests", nil)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestLeaveHandler_Reject(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("reason is required", func(t *testing.T) {
		svc := &fakeLeaveService{}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"approver_id":"` + uuid.New().String() + `"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests/x/reject", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}

		h.Reject(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid transition maps to bad request", func(t *testing.T) {
		svc := &fakeLeaveService{
			rejectFn: func(_ context.Context, _ string, _ leave.RejectLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"approver_id":"` + uuid.New().String() + `","reason":"too busy"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests/x/reject", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}

		h.Reject(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INVALID_STATE", env.Error.Code)
	})
}
