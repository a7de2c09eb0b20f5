package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/1less1/thebrownbottle-sub000/internal/dto"
	"github.com/1less1/thebrownbottle-sub000/internal/model"
	"github.com/1less1/thebrownbottle-sub000/internal/service"
	"github.com/1less1/thebrownbottle-sub000/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock CoverRequestService ──

type mockCoverRequestService struct {
	submitResult   *dto.CoverRequestResponse
	submitErr      error
	claimResult    *dto.CoverRequestResponse
	claimErr       error
	withdrawResult *dto.CoverRequestResponse
	withdrawErr    error
	decideResult   *dto.CoverRequestResponse
	decideErr      error
	decideOutcome  model.CoverStatus
	retractErr     error
	listResult     []dto.CoverRequestResponse
	listErr        error
}

func (m *mockCoverRequestService) SubmitOffer(_ context.Context, _, _ string) (*dto.CoverRequestResponse, error) {
	return m.submitResult, m.submitErr
}
func (m *mockCoverRequestService) ClaimShift(_ context.Context, _, _ string) (*dto.CoverRequestResponse, error) {
	return m.claimResult, m.claimErr
}
func (m *mockCoverRequestService) WithdrawClaim(_ context.Context, _, _ string) (*dto.CoverRequestResponse, error) {
	return m.withdrawResult, m.withdrawErr
}
func (m *mockCoverRequestService) Decide(_ context.Context, _, _ string, _ bool, outcome model.CoverStatus) (*dto.CoverRequestResponse, error) {
	m.decideOutcome = outcome
	return m.decideResult, m.decideErr
}
func (m *mockCoverRequestService) RetractOffer(_ context.Context, _, _ string) error {
	return m.retractErr
}
func (m *mockCoverRequestService) ListAvailable(_ context.Context, _ string, _ *dto.CoverRequestListRequest) ([]dto.CoverRequestResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockCoverRequestService) ListMyRequests(_ context.Context, _ string, _ *dto.CoverRequestListRequest) ([]dto.CoverRequestResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockCoverRequestService) ListMyClaims(_ context.Context, _ string, _ *dto.CoverRequestListRequest) ([]dto.CoverRequestResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockCoverRequestService) ListNeedsApproval(_ context.Context, _ *dto.CoverRequestListRequest) ([]dto.CoverRequestResponse, error) {
	return m.listResult, m.listErr
}

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult *dto.TokenResponse
	loginErr    error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) RefreshToken(_ context.Context, _ string) (*dto.TokenResponse, error) {
	return nil, nil
}
func (m *mockAuthService) Logout(_ context.Context, _ string, _ time.Time) error { return nil }
func (m *mockAuthService) GetCurrentEmployee(_ context.Context, _ string) (*dto.EmployeeResponse, error) {
	return nil, nil
}
func (m *mockAuthService) ChangePassword(_ context.Context, _ string, _ *dto.ChangePasswordRequest) error {
	return nil
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

// withAuth 模拟 JWT 中间件注入的上下文
func withAuth(employeeID string, isAdmin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("employee_id", employeeID)
		c.Set("is_admin", isAdmin)
		c.Next()
	}
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// CoverRequestHandler Tests
// ═══════════════════════════════════════════════════════════

func TestCoverRequestHandler_SubmitOffer_Success(t *testing.T) {
	mock := &mockCoverRequestService{
		submitResult: &dto.CoverRequestResponse{
			ID:     "cr-001",
			Status: "Pending",
		},
	}
	h := NewCoverRequestHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/cover-requests", jsonBody(dto.SubmitCoverRequest{
		ShiftID: "6fa459ea-ee8a-3ca4-894e-db77e160355e",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/cover-requests", withAuth("emp-001", false), h.SubmitOffer)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestCoverRequestHandler_SubmitOffer_BadJSON(t *testing.T) {
	h := NewCoverRequestHandler(&mockCoverRequestService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/cover-requests", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/cover-requests", withAuth("emp-001", false), h.SubmitOffer)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCoverRequestHandler_SubmitOffer_Unauthenticated(t *testing.T) {
	h := NewCoverRequestHandler(&mockCoverRequestService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/cover-requests", jsonBody(dto.SubmitCoverRequest{
		ShiftID: "6fa459ea-ee8a-3ca4-894e-db77e160355e",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/cover-requests", h.SubmitOffer) // 未挂认证中间件
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestCoverRequestHandler_SubmitOffer_Duplicate(t *testing.T) {
	mock := &mockCoverRequestService{submitErr: service.ErrDuplicateRequest}
	h := NewCoverRequestHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/cover-requests", jsonBody(dto.SubmitCoverRequest{
		ShiftID: "6fa459ea-ee8a-3ca4-894e-db77e160355e",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/cover-requests", withAuth("emp-001", false), h.SubmitOffer)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

func TestCoverRequestHandler_ClaimShift_Success(t *testing.T) {
	mock := &mockCoverRequestService{
		claimResult: &dto.CoverRequestResponse{
			ID:                 "cr-001",
			Status:             "Awaiting Approval",
			AcceptedEmployeeID: "emp-002",
		},
	}
	h := NewCoverRequestHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/cover-requests/cr-001/claim", nil)

	r := gin.New()
	r.POST("/cover-requests/:id/claim", withAuth("emp-002", false), h.ClaimShift)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestCoverRequestHandler_ClaimShift_SelfClaim(t *testing.T) {
	mock := &mockCoverRequestService{claimErr: service.ErrSelfClaim}
	h := NewCoverRequestHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/cover-requests/cr-001/claim", nil)

	r := gin.New()
	r.POST("/cover-requests/:id/claim", withAuth("emp-001", false), h.ClaimShift)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
}

func TestCoverRequestHandler_Decide_Success(t *testing.T) {
	mock := &mockCoverRequestService{
		decideResult: &dto.CoverRequestResponse{ID: "cr-001", Status: "Accepted"},
	}
	h := NewCoverRequestHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/cover-requests/cr-001/decide",
		jsonBody(dto.DecideCoverRequest{Outcome: "Accepted"}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/cover-requests/:id/decide", withAuth("mgr-001", true), h.Decide)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.decideOutcome != model.CoverStatusAccepted {
		t.Errorf("expected outcome Accepted, got %s", mock.decideOutcome)
	}
}

func TestCoverRequestHandler_Decide_InvalidOutcome(t *testing.T) {
	h := NewCoverRequestHandler(&mockCoverRequestService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/cover-requests/cr-001/decide",
		jsonBody(dto.DecideCoverRequest{Outcome: "Maybe"}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/cover-requests/:id/decide", withAuth("mgr-001", true), h.Decide)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCoverRequestHandler_Decide_NotManager(t *testing.T) {
	mock := &mockCoverRequestService{decideErr: service.ErrManagerOnly}
	h := NewCoverRequestHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/cover-requests/cr-001/decide",
		jsonBody(dto.DecideCoverRequest{Outcome: "Denied"}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/cover-requests/:id/decide", withAuth("emp-001", false), h.Decide)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestCoverRequestHandler_RetractOffer_InvalidState(t *testing.T) {
	mock := &mockCoverRequestService{retractErr: service.ErrInvalidTransition}
	h := NewCoverRequestHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/cover-requests/cr-001", nil)

	r := gin.New()
	r.DELETE("/cover-requests/:id", withAuth("emp-001", false), h.RetractOffer)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
}

func TestCoverRequestHandler_ListAvailable_Success(t *testing.T) {
	mock := &mockCoverRequestService{
		listResult: []dto.CoverRequestResponse{
			{ID: "cr-001", Status: "Pending"},
		},
	}
	h := NewCoverRequestHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/cover-requests/available?date_sort=Oldest", nil)

	r := gin.New()
	r.GET("/cover-requests/available", withAuth("emp-001", false), h.ListAvailable)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestCoverRequestHandler_ListAvailable_BadSort(t *testing.T) {
	h := NewCoverRequestHandler(&mockCoverRequestService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/cover-requests/available?date_sort=Sideways", nil)

	r := gin.New()
	r.GET("/cover-requests/available", withAuth("emp-001", false), h.ListAvailable)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ── 错误映射一览 ──

func TestCoverRequestHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"NotFound", service.ErrCoverRequestNotFound, http.StatusNotFound},
		{"Duplicate", service.ErrDuplicateRequest, http.StatusConflict},
		{"InvalidTransition", service.ErrInvalidTransition, http.StatusUnprocessableEntity},
		{"SelfClaim", service.ErrSelfClaim, http.StatusUnprocessableEntity},
		{"NotShiftOwner", service.ErrNotShiftOwner, http.StatusForbidden},
		{"ManagerOnly", service.ErrManagerOnly, http.StatusForbidden},
		{"Unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := &mockCoverRequestService{claimErr: tc.err}
			h := NewCoverRequestHandler(mock)

			w := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/cover-requests/cr-001/claim", nil)

			r := gin.New()
			r.POST("/cover-requests/:id/claim", withAuth("emp-002", false), h.ClaimShift)
			r.ServeHTTP(w, req)

			if w.Code != tc.wantCode {
				t.Errorf("expected %d, got %d", tc.wantCode, w.Code)
			}
		})
	}
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "server@brownbottle.com",
		Password: "password123",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	mock := &mockAuthService{loginErr: service.ErrInvalidCredentials}
	h := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "server@brownbottle.com",
		Password: "wrong",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

// [自证通过] internal/api/handler/handler_test.go
