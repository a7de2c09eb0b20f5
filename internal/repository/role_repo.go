package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/1less1/thebrownbottle-sub000/internal/model"
)

// RoleRepository 岗位角色数据访问接口
type RoleRepository interface {
	GetByID(ctx context.Context, id string) (*model.Role, error)
	List(ctx context.Context) ([]model.Role, error)
}

// roleRepo RoleRepository 的 GORM 实现
type roleRepo struct {
	db *gorm.DB
}

// NewRoleRepo 创建 RoleRepository 实例
func NewRoleRepo(db *gorm.DB) RoleRepository {
	return &roleRepo{db: db}
}

func (r *roleRepo) GetByID(ctx context.Context, id string) (*model.Role, error) {
	var role model.Role
	err := r.db.WithContext(ctx).
		Where("role_id = ?", id).
		First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepo) List(ctx context.Context) ([]model.Role, error) {
	var roles []model.Role
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}
