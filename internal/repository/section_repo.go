package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/1less1/thebrownbottle-sub000/internal/model"
)

// SectionRepository 餐厅区域数据访问接口
type SectionRepository interface {
	GetByID(ctx context.Context, id string) (*model.Section, error)
	List(ctx context.Context) ([]model.Section, error)
}

// sectionRepo SectionRepository 的 GORM 实现
type sectionRepo struct {
	db *gorm.DB
}

// NewSectionRepo 创建 SectionRepository 实例
func NewSectionRepo(db *gorm.DB) SectionRepository {
	return &sectionRepo{db: db}
}

func (r *sectionRepo) GetByID(ctx context.Context, id string) (*model.Section, error) {
	var section model.Section
	err := r.db.WithContext(ctx).
		Where("section_id = ?", id).
		First(&section).Error
	if err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *sectionRepo) List(ctx context.Context) ([]model.Section, error) {
	var sections []model.Section
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&sections).Error
	if err != nil {
		return nil, err
	}
	return sections, nil
}
