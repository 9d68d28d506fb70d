package mysql

import (
	"context"

	"HobbyHop/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uint64) (*model.Category, error) {
	var category model.Category
	err := r.DB.WithContext(ctx).First(&category, id).Error
	return &category, err
}

func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	var list []model.Category
	err := r.DB.WithContext(ctx).Order("id asc").Find(&list).Error
	return list, err
}

// Seed 按名称幂等写入初始分类
func (r *CategoryRepository) Seed(ctx context.Context, names ...string) error {
	for _, name := range names {
		c := model.Category{Name: name}
		if err := r.DB.WithContext(ctx).Where("name = ?", name).FirstOrCreate(&c).Error; err != nil {
			return err
		}
	}
	return nil
}
