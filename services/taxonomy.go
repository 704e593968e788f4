package services

import (
	"recipebox/models"

	"gorm.io/gorm"
)

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// FindAll returns every category, for the listing filter controls.
func (s *CategoryService) FindAll() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("title ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

type TagService struct {
	db *gorm.DB
}

func NewTagService(db *gorm.DB) *TagService {
	return &TagService{db: db}
}

// FindAll returns every tag, for the listing filter controls.
func (s *TagService) FindAll() ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.db.Order("title ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}
