package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrewpaige1/flashcard-challenges/models"
)

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	if err := s.db.WithContext(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// resolve loads the categories with the given ids, failing with a
// ValidationError when any id is unknown. Duplicate ids are collapsed.
func (s *CategoryService) resolve(db *gorm.DB, ids []uint) ([]models.Category, error) {
	unique := make([]uint, 0, len(ids))
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	var categories []models.Category
	if err := db.Where("id IN ?", unique).Order("id").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}

	if len(categories) != len(unique) {
		found := make(map[uint]bool, len(categories))
		for _, c := range categories {
			found[c.ID] = true
		}
		for _, id := range unique {
			if !found[id] {
				return nil, invalid("CategoryID: unknown category %d", id)
			}
		}
	}

	return categories, nil
}

func (s *CategoryService) exists(db *gorm.DB, id uint) error {
	_, err := s.resolve(db, []uint{id})
	return err
}
