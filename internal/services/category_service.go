package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"fintrack/internal/domain"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/models"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a new category. Names are unique regardless of case.
func (s *categoryService) CreateCategory(name string, kind domain.Kind, icon, color string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if !kind.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "kind must be income or expense")
	}

	if err := s.ensureUniqueName(s.db, name, ""); err != nil {
		return nil, err
	}

	if icon == "" {
		icon = domain.DefaultCategoryIcon
	}
	if color == "" {
		color = domain.DefaultCategoryColor
	}

	category := &models.Category{
		Name:  name,
		Kind:  kind,
		Icon:  icon,
		Color: color,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// ListCategories returns all categories, optionally of one kind, ordered by kind then name.
func (s *categoryService) ListCategories(kind *domain.Kind) ([]models.Category, error) {
	query := s.db.Model(&models.Category{})
	if kind != nil {
		query = query.Where("kind = ?", *kind)
	}

	categories := []models.Category{}
	if err := query.Order("kind DESC, name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetCategoryByID retrieves a category by ID.
func (s *categoryService) GetCategoryByID(id string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpdateCategory changes the given fields. A rename is carried over to the
// transactions and budgets that reference the old name. The kind cannot change
// while transactions of the other kind use the category.
func (s *categoryService) UpdateCategory(id string, update CategoryUpdate) (*models.Category, error) {
	category, err := s.GetCategoryByID(id)
	if err != nil {
		return nil, err
	}
	oldName := category.Name

	err = s.db.Transaction(func(tx *gorm.DB) error {
		updates := make(map[string]interface{})

		if update.Name != nil {
			name := strings.TrimSpace(*update.Name)
			if name == "" {
				return apperrors.WithMessage(apperrors.ErrInvalidInput, "category name must not be empty")
			}
			if name != oldName {
				if err := s.ensureUniqueName(tx, name, id); err != nil {
					return err
				}
				updates["name"] = name
			}
		}
		if update.Kind != nil && *update.Kind != category.Kind {
			if !update.Kind.Valid() {
				return apperrors.WithMessage(apperrors.ErrInvalidInput, "kind must be income or expense")
			}
			var used int64
			if err := tx.Model(&models.Transaction{}).
				Where("category = ? AND kind <> ?", oldName, *update.Kind).
				Count(&used).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			if used > 0 {
				return apperrors.ErrCategoryInUse
			}
			updates["kind"] = *update.Kind
		}
		if update.Icon != nil {
			updates["icon"] = *update.Icon
		}
		if update.Color != nil {
			updates["color"] = *update.Color
		}

		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(category).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if newName, renamed := updates["name"]; renamed {
			if err := tx.Model(&models.Transaction{}).Where("category = ?", oldName).Update("category", newName).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			if err := tx.Model(&models.Budget{}).Where("category = ?", oldName).Update("category", newName).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return category, nil
}

// DeleteCategory soft-deletes a category. Transactions and budgets keep the
// name and are shown with placeholder presentation afterwards.
func (s *categoryService) DeleteCategory(id string) error {
	category, err := s.GetCategoryByID(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// SeedDefaults creates the default categories when none exist and returns how
// many were created.
func (s *categoryService) SeedDefaults() (int, error) {
	var count int64
	if err := s.db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return 0, nil
	}

	categories := make([]models.Category, 0, len(DefaultCategories))
	for _, c := range DefaultCategories {
		categories = append(categories, models.Category{Name: c.Name, Kind: c.Kind, Icon: c.Icon, Color: c.Color})
	}
	if err := s.db.Create(&categories).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Get().Infow("seeded default categories", "count", len(categories))
	return len(categories), nil
}

func (s *categoryService) ensureUniqueName(db *gorm.DB, name, excludeID string) error {
	query := db.Model(&models.Category{}).Where("LOWER(name) = LOWER(?)", name)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return apperrors.ErrDuplicateCategory
	}
	return nil
}
