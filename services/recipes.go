// Package services holds the persistence collaborators the handlers delegate
// to: paginated recipe queries, rating upserts, and taxonomy listings.
package services

import (
	"errors"

	"recipebox/models"

	"gorm.io/gorm"
)

// PerPage is the listing page size.
const PerPage = 10

// topRatedLimit caps the top-rated listing.
const topRatedLimit = 10

var ErrRecipeNotFound = errors.New("recipe not found")

// Pagination is one page of recipes plus the numbers the listing view needs.
type Pagination struct {
	Items      []models.Recipe
	Page       int
	PerPage    int
	Total      int64
	TotalPages int
}

// HasPrev reports whether an earlier page exists.
func (p *Pagination) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a later page exists.
func (p *Pagination) HasNext() bool { return p.Page < p.TotalPages }

func (p *Pagination) PrevPage() int { return p.Page - 1 }

func (p *Pagination) NextPage() int { return p.Page + 1 }

// RankedRecipe is a recipe with its rating aggregate, for the top-rated view.
type RankedRecipe struct {
	Recipe      models.Recipe
	AvgScore    float64
	RatingCount int64
}

type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// AllPaginatedList returns one page of the full recipe set, optionally
// filtered by category and tag. A zero filter means absent.
func (s *RecipeService) AllPaginatedList(page int, categoryID, tagID uint) (*Pagination, error) {
	return s.paginate(page, func() *gorm.DB {
		return s.filtered(categoryID, tagID)
	})
}

// PaginatedList is AllPaginatedList restricted to recipes authored by ownerID.
func (s *RecipeService) PaginatedList(page int, ownerID uint, categoryID, tagID uint) (*Pagination, error) {
	return s.paginate(page, func() *gorm.DB {
		return s.filtered(categoryID, tagID).Where("recipes.user_id = ?", ownerID)
	})
}

func (s *RecipeService) filtered(categoryID, tagID uint) *gorm.DB {
	query := s.db.Model(&models.Recipe{})
	if categoryID > 0 {
		query = query.Where("recipes.category_id = ?", categoryID)
	}
	if tagID > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Where("recipe_tags.tag_id = ?", tagID)
	}
	return query
}

// paginate runs the count and page queries on separate chains built by query.
func (s *RecipeService) paginate(page int, query func() *gorm.DB) (*Pagination, error) {
	if page < 1 {
		page = 1
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, err
	}

	var recipes []models.Recipe
	err := query().
		Preload("User").
		Preload("Category").
		Preload("Tags").
		Order("recipes.created_at DESC, recipes.id DESC").
		Offset((page - 1) * PerPage).
		Limit(PerPage).
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}

	totalPages := int((total + PerPage - 1) / PerPage)
	return &Pagination{
		Items:      recipes,
		Page:       page,
		PerPage:    PerPage,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// Find loads one recipe with its author, category, tags, and ratings.
func (s *RecipeService) Find(id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.
		Preload("User").
		Preload("Category").
		Preload("Tags").
		Preload("Ratings").
		First(&recipe, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// Save creates the recipe when it has no id yet, otherwise updates it. Tag
// associations are replaced to mirror the submitted form.
func (s *RecipeService) Save(recipe *models.Recipe) error {
	if recipe.ID == 0 {
		return s.db.Create(recipe).Error
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Ratings", "User", "Category").Save(recipe).Error; err != nil {
			return err
		}
		return tx.Model(recipe).Association("Tags").Replace(recipe.Tags)
	})
}

// Delete removes the recipe together with its ratings and tag links.
func (s *RecipeService) Delete(recipe *models.Recipe) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(recipe).Error
	})
}

// TopRated returns up to ten recipes ordered by average score, then rating
// count, then id.
func (s *RecipeService) TopRated() ([]RankedRecipe, error) {
	var rows []struct {
		RecipeID    uint
		AvgScore    float64
		RatingCount int64
	}
	err := s.db.Model(&models.Rating{}).
		Select("recipe_id, AVG(score) AS avg_score, COUNT(id) AS rating_count").
		Group("recipe_id").
		Order("avg_score DESC, rating_count DESC, recipe_id ASC").
		Limit(topRatedLimit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []RankedRecipe{}, nil
	}

	ids := make([]uint, len(rows))
	for i, row := range rows {
		ids[i] = row.RecipeID
	}
	var recipes []models.Recipe
	err = s.db.
		Preload("User").
		Preload("Category").
		Find(&recipes, ids).Error
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Recipe, len(recipes))
	for _, recipe := range recipes {
		byID[recipe.ID] = recipe
	}

	ranked := make([]RankedRecipe, 0, len(rows))
	for _, row := range rows {
		recipe, ok := byID[row.RecipeID]
		if !ok {
			continue
		}
		ranked = append(ranked, RankedRecipe{
			Recipe:      recipe,
			AvgScore:    row.AvgScore,
			RatingCount: row.RatingCount,
		})
	}
	return ranked, nil
}
