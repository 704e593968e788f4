package services

import (
	"errors"

	"recipebox/models"

	"gorm.io/gorm"
)

type RatingService struct {
	db *gorm.DB
}

func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{db: db}
}

// Save records the user's score for a recipe. A repeat submission updates
// the existing row instead of adding a second one.
func (s *RatingService) Save(userID, recipeID uint, score int) (*models.Rating, error) {
	var rating models.Rating
	err := s.db.
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(&rating).Error
	switch {
	case err == nil:
		rating.Score = score
		if err := s.db.Save(&rating).Error; err != nil {
			return nil, err
		}
		return &rating, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		rating = models.Rating{UserID: userID, RecipeID: recipeID, Score: score}
		if err := s.db.Create(&rating).Error; err != nil {
			return nil, err
		}
		return &rating, nil
	default:
		return nil, err
	}
}
