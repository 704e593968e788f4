package models

import "time"

type Recipe struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Ingredients  string    `gorm:"type:text" json:"ingredients"`
	Instructions string    `gorm:"type:text" json:"instructions"`
	Image        string    `json:"image"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	UserID       uint      `gorm:"index" json:"user_id"` // Author, set once at creation
	CategoryID   uint      `gorm:"index" json:"category_id"`
	User         User      `gorm:"foreignKey:UserID" json:"user"`
	Category     Category  `gorm:"foreignKey:CategoryID" json:"category"`
	Tags         []Tag     `gorm:"many2many:recipe_tags" json:"tags"`
	Ratings      []Rating  `gorm:"foreignKey:RecipeID" json:"ratings,omitempty"`
}

// AverageRating returns the mean score of the loaded ratings, 0 when unrated.
func (r *Recipe) AverageRating() float64 {
	if len(r.Ratings) == 0 {
		return 0
	}
	sum := 0
	for _, rating := range r.Ratings {
		sum += rating.Score
	}
	return float64(sum) / float64(len(r.Ratings))
}
