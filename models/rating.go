package models

import "time"

// Rating is a single user's score for a recipe. One row per (user, recipe);
// rating again replaces the previous score.
type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Score     int       `json:"score"`
	UserID    uint      `gorm:"uniqueIndex:idx_rating_user_recipe" json:"user_id"`
	RecipeID  uint      `gorm:"uniqueIndex:idx_rating_user_recipe" json:"recipe_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
}
