package services

import (
	"testing"

	"recipebox/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingSaveIsOnePerUserAndRecipe(t *testing.T) {
	gdb := testDB(t)
	f := seed(t, gdb)
	recipes := NewRecipeService(gdb)
	ratings := NewRatingService(gdb)

	recipe := newRecipe("Stew", f.alice, f.mains)
	require.NoError(t, recipes.Save(&recipe))

	first, err := ratings.Save(f.bob.ID, recipe.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, first.Score)

	// Rating again replaces the score instead of adding a row.
	second, err := ratings.Save(f.bob.ID, recipe.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Score)

	var count int64
	require.NoError(t, gdb.Model(&models.Rating{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRatingsFromDifferentUsersCoexist(t *testing.T) {
	gdb := testDB(t)
	f := seed(t, gdb)
	recipes := NewRecipeService(gdb)
	ratings := NewRatingService(gdb)

	recipe := newRecipe("Stew", f.alice, f.mains)
	require.NoError(t, recipes.Save(&recipe))

	_, err := ratings.Save(f.alice.ID, recipe.ID, 2)
	require.NoError(t, err)
	_, err = ratings.Save(f.bob.ID, recipe.ID, 4)
	require.NoError(t, err)

	var count int64
	require.NoError(t, gdb.Model(&models.Rating{}).Where("recipe_id = ?", recipe.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}
