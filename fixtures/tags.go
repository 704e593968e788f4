// Package fixtures seeds the database with demo data.
package fixtures

import (
	"time"

	"recipebox/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// TagCount is how many tag rows one fixture run inserts.
const TagCount = 100

// tagMaxAge bounds how far in the past fixture timestamps may fall.
const tagMaxAge = 100 * 24 * time.Hour

// LoadTags inserts exactly TagCount tags in a single batch. Each gets a
// random single-word title and independently random created/updated
// timestamps within the last hundred days; no ordering between the two is
// guaranteed.
func LoadTags(gdb *gorm.DB, seed int64) error {
	faker := gofakeit.New(seed)
	now := time.Now()

	tags := make([]models.Tag, 0, TagCount)
	for i := 0; i < TagCount; i++ {
		tags = append(tags, models.Tag{
			Title:     faker.Word(),
			CreatedAt: pastTimestamp(faker, now),
			UpdatedAt: pastTimestamp(faker, now),
		})
	}
	return gdb.Create(&tags).Error
}

func pastTimestamp(faker *gofakeit.Faker, now time.Time) time.Time {
	age := time.Duration(faker.IntRange(0, int(tagMaxAge/time.Second))) * time.Second
	return now.Add(-age)
}
