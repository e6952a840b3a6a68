package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"healthy-backend/internal/domain"
)

// Models lists every table, in dependency order, for AutoMigrate.
func Models() []any {
	return []any{
		&domain.User{},
		&domain.Diet{},
		&domain.Ingredient{},
		&domain.Recipe{},
		&domain.MealPlan{},
		&domain.UserProgress{},
	}
}

func Migrate(db *gorm.DB) error { return db.AutoMigrate(Models()...) }

func isDupKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// 驱动未翻译时兜底
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 20
	}
	return limit
}
