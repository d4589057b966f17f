// File: entities/recipe.go
package entities

import (
	"github.com/google/uuid"
)

type Account struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name string    `json:"name" gorm:"index"`

	Recipes []*Recipe `gorm:"foreignKey:AccountID"`
	Timestamp
}

type Recipe struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name            string     `json:"name"`
	DifficultyLevel int        `json:"difficulty_level" gorm:"default:0"`
	Description     string     `json:"description" gorm:"type:text"`
	Image           string     `json:"image"`
	AccountID       *uuid.UUID `json:"account_id,omitempty"`

	Account *Account  `gorm:"foreignKey:AccountID"`
	Likes   []*Like   `gorm:"foreignKey:RecipeID"`
	Reviews []*Review `gorm:"foreignKey:RecipeID"`
	Timestamp
}

type Like struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	RecipeID uuid.UUID `json:"recipe_id"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
	Timestamp
}

type Review struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	RecipeID uuid.UUID `json:"recipe_id"`
	Rating   int       `json:"rating"`
	Comment  string    `json:"comment" gorm:"type:text"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
	Timestamp
}
