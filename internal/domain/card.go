package domain

// Card is a single draftable card. The game engine treats cards as opaque
// records; only the catalog cares where they come from.
type Card struct {
	ID          string `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description"`
}
