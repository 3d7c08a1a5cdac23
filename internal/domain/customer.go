package domain

import "time"

// Customer es el registro que queda en la base cuando alguien inicia sesión
// con Google por primera vez.
type Customer struct {
	ID        string    `gorm:"primaryKey;size:140"`
	Email     string    `gorm:"size:140;uniqueIndex"`
	Name      string    `gorm:"size:140"`
	Picture   string    `gorm:"size:255"`
	CreatedAt time.Time
}
