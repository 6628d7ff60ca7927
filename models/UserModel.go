package models

// User is never physically deleted. "Deleting" a user flips IsActive to
// false and hands their items over to another active user.
type User struct {
	ID             uint   `gorm:"primarykey" json:"id"`
	Email          string `gorm:"unique;not null" json:"email"`
	HashedPassword string `gorm:"not null" json:"-"`
	IsActive       bool   `gorm:"default:true" json:"is_active"`
	Items          []Item `gorm:"foreignKey:OwnerID" json:"-"`
}
