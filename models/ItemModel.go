package models

// Item has no delete operation. OwnerID only changes when the owning user
// is deactivated and the item is reassigned.
type Item struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OwnerID     uint   `json:"owner_id"`
}
