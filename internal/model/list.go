package model

// List is a named, date-scheduled container of items.
type List struct {
	ID       uint   `gorm:"primaryKey;autoIncrement"`
	Title    string `gorm:"type:text;not null"`
	Date     string `gorm:"type:text;index;not null"`
	Notified bool   `gorm:"not null"`
	Items    []Item `gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE"`
}

// Item is a single checkable task belonging to exactly one List.
type Item struct {
	ID     uint   `gorm:"primaryKey;autoIncrement"`
	ListID uint   `gorm:"index;not null"`
	Text   string `gorm:"type:text"`
	Done   bool   `gorm:"not null"`
}
