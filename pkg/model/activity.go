package model

import "time"

// Activity is a travel theme (hiking, festival, ...) shown as a colored tag.
type Activity struct {
	ID        int       `gorm:"column:id;primaryKey" json:"id,omitempty"`
	Label     string    `gorm:"column:label" json:"label"`
	Color     string    `gorm:"column:color" json:"color"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at,omitempty"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at,omitempty"`
}

func (Activity) TableName() string {
	return "activity"
}

func (a *Activity) EntityID() int      { return a.ID }
func (a *Activity) SetEntityID(id int) { a.ID = id }

// ActivityBinding binds Activity to the activity table.
var ActivityBinding = Binding{
	Table:           "activity",
	InsertProcedure: "insert_activity",
	UpdateProcedure: "update_activity",
	FilterColumns:   []string{"label", "color"},
}
