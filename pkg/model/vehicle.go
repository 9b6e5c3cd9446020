package model

import "time"

// Vehicle is a car registered by a user.
type Vehicle struct {
	ID        int       `gorm:"column:id;primaryKey" json:"id,omitempty"`
	Brand     string    `gorm:"column:brand" json:"brand"`
	Model     string    `gorm:"column:model" json:"model"`
	Places    int       `gorm:"column:places" json:"places"`
	UserID    int       `gorm:"column:user_id" json:"user_id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at,omitempty"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at,omitempty"`
}

func (Vehicle) TableName() string {
	return "vehicle"
}

func (v *Vehicle) EntityID() int      { return v.ID }
func (v *Vehicle) SetEntityID(id int) { v.ID = id }

// VehicleBinding binds Vehicle to the vehicle table.
var VehicleBinding = Binding{
	Table:           "vehicle",
	InsertProcedure: "insert_vehicle",
	UpdateProcedure: "update_vehicle",
	FilterColumns:   []string{"brand", "model", "user_id"},
}
