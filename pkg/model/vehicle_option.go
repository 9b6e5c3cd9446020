package model

import "time"

// VehicleOption is a ride amenity (air conditioning, pets allowed, ...).
type VehicleOption struct {
	ID        int       `gorm:"column:id;primaryKey" json:"id,omitempty"`
	Label     string    `gorm:"column:label" json:"label"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at,omitempty"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at,omitempty"`
}

func (VehicleOption) TableName() string {
	return "vehicle_option"
}

func (o *VehicleOption) EntityID() int      { return o.ID }
func (o *VehicleOption) SetEntityID(id int) { o.ID = id }

// VehicleOptionBinding binds VehicleOption to the vehicle_option table.
var VehicleOptionBinding = Binding{
	Table:           "vehicle_option",
	InsertProcedure: "insert_vehicle_option",
	UpdateProcedure: "update_vehicle_option",
	FilterColumns:   []string{"label"},
}
