package model

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// User represents a rider or driver account. The password column holds a
// bcrypt hash, never cleartext; endpoints blank it before responding.
type User struct {
	ID          int       `gorm:"column:id;primaryKey" json:"id,omitempty"`
	FirstName   string    `gorm:"column:first_name" json:"first_name"`
	LastName    string    `gorm:"column:last_name" json:"last_name"`
	Email       string    `gorm:"column:email" json:"email"`
	Pseudo      string    `gorm:"column:pseudo" json:"pseudo"`
	PictureLink string    `gorm:"column:picture_link" json:"picture_link,omitempty"`
	Password    string    `gorm:"column:password" json:"password,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at,omitempty"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at,omitempty"`
}

func (User) TableName() string {
	return "user"
}

func (u *User) EntityID() int      { return u.ID }
func (u *User) SetEntityID(id int) { u.ID = id }

// UserBinding binds User to the "user" table. The table name is a reserved
// word, which is why every generated statement quotes its identifiers.
var UserBinding = Binding{
	Table:           "user",
	InsertProcedure: "insert_user",
	UpdateProcedure: "update_user",
	FilterColumns:   []string{"first_name", "last_name", "email", "pseudo"},
}

// FindUserByEmail looks a user up by exact email match. Login must not go
// through the generic filter inference: an email never parses as an integer
// and would match as a substring there.
func FindUserByEmail(ctx context.Context, db *gorm.DB, email string) (*User, error) {
	var rows []User
	if err := db.WithContext(ctx).Raw(`SELECT * FROM "user" WHERE email = ?`, email).Scan(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, email)
	}
	return &rows[0], nil
}

// UserActivityRelation links users to the activities they are interested in.
var UserActivityRelation = Relation{
	JunctionTable: "user_activity",
	OwnerTable:    "user",
	OwnerColumn:   "user_id",
	RelatedTable:  "activity",
	RelatedColumn: "activity_id",
}

// UserVehicleOptionRelation links users to the vehicle options they offer.
var UserVehicleOptionRelation = Relation{
	JunctionTable: "user_vehicle_option",
	OwnerTable:    "user",
	OwnerColumn:   "user_id",
	RelatedTable:  "vehicle_option",
	RelatedColumn: "vehicle_option_id",
}

// UserTravelRelation links passengers to the travels they joined.
var UserTravelRelation = Relation{
	JunctionTable: "user_travel",
	OwnerTable:    "user",
	OwnerColumn:   "user_id",
	RelatedTable:  "travel",
	RelatedColumn: "travel_id",
}
