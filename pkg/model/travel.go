package model

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Travel represents one offered ride.
type Travel struct {
	ID                 int       `gorm:"column:id;primaryKey" json:"id,omitempty"`
	DepartureCity      string    `gorm:"column:departure_city" json:"departure_city"`
	DestinationCity    string    `gorm:"column:destination_city" json:"destination_city"`
	LatitudeDeparture  float64   `gorm:"column:latitude_departure" json:"latitude_departure"`
	LongitudeDeparture float64   `gorm:"column:longitude_departure" json:"longitude_departure"`
	PlacesAvailable    int       `gorm:"column:places_available" json:"places_available"`
	Description        string    `gorm:"column:description" json:"description"`
	DepartureTimestamp time.Time `gorm:"column:departure_timestamp" json:"departure_timestamp"`
	ActivityID         int       `gorm:"column:activity_id" json:"activity_id"`
	UserID             int       `gorm:"column:user_id" json:"user_id"`
	CreatedAt          time.Time `gorm:"column:created_at" json:"created_at,omitempty"`
	UpdatedAt          time.Time `gorm:"column:updated_at" json:"updated_at,omitempty"`
}

func (Travel) TableName() string {
	return "travel"
}

func (t *Travel) EntityID() int      { return t.ID }
func (t *Travel) SetEntityID(id int) { t.ID = id }

// TravelBinding binds Travel to the travel table. departure_timestamp is a
// timestamp filter column: filtering on it matches any departure on the same
// calendar day.
var TravelBinding = Binding{
	Table:           "travel",
	InsertProcedure: "insert_travel",
	UpdateProcedure: "update_travel",
	FilterColumns: []string{
		"departure_city", "destination_city", "places_available",
		"activity_id", "user_id", "departure_timestamp",
		"latitude_departure", "longitude_departure",
	},
	TimestampColumns: []string{"departure_timestamp"},
}

// SearchByDeparture returns travels leaving from the given coordinates.
// Coordinates are floats, so they bypass the generic filter inference and
// compare with plain equality.
func SearchByDeparture(ctx context.Context, db *gorm.DB, lat, long float64) ([]Travel, error) {
	query := `SELECT * FROM "travel" WHERE "latitude_departure" = ? AND "longitude_departure" = ?`

	var rows []Travel
	if err := db.WithContext(ctx).Raw(query, lat, long).Scan(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows, nil
}

// AddPassengerProcedure is the stored procedure that seats a passenger on a
// travel. It checks capacity and inserts the user_travel pair in a single
// transactional call, so two concurrent joins cannot both take the last seat.
const AddPassengerProcedure = "add_passenger"

// PassengerStore seats and removes passengers on travels.
type PassengerStore struct {
	db        *gorm.DB
	procedure string
	leaving   *RelationStore[Travel]
}

// NewPassengerStore creates a PassengerStore using AddPassengerProcedure.
func NewPassengerStore(db *gorm.DB) *PassengerStore {
	return &PassengerStore{
		db:        db,
		procedure: AddPassengerProcedure,
		leaving:   NewRelationStore[Travel](db, UserTravelRelation),
	}
}

// Join seats the user as a passenger. Capacity checking happens inside the
// procedure, not here.
func (s *PassengerStore) Join(ctx context.Context, userID, travelID int) error {
	query := fmt.Sprintf(`SELECT * FROM %s(?, ?)`, quoteIdent(s.procedure))

	var result struct {
		ID int `gorm:"column:id"`
	}
	if err := s.db.WithContext(ctx).Raw(query, userID, travelID).Scan(&result).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// Leave removes the user from the travel's passenger list.
func (s *PassengerStore) Leave(ctx context.Context, userID, travelID int) error {
	return s.leaving.Remove(ctx, userID, travelID)
}
