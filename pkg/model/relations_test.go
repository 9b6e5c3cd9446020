package model

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListRelated(t *testing.T) {
	gormDB, mock := newMockDB(t)
	activities := NewRelationStore[Activity](gormDB, UserActivityRelation)

	rows := sqlmock.NewRows([]string{"id", "label", "color"}).
		AddRow(1, "hiking", "#2d936c").
		AddRow(2, "surfing", "#1b6ca8")
	mock.ExpectQuery(`SELECT r\.\* FROM "activity" AS r`).
		WithArgs(7).
		WillReturnRows(rows)

	found, err := activities.ListRelated(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "hiking", found[0].Label)
}

func TestAddRelation(t *testing.T) {
	gormDB, mock := newMockDB(t)
	activities := NewRelationStore[Activity](gormDB, UserActivityRelation)

	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO "user_activity"("user_id", "activity_id") VALUES (?, ?)`,
	)).
		WithArgs(7, 2).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, activities.Add(context.Background(), 7, 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddRelationDuplicateIsConflict(t *testing.T) {
	gormDB, mock := newMockDB(t)
	activities := NewRelationStore[Activity](gormDB, UserActivityRelation)

	mock.ExpectExec(`INSERT INTO "user_activity"`).
		WithArgs(7, 2).
		WillReturnError(&pq.Error{
			Code:   "23505",
			Detail: "Key (user_id, activity_id)=(7, 2) already exists.",
		})

	err := activities.Add(context.Background(), 7, 2)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRemoveRelation(t *testing.T) {
	gormDB, mock := newMockDB(t)
	activities := NewRelationStore[Activity](gormDB, UserActivityRelation)

	mock.ExpectExec(regexp.QuoteMeta(
		`DELETE FROM "user_activity" WHERE "user_id" = ? AND "activity_id" = ?`,
	)).
		WithArgs(7, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, activities.Remove(context.Background(), 7, 2))
}

func TestRemoveRelationMissingPairIsNotFound(t *testing.T) {
	gormDB, mock := newMockDB(t)
	activities := NewRelationStore[Activity](gormDB, UserActivityRelation)

	mock.ExpectExec(`DELETE FROM "user_activity"`).
		WithArgs(7, 2).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := activities.Remove(context.Background(), 7, 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPassengerJoin(t *testing.T) {
	gormDB, mock := newMockDB(t)
	passengers := NewPassengerStore(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "add_passenger"(?, ?)`)).
		WithArgs(7, 3).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	require.NoError(t, passengers.Join(context.Background(), 7, 3))
}

func TestPassengerJoinFullTravel(t *testing.T) {
	gormDB, mock := newMockDB(t)
	passengers := NewPassengerStore(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "add_passenger"(?, ?)`)).
		WithArgs(7, 3).
		WillReturnError(&pq.Error{Code: "P0001", Message: "travel is full"})

	err := passengers.Join(context.Background(), 7, 3)
	assert.ErrorIs(t, err, ErrPersistence)
}

func TestPassengerLeave(t *testing.T) {
	gormDB, mock := newMockDB(t)
	passengers := NewPassengerStore(gormDB)

	mock.ExpectExec(regexp.QuoteMeta(
		`DELETE FROM "user_travel" WHERE "user_id" = ? AND "travel_id" = ?`,
	)).
		WithArgs(7, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, passengers.Leave(context.Background(), 7, 3))
}
