package endpoints

import (
	"database/sql"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"coride/pkg/cache"
	"coride/pkg/config"
	"coride/pkg/server"
	"coride/pkg/token"
)

// NewMockTestServer creates a server instance with a mocked database and an
// in-memory cache for unit testing. Returns the server, mock database
// wrapper, token service, and any error.
func NewMockTestServer(secret string) (*server.Server, *MockDB, *token.Service, error) {
	mockDB, err := NewMockDB()
	if err != nil {
		return nil, nil, nil, err
	}

	cfg := &config.Config{
		BindAddress:    "127.0.0.1",
		Port:           "0",
		TokenSecret:    secret,
		TokenTTL:       3600,
		CacheKeyPrefix: "coride-test",
	}
	tokens := token.NewService([]byte(secret), time.Hour)
	s := server.NewServer(cfg, mockDB.GormDB, cache.NewMemory(), tokens)

	return s, mockDB, tokens, nil
}

// MockDB wraps sqlmock for easier test setup
type MockDB struct {
	DB     *sql.DB
	Mock   sqlmock.Sqlmock
	GormDB *gorm.DB
}

// NewMockDB creates a new mock database connection
func NewMockDB() (*MockDB, error) {
	db, mock, err := sqlmock.New()
	if err != nil {
		return nil, err
	}

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{
			Conn:                 db,
			PreferSimpleProtocol: true,
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		},
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &MockDB{
		DB:     db,
		Mock:   mock,
		GormDB: gormDB,
	}, nil
}

// Close closes the mock database
func (m *MockDB) Close() error {
	return m.DB.Close()
}

// ExpectUserByEmail sets up expectation for the login credential lookup
func (m *MockDB) ExpectUserByEmail(email string, id int, passwordHash string) {
	rows := sqlmock.NewRows([]string{"id", "email", "password"}).
		AddRow(id, email, passwordHash)
	m.Mock.ExpectQuery(`SELECT \* FROM "user" WHERE email`).
		WithArgs(email).
		WillReturnRows(rows)
}

// ExpectUserNotFound sets up expectation for a missing user row
func (m *MockDB) ExpectUserNotFound(email string) {
	m.Mock.ExpectQuery(`SELECT \* FROM "user" WHERE email`).
		WithArgs(email).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password"}))
}

// VerifyExpectations checks that all expectations were met
func (m *MockDB) VerifyExpectations() error {
	return m.Mock.ExpectationsWereMet()
}
