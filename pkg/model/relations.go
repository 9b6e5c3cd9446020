package model

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Relation binds a many-to-many link between two entity types to its
// junction table. Like Binding, every identifier is configuration; the only
// stored state of a relation is the (owner, related) pair itself.
type Relation struct {
	JunctionTable string
	OwnerColumn   string
	RelatedColumn string
	RelatedTable  string
	OwnerTable    string
}

// RelationStore performs junction-table operations for one relation,
// returning related entities of type T.
type RelationStore[T any] struct {
	db  *gorm.DB
	rel Relation
}

// NewRelationStore binds a relation to its junction table.
func NewRelationStore[T any](db *gorm.DB, rel Relation) *RelationStore[T] {
	return &RelationStore[T]{db: db, rel: rel}
}

// ListRelated returns the related rows for one owner through the junction
// table, in the related table's natural row order.
func (s *RelationStore[T]) ListRelated(ctx context.Context, ownerID int) ([]T, error) {
	query := fmt.Sprintf(
		`SELECT r.* FROM %s AS r
		 INNER JOIN %s AS j ON r.id = j.%s
		 INNER JOIN %s AS o ON o.id = j.%s
		 WHERE o.id = ?`,
		quoteIdent(s.rel.RelatedTable),
		quoteIdent(s.rel.JunctionTable),
		quoteIdent(s.rel.RelatedColumn),
		quoteIdent(s.rel.OwnerTable),
		quoteIdent(s.rel.OwnerColumn),
	)

	var rows []T
	if err := s.db.WithContext(ctx).Raw(query, ownerID).Scan(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	return rows, nil
}

// Add inserts the junction pair. A duplicate pair is ErrConflict: the
// junction's uniqueness constraint is the single authority on existence, so
// there is no read-then-write step to race against.
func (s *RelationStore[T]) Add(ctx context.Context, ownerID, relatedID int) error {
	query := fmt.Sprintf(
		`INSERT INTO %s(%s, %s) VALUES (?, ?)`,
		quoteIdent(s.rel.JunctionTable),
		quoteIdent(s.rel.OwnerColumn),
		quoteIdent(s.rel.RelatedColumn),
	)

	if err := s.db.WithContext(ctx).Exec(query, ownerID, relatedID).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// Remove deletes the junction pair; a pair that never existed is ErrNotFound.
func (s *RelationStore[T]) Remove(ctx context.Context, ownerID, relatedID int) error {
	query := fmt.Sprintf(
		`DELETE FROM %s WHERE %s = ? AND %s = ?`,
		quoteIdent(s.rel.JunctionTable),
		quoteIdent(s.rel.OwnerColumn),
		quoteIdent(s.rel.RelatedColumn),
	)

	tx := s.db.WithContext(ctx).Exec(query, ownerID, relatedID)
	if tx.Error != nil {
		return translateError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return fmt.Errorf("%w: %s (%d, %d)", ErrNotFound, s.rel.JunctionTable, ownerID, relatedID)
	}
	return nil
}
