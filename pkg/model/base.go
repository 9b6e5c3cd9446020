package model

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// Entity is implemented by all persisted record types. An ID of zero means
// the record has not been stored yet; once the store assigns an ID it is
// never changed by this layer.
type Entity interface {
	EntityID() int
	SetEntityID(id int)
}

// Binding is the static association between an entity type and its table.
// Every identifier used in generated SQL comes from here, never from request
// input. Procedure names are explicit configuration rather than a naming
// convention rebuilt at call sites.
type Binding struct {
	// Table is the table name; it is quoted in every statement so reserved
	// words like "user" are valid table names.
	Table string

	// InsertProcedure and UpdateProcedure are the stored procedures used by
	// Save. Both take the entity as a single JSON argument and return the
	// resulting row.
	InsertProcedure string
	UpdateProcedure string

	// FilterColumns lists the columns FindAll accepts in a filter.
	FilterColumns []string

	// TimestampColumns lists filter columns compared by calendar day
	// instead of the usual predicate inference.
	TimestampColumns []string
}

func (b Binding) filterable(column string) bool {
	for _, c := range b.FilterColumns {
		if c == column {
			return true
		}
	}
	return false
}

func (b Binding) timestamp(column string) bool {
	for _, c := range b.TimestampColumns {
		if c == column {
			return true
		}
	}
	return false
}

// Condition is one filter entry: a column name and the candidate value as it
// arrived from the caller.
type Condition struct {
	Column string
	Value  string
}

// Filter is an ordered filter specification. Each condition produces exactly
// one predicate; predicates are conjoined with AND in specification order.
type Filter []Condition

// Where appends a condition, preserving specification order.
func (f Filter) Where(column, value string) Filter {
	return append(f, Condition{Column: column, Value: value})
}

// Mapper issues the generic CRUD statements for one bound entity type.
// It holds no state besides the pool handle and the binding; instances are
// safe for concurrent use.
type Mapper[T any, P interface {
	*T
	Entity
}] struct {
	db      *gorm.DB
	binding Binding
}

// NewMapper binds an entity type to its table.
func NewMapper[T any, P interface {
	*T
	Entity
}](db *gorm.DB, binding Binding) *Mapper[T, P] {
	return &Mapper[T, P]{db: db, binding: binding}
}

// Binding returns the mapper's table binding.
func (m *Mapper[T, P]) Binding() Binding {
	return m.binding
}

// quoteIdent quotes a SQL identifier.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// buildPredicate renders one comparison for a filter condition and returns
// the SQL fragment plus its bind value. Comparison type is inferred per
// column: timestamp columns match any time on the same calendar day,
// non-integer values match as case-insensitive substrings, integers match
// exactly. The value is always a bind parameter.
func (m *Mapper[T, P]) buildPredicate(cond Condition) (string, interface{}, error) {
	if !m.binding.filterable(cond.Column) {
		return "", nil, fmt.Errorf("%w: %s", ErrBadFilter, cond.Column)
	}

	switch {
	case m.binding.timestamp(cond.Column):
		return fmt.Sprintf("date(%s) = ?", quoteIdent(cond.Column)), cond.Value, nil
	default:
		if _, err := strconv.Atoi(cond.Value); err != nil {
			return fmt.Sprintf("%s ILIKE ?", quoteIdent(cond.Column)), "%" + cond.Value + "%", nil
		}
		return fmt.Sprintf("%s = ?", quoteIdent(cond.Column)), cond.Value, nil
	}
}

// FindAll returns every row of the bound table, narrowed by the filter when
// one is given. An empty result is ErrNotFound: callers must treat it as a
// reportable condition, not an empty success.
func (m *Mapper[T, P]) FindAll(ctx context.Context, filter Filter) ([]T, error) {
	query := fmt.Sprintf(`SELECT * FROM %s`, quoteIdent(m.binding.Table))
	var args []interface{}

	if len(filter) > 0 {
		predicates := make([]string, 0, len(filter))
		for _, cond := range filter {
			predicate, arg, err := m.buildPredicate(cond)
			if err != nil {
				return nil, err
			}
			predicates = append(predicates, predicate)
			args = append(args, arg)
		}
		query += " WHERE " + strings.Join(predicates, " AND ")
	}

	var rows []T
	if err := m.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows, nil
}

// FindOne returns the row with the given primary key, or ErrNotFound.
func (m *Mapper[T, P]) FindOne(ctx context.Context, id int) (*T, error) {
	query := fmt.Sprintf(`SELECT * FROM %s WHERE id = ?`, quoteIdent(m.binding.Table))

	var rows []T
	if err := m.db.WithContext(ctx).Raw(query, id).Scan(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s id %d", ErrNotFound, m.binding.Table, id)
	}
	return &rows[0], nil
}

// Save upserts the entity through the bound stored procedure: update when the
// entity already carries an ID, insert otherwise. The entity is refreshed
// in place with every store-computed column, including the generated ID on
// insert.
func (m *Mapper[T, P]) Save(ctx context.Context, entity P) error {
	procedure := m.binding.InsertProcedure
	if entity.EntityID() != 0 {
		procedure = m.binding.UpdateProcedure
	}

	payload, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	query := fmt.Sprintf(`SELECT * FROM %s(?)`, quoteIdent(procedure))
	if err := m.db.WithContext(ctx).Raw(query, string(payload)).Scan(entity).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// Delete removes the entity's row. Zero rows affected is ErrNotFound so
// callers can tell "already gone" apart from "deleted now".
func (m *Mapper[T, P]) Delete(ctx context.Context, entity P) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, quoteIdent(m.binding.Table))

	tx := m.db.WithContext(ctx).Exec(query, entity.EntityID())
	if tx.Error != nil {
		return translateError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return fmt.Errorf("%w: %s id %d", ErrNotFound, m.binding.Table, entity.EntityID())
	}
	return nil
}
