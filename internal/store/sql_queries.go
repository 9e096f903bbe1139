package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/ebalakin/credvault/models"
)

// passwordsTable is the single table both SQL backends operate on.
const passwordsTable = "passwords"

// recordColumns lists the table columns in scan order.
var recordColumns = []string{"id", "service", "username", "password", "created_at", "updated_at"}

func (d dialect) buildSelectAll() (string, []any, error) {
	return d.builder().
		Select(recordColumns...).
		From(passwordsTable).
		OrderBy("updated_at DESC").
		ToSql()
}

// buildSearch matches the sanitized query as a literal substring of service
// or username. The ESCAPE clause pairs with the backslash-escaping done by
// utils.SanitizeSearchQuery so LIKE meta-characters in the query match
// themselves.
func (d dialect) buildSearch(query string) (string, []any, error) {
	pattern := "%" + query + "%"

	return d.builder().
		Select(recordColumns...).
		From(passwordsTable).
		Where(sq.Or{
			sq.Expr("service "+d.likeOperator+` ? ESCAPE '\'`, pattern),
			sq.Expr("username "+d.likeOperator+` ? ESCAPE '\'`, pattern),
		}).
		OrderBy("updated_at DESC").
		ToSql()
}

func (d dialect) buildSelectByID(id string) (string, []any, error) {
	return d.builder().
		Select(recordColumns...).
		From(passwordsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func (d dialect) buildInsert(record models.Record) (string, []any, error) {
	return d.builder().
		Insert(passwordsTable).
		Columns(recordColumns...).
		Values(record.ID, record.Service, record.Username, record.Password, record.CreatedAt, record.UpdatedAt).
		ToSql()
}

// buildUpdate assembles SET clauses only for the fields present in patch,
// always moving updated_at. An empty patch yields ErrNoFieldsToUpdate.
func (d dialect) buildUpdate(id string, patch models.RecordPatch, updatedAt time.Time) (string, []any, error) {
	if patch.IsEmpty() {
		return "", nil, ErrNoFieldsToUpdate
	}

	update := d.builder().Update(passwordsTable)

	if patch.Service != nil {
		update = update.Set("service", *patch.Service)
	}
	if patch.Username != nil {
		update = update.Set("username", *patch.Username)
	}
	if patch.Password != nil {
		update = update.Set("password", *patch.Password)
	}

	return update.
		Set("updated_at", updatedAt).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func (d dialect) buildDelete(id string) (string, []any, error) {
	return d.builder().
		Delete(passwordsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func (d dialect) buildCount() (string, []any, error) {
	return d.builder().
		Select("COUNT(*)").
		From(passwordsTable).
		ToSql()
}

func (d dialect) buildRecentCount(since time.Time) (string, []any, error) {
	return d.builder().
		Select("COUNT(*)").
		From(passwordsTable).
		Where(sq.Expr("created_at >= ?", since)).
		ToSql()
}
