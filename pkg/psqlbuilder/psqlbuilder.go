// Package psqlbuilder returns squirrel statement builders with the placeholder
// format of the configured SQL driver.
package psqlbuilder

import "github.com/Masterminds/squirrel"

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Builder строит запросы с плейсхолдерами нужного диалекта
type Builder struct {
	sq squirrel.StatementBuilderType
}

// New возвращает builder для драйвера: $1 для postgres, ? для sqlite
func New(driver string) Builder {
	var format squirrel.PlaceholderFormat = squirrel.Dollar
	if driver == DriverSQLite {
		format = squirrel.Question
	}
	return Builder{sq: squirrel.StatementBuilder.PlaceholderFormat(format)}
}

func (b Builder) Select(columns ...string) squirrel.SelectBuilder {
	return b.sq.Select(columns...)
}

func (b Builder) Insert(table string) squirrel.InsertBuilder {
	return b.sq.Insert(table)
}

func (b Builder) Update(table string) squirrel.UpdateBuilder {
	return b.sq.Update(table)
}

func (b Builder) Delete(table string) squirrel.DeleteBuilder {
	return b.sq.Delete(table)
}
