package repository

import "strings"

// reviewSortColumns maps client-facing sort field names (the API kept the
// camelCase names of the original frontend) to real columns.
var reviewSortColumns = map[string]string{
	"createdAt":  "created_at",
	"created_at": "created_at",
	"updatedAt":  "updated_at",
	"updated_at": "updated_at",
	"rating":     "rating",
	"animeTitle": "anime_title",
}

var commentSortColumns = map[string]string{
	"createdAt":  "created_at",
	"created_at": "created_at",
}

// orderClause builds a safe ORDER BY fragment from untrusted sort parameters.
// Unknown fields fall back to created_at, unknown orders to desc.
func orderClause(columns map[string]string, sortBy, order string) string {
	column, ok := columns[sortBy]
	if !ok {
		column = "created_at"
	}
	if strings.EqualFold(order, "asc") {
		return column + " asc"
	}
	return column + " desc"
}
