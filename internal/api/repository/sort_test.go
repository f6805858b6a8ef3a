package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderClause_KnownFields(t *testing.T) {
	assert.Equal(t, "created_at desc", orderClause(reviewSortColumns, "createdAt", "desc"))
	assert.Equal(t, "rating asc", orderClause(reviewSortColumns, "rating", "asc"))
	assert.Equal(t, "anime_title desc", orderClause(reviewSortColumns, "animeTitle", "desc"))
	assert.Equal(t, "updated_at asc", orderClause(reviewSortColumns, "updated_at", "ASC"))
}

func TestOrderClause_UnknownFieldFallsBack(t *testing.T) {
	// untrusted input must never reach the ORDER BY clause verbatim
	assert.Equal(t, "created_at desc", orderClause(reviewSortColumns, "password; drop table users", "desc"))
	assert.Equal(t, "created_at desc", orderClause(commentSortColumns, "rating", "desc"))
}

func TestOrderClause_UnknownOrderFallsBack(t *testing.T) {
	assert.Equal(t, "created_at desc", orderClause(reviewSortColumns, "createdAt", "sideways"))
	assert.Equal(t, "created_at desc", orderClause(reviewSortColumns, "createdAt", ""))
}
