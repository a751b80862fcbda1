package repository

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/models"
	"gorm.io/gorm"
)

// VisibleTo limits a query to rows the viewer may read: PUBLIC rows for
// anonymous callers, PUBLIC or owned rows for users, everything for admins.
func VisibleTo(viewer *auth.Identity, table, ownerColumn string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch {
		case viewer == nil:
			return db.Where(table+".visibility = ?", models.VisibilityPublic)
		case viewer.IsAdmin():
			return db
		default:
			return db.Where("("+table+".visibility = ? OR "+table+"."+ownerColumn+" = ?)", models.VisibilityPublic, viewer.ID)
		}
	}
}

// Paginate applies offset/limit after clamping.
func Paginate(skip, take int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		skip, take := Page(skip, take)
		return db.Offset(skip).Limit(take)
	}
}

func postOrder(sort models.PostSort) string {
	switch sort {
	case models.SortCreatedAtAsc:
		return "posts.created_at ASC"
	case models.SortPublishedAtDesc:
		return "posts.published_at DESC NULLS LAST, posts.created_at DESC"
	case models.SortPublishedAtAsc:
		return "posts.published_at ASC NULLS LAST, posts.created_at ASC"
	default:
		return "posts.created_at DESC"
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern builds an ILIKE pattern matching term literally anywhere in
// the column. Backslash is the Postgres default LIKE escape.
func ContainsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
