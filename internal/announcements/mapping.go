package announcements

import (
	"github.com/google/uuid"

	"github.com/mwhitfield/placard/pkg/query"
	"github.com/mwhitfield/placard/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "announcements", "a").
	Project("id", "ID").
	Project("title", "Title").
	Project("image_url", "ImageURL").
	Project("category", "Category").
	Project("body", "Body").
	Project("session", "Session").
	Project("published_at", "PublishedAt").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

func schema() repository.Schema[Announcement] {
	return repository.Schema[Announcement]{
		Projection: projection,
		Columns: []string{
			"title", "image_url", "category",
			"body", "session", "published_at",
		},
		Returning: []string{
			"id", "title", "image_url", "category", "body",
			"session", "published_at", "created_at", "updated_at",
		},
		Values: func(a Announcement) []any {
			return []any{
				a.Title, a.ImageURL, a.Category,
				a.Body, a.Session, a.PublishedAt,
			}
		},
		ID:          func(a Announcement) uuid.UUID { return a.ID },
		Scan:        scanAnnouncement,
		DefaultSort: []query.SortField{{Field: "PublishedAt", Descending: true}},
	}
}

func scanAnnouncement(s repository.Scanner) (Announcement, error) {
	var a Announcement
	err := s.Scan(
		&a.ID,
		&a.Title,
		&a.ImageURL,
		&a.Category,
		&a.Body,
		&a.Session,
		&a.PublishedAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}
