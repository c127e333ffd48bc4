package announcements

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/mwhitfield/placard/internal/signatories"
	"github.com/mwhitfield/placard/pkg/pagination"
	"github.com/mwhitfield/placard/pkg/repository"
	"github.com/mwhitfield/placard/pkg/storage"
)

type repo struct {
	store       *repository.Store[Announcement]
	storage     storage.System
	signatories signatories.System
	logger      *slog.Logger
	pagination  pagination.Config
}

// New creates an announcement repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	sigs signatories.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		store:       repository.NewStore(db, schema()),
		storage:     store,
		signatories: sigs,
		logger:      logger.With("system", "announcements"),
		pagination:  pagination,
	}
}

func (r *repo) Handler(maxUploadSize int64, guard Guard) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize, guard)
}

const insertAnnouncementSQL = `
	INSERT INTO announcements (title, image_url, category, body, session, published_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, title, image_url, category, body, session, published_at, created_at, updated_at`

const updateAnnouncementSQL = `
	UPDATE announcements
	SET title = $1, image_url = $2, category = $3, body = $4, session = $5, published_at = $6
	WHERE id = $7
	RETURNING id, title, image_url, category, body, session, published_at, created_at, updated_at`

// Create resolves every signatory before anything is persisted, inserts the
// row and its association rows in one transaction, then uploads the image
// and writes its URL back. The storage steps are not covered by the
// transaction: an upload failure leaves the row behind with no image URL,
// and a failure writing the URL back leaves an uploaded blob the row does
// not reference. Neither is rolled back.
func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Announcement, error) {
	resolved, err := r.signatories.Resolve(ctx, cmd.SignatoryIDs)
	if err != nil {
		return nil, err
	}

	entity := Announcement{
		Title:       cmd.Title,
		Category:    cmd.Category,
		Body:        cmd.Body,
		Session:     cmd.Session,
		PublishedAt: cmd.PublishedAt,
	}

	created, err := repository.WithTx(ctx, r.store.DB(), func(tx *sql.Tx) (Announcement, error) {
		a, err := repository.QueryOne(
			ctx, tx,
			insertAnnouncementSQL,
			schema().Values(entity),
			scanAnnouncement,
		)
		if err != nil {
			return a, err
		}
		return a, linkSignatories(ctx, tx, a.ID, resolved)
	})
	if err != nil {
		return nil, fmt.Errorf("create announcement: %w", err)
	}

	key := imageKey(created.ID, filepath.Ext(cmd.Image.Filename))
	imageURL, err := r.storage.Upload(
		ctx, key,
		bytes.NewReader(cmd.Image.Data),
		cmd.Image.ContentType,
	)
	if err != nil {
		r.logger.Error(
			"image upload failed; announcement row kept without image",
			"id", created.ID,
			"key", key,
			"error", err,
		)
		return nil, fmt.Errorf("upload announcement image: %w", err)
	}

	created.ImageURL = &imageURL
	updated, err := r.store.Update(ctx, created)
	if err != nil {
		r.logger.Error(
			"image url persist failed; uploaded blob is unreferenced",
			"id", created.ID,
			"key", key,
			"error", err,
		)
		return nil, fmt.Errorf("persist announcement image url: %w", err)
	}
	if updated == nil {
		return nil, ErrNotFound
	}

	updated.Signatories = resolved
	r.logger.Info("announcement created", "id", updated.ID, "title", updated.Title)
	return updated, nil
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
) (*pagination.PageResult[Announcement], error) {
	page.Normalize(r.pagination)

	qb := r.store.Query().WhereSearch(page.Search, "Title", "Category")
	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	result, err := r.store.Paginate(ctx, qb, page.Page, page.PageSize)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}

	ids := make([]uuid.UUID, len(result.Items))
	for i, a := range result.Items {
		ids[i] = a.ID
	}

	sets, err := r.signatorySets(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load announcement signatories: %w", err)
	}
	for i := range result.Items {
		result.Items[i].Signatories = sets[result.Items[i].ID]
		if result.Items[i].Signatories == nil {
			result.Items[i].Signatories = []signatories.Signatory{}
		}
	}

	return &result, nil
}

func (r *repo) Get(ctx context.Context, id uuid.UUID) (*Announcement, error) {
	a, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load announcement %s: %w", id, err)
	}
	if a == nil {
		return nil, ErrNotFound
	}

	sets, err := r.signatorySets(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("load announcement signatories: %w", err)
	}
	a.Signatories = sets[id]
	if a.Signatories == nil {
		a.Signatories = []signatories.Signatory{}
	}

	return a, nil
}

// Update loads the row, re-resolves the signatory set when one was supplied,
// uploads a replacement image when one was supplied, then applies the scalar
// fields and persists row and associations together. An image upload failure
// aborts the update before any field is applied, though a replacement blob
// at the same key may already have overwritten the old content.
func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Announcement, error) {
	current, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load announcement %s: %w", id, err)
	}
	if current == nil {
		return nil, ErrNotFound
	}

	var resolved []signatories.Signatory
	if cmd.SignatoryIDs != nil {
		resolved, err = r.signatories.Resolve(ctx, *cmd.SignatoryIDs)
		if err != nil {
			return nil, err
		}
	}

	if cmd.Image != nil {
		key := imageKey(id, filepath.Ext(cmd.Image.Filename))
		imageURL, err := r.storage.Upload(
			ctx, key,
			bytes.NewReader(cmd.Image.Data),
			cmd.Image.ContentType,
		)
		if err != nil {
			r.logger.Error(
				"image upload failed; update aborted",
				"id", id,
				"key", key,
				"error", err,
			)
			return nil, fmt.Errorf("upload announcement image: %w", err)
		}
		current.ImageURL = &imageURL
	}

	cmd.ApplyTo(current)

	args := append(schema().Values(*current), id)
	updated, err := repository.WithTx(ctx, r.store.DB(), func(tx *sql.Tx) (Announcement, error) {
		a, err := repository.QueryOne(ctx, tx, updateAnnouncementSQL, args, scanAnnouncement)
		if err != nil {
			return a, err
		}
		if cmd.SignatoryIDs != nil {
			return a, replaceSignatories(ctx, tx, id, resolved)
		}
		return a, nil
	})
	if err != nil {
		return nil, fmt.Errorf("update announcement %s: %w", id, err)
	}

	if cmd.SignatoryIDs != nil {
		updated.Signatories = resolved
	} else {
		sets, err := r.signatorySets(ctx, []uuid.UUID{id})
		if err != nil {
			return nil, fmt.Errorf("load announcement signatories: %w", err)
		}
		updated.Signatories = sets[id]
		if updated.Signatories == nil {
			updated.Signatories = []signatories.Signatory{}
		}
	}

	r.logger.Info("announcement updated", "id", updated.ID, "title", updated.Title)
	return &updated, nil
}

// Delete removes the stored image before the row. A storage failure keeps
// the row; a row delete failure after a successful blob delete leaves the
// row without its image. The asymmetry is deliberate and is not reconciled.
func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	current, err := r.store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("load announcement %s: %w", id, err)
	}
	if current == nil {
		return ErrNotFound
	}

	if current.ImageURL != nil {
		key := imageKeyFromURL(id, *current.ImageURL)
		if err := r.storage.Delete(ctx, key); err != nil {
			r.logger.Error(
				"image delete failed; announcement row kept",
				"id", id,
				"key", key,
				"error", err,
			)
			return fmt.Errorf("delete announcement image: %w", err)
		}
	}

	removed, err := r.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete announcement %s: %w", id, err)
	}
	if !removed {
		return ErrNotFound
	}

	r.logger.Info("announcement deleted", "id", id)
	return nil
}

// signatorySets loads the signatory set of every given announcement in a
// single join over the link table, keyed by announcement.
func (r *repo) signatorySets(
	ctx context.Context,
	ids []uuid.UUID,
) (map[uuid.UUID][]signatories.Signatory, error) {
	sets := make(map[uuid.UUID][]signatories.Signatory, len(ids))
	if len(ids) == 0 {
		return sets, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	q := fmt.Sprintf(`
		SELECT als.announcement_id, s.id, s.name, s.alias, s.role, s.contact, s.created_at, s.updated_at
		FROM announcement_signatories als
		JOIN signatories s ON s.id = als.signatory_id
		WHERE als.announcement_id IN (%s)
		ORDER BY als.announcement_id, s.name`,
		strings.Join(placeholders, ", "),
	)

	rows, err := r.store.DB().QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var announcementID uuid.UUID
		var sig signatories.Signatory
		if err := rows.Scan(
			&announcementID,
			&sig.ID,
			&sig.Name,
			&sig.Alias,
			&sig.Role,
			&sig.Contact,
			&sig.CreatedAt,
			&sig.UpdatedAt,
		); err != nil {
			return nil, err
		}
		sets[announcementID] = append(sets[announcementID], sig)
	}

	return sets, rows.Err()
}

func linkSignatories(
	ctx context.Context,
	tx *sql.Tx,
	id uuid.UUID,
	sigs []signatories.Signatory,
) error {
	if len(sigs) == 0 {
		return nil
	}

	values := make([]string, len(sigs))
	args := make([]any, 0, len(sigs)+1)
	args = append(args, id)
	for i, sig := range sigs {
		values[i] = fmt.Sprintf("($1, $%d)", i+2)
		args = append(args, sig.ID)
	}

	q := fmt.Sprintf(
		"INSERT INTO announcement_signatories (announcement_id, signatory_id) VALUES %s",
		strings.Join(values, ", "),
	)

	_, err := tx.ExecContext(ctx, q, args...)
	return err
}

func replaceSignatories(
	ctx context.Context,
	tx *sql.Tx,
	id uuid.UUID,
	sigs []signatories.Signatory,
) error {
	if _, err := tx.ExecContext(
		ctx,
		"DELETE FROM announcement_signatories WHERE announcement_id = $1",
		id,
	); err != nil {
		return err
	}
	return linkSignatories(ctx, tx, id, sigs)
}

// imageKey derives the storage path for an announcement's image. The
// extension (with its leading dot) follows the uploaded filename, so a
// replacement image keyed by the same identity may use a different one.
func imageKey(id uuid.UUID, ext string) string {
	return fmt.Sprintf("announcements/%s%s", id, strings.ToLower(ext))
}

// imageKeyFromURL recovers the storage path from a stored public URL by
// reusing its filename extension against the announcement's identity.
func imageKeyFromURL(id uuid.UUID, imageURL string) string {
	ext := path.Ext(imageURL)
	if u, err := url.Parse(imageURL); err == nil {
		ext = path.Ext(u.Path)
	}
	return imageKey(id, ext)
}
