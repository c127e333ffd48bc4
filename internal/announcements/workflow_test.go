package announcements_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mwhitfield/placard/internal/announcements"
	"github.com/mwhitfield/placard/internal/signatories"
	"github.com/mwhitfield/placard/pkg/lifecycle"
	"github.com/mwhitfield/placard/pkg/pagination"
)

type fakeSignatories struct {
	resolveFn func(ctx context.Context, ids []uuid.UUID) ([]signatories.Signatory, error)
}

func (f *fakeSignatories) Handler() *signatories.Handler { return nil }

func (f *fakeSignatories) Create(ctx context.Context, cmd signatories.CreateCommand) (*signatories.Signatory, error) {
	return nil, nil
}

func (f *fakeSignatories) GetAll(ctx context.Context) ([]signatories.Signatory, error) {
	return nil, nil
}

func (f *fakeSignatories) Update(ctx context.Context, id uuid.UUID, cmd signatories.UpdateCommand) (*signatories.Signatory, error) {
	return nil, nil
}

func (f *fakeSignatories) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (f *fakeSignatories) Resolve(ctx context.Context, ids []uuid.UUID) ([]signatories.Signatory, error) {
	return f.resolveFn(ctx, ids)
}

type fakeStorage struct {
	uploads int
	deletes int
}

func (f *fakeStorage) Start(lc *lifecycle.Coordinator) error { return nil }

func (f *fakeStorage) Upload(ctx context.Context, key string, reader io.Reader, contentType string) (string, error) {
	f.uploads++
	return "https://blobs.example.com/" + key, nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	f.deletes++
	return nil
}

func (f *fakeStorage) URL(key string) string {
	return "https://blobs.example.com/" + key
}

// Create with an unresolvable signatory id must fail before any row or blob
// is written. The system is constructed with a nil database handle so any
// attempt to persist on this path panics the test.
func TestCreateUnresolvedSignatoryPersistsNothing(t *testing.T) {
	missing := uuid.New()
	blobs := &fakeStorage{}
	sigs := &fakeSignatories{
		resolveFn: func(ctx context.Context, ids []uuid.UUID) ([]signatories.Signatory, error) {
			return nil, signatories.NotFoundError(missing)
		},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := pagination.Config{DefaultPageSize: 10, MaxPageSize: 100}
	sys := announcements.New(nil, blobs, sigs, logger, cfg)

	_, err := sys.Create(context.Background(), announcements.CreateCommand{
		Title:        "Spring Session Dates",
		Category:     "academics",
		Body:         "Session dates are finalized.",
		Session:      "2026-spring",
		PublishedAt:  time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
		SignatoryIDs: []uuid.UUID{missing},
		Image:        announcements.ImagePayload{Data: []byte("png"), Filename: "banner.png"},
	})

	if !errors.Is(err, signatories.ErrNotFound) {
		t.Fatalf("create: got %v, want ErrNotFound", err)
	}
	if !strings.Contains(err.Error(), missing.String()) {
		t.Errorf("error %q does not name the missing id %s", err, missing)
	}
	if blobs.uploads != 0 || blobs.deletes != 0 {
		t.Errorf("storage touched: %d uploads, %d deletes", blobs.uploads, blobs.deletes)
	}
}
