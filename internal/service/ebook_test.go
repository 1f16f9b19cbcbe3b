package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"wellnessapi/internal/asset"
	"wellnessapi/internal/errs"
	"wellnessapi/internal/model"
	"wellnessapi/internal/repository"
	repomocks "wellnessapi/internal/repository/mocks"
	"wellnessapi/internal/storage"
	storagemocks "wellnessapi/internal/storage/mocks"
)

func newEbookFixture(t *testing.T) (*repomocks.MockContentRepository[model.Ebook], *storagemocks.MockStorage, EbookService) {
	t.Helper()
	repo := new(repomocks.MockContentRepository[model.Ebook])
	store := new(storagemocks.MockStorage)
	svc := NewEbookService(repo, asset.NewManager(store, nil), store)
	return repo, store, svc
}

func echoKey(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
	return storage.ObjectInfo{Key: key}
}

func expectPut(store *storagemocks.MockStorage, folder string) *mock.Call {
	return store.On("Put", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, folder+"/")
	}), mock.Anything, mock.Anything).Return(echoKey, nil)
}

func pdfUpload() *asset.Upload {
	return &asset.Upload{Reader: strings.NewReader("%PDF-1.4"), Filename: "guide.pdf", ContentType: "application/pdf", Size: 8}
}

func imageUpload() *asset.Upload {
	return &asset.Upload{Reader: strings.NewReader("img"), Filename: "cover.JPG", ContentType: "image/jpeg", Size: 3}
}

func TestEbookService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("derives slug from title", func(t *testing.T) {
		repo, store, svc := newEbookFixture(t)

		repo.On("SlugExists", ctx, "mind-body", "").Return(false, nil)
		expectPut(store, "ebook-thumbnails")
		expectPut(store, "ebook-pdfs")
		store.On("PublicURL", mock.Anything).Return("http://assets/x")
		repo.On("Create", ctx, mock.MatchedBy(func(e *model.Ebook) bool {
			return e.Slug == "mind-body" && e.Title == "Mind & Body" &&
				e.Thumbnail != nil && e.PDF != nil
		})).Return(func(ctx context.Context, e *model.Ebook) *model.Ebook { return e }, nil)

		created, err := svc.Create(ctx, CreateEbookInput{
			Title:     "Mind & Body",
			Price:     199,
			Thumbnail: imageUpload(),
			PDF:       pdfUpload(),
		})

		require.NoError(t, err)
		assert.Equal(t, "mind-body", created.Slug)
		assert.True(t, strings.HasPrefix(created.Thumbnail.Key, "ebook-thumbnails/"))
		assert.True(t, strings.HasSuffix(created.Thumbnail.Key, ".jpg"))
		store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("disambiguates a taken slug", func(t *testing.T) {
		repo, store, svc := newEbookFixture(t)

		repo.On("SlugExists", ctx, "yoga-basics", "").Return(true, nil)
		repo.On("SlugExists", ctx, "yoga-basics-1", "").Return(false, nil)
		expectPut(store, "ebook-thumbnails")
		expectPut(store, "ebook-pdfs")
		store.On("PublicURL", mock.Anything).Return("http://assets/x")
		repo.On("Create", ctx, mock.Anything).
			Return(func(ctx context.Context, e *model.Ebook) *model.Ebook { return e }, nil)

		created, err := svc.Create(ctx, CreateEbookInput{
			Title:     "Yoga Basics!!",
			Thumbnail: imageUpload(),
			PDF:       pdfUpload(),
		})

		require.NoError(t, err)
		assert.Equal(t, "yoga-basics-1", created.Slug)
	})

	t.Run("missing required file performs no remote calls", func(t *testing.T) {
		repo, store, svc := newEbookFixture(t)

		_, err := svc.Create(ctx, CreateEbookInput{Title: "No PDF", Thumbnail: imageUpload()})

		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
		store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unusable title rejected before upload", func(t *testing.T) {
		_, store, svc := newEbookFixture(t)

		_, err := svc.Create(ctx, CreateEbookInput{Title: "!!!", Thumbnail: imageUpload(), PDF: pdfUpload()})

		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
		store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("upload failure aborts before the document write", func(t *testing.T) {
		repo, store, svc := newEbookFixture(t)

		repo.On("SlugExists", ctx, mock.Anything, "").Return(false, nil)
		store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{}, errors.New("connection reset"))

		_, err := svc.Create(ctx, CreateEbookInput{
			Title:     "Upload Fails",
			Thumbnail: imageUpload(),
			PDF:       pdfUpload(),
		})

		assert.Equal(t, errs.KindUpload, errs.KindOf(err))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("insert failure discards uploaded objects", func(t *testing.T) {
		repo, store, svc := newEbookFixture(t)

		repo.On("SlugExists", ctx, mock.Anything, "").Return(false, nil)
		expectPut(store, "ebook-thumbnails")
		expectPut(store, "ebook-pdfs")
		store.On("PublicURL", mock.Anything).Return("http://assets/x")
		repo.On("Create", ctx, mock.Anything).Return(nil, errs.Duplicate("slug race"))
		store.On("Delete", mock.Anything, mock.Anything).Return(nil)

		_, err := svc.Create(ctx, CreateEbookInput{
			Title:     "Race Loser",
			Thumbnail: imageUpload(),
			PDF:       pdfUpload(),
		})

		assert.Equal(t, errs.KindDuplicate, errs.KindOf(err))
		store.AssertNumberOfCalls(t, "Delete", 2)
	})
}

func TestEbookService_Update(t *testing.T) {
	ctx := context.Background()

	stored := func() *model.Ebook {
		return &model.Ebook{
			ID:        "id-1",
			Title:     "Mind & Body",
			Slug:      "mind-body",
			Price:     199,
			Thumbnail: &model.AssetRef{Key: "ebook-thumbnails/old.jpg", URL: "http://assets/old.jpg"},
			PDF:       &model.AssetRef{Key: "ebook-pdfs/old.pdf", URL: "http://assets/old.pdf"},
		}
	}

	t.Run("title change re-resolves the slug", func(t *testing.T) {
		repo, _, svc := newEbookFixture(t)

		repo.On("FindByID", ctx, "id-1").Return(stored(), nil)
		repo.On("SlugExists", ctx, "mind-and-body", "id-1").Return(false, nil)
		repo.On("Update", ctx, mock.MatchedBy(func(e *model.Ebook) bool {
			return e.Slug == "mind-and-body" && e.Title == "Mind and Body"
		})).Return(func(ctx context.Context, e *model.Ebook) *model.Ebook { return e }, nil)

		title := "Mind and Body"
		updated, err := svc.Update(ctx, "id-1", UpdateEbookInput{Title: &title})

		require.NoError(t, err)
		assert.Equal(t, "mind-and-body", updated.Slug)
	})

	t.Run("unrelated field change keeps the slug without re-checking", func(t *testing.T) {
		repo, store, svc := newEbookFixture(t)

		repo.On("FindByID", ctx, "id-1").Return(stored(), nil)
		repo.On("Update", ctx, mock.MatchedBy(func(e *model.Ebook) bool {
			return e.Slug == "mind-body" && e.Price == 249
		})).Return(func(ctx context.Context, e *model.Ebook) *model.Ebook { return e }, nil)

		price := 249.0
		updated, err := svc.Update(ctx, "id-1", UpdateEbookInput{Price: &price})

		require.NoError(t, err)
		assert.Equal(t, "mind-body", updated.Slug)
		repo.AssertNotCalled(t, "SlugExists", mock.Anything, mock.Anything, mock.Anything)
		store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("replacement file supersedes the old object after the write", func(t *testing.T) {
		repo, store, svc := newEbookFixture(t)

		var updateDone bool
		repo.On("FindByID", ctx, "id-1").Return(stored(), nil)
		expectPut(store, "ebook-thumbnails")
		store.On("PublicURL", mock.Anything).Return("http://assets/new.jpg")
		repo.On("Update", ctx, mock.Anything).
			Run(func(args mock.Arguments) {
				store.AssertNotCalled(t, "Delete", mock.Anything, "ebook-thumbnails/old.jpg")
				updateDone = true
			}).
			Return(func(ctx context.Context, e *model.Ebook) *model.Ebook { return e }, nil)
		store.On("Delete", mock.Anything, "ebook-thumbnails/old.jpg").Return(nil)

		updated, err := svc.Update(ctx, "id-1", UpdateEbookInput{Thumbnail: imageUpload()})

		require.NoError(t, err)
		assert.True(t, updateDone)
		assert.NotEqual(t, "ebook-thumbnails/old.jpg", updated.Thumbnail.Key)
		store.AssertCalled(t, "Delete", mock.Anything, "ebook-thumbnails/old.jpg")
	})

	t.Run("write failure keeps the old object and discards the new one", func(t *testing.T) {
		repo, store, svc := newEbookFixture(t)

		repo.On("FindByID", ctx, "id-1").Return(stored(), nil)
		var newKey string
		store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { newKey = args.String(1) }).
			Return(echoKey, nil)
		store.On("PublicURL", mock.Anything).Return("http://assets/new.jpg")
		repo.On("Update", ctx, mock.Anything).Return(nil, errors.New("db down"))
		store.On("Delete", mock.Anything, mock.Anything).Return(nil)

		_, err := svc.Update(ctx, "id-1", UpdateEbookInput{Thumbnail: imageUpload()})

		require.Error(t, err)
		store.AssertCalled(t, "Delete", mock.Anything, newKey)
		store.AssertNotCalled(t, "Delete", mock.Anything, "ebook-thumbnails/old.jpg")
	})
}

func TestEbookService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes both stored objects", func(t *testing.T) {
		repo, store, svc := newEbookFixture(t)

		repo.On("FindByID", ctx, "id-1").Return(&model.Ebook{
			ID:        "id-1",
			Thumbnail: &model.AssetRef{Key: "ebook-thumbnails/a.jpg"},
			PDF:       &model.AssetRef{Key: "ebook-pdfs/a.pdf"},
		}, nil)
		repo.On("Delete", ctx, "id-1").Return(nil)
		store.On("Delete", mock.Anything, "ebook-thumbnails/a.jpg").Return(nil)
		store.On("Delete", mock.Anything, "ebook-pdfs/a.pdf").Return(nil)

		require.NoError(t, svc.Delete(ctx, "id-1"))
		store.AssertNumberOfCalls(t, "Delete", 2)
	})

	t.Run("object store failure does not fail the delete", func(t *testing.T) {
		repo, store, svc := newEbookFixture(t)

		repo.On("FindByID", ctx, "id-1").Return(&model.Ebook{
			ID:        "id-1",
			Thumbnail: &model.AssetRef{Key: "ebook-thumbnails/a.jpg"},
			PDF:       &model.AssetRef{Key: "ebook-pdfs/a.pdf"},
		}, nil)
		repo.On("Delete", ctx, "id-1").Return(nil)
		store.On("Delete", mock.Anything, mock.Anything).Return(errors.New("unreachable"))

		assert.NoError(t, svc.Delete(ctx, "id-1"))
	})

	t.Run("missing ebook", func(t *testing.T) {
		repo, store, svc := newEbookFixture(t)

		repo.On("FindByID", ctx, "nope").Return(nil, errs.NotFound("ebook not found"))

		err := svc.Delete(ctx, "nope")

		assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
		store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestEbookService_DownloadPDF(t *testing.T) {
	ctx := context.Background()

	t.Run("streams the stored object", func(t *testing.T) {
		repo, store, svc := newEbookFixture(t)

		repo.On("FindByID", ctx, "id-1").Return(&model.Ebook{
			ID:   "id-1",
			Slug: "mind-body",
			PDF:  &model.AssetRef{Key: "ebook-pdfs/a.pdf"},
		}, nil)
		store.On("Get", mock.Anything, "ebook-pdfs/a.pdf").
			Return(noopReadCloser{strings.NewReader("%PDF-1.4")}, storage.ObjectInfo{Size: 8, ContentType: "application/pdf"}, nil)

		dl, err := svc.DownloadPDF(ctx, "id-1")

		require.NoError(t, err)
		assert.Equal(t, "mind-body.pdf", dl.Filename)
		assert.Equal(t, int64(8), dl.Size)
		assert.Equal(t, "application/pdf", dl.ContentType)
	})

	t.Run("storage failure maps to upstream", func(t *testing.T) {
		repo, store, svc := newEbookFixture(t)

		repo.On("FindByID", ctx, "id-1").Return(&model.Ebook{
			ID:  "id-1",
			PDF: &model.AssetRef{Key: "ebook-pdfs/a.pdf"},
		}, nil)
		store.On("Get", mock.Anything, "ebook-pdfs/a.pdf").
			Return(nil, storage.ObjectInfo{}, errors.New("timeout"))

		_, err := svc.DownloadPDF(ctx, "id-1")

		assert.Equal(t, errs.KindUpstream, errs.KindOf(err))
	})
}

type noopReadCloser struct{ *strings.Reader }

func (noopReadCloser) Close() error { return nil }

var _ repository.ContentRepository[model.Ebook] = (*repomocks.MockContentRepository[model.Ebook])(nil)
