package asset

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"wellnessapi/internal/errs"
	"wellnessapi/internal/model"
	"wellnessapi/internal/storage"
	storeMocks "wellnessapi/internal/storage/mocks"
)

var thumbSlot = Slot{Name: "thumbnail", Folder: "ebook-thumbnails", Kind: KindImage, Required: true}

type recordingReporter struct {
	failures []string
}

func (r *recordingReporter) CleanupFailed(ctx context.Context, slot Slot, key string, err error) {
	r.failures = append(r.failures, key)
}

func TestUpsert_UploadNew(t *testing.T) {
	ctx := context.Background()
	mStore := new(storeMocks.MockStorage)
	m := NewManager(mStore, nil)

	r := strings.NewReader("img")
	mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "ebook-thumbnails/") && strings.HasSuffix(key, ".png")
	}), r, mock.Anything).Return(storage.ObjectInfo{Key: "ebook-thumbnails/abc.png"}, nil)
	mStore.On("PublicURL", "ebook-thumbnails/abc.png").Return("https://cdn/ebook-thumbnails/abc.png")

	ref, cleanup, err := m.Upsert(ctx, nil, &Upload{Reader: r, Filename: "Cover.PNG", ContentType: "image/png", Size: 3}, false, thumbSlot)
	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.Equal(t, "ebook-thumbnails/abc.png", ref.Key)
	assert.Equal(t, "https://cdn/ebook-thumbnails/abc.png", ref.URL)

	// No existing object, so cleanup must be a no-op.
	cleanup(ctx)
	mStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	mStore.AssertExpectations(t)
}

func TestUpsert_ReplaceUploadsBeforeDelete(t *testing.T) {
	ctx := context.Background()
	mStore := new(storeMocks.MockStorage)
	m := NewManager(mStore, nil)

	old := &model.AssetRef{Key: "ebook-thumbnails/old.png", URL: "https://cdn/old"}
	r := strings.NewReader("new")
	mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
		Return(storage.ObjectInfo{Key: "ebook-thumbnails/new.png"}, nil)
	mStore.On("PublicURL", "ebook-thumbnails/new.png").Return("https://cdn/new")

	ref, cleanup, err := m.Upsert(ctx, old, &Upload{Reader: r, Filename: "new.png", Size: 3}, false, thumbSlot)
	require.NoError(t, err)
	assert.Equal(t, "ebook-thumbnails/new.png", ref.Key)

	// The old object survives until the caller commits and runs cleanup.
	mStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)

	mStore.On("Delete", ctx, "ebook-thumbnails/old.png").Return(nil)
	cleanup(ctx)
	mStore.AssertExpectations(t)
}

func TestUpsert_UploadFailureAborts(t *testing.T) {
	ctx := context.Background()
	mStore := new(storeMocks.MockStorage)
	m := NewManager(mStore, nil)

	old := &model.AssetRef{Key: "ebook-thumbnails/old.png"}
	r := strings.NewReader("new")
	mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
		Return(storage.ObjectInfo{}, errors.New("provider down"))

	_, _, err := m.Upsert(ctx, old, &Upload{Reader: r, Filename: "new.png", Size: 3}, false, thumbSlot)
	require.Error(t, err)
	assert.Equal(t, errs.KindUpload, errs.KindOf(err))

	// The previous object is untouched on a failed upload.
	mStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	mStore.AssertExpectations(t)
}

func TestUpsert_ExplicitClear(t *testing.T) {
	ctx := context.Background()
	mStore := new(storeMocks.MockStorage)
	m := NewManager(mStore, nil)

	old := &model.AssetRef{Key: "nutrition-thumbnails/old.jpg"}
	ref, cleanup, err := m.Upsert(ctx, old, nil, true, thumbSlot)
	require.NoError(t, err)
	assert.Nil(t, ref)

	mStore.On("Delete", ctx, "nutrition-thumbnails/old.jpg").Return(nil)
	cleanup(ctx)
	mStore.AssertExpectations(t)
}

func TestUpsert_NoFileNoClearIsNoop(t *testing.T) {
	ctx := context.Background()
	mStore := new(storeMocks.MockStorage)
	m := NewManager(mStore, nil)

	old := &model.AssetRef{Key: "k", URL: "u"}
	ref, cleanup, err := m.Upsert(ctx, old, nil, false, thumbSlot)
	require.NoError(t, err)
	assert.Same(t, old, ref)

	cleanup(ctx)
	mStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestUpsert_EmptySlotStaysEmpty(t *testing.T) {
	mStore := new(storeMocks.MockStorage)
	m := NewManager(mStore, nil)

	ref, cleanup, err := m.Upsert(context.Background(), nil, nil, true, thumbSlot)
	require.NoError(t, err)
	assert.Nil(t, ref)
	cleanup(context.Background())
	mStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCleanupFailureReportedNotRaised(t *testing.T) {
	ctx := context.Background()
	mStore := new(storeMocks.MockStorage)
	rep := &recordingReporter{}
	m := NewManager(mStore, rep)

	old := &model.AssetRef{Key: "ebook-thumbnails/old.png"}
	_, cleanup, err := m.Upsert(ctx, old, nil, true, thumbSlot)
	require.NoError(t, err)

	mStore.On("Delete", ctx, "ebook-thumbnails/old.png").Return(errors.New("transient"))
	cleanup(ctx)

	assert.Equal(t, []string{"ebook-thumbnails/old.png"}, rep.failures)
}

func TestRequireOnCreate(t *testing.T) {
	err := RequireOnCreate(thumbSlot, nil)
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))

	assert.NoError(t, RequireOnCreate(thumbSlot, &Upload{}))
	optional := Slot{Name: "video", Required: false}
	assert.NoError(t, RequireOnCreate(optional, nil))
}

func TestRemoveAll_CascadesEveryPopulatedSlot(t *testing.T) {
	ctx := context.Background()
	mStore := new(storeMocks.MockStorage)
	rep := &recordingReporter{}
	m := NewManager(mStore, rep)

	pdfSlot := Slot{Name: "pdfDocument", Folder: "ebook-pdfs", Kind: KindDocument}
	mStore.On("Delete", ctx, "ebook-thumbnails/a.png").Return(nil)
	mStore.On("Delete", ctx, "ebook-pdfs/b.pdf").Return(errors.New("gone already"))

	m.RemoveAll(ctx,
		SlotRef{Slot: thumbSlot, Ref: &model.AssetRef{Key: "ebook-thumbnails/a.png"}},
		SlotRef{Slot: pdfSlot, Ref: &model.AssetRef{Key: "ebook-pdfs/b.pdf"}},
		SlotRef{Slot: pdfSlot, Ref: nil},
	)

	// Exactly two delete calls: one per populated slot, none for the empty one.
	mStore.AssertNumberOfCalls(t, "Delete", 2)
	// The failed delete is reported but never surfaced.
	assert.Equal(t, []string{"ebook-pdfs/b.pdf"}, rep.failures)
}

func TestDiscard(t *testing.T) {
	ctx := context.Background()
	mStore := new(storeMocks.MockStorage)
	rep := &recordingReporter{}
	m := NewManager(mStore, rep)

	m.Discard(ctx, nil, thumbSlot)
	mStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)

	mStore.On("Delete", ctx, "k").Return(errors.New("nope"))
	m.Discard(ctx, &model.AssetRef{Key: "k"}, thumbSlot)
	assert.Equal(t, []string{"k"}, rep.failures)
}
