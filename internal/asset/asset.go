package asset

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"wellnessapi/internal/errs"
	"wellnessapi/internal/model"
	"wellnessapi/internal/storage"
)

// Package asset keeps a document's remote-stored binaries consistent with its
// lifecycle. The one ordering rule: a new object is always stored before any
// old object is deleted, and superseded objects are only deleted after the
// owning document write has committed. A partial failure can therefore orphan
// a remote object but never leave a persisted reference pointing at nothing.

// Kind selects the content family for a slot, mirroring the remote store's
// resource types.
type Kind string

const (
	KindImage    Kind = "image"
	KindDocument Kind = "document"
	KindVideo    Kind = "video"
)

// Slot declares one named asset position on an entity: where its objects
// live, what they are, and whether the entity can exist without one.
type Slot struct {
	// Name is the slot's form field and diagnostic name, e.g. "thumbnail".
	Name string
	// Folder prefixes object keys, e.g. "ebook-thumbnails".
	Folder string
	Kind   Kind
	// Required marks the slot mandatory at document-create time only.
	Required bool
	// Clearable allows an explicit empty value on update to empty the slot.
	Clearable bool
}

// Upload is an incoming file for a slot.
type Upload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// SlotRef pairs a populated slot with its stored reference, used for cascade
// deletes.
type SlotRef struct {
	Slot Slot
	Ref  *model.AssetRef
}

// Reporter receives best-effort cleanup failures. They are reported, never
// raised: the primary operation is already consistent when cleanup runs.
type Reporter interface {
	CleanupFailed(ctx context.Context, slot Slot, key string, err error)
}

type slogReporter struct{}

func (slogReporter) CleanupFailed(ctx context.Context, slot Slot, key string, err error) {
	slog.WarnContext(ctx, "asset cleanup failed",
		"slot", slot.Name, "key", key, "error", err.Error())
}

// Cleanup releases the object superseded by an Upsert. Call it only after the
// owning document write has succeeded; it never fails the caller.
type Cleanup func(ctx context.Context)

// Manager implements the asset slot lifecycle over a remote store.
type Manager struct {
	store  storage.Storage
	report Reporter
}

// NewManager wires a Manager. A nil reporter falls back to slog warnings.
func NewManager(store storage.Storage, report Reporter) *Manager {
	if report == nil {
		report = slogReporter{}
	}
	return &Manager{store: store, report: report}
}

// RequireOnCreate validates a mandatory slot has an incoming file. Call it
// before any store or document access so a rejected create performs no
// remote calls.
func RequireOnCreate(slot Slot, incoming *Upload) error {
	if slot.Required && incoming == nil {
		return errs.Validation("%s is required", slot.Name)
	}
	return nil
}

// Upsert applies one slot transition and returns the reference the document
// should persist plus a Cleanup for whatever object that transition
// superseded.
//
// Decision order:
//   - incoming file present: upload it; cleanup deletes the old object.
//   - no file, explicit clear, existing ref: cleanup deletes it; ref is nil.
//   - no file, no clear: the existing ref is kept untouched.
//
// An upload failure aborts with a KindUpload error before any document
// mutation; the caller must not persist.
func (m *Manager) Upsert(ctx context.Context, existing *model.AssetRef, incoming *Upload, clear bool, slot Slot) (*model.AssetRef, Cleanup, error) {
	if incoming != nil {
		info, err := m.store.Put(ctx, objectKey(slot, incoming.Filename), incoming.Reader, storage.PutObjectOptions{
			Size:        incoming.Size,
			ContentType: incoming.ContentType,
			Metadata:    map[string]string{"original-filename": incoming.Filename},
		})
		if err != nil {
			return nil, nil, errs.Upload(slot.Name, err)
		}
		ref := &model.AssetRef{Key: info.Key, URL: m.store.PublicURL(info.Key)}
		return ref, m.cleanup(slot, existing), nil
	}

	if clear && existing != nil {
		return nil, m.cleanup(slot, existing), nil
	}

	return existing, noopCleanup, nil
}

// Discard removes an object that was uploaded but whose document write failed.
// Best-effort: the orphan is reported, not raised.
func (m *Manager) Discard(ctx context.Context, ref *model.AssetRef, slot Slot) {
	if ref == nil {
		return
	}
	if err := m.store.Delete(ctx, ref.Key); err != nil {
		m.report.CleanupFailed(ctx, slot, ref.Key, err)
	}
}

// RemoveAll issues a best-effort delete for every populated slot of a deleted
// document. The document deletion never blocks on the outcome.
func (m *Manager) RemoveAll(ctx context.Context, refs ...SlotRef) {
	for _, sr := range refs {
		if sr.Ref == nil {
			continue
		}
		if err := m.store.Delete(ctx, sr.Ref.Key); err != nil {
			m.report.CleanupFailed(ctx, sr.Slot, sr.Ref.Key, err)
		}
	}
}

func (m *Manager) cleanup(slot Slot, old *model.AssetRef) Cleanup {
	if old == nil {
		return noopCleanup
	}
	key := old.Key
	return func(ctx context.Context) {
		if err := m.store.Delete(ctx, key); err != nil {
			m.report.CleanupFailed(ctx, slot, key, err)
		}
	}
}

func noopCleanup(context.Context) {}

// objectKey buckets objects per slot folder under a fresh UUID, keeping only
// the original extension.
func objectKey(slot Slot, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return slot.Folder + "/" + uuid.NewString() + ext
}
