package handler

import (
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"wellnessapi/internal/asset"
	"wellnessapi/internal/errs"
)

// form reads multipart create/update payloads. Update payloads are partial:
// a field that is absent from the form is left untouched, while a field sent
// as an empty string is an explicit value (which for clearable asset slots
// means "empty the slot"). Opened file parts are closed by close().
type form struct {
	c       *fiber.Ctx
	values  map[string][]string
	files   []multipart.File
	openErr error
}

func parseForm(c *fiber.Ctx) *form {
	f := &form{c: c, values: map[string][]string{}}
	if mf, err := c.MultipartForm(); err == nil && mf != nil {
		f.values = mf.Value
	}
	return f
}

func (f *form) close() {
	for _, file := range f.files {
		_ = file.Close()
	}
}

// has reports whether the field was sent at all.
func (f *form) has(name string) bool {
	_, ok := f.values[name]
	return ok
}

func (f *form) str(name string) string {
	return f.c.FormValue(name)
}

func (f *form) strPtr(name string) *string {
	if !f.has(name) {
		return nil
	}
	v := f.str(name)
	return &v
}

func (f *form) float(name string) (float64, error) {
	v := f.str(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errs.Validation("%s must be a number", name)
	}
	return n, nil
}

func (f *form) floatPtr(name string) (*float64, error) {
	if !f.has(name) {
		return nil, nil
	}
	n, err := f.float(name)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (f *form) int(name string) (int, error) {
	v := f.str(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errs.Validation("%s must be an integer", name)
	}
	return n, nil
}

func (f *form) intPtr(name string) (*int, error) {
	if !f.has(name) {
		return nil, nil
	}
	n, err := f.int(name)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (f *form) boolVal(name string) (bool, error) {
	v := f.str(name)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errs.Validation("%s must be true or false", name)
	}
	return b, nil
}

func (f *form) boolPtr(name string) (*bool, error) {
	if !f.has(name) {
		return nil, nil
	}
	b, err := f.boolVal(name)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (f *form) date(name string) (time.Time, error) {
	v := f.str(name)
	if v == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errs.Validation("%s must be an RFC 3339 timestamp or YYYY-MM-DD date", name)
}

func (f *form) datePtr(name string) (*time.Time, error) {
	if !f.has(name) {
		return nil, nil
	}
	t, err := f.date(name)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// list splits a repeated field; a single comma-separated value is also
// accepted.
func (f *form) list(name string) []string {
	raw, ok := f.values[name]
	if !ok {
		return nil
	}
	out := []string{}
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// file opens an uploaded part for the named slot field. Absent files return
// (nil, nil).
func (f *form) file(name string) (*asset.Upload, error) {
	fh, err := f.c.FormFile(name)
	if err != nil {
		return nil, nil
	}
	file, err := fh.Open()
	if err != nil {
		return nil, errs.Validation("cannot read uploaded %s", name)
	}
	f.files = append(f.files, file)

	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}
	return &asset.Upload{
		Reader:      file,
		Filename:    fh.Filename,
		ContentType: ct,
		Size:        fh.Size,
	}, nil
}

// clears reports an explicit empty-string value for a slot's form field,
// which update handlers treat as a request to empty the slot.
func (f *form) clears(name string) bool {
	return f.has(name) && f.str(name) == ""
}
