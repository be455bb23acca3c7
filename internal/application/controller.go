package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/oksasatya/refdata-console/internal/domain/entity"
	"github.com/oksasatya/refdata-console/pkg/validation"
)

// StructValidator is the part of validator.Validate the controller needs.
type StructValidator interface {
	Struct(s any) error
}

// Query selects the derived view of a screen.
type Query struct {
	Search string
	Page   int
	Size   int
}

// Row is one record with its join columns resolved for display.
type Row[T any] struct {
	Record  T                 `json:"record"`
	Display map[string]string `json:"display"`
}

// PendingDelete is a delete awaiting confirm or cancel.
type PendingDelete struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

// View is everything a screen renders: the derived page, the form, the
// pending delete, options for dropdowns and the notices queued since the last view.
type View[T any] struct {
	Screen        string                     `json:"screen"`
	Title         string                     `json:"title"`
	Search        string                     `json:"search"`
	Rows          []Row[T]                   `json:"rows"`
	Total         int                        `json:"total"`
	TotalPages    int                        `json:"totalPages"`
	Page          int                        `json:"page"`
	Size          int                        `json:"size"`
	Empty         bool                       `json:"empty"`
	Form          T                          `json:"form"`
	Editing       bool                       `json:"editing"`
	PendingDelete *PendingDelete             `json:"pendingDelete,omitempty"`
	Options       map[string][]entity.Option `json:"options,omitempty"`
	Notices       []Notice                   `json:"notices"`
}

// Controller keeps a screen's list in step with its backend collection.
//
// The list is only ever replaced wholesale by Load; mutations never patch it
// locally but reload after they succeed. Loads are numbered, and a response
// that arrives after a newer load was issued is dropped.
type Controller[T entity.Record] struct {
	screen   Screen[T]
	validate StructValidator
	notices  Notifier
	logger   *logrus.Logger

	mu      sync.Mutex
	list    []T
	refs    Refs
	form    T
	pending *PendingDelete
	loadSeq uint64
	refSeq  uint64
}

func NewController[T entity.Record](screen Screen[T], validate StructValidator, notices Notifier, logger *logrus.Logger) *Controller[T] {
	if validate == nil {
		validate = validation.New()
	}
	if notices == nil {
		notices = NewMemoryNotifier(0)
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if screen.SearchText == nil {
		screen.SearchText = func(rec T) string { return fmt.Sprint(rec.Key()) }
	}
	return &Controller[T]{
		screen:   screen,
		validate: validate,
		notices:  notices,
		logger:   logger,
		list:     []T{},
		refs:     Refs{},
	}
}

// Name returns the screen name.
func (c *Controller[T]) Name() string { return c.screen.Name }

// Mount loads the list and every reference list in parallel.
func (c *Controller[T]) Mount(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return c.Load(ctx) })
	g.Go(func() error { return c.LoadReferences(ctx) })
	return g.Wait()
}

// Load replaces the list with the backend's collection. On failure the
// previous list is kept and the error is returned; there is no retry.
func (c *Controller[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	c.loadSeq++
	seq := c.loadSeq
	c.mu.Unlock()

	list, err := c.screen.Collection.List(ctx)
	if err != nil {
		c.logger.WithError(err).WithField("screen", c.screen.Name).Error("load failed")
		return fmt.Errorf("load %s: %w", c.screen.Name, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.loadSeq {
		c.logger.WithFields(logrus.Fields{"screen": c.screen.Name, "seq": seq, "latest": c.loadSeq}).Debug("dropping stale load")
		return nil
	}
	c.list = list
	return nil
}

// LoadReferences refreshes every reference list. Lists that load are applied
// even when others fail; the first failure is returned. Like Load, a refresh
// that finishes after a newer one was issued is dropped.
func (c *Controller[T]) LoadReferences(ctx context.Context) error {
	if len(c.screen.References) == 0 {
		return nil
	}
	c.mu.Lock()
	c.refSeq++
	seq := c.refSeq
	c.mu.Unlock()

	results := make([][]entity.Option, len(c.screen.References))
	errs := make([]error, len(c.screen.References))
	var g errgroup.Group
	for i, src := range c.screen.References {
		g.Go(func() error {
			results[i], errs[i] = src.Load(ctx)
			return nil
		})
	}
	_ = g.Wait()

	c.mu.Lock()
	if seq == c.refSeq {
		refs := c.refs.clone()
		for i, src := range c.screen.References {
			if errs[i] != nil {
				c.logger.WithError(errs[i]).WithFields(logrus.Fields{"screen": c.screen.Name, "reference": src.Name}).Error("reference load failed")
				continue
			}
			refs[src.Name] = results[i]
		}
		c.refs = refs
	} else {
		c.logger.WithFields(logrus.Fields{"screen": c.screen.Name, "seq": seq, "latest": c.refSeq}).Debug("dropping stale reference load")
	}
	c.mu.Unlock()

	for i, src := range c.screen.References {
		if errs[i] != nil {
			return fmt.Errorf("load %s reference %s: %w", c.screen.Name, src.Name, errs[i])
		}
	}
	return nil
}

// Save inserts rec when it carries the new id and replaces it otherwise.
// rec becomes the form first, so a rejected or failed save leaves it for a retry.
// After a successful write the form is reset and the list reloaded.
func (c *Controller[T]) Save(ctx context.Context, rec T) error {
	c.mu.Lock()
	c.form = c.screen.clone(rec)
	refs := c.refs
	c.mu.Unlock()

	if err := c.check(ctx, rec, refs); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			c.notify(ctx, NoticeWarning, verr.Message())
		}
		return err
	}

	var err error
	if entity.IsNew(rec) {
		err = c.screen.Collection.Create(ctx, rec)
	} else {
		err = c.screen.Collection.Replace(ctx, rec.Key(), rec)
	}
	if err != nil {
		c.logger.WithError(err).WithFields(logrus.Fields{"screen": c.screen.Name, "id": rec.Key()}).Error("save failed")
		c.notify(ctx, NoticeError, "Failed to save data")
		return fmt.Errorf("save %s: %w", c.screen.Name, err)
	}

	c.ResetForm()
	c.notify(ctx, NoticeSuccess, "Data saved successfully!")
	c.reloadAfterWrite(ctx)
	return nil
}

// check runs the required-field gate and then the foreign-key check.
// A parent created on another screen since the last mount is not in refs
// yet, so a failed foreign-key check refreshes the references once and
// checks again before rejecting.
func (c *Controller[T]) check(ctx context.Context, rec T, refs Refs) error {
	if err := c.validate.Struct(rec); err != nil {
		return &ValidationError{Fields: validation.ToDetails(err)}
	}
	if c.screen.Check == nil || len(c.screen.Check(rec, refs)) == 0 {
		return nil
	}
	if err := c.LoadReferences(ctx); err != nil {
		c.logger.WithError(err).WithField("screen", c.screen.Name).Warn("reference refresh before save failed")
	}
	if fields := c.screen.Check(rec, c.Refs()); len(fields) > 0 {
		return &ValidationError{Fields: fields, Reference: true}
	}
	return nil
}

// reloadAfterWrite refreshes the list once a write went through. The write
// already succeeded, so a failed reload is reported as a notice, not an error.
func (c *Controller[T]) reloadAfterWrite(ctx context.Context) {
	if err := c.Load(ctx); err != nil {
		c.notify(ctx, NoticeError, "Failed to reload data")
	}
}

// RequestDelete opens a confirmation for id. Nothing is sent until ConfirmDelete.
func (c *Controller[T]) RequestDelete(id int) (PendingDelete, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.find(id)
	if !ok {
		return PendingDelete{}, ErrNotFound
	}
	p := PendingDelete{ID: id, Label: c.label(rec)}
	c.pending = &p
	return p, nil
}

// CancelDelete drops the pending confirmation. It reports whether one existed.
func (c *Controller[T]) CancelDelete() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	had := c.pending != nil
	c.pending = nil
	return had
}

// ConfirmDelete sends the pending delete and reloads on success.
// The confirmation is consumed either way.
func (c *Controller[T]) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	p := c.pending
	c.pending = nil
	c.mu.Unlock()
	if p == nil {
		return ErrNoPendingDelete
	}

	if err := c.screen.Collection.Delete(ctx, p.ID); err != nil {
		c.logger.WithError(err).WithFields(logrus.Fields{"screen": c.screen.Name, "id": p.ID}).Error("delete failed")
		c.notify(ctx, NoticeError, "Failed to delete data")
		return fmt.Errorf("delete %s %d: %w", c.screen.Name, p.ID, err)
	}
	c.notify(ctx, NoticeSuccess, "Data deleted successfully!")
	c.reloadAfterWrite(ctx)
	return nil
}

// Edit copies a loaded record into the form.
func (c *Controller[T]) Edit(id int) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.find(id)
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	c.form = c.screen.clone(rec)
	return c.screen.clone(c.form), nil
}

// ResetForm puts the form back to an empty new record.
func (c *Controller[T]) ResetForm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	c.form = zero
}

// Form returns a copy of the form.
func (c *Controller[T]) Form() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screen.clone(c.form)
}

// UpdateForm applies fn to the form under the controller lock and returns the result.
func (c *Controller[T]) UpdateForm(fn func(form *T, refs Refs)) T {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.form, c.refs)
	return c.screen.clone(c.form)
}

// Refs returns the loaded reference lists.
func (c *Controller[T]) Refs() Refs {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refs
}

// Records returns a copy of the loaded list.
func (c *Controller[T]) Records() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.list...)
}

// Size returns how many records are loaded.
func (c *Controller[T]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.list)
}

// Record returns one loaded record with its joins resolved.
func (c *Controller[T]) Record(id int) (Row[T], error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.find(id)
	if !ok {
		return Row[T]{}, ErrNotFound
	}
	return Row[T]{Record: rec, Display: c.screen.display(rec, c.refs)}, nil
}

// View derives the requested page and drains queued notices.
func (c *Controller[T]) View(ctx context.Context, q Query) View[T] {
	c.mu.Lock()
	page := Derive(c.list, q.Search, q.Page, q.Size, c.screen.SearchText)
	rows := make([]Row[T], 0, len(page.Items))
	for _, rec := range page.Items {
		rows = append(rows, Row[T]{Record: rec, Display: c.screen.display(rec, c.refs)})
	}
	v := View[T]{
		Screen:     c.screen.Name,
		Title:      c.screen.Title,
		Search:     q.Search,
		Rows:       rows,
		Total:      page.Total,
		TotalPages: page.TotalPages,
		Page:       page.Page,
		Size:       page.Size,
		Empty:      len(rows) == 0,
		Form:       c.screen.clone(c.form),
		Editing:    !entity.IsNew(c.form),
		Options:    c.refs,
	}
	if c.pending != nil {
		p := *c.pending
		v.PendingDelete = &p
	}
	c.mu.Unlock()

	notices, err := c.notices.Drain(ctx, c.screen.Name)
	if err != nil {
		c.logger.WithError(err).WithField("screen", c.screen.Name).Warn("drain notices failed")
	}
	if notices == nil {
		notices = []Notice{}
	}
	v.Notices = notices
	return v
}

// ExportCSV writes the loaded list (not the derived page) as CSV.
func (c *Controller[T]) ExportCSV(w io.Writer) error {
	c.mu.Lock()
	list, refs := c.list, c.refs
	c.mu.Unlock()
	return WriteCSV(w, list, c.screen.Columns, refs)
}

// ExportXLSX writes the loaded list as a single-sheet workbook.
func (c *Controller[T]) ExportXLSX(w io.Writer) error {
	c.mu.Lock()
	list, refs := c.list, c.refs
	c.mu.Unlock()
	return WriteXLSX(w, c.screen.Title, list, c.screen.Columns, refs)
}

// ExportName returns the export file stem.
func (c *Controller[T]) ExportName() string { return c.screen.ExportName }

func (c *Controller[T]) find(id int) (T, bool) {
	for _, rec := range c.list {
		if rec.Key() == id {
			return c.screen.clone(rec), true
		}
	}
	var zero T
	return zero, false
}

// label picks the text a confirmation shows: the search field, else the id.
func (c *Controller[T]) label(rec T) string {
	if c.screen.SearchText != nil {
		if s := c.screen.SearchText(rec); s != "" {
			return s
		}
	}
	return fmt.Sprint(rec.Key())
}

func (c *Controller[T]) notify(ctx context.Context, level, msg string) {
	if err := c.notices.Push(ctx, c.screen.Name, Notice{Level: level, Message: msg}); err != nil {
		c.logger.WithError(err).WithField("screen", c.screen.Name).Warn("push notice failed")
	}
}

// IsValidation reports whether err is a client-side validation failure.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
