package partstore

import (
	"context"
	"fmt"
	"time"

	"github.com/kilianp07/partminder/core/errs"
	"github.com/kilianp07/partminder/core/logger"
	"github.com/kilianp07/partminder/core/model"
	"github.com/kilianp07/partminder/core/validate"
)

var (
	// ErrNotFound is returned when no part carries the requested name.
	ErrNotFound = fmt.Errorf("part not found: %w", errs.ErrLogic)
	// ErrDuplicate is returned when inserting a name that is already tracked.
	ErrDuplicate = fmt.Errorf("part already tracked: %w", errs.ErrLogic)
	// ErrIndexRange is returned for a menu number outside the part list.
	ErrIndexRange = fmt.Errorf("part number out of range: %w", errs.ErrLogic)
)

// Book is the in-memory part list of one session. It is loaded wholesale
// from a Store and written back wholesale after every mutation.
type Book struct {
	store   Store
	log     logger.Logger
	parts   []model.Part
	skipped []SkippedLine
}

// Open loads the complete part list from s. Entries the backend could not
// decode are reported through the logger and kept in Skipped. They are not
// written back: the first commit discards them from the store.
func Open(ctx context.Context, s Store, log logger.Logger) (*Book, error) {
	if log == nil {
		log = logger.Nop{}
	}
	res, err := s.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load parts: %w: %w", errs.ErrIO, err)
	}
	if n := len(res.Skipped); n > 0 {
		log.Warnf("skipped %d unreadable entries in the part store. "+
			"The next update or insert rewrites the store without them: fix the file first to keep them", n)
		for _, sk := range res.Skipped {
			log.Warnf("skipped entry at line %d: %s", sk.Line, sk.Reason)
		}
	}
	log.Debugf("loaded %d parts", len(res.Parts))
	return &Book{store: s, log: log, parts: res.Parts, skipped: res.Skipped}, nil
}

// Parts returns the parts in insertion order.
func (b *Book) Parts() []model.Part {
	return append([]model.Part(nil), b.parts...)
}

// Skipped returns the entries that were dropped on load.
func (b *Book) Skipped() []SkippedLine {
	return append([]SkippedLine(nil), b.skipped...)
}

// Len returns the number of tracked parts.
func (b *Book) Len() int { return len(b.parts) }

// Lookup resolves a 1-based menu number.
func (b *Book) Lookup(n int) (model.Part, error) {
	if n < 1 || n > len(b.parts) {
		return model.Part{}, fmt.Errorf("%d not in [1, %d]: %w", n, len(b.parts), ErrIndexRange)
	}
	return b.parts[n-1], nil
}

// Find returns the part named name.
func (b *Book) Find(name string) (model.Part, error) {
	i := b.index(name)
	if i < 0 {
		return model.Part{}, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return b.parts[i], nil
}

func (b *Book) index(name string) int {
	for i, p := range b.parts {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// Update records a new service event for the named part and persists the
// list. Intervals are left untouched.
func (b *Book) Update(ctx context.Context, name string, date time.Time, mileage int) error {
	i := b.index(name)
	if i < 0 {
		return fmt.Errorf("update %s: %w", name, ErrNotFound)
	}
	next := b.Parts()
	next[i] = next[i].Serviced(date, mileage)
	if err := b.commit(ctx, next); err != nil {
		return err
	}
	b.log.Infof("updated %s: changed on %s at %d km", name, date.Format("2006-01-02"), mileage)
	return nil
}

// Insert appends a new part and persists the list. Names are unique.
func (b *Book) Insert(ctx context.Context, p model.Part) error {
	if !validate.IsAlphaName(p.Name) {
		return fmt.Errorf("insert %q: %w", p.Name, errs.ErrValidation)
	}
	if b.index(p.Name) >= 0 {
		return fmt.Errorf("insert %s: %w", p.Name, ErrDuplicate)
	}
	next := append(b.Parts(), p)
	if err := b.commit(ctx, next); err != nil {
		return err
	}
	b.log.Infof("inserted %s", p.Name)
	return nil
}

func (b *Book) commit(ctx context.Context, next []model.Part) error {
	if err := b.store.Save(ctx, next); err != nil {
		return fmt.Errorf("save parts: %w: %w", errs.ErrIO, err)
	}
	b.parts = next
	return nil
}
