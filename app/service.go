package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/kilianp07/partminder/config"
	"github.com/kilianp07/partminder/core/events"
	"github.com/kilianp07/partminder/core/inspect"
	"github.com/kilianp07/partminder/core/interval"
	coremetrics "github.com/kilianp07/partminder/core/metrics"
	"github.com/kilianp07/partminder/core/model"
	"github.com/kilianp07/partminder/core/partstore"
	"github.com/kilianp07/partminder/core/prompt"
	"github.com/kilianp07/partminder/core/validate"
	"github.com/kilianp07/partminder/infra/logger"
	"github.com/kilianp07/partminder/internal/eventbus"
	"github.com/kilianp07/partminder/pkg/export"

	_ "github.com/kilianp07/partminder/infra/metrics"
	_ "github.com/kilianp07/partminder/infra/store"
)

// SavedMessage is printed after every successful write.
const SavedMessage = "The data was updated successfully. Thank you."

// Options carries the collaborators a Service talks to. Zero values fall
// back to the process terminal, the wall clock and a no-op logger.
type Options struct {
	In       io.Reader
	Out      io.Writer
	Now      func() time.Time
	Selector prompt.MessageSelector
	Log      logger.Logger
	Sink     coremetrics.InspectionSink
}

func (o *Options) setDefaults() {
	if o.In == nil {
		o.In = os.Stdin
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Log == nil {
		o.Log = logger.NopLogger{}
	}
	if o.Sink == nil {
		o.Sink = coremetrics.NopSink{}
	}
}

// Service runs one session against the part store: an interactive menu or
// a single non-interactive operation.
type Service struct {
	store  partstore.Store
	book   *partstore.Book
	prompt *prompt.Prompter
	out    io.Writer
	now    func() time.Time
	log    logger.Logger
	sink   coremetrics.InspectionSink

	changes   *eventbus.Bus[events.PartChanged]
	auditDone chan struct{}
}

// New builds a Service from the configuration: the store backend, the
// inspection sinks and the rejection messages.
func New(ctx context.Context, cfg *config.Config, opts Options) (*Service, error) {
	if opts.Log == nil {
		opts.Log = logger.NopLogger{}
	}
	if opts.Selector == nil && (len(cfg.Messages.Primary) > 0 || len(cfg.Messages.Advanced) > 0) {
		primary, advanced := cfg.Messages.Primary, cfg.Messages.Advanced
		if len(primary) == 0 {
			primary = prompt.DefaultPrimary
		}
		if len(advanced) == 0 {
			advanced = prompt.DefaultAdvanced
		}
		opts.Selector = prompt.Escalating(primary, advanced, nil)
	}
	if opts.Sink == nil {
		sink, err := coremetrics.NewSink(cfg.Metrics.Sinks, opts.Log)
		if err != nil {
			return nil, fmt.Errorf("metrics sink: %w", err)
		}
		opts.Sink = sink
	}
	st, err := partstore.New(cfg.Store.Module())
	if err != nil {
		return nil, err
	}
	svc, err := NewWithStore(ctx, st, opts)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	return svc, nil
}

// NewWithStore builds a Service on an already constructed store.
func NewWithStore(ctx context.Context, st partstore.Store, opts Options) (*Service, error) {
	opts.setDefaults()
	book, err := partstore.Open(ctx, st, opts.Log)
	if err != nil {
		return nil, err
	}
	s := &Service{
		store:     st,
		book:      book,
		prompt:    prompt.New(opts.In, opts.Out, opts.Selector),
		out:       opts.Out,
		now:       opts.Now,
		log:       opts.Log,
		sink:      opts.Sink,
		changes:   eventbus.New[events.PartChanged](),
		auditDone: make(chan struct{}),
	}
	go s.audit(s.changes.Subscribe())
	return s, nil
}

// audit logs every change until the bus is closed.
func (s *Service) audit(ch <-chan events.PartChanged) {
	defer close(s.auditDone)
	for e := range ch {
		s.log.Debugw("part changed", e.Fields())
	}
}

// Subscribe returns a channel receiving every change written from now on.
// It is closed by Close.
func (s *Service) Subscribe() <-chan events.PartChanged { return s.changes.Subscribe() }

// Close stops the prompt reader and the audit log and releases the store.
func (s *Service) Close() error {
	s.prompt.Close()
	s.changes.Close()
	<-s.auditDone
	return s.store.Close()
}

// published announces a durable change of the named part.
func (s *Service) published(op events.Op, name string) {
	p, err := s.book.Find(name)
	if err != nil {
		return
	}
	s.changes.Publish(events.PartChanged{Op: op, Part: p, At: s.now()})
}

// Book exposes the loaded part list.
func (s *Service) Book() *partstore.Book { return s.book }

func (s *Service) today() time.Time { return interval.Today(s.now()) }

// VehicleState validates a raw odometer reading.
func VehicleState(mileage string) (model.VehicleState, error) {
	n, err := validate.NonNegInt(mileage)
	if err != nil {
		return model.VehicleState{}, fmt.Errorf("current mileage: %w", err)
	}
	v := model.VehicleState{CurrentMileage: n}
	if err := v.Validate(); err != nil {
		return model.VehicleState{}, err
	}
	return v, nil
}

// Inspect evaluates every part, writes the report and records the summary.
// A failing sink is logged but does not fail the inspection.
func (s *Service) Inspect(v model.VehicleState) ([]inspect.Advisory, error) {
	today := s.today()
	parts := s.book.Parts()
	advs := inspect.Evaluate(parts, v, today)
	if err := inspect.Report(s.out, advs); err != nil {
		return advs, err
	}
	if err := s.sink.RecordInspection(inspect.Summarize(parts, v, advs, s.now())); err != nil {
		s.log.Warnf("record inspection: %v", err)
	}
	return advs, nil
}

// List writes the part list in the given export format.
func (s *Service) List(format string) error {
	return export.Write(s.out, format, s.book.Parts())
}

// Entry holds raw text for a part, as typed by the user or passed as flags.
type Entry struct {
	Name    string
	Date    string
	Months  string
	Mileage string
	Km      string
}

// UpdateEntry records a service event for an existing part from raw values.
func (s *Service) UpdateEntry(ctx context.Context, v model.VehicleState, name, date, mileage string) error {
	p, err := s.book.Find(name)
	if err != nil {
		return err
	}
	d, err := interval.Date(date, s.today())
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}
	km, err := validate.Mileage(mileage, v.CurrentMileage)
	if err != nil {
		return fmt.Errorf("mileage: %w", err)
	}
	if err := s.book.Update(ctx, p.Name, d, km); err != nil {
		return err
	}
	s.published(events.OpUpdate, p.Name)
	s.prompt.Printf("\n%s\n", SavedMessage)
	return nil
}

// InsertEntry adds a new part from raw values.
func (s *Service) InsertEntry(ctx context.Context, v model.VehicleState, e Entry) error {
	name, err := s.acceptNewName(e.Name)
	if err != nil {
		return fmt.Errorf("name: %w", err)
	}
	d, err := interval.Date(e.Date, s.today())
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}
	months, err := validate.IntervalMonths(e.Months)
	if err != nil {
		return fmt.Errorf("months: %w", err)
	}
	mileage, err := validate.Mileage(e.Mileage, v.CurrentMileage)
	if err != nil {
		return fmt.Errorf("mileage: %w", err)
	}
	km, err := validate.IntervalKm(e.Km)
	if err != nil {
		return fmt.Errorf("km: %w", err)
	}
	return s.insert(ctx, v, model.Part{Name: name, LastChanged: d, IntervalMonths: months, LastMileage: mileage, IntervalKm: km})
}

func (s *Service) insert(ctx context.Context, v model.VehicleState, p model.Part) error {
	if err := p.Validate(v, s.today()); err != nil {
		return err
	}
	if err := s.book.Insert(ctx, p); err != nil {
		return err
	}
	s.published(events.OpInsert, p.Name)
	s.prompt.Printf("\n%s\n", SavedMessage)
	return nil
}
