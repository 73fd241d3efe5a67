package app

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/partminder/config"
	"github.com/kilianp07/partminder/core/errs"
	"github.com/kilianp07/partminder/core/factory"
	"github.com/kilianp07/partminder/core/inspect"
	"github.com/kilianp07/partminder/core/model"
	"github.com/kilianp07/partminder/core/partstore"
	"github.com/kilianp07/partminder/core/prompt"
)

var now = time.Date(2020, time.August, 1, 9, 30, 0, 0, time.UTC)

func newServiceClock() time.Time { return now }

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func seed() []model.Part {
	return []model.Part{
		{Name: "Oil", LastChanged: d(2020, 1, 1), IntervalMonths: 6, LastMileage: 45000, IntervalKm: 10000},
		{Name: "Chain", LastChanged: d(2020, 6, 1), IntervalMonths: 12, LastMileage: 38000, IntervalKm: 12000},
	}
}

type recordSink struct{ got []inspect.Summary }

func (r *recordSink) RecordInspection(s inspect.Summary) error {
	r.got = append(r.got, s)
	return nil
}

func newService(t *testing.T, input string, parts ...model.Part) (*Service, *partstore.MemoryStore, *bytes.Buffer, *recordSink) {
	t.Helper()
	st := partstore.NewMemoryStore(parts...)
	var out bytes.Buffer
	sink := &recordSink{}
	svc, err := NewWithStore(context.Background(), st, Options{
		In:       strings.NewReader(input),
		Out:      &out,
		Now:      newServiceClock,
		Selector: prompt.Escalating([]string{"retry-0", "retry-1"}, []string{"retry-adv"}, prompt.Cycle()),
		Sink:     sink,
	})
	require.NoError(t, err)
	return svc, st, &out, sink
}

func TestRunInspection(t *testing.T) {
	svc, _, out, sink := newService(t, "abc\n50000\n\n", seed()...)
	require.NoError(t, svc.Run(context.Background()))

	got := out.String()
	assert.Contains(t, got, "retry-0")
	assert.Contains(t, got, "You have exceeded the allowed 6 months between oil changes.")
	assert.NotContains(t, got, "kms between oil")
	assert.Contains(t, got, "You have exceeded the allowed 12000 kms between chain changes.")
	assert.NotContains(t, got, inspect.AllClearMessage)

	require.Len(t, sink.got, 1)
	assert.Equal(t, inspect.Summary{Parts: 2, OverdueDate: 1, OverdueMileage: 1, Mileage: 50000, At: now}, sink.got[0])
}

func TestRunInspectionAllClear(t *testing.T) {
	svc, _, out, _ := newService(t, "100\n\n")
	require.NoError(t, svc.Run(context.Background()))
	assert.Contains(t, out.String(), inspect.AllClearMessage)
}

func TestRunMenuEscalation(t *testing.T) {
	svc, _, out, _ := newService(t, "1000\n9\nx\n7\n3\n", seed()...)
	require.NoError(t, svc.Run(context.Background()))
	got := out.String()
	assert.Contains(t, got, "retry-0")
	assert.Contains(t, got, "retry-1")
	assert.Contains(t, got, "retry-adv")
	assert.Contains(t, got, "Oil: Last changed on 2020-01-01. Must be changed every 6 months, or every 10000 kilometers.")
}

func TestRunUpdate(t *testing.T) {
	input := strings.Join([]string{
		"50000",      // current mileage
		"1",          // update
		"5",          // out of range
		"2",          // Chain
		"2020-08-02", // future
		"2018-01-01", // too old
		"2020-02-30", // not a date
		"2020-07-20",
		"60000", // above odometer
		"49000",
	}, "\n") + "\n"
	svc, st, out, _ := newService(t, input, seed()...)
	require.NoError(t, svc.Run(context.Background()))

	got := out.String()
	assert.Contains(t, got, "For Oil, press 1.")
	assert.Contains(t, got, "For Chain, press 2.")
	assert.Contains(t, got, "lies ahead in the future")
	assert.Contains(t, got, "seems too old")
	assert.Contains(t, got, "more than the total kilometers")
	assert.Contains(t, got, SavedMessage)
	// the out of range index and the invalid date each escalate once, and
	// every question starts over from the first message
	assert.Equal(t, 2, strings.Count(got, "retry-0"))
	assert.NotContains(t, got, "retry-1")

	res, err := st.Load(context.Background())
	require.NoError(t, err)
	chain := res.Parts[1]
	assert.Equal(t, d(2020, 7, 20), chain.LastChanged)
	assert.Equal(t, 49000, chain.LastMileage)
	assert.Equal(t, 12, chain.IntervalMonths)
	assert.Equal(t, 12000, chain.IntervalKm)
	assert.Equal(t, 1, st.Saves())
}

func TestRunUpdateEmptyStore(t *testing.T) {
	svc, st, out, _ := newService(t, "100\n1\n")
	require.NoError(t, svc.Run(context.Background()))
	assert.Contains(t, out.String(), "no data entries to update")
	assert.Equal(t, 0, st.Saves())
}

func TestRunInsert(t *testing.T) {
	input := strings.Join([]string{
		"50000",
		"2",
		"Brake pads", // not alphabetic
		"Oil",        // duplicate
		"Brakes",
		"2020-07-01",
		"37", // above 36 months
		"24",
		"50001", // above odometer
		"48000",
		"0", // zero interval
		"15000",
	}, "\n") + "\n"
	svc, st, out, _ := newService(t, input, seed()...)
	require.NoError(t, svc.Run(context.Background()))

	got := out.String()
	assert.Contains(t, got, "already tracked")
	assert.Contains(t, got, SavedMessage)

	res, err := st.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Parts, 3)
	assert.Equal(t, model.Part{Name: "Brakes", LastChanged: d(2020, 7, 1), IntervalMonths: 24, LastMileage: 48000, IntervalKm: 15000}, res.Parts[2])
}

func TestRunEOF(t *testing.T) {
	svc, _, _, _ := newService(t, "12")
	assert.ErrorIs(t, svc.Run(context.Background()), io.ErrUnexpectedEOF)

	svc, _, _, _ = newService(t, "")
	assert.ErrorIs(t, svc.Run(context.Background()), io.ErrUnexpectedEOF)
}

func TestInsertEntryRejectsMonths37(t *testing.T) {
	svc, st, _, _ := newService(t, "", seed()...)
	err := svc.InsertEntry(context.Background(), model.VehicleState{CurrentMileage: 50000}, Entry{
		Name: "Tires", Date: "2020-07-01", Months: "37", Mileage: "40000", Km: "20000",
	})
	assert.ErrorIs(t, err, errs.ErrValidation)
	assert.Equal(t, 0, st.Saves())
}

func TestUpdateEntry(t *testing.T) {
	svc, st, _, _ := newService(t, "", seed()...)
	v := model.VehicleState{CurrentMileage: 50000}
	require.NoError(t, svc.UpdateEntry(context.Background(), v, "Oil", "2020-07-31", "49500"))
	p, err := svc.Book().Find("Oil")
	require.NoError(t, err)
	assert.Equal(t, 49500, p.LastMileage)
	assert.Equal(t, 1, st.Saves())

	err = svc.UpdateEntry(context.Background(), v, "Brakes", "2020-07-31", "1")
	assert.ErrorIs(t, err, partstore.ErrNotFound)
	err = svc.UpdateEntry(context.Background(), v, "Oil", "2020-07-31", "50001")
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestVehicleState(t *testing.T) {
	v, err := VehicleState("50000")
	require.NoError(t, err)
	assert.Equal(t, 50000, v.CurrentMileage)
	_, err = VehicleState("-5")
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestParseChoice(t *testing.T) {
	for in, want := range map[string]Choice{"": ChoiceInspect, "1": ChoiceUpdate, "2": ChoiceInsert, "3": ChoiceList} {
		got, err := ParseChoice(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseChoice("4")
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestNewFromConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(
		"name,last_changed_date,date_interval_months,last_changed_mileage,mileage_interval\n"+
			"Oil,2020-01-01,6,45000,10000\n"+
			"garbage line\n"), 0o644))

	cfg := &config.Config{
		Store: config.StoreConfig(factory.ModuleConfig{Type: "csv", Conf: map[string]any{"path": path}}),
	}
	cfg.Metrics.Sinks = []factory.ModuleConfig{{Type: "textfile", Conf: map[string]any{"path": filepath.Join(dir, "pm.prom")}}}
	cfg.Messages.Primary = []string{"custom-0"}

	var out bytes.Buffer
	svc, err := New(context.Background(), cfg, Options{
		In:  strings.NewReader("x\n50000\n\n"),
		Out: &out,
		Now: func() time.Time { return now },
	})
	require.NoError(t, err)
	defer func() { _ = svc.Close() }()

	assert.Equal(t, 1, svc.Book().Len())
	assert.Len(t, svc.Book().Skipped(), 1)

	require.NoError(t, svc.Run(context.Background()))
	assert.Contains(t, out.String(), "custom-0")
	assert.Contains(t, out.String(), "6 months between oil changes")
	_, err = os.Stat(filepath.Join(dir, "pm.prom"))
	assert.NoError(t, err)
}

func TestNewUnknownBackend(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Type: "ftp"}}
	_, err := New(context.Background(), cfg, Options{})
	assert.Error(t, err)
}
