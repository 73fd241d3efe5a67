package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kilianp07/partminder/core/errs"
	"github.com/kilianp07/partminder/core/events"
	"github.com/kilianp07/partminder/core/interval"
	"github.com/kilianp07/partminder/core/model"
	"github.com/kilianp07/partminder/core/partstore"
	"github.com/kilianp07/partminder/core/prompt"
	"github.com/kilianp07/partminder/core/validate"
)

// Choice is an entry of the main menu.
type Choice int

const (
	ChoiceInspect Choice = iota
	ChoiceUpdate
	ChoiceInsert
	ChoiceList
)

const menu = "\nWhat would you like to do?\n\n" +
	"Press \"Enter\", to run an inspection.\n" +
	"Press \"1\" to update an existing data entry.\n" +
	"Press \"2\" to insert a new data entry.\n" +
	"Press \"3\" to see the existing data entries.\n"

const dateHint = "(in ISO 8601 format [YYYY-MM-DD]. E.g. 2016-05-01): "

// ParseChoice maps a menu answer to a Choice.
func ParseChoice(s string) (Choice, error) {
	switch s {
	case "":
		return ChoiceInspect, nil
	case "1":
		return ChoiceUpdate, nil
	case "2":
		return ChoiceInsert, nil
	case "3":
		return ChoiceList, nil
	}
	return 0, fmt.Errorf("menu choice %q: %w", s, errs.ErrValidation)
}

// Run drives one interactive session: ask for the current mileage, then for
// a menu choice, then perform it. Only store and terminal failures are
// returned; every rejected answer is asked again.
func (s *Service) Run(ctx context.Context) error {
	v, err := prompt.Ask(ctx, s.prompt, "\nPlease, provide the current mileage of the vehicle: ", VehicleState)
	if err != nil {
		return err
	}
	s.log.Debugf("session started at %d km", v.CurrentMileage)

	s.prompt.Printf("%s", menu)
	choice, err := prompt.Ask(ctx, s.prompt, "\nWaiting for your choice: ", ParseChoice)
	if err != nil {
		return err
	}
	switch choice {
	case ChoiceUpdate:
		return s.runUpdate(ctx, v)
	case ChoiceInsert:
		return s.runInsert(ctx, v)
	case ChoiceList:
		return s.List("text")
	default:
		_, err := s.Inspect(v)
		return err
	}
}

func (s *Service) runUpdate(ctx context.Context, v model.VehicleState) error {
	if s.book.Len() == 0 {
		s.prompt.Printf("\nThere are no data entries to update yet.\n")
		return nil
	}
	var b strings.Builder
	b.WriteString("\n")
	for i, p := range s.book.Parts() {
		fmt.Fprintf(&b, "For %s, press %d.\n", p.Name, i+1)
	}
	b.WriteString("\nChoose the spare part: ")
	part, err := prompt.Ask(ctx, s.prompt, b.String(), func(in string) (model.Part, error) {
		n, err := validate.NonNegInt(in)
		if err != nil {
			return model.Part{}, err
		}
		return s.book.Lookup(n)
	})
	if err != nil {
		return err
	}

	name := strings.ToLower(part.Name)
	today := s.today()
	date, err := prompt.Ask(ctx, s.prompt,
		fmt.Sprintf("\nPlease, provide the date of the %s change\n%s", name, dateHint),
		func(in string) (time.Time, error) { return interval.Date(in, today) })
	if err != nil {
		return err
	}
	mileage, err := prompt.Ask(ctx, s.prompt,
		fmt.Sprintf("\nPlease, provide the kilometers of the %s change: ", name),
		func(in string) (int, error) { return validate.Mileage(in, v.CurrentMileage) })
	if err != nil {
		return err
	}
	if err := s.book.Update(ctx, part.Name, date, mileage); err != nil {
		return err
	}
	s.published(events.OpUpdate, part.Name)
	s.prompt.Printf("\n%s\n", SavedMessage)
	return nil
}

func (s *Service) runInsert(ctx context.Context, v model.VehicleState) error {
	name, err := prompt.Ask(ctx, s.prompt, "\nPlease provide the name of the spare part: ", s.acceptNewName)
	if err != nil {
		return err
	}
	today := s.today()
	date, err := prompt.Ask(ctx, s.prompt, "Please provide the date of the last change\n"+dateHint,
		func(in string) (time.Time, error) { return interval.Date(in, today) })
	if err != nil {
		return err
	}
	months, err := prompt.Ask(ctx, s.prompt, "Please provide the max number of months allowed for the spare part: ",
		validate.IntervalMonths)
	if err != nil {
		return err
	}
	mileage, err := prompt.Ask(ctx, s.prompt, "Please provide the kms of the last change: ",
		func(in string) (int, error) { return validate.Mileage(in, v.CurrentMileage) })
	if err != nil {
		return err
	}
	km, err := prompt.Ask(ctx, s.prompt, "Please provide the max kilometers allowed for the spare part: ",
		validate.IntervalKm)
	if err != nil {
		return err
	}
	return s.insert(ctx, v, model.Part{Name: name, LastChanged: date, IntervalMonths: months, LastMileage: mileage, IntervalKm: km})
}

// acceptNewName accepts an alphabetic name that is not tracked yet.
func (s *Service) acceptNewName(in string) (string, error) {
	name, err := validate.Name(in)
	if err != nil {
		return "", err
	}
	if _, err := s.book.Find(name); err == nil {
		return "", errs.WithMessage(fmt.Errorf("%s: %w", name, partstore.ErrDuplicate),
			fmt.Sprintf("A spare part named %s is already tracked. Use the update option instead.", name))
	}
	return name, nil
}
