package inspect

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kilianp07/partminder/core/model"
)

// AllClearMessage is shown instead of an empty report.
const AllClearMessage = "You rock! Everything looks good!\nRun me again in a few days, will 'ya? :)"

// Kind identifies the dimension an advisory refers to.
type Kind int

const (
	ByDate Kind = iota
	ByMileage
)

func (k Kind) String() string {
	if k == ByMileage {
		return "mileage"
	}
	return "date"
}

// Advisory tells the user that one part is overdue in one dimension.
type Advisory struct {
	Part     string
	Kind     Kind
	Interval int // months for ByDate, km for ByMileage
	Message  string
}

// Evaluate returns one advisory per overdue (part, dimension) pair. Parts
// are visited in order and the date advisory of a part precedes its mileage
// advisory. The result is empty when nothing is due.
func Evaluate(parts []model.Part, v model.VehicleState, today time.Time) []Advisory {
	advs := make([]Advisory, 0)
	for _, p := range parts {
		name := strings.ToLower(p.Name)
		if p.DateOverdue(today) {
			advs = append(advs, Advisory{
				Part:     p.Name,
				Kind:     ByDate,
				Interval: p.IntervalMonths,
				Message: fmt.Sprintf("You have exceeded the allowed %d months between %s changes. You must change the %s again now!",
					p.IntervalMonths, name, name),
			})
		}
		if p.MileageOverdue(v) {
			advs = append(advs, Advisory{
				Part:     p.Name,
				Kind:     ByMileage,
				Interval: p.IntervalKm,
				Message: fmt.Sprintf("You have exceeded the allowed %d kms between %s changes. You must change the %s again now!",
					p.IntervalKm, name, name),
			})
		}
	}
	return advs
}

// Report writes each advisory on its own paragraph, or AllClearMessage when
// there is none.
func Report(w io.Writer, advs []Advisory) error {
	if len(advs) == 0 {
		_, err := fmt.Fprintf(w, "\n%s\n", AllClearMessage)
		return err
	}
	for _, a := range advs {
		if _, err := fmt.Fprintf(w, "\n%s\n", a.Message); err != nil {
			return err
		}
	}
	return nil
}

// Summary aggregates an inspection for metrics export.
type Summary struct {
	Parts          int
	OverdueDate    int
	OverdueMileage int
	Mileage        int
	At             time.Time
}

// Summarize counts the advisories per dimension.
func Summarize(parts []model.Part, v model.VehicleState, advs []Advisory, at time.Time) Summary {
	s := Summary{Parts: len(parts), Mileage: v.CurrentMileage, At: at}
	for _, a := range advs {
		switch a.Kind {
		case ByDate:
			s.OverdueDate++
		case ByMileage:
			s.OverdueMileage++
		}
	}
	return s
}
