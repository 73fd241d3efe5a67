package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kilianp07/partminder/app"
)

var (
	entryDate    string
	entryMileage string
	entryMonths  string
	entryKm      string
	entryCurrent string
)

var updateCmd = &cobra.Command{
	Use:   "update NAME",
	Short: "Record a service of a tracked part",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpdate,
}

var insertCmd = &cobra.Command{
	Use:   "insert NAME",
	Short: "Start tracking a new part",
	Args:  cobra.ExactArgs(1),
	RunE:  runInsert,
}

func init() {
	for _, c := range []*cobra.Command{updateCmd, insertCmd} {
		c.Flags().StringVar(&entryDate, "date", "", "date of the service (YYYY-MM-DD)")
		c.Flags().StringVar(&entryMileage, "mileage", "", "odometer reading at the service")
		c.Flags().StringVar(&entryCurrent, "current", "", "current mileage of the vehicle")
		for _, f := range []string{"date", "mileage", "current"} {
			_ = c.MarkFlagRequired(f)
		}
	}
	insertCmd.Flags().StringVar(&entryMonths, "months", "", "months allowed between services (1-36)")
	insertCmd.Flags().StringVar(&entryKm, "km", "", "kilometers allowed between services")
	_ = insertCmd.MarkFlagRequired("months")
	_ = insertCmd.MarkFlagRequired("km")
	rootCmd.AddCommand(updateCmd, insertCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	v, err := app.VehicleState(entryCurrent)
	if err != nil {
		return err
	}
	svc, logg, err := newService(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer closeService(svc, logg)
	return svc.UpdateEntry(cmd.Context(), v, args[0], entryDate, entryMileage)
}

func runInsert(cmd *cobra.Command, args []string) error {
	v, err := app.VehicleState(entryCurrent)
	if err != nil {
		return err
	}
	svc, logg, err := newService(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer closeService(svc, logg)
	return svc.InsertEntry(cmd.Context(), v, app.Entry{
		Name:    args[0],
		Date:    entryDate,
		Months:  entryMonths,
		Mileage: entryMileage,
		Km:      entryKm,
	})
}
