package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kilianp07/partminder/app"
)

var inspectMileage string

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Report the parts that are due",
	Args:  cobra.NoArgs,
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectMileage, "mileage", "m", "", "current mileage of the vehicle")
	_ = inspectCmd.MarkFlagRequired("mileage")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	v, err := app.VehicleState(inspectMileage)
	if err != nil {
		return err
	}
	svc, logg, err := newService(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer closeService(svc, logg)
	_, err = svc.Inspect(v)
	return err
}
