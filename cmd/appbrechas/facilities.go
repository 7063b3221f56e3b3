package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/martin-lopez25/appbrechas/internal/model"
)

var facilitiesJSON bool

var facilitiesCmd = &cobra.Command{
	Use:   "facilities",
	Short: "Lista los CLUES disponibles",
	RunE:  runFacilities,
}

func init() {
	facilitiesCmd.Flags().BoolVar(&facilitiesJSON, "json", false, "salida en JSON")
	rootCmd.AddCommand(facilitiesCmd)
}

func runFacilities(cmd *cobra.Command, _ []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.Close()

	return writeFacilities(cmd.OutOrStdout(), a.table.Facilities(), facilitiesJSON)
}

func writeFacilities(w io.Writer, facilities []model.Facility, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(facilities)
	}
	for _, f := range facilities {
		if _, err := fmt.Fprintln(w, f.Label()); err != nil {
			return err
		}
	}
	return nil
}
