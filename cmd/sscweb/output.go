package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"sscweb/internal/catalog"
	"sscweb/internal/models"
)

func checkFormat(format string) error {
	switch format {
	case "table", "json":
		return nil
	default:
		return fmt.Errorf("invalid output format %q: use table or json", format)
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printObservatories(w io.Writer, format string, observatories []catalog.Observatory) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	if format == "json" {
		return writeJSON(w, observatories)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDATA AVAILABLE")
	for _, o := range observatories {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", o.ID, o.Name, o.RangeTitle())
	}
	return tw.Flush()
}

func printGroundStations(w io.Writer, format string, stations []models.GroundStation) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	if format == "json" {
		return writeJSON(w, stations)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tLATITUDE\tLONGITUDE")
	for _, s := range stations {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%.2f\n", s.ID, s.Name, s.Latitude, s.Longitude)
	}
	return tw.Flush()
}

func printTrajectories(w io.Writer, format string, records []models.TrajectoryRecord) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	if format == "json" {
		return writeJSON(w, records)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "SATELLITE\tTIME\tX (Re)\tY (Re)\tZ (Re)\t")
	for _, r := range records {
		for i := 0; i < r.Len(); i++ {
			fmt.Fprintf(tw, "%s\t%s\t%.4f\t%.4f\t%.4f\t\n", r.SatelliteName, r.Times[i], r.X[i], r.Y[i], r.Z[i])
		}
	}
	return tw.Flush()
}

func printPlots(w io.Writer, format string, result models.PlotResult) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	if format == "json" {
		return writeJSON(w, result)
	}

	for _, f := range result.Files {
		fmt.Fprintf(w, "%-8s %s\n", f.Kind, f.URL)
	}
	return nil
}
