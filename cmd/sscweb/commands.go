package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"sscweb/internal/catalog"
	"sscweb/internal/config"
	"sscweb/internal/logger"
	"sscweb/internal/models"
	"sscweb/internal/requests"
	"sscweb/internal/session"
	"sscweb/internal/storage"
)

type appKey struct{}

// execute runs the CLI with args, writing command output to out
func execute(ctx context.Context, args []string, out io.Writer) error {
	var current *app
	root := newRootCmd(&current)
	root.SetArgs(args)
	root.SetOut(out)
	err := root.ExecuteContext(ctx)
	if current != nil {
		current.Close()
	}
	return err
}

func appFrom(cmd *cobra.Command) *app {
	a, _ := cmd.Context().Value(appKey{}).(*app)
	return a
}

// newRootCmd builds the command tree. The app created for the invocation is
// published through current so the caller can release it after Execute.
func newRootCmd(current **app) *cobra.Command {
	root := &cobra.Command{
		Use:   "sscweb",
		Short: "Query satellite locations and plots from the Satellite Situation Center",
		Long: `sscweb is a client for the NASA Satellite Situation Center (SSC) web services.
It lists observatories, retrieves trajectory data and requests orbit, map and time series plots.

Configuration comes from the environment (SSC_BASE_URL, SSC_TIMEOUT, MOCKUP_MODE,
OUTPUT_MODE, LOCAL_OUTPUT_DIR, GCS_BUCKET, METRICS_ADDR, LOG_LEVEL, LOG_FORMAT).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" || cmd.Name() == "help" {
				return nil
			}
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}
			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			*current = a
			cmd.SetContext(context.WithValue(cmd.Context(), appKey{}, a))
			return nil
		},
	}

	root.AddCommand(
		newObservatoriesCmd(),
		newGroundStationsCmd(),
		newLocationsCmd(),
		newGraphCmd(),
		newPlotsCmd(),
		newVersionCmd(),
	)
	return root
}

func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")
}

func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().String("start", "", "Start time, YYYY-MM-DD[THH][:MM][:SS][.mmm][Z]")
	cmd.Flags().String("end", "", "End time, same format as --start")
	cmd.Flags().StringSlice("sat", nil, "Satellite ids (comma separated or repeated)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
}

// selection reads the selection flags, defaulting the satellites to those of
// defaults present in the catalog
func selection(cmd *cobra.Command, c *catalog.Catalog, defaults []string) session.Input {
	start, _ := cmd.Flags().GetString("start")
	end, _ := cmd.Flags().GetString("end")
	sats, _ := cmd.Flags().GetStringSlice("sat")
	if len(sats) == 0 {
		sats = c.DefaultSelection(defaults...)
	}
	return session.Input{Start: start, End: end, SatelliteIDs: sats}
}

func newObservatoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "observatories",
		Aliases: []string{"sats"},
		Short:   "List the observatories known to the service",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			c, err := a.session.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("output")
			return printObservatories(cmd.OutOrStdout(), format, c.All())
		},
	}
	addOutputFlag(cmd)
	return cmd
}

func newGroundStationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groundstations",
		Short: "List the ground stations available for map plots",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			body, err := a.fetcher.FetchGroundStations(cmd.Context())
			if err != nil {
				return err
			}
			stations, err := catalog.DecodeGroundStations(body)
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("output")
			return printGroundStations(cmd.OutOrStdout(), format, stations)
		},
	}
	addOutputFlag(cmd)
	return cmd
}

func newLocationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locations",
		Short: "Retrieve satellite positions (GSE, Earth radii) for a time range",
		Example: `  sscweb locations --start 2008-01-02 --end 2008-01-03 --sat cluster1,cluster2
  sscweb locations --start 2008-01-02T00:00 --end 2008-01-02T06:00 --sat ace -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			c, err := a.session.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			records, err := a.session.RequestLocations(cmd.Context(), selection(cmd, c, catalog.DefaultDataSelection))
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("output")
			return printTrajectories(cmd.OutOrStdout(), format, records)
		},
	}
	addSelectionFlags(cmd)
	addOutputFlag(cmd)
	return cmd
}

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Request orbit, map or time series plots",
		Example: `  sscweb graph --variant orbit --start 2008-01-02 --end 2008-01-03 --sat themisa,themisb
  sscweb graph --variant mapped --station GAK,KIRU --title "Footpoints" --start 2008-01-02 --end 2008-01-03 --download`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)

			variantName, _ := cmd.Flags().GetString("variant")
			variant, err := requests.ParseVariant(variantName)
			if err != nil {
				return err
			}
			if mapped, ok := variant.(requests.Mapped); ok {
				if stations, _ := cmd.Flags().GetStringSlice("station"); len(stations) > 0 {
					mapped.GroundStations = stations
				}
				mapped.Title, _ = cmd.Flags().GetString("title")
				variant = mapped
			}

			c, err := a.session.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			result, err := a.session.RequestGraph(cmd.Context(), selection(cmd, c, catalog.DefaultGraphSelection), variant)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("output")
			if err := printPlots(cmd.OutOrStdout(), format, result); err != nil {
				return err
			}

			if download, _ := cmd.Flags().GetBool("download"); download {
				return downloadPlots(cmd, a, result.Files)
			}
			return nil
		},
	}
	addSelectionFlags(cmd)
	addOutputFlag(cmd)
	cmd.Flags().String("variant", "orbit", "Plot type: orbit, mapped or timeseries")
	cmd.Flags().StringSlice("station", nil, "Ground stations for mapped plots (default FSMI,WHOR,FSIM,GAK)")
	cmd.Flags().String("title", "", "Title for mapped plots")
	cmd.Flags().Bool("download", false, "Download the generated files to the configured output")
	return cmd
}

func downloadPlots(cmd *cobra.Command, a *app, files []models.PlotFile) error {
	ctx := cmd.Context()
	sink, err := a.newPlotSink(ctx)
	if err != nil {
		return err
	}
	defer sink.Close()

	now := time.Now()
	for _, f := range files {
		name, err := storage.FileNameFromURL(f.URL)
		if err != nil {
			return err
		}
		data, err := a.fetcher.Download(ctx, f.URL)
		if err != nil {
			return err
		}
		location, err := sink.StoreFile(ctx, data, name, now)
		if err != nil {
			return err
		}
		a.log.Info("Plot stored", logger.Fields{"url": f.URL, "location": location})
		fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", location)
	}
	return nil
}

func newPlotsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plots",
		Short: "List previously downloaded plots, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			sink, err := a.newPlotSink(cmd.Context())
			if err != nil {
				return err
			}
			defer sink.Close()

			limit, _ := cmd.Flags().GetInt("limit")
			plots, err := sink.ListPlots(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(plots) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no plots stored")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(plots, "\n"))
			return nil
		},
	}
	cmd.Flags().Int("limit", 20, "Maximum number of plots to list (0 for all)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the client version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "sscweb", config.GetVersion())
		},
	}
}
