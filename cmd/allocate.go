package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/field-allocator/internal/allocate"
	"github.com/sells-group/field-allocator/internal/config"
	"github.com/sells-group/field-allocator/internal/export"
	"github.com/sells-group/field-allocator/internal/loader"
	"github.com/sells-group/field-allocator/internal/model"
)

type allocateOptions struct {
	officers    string
	sites       string
	zones       string
	out         string
	officersOut string
	geojson     string
	persist     bool
	workers     int
}

var allocOpts allocateOptions

var allocateCmd = &cobra.Command{
	Use:   "allocate",
	Short: "Allocate sites to officers",
	Long:  "Loads officers, sites and zones, runs one greedy allocation pass and writes the assignments. Without --out the assignments are printed as CSV.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Validate("allocate"); err != nil {
			return err
		}
		_, err := runAllocate(cmd.Context(), cfg, allocOpts, os.Stdout, os.Stderr)
		return err
	},
}

func init() {
	f := allocateCmd.Flags()
	f.StringVar(&allocOpts.officers, "officers", "", "officer roster (.xlsx or .csv; path, URL or .zip)")
	f.StringVar(&allocOpts.sites, "sites", "", "site queue (.xlsx or .csv; path, URL or .zip)")
	f.StringVar(&allocOpts.zones, "zones", "", "zone polygons (.xlsx, .csv, .yaml or .shp; path, URL or .zip)")
	f.StringVar(&allocOpts.out, "out", "", "assignment output (.xlsx or .csv)")
	f.StringVar(&allocOpts.officersOut, "officers-out", "", "updated roster output (.xlsx or .csv)")
	f.StringVar(&allocOpts.geojson, "geojson", "", "GeoJSON output with zones, sites and officer moves")
	f.BoolVar(&allocOpts.persist, "persist", false, "save the run to the configured store")
	f.IntVar(&allocOpts.workers, "workers", 0, "officer scoring goroutines per site (default from config)")
	_ = allocateCmd.MarkFlagRequired("officers")
	_ = allocateCmd.MarkFlagRequired("sites")
	rootCmd.AddCommand(allocateCmd)
}

// runAllocate executes one allocation from files. A cancelled run still
// writes and persists its partial result before the error is returned.
func runAllocate(ctx context.Context, c *config.Config, o allocateOptions, stdout, stderr io.Writer) (*model.Run, error) {
	in, err := loadInput(ctx, c, o)
	if err != nil {
		return nil, err
	}

	workers := c.Allocation.Workers
	if o.workers > 0 {
		workers = o.workers
	}

	run, runErr := allocate.Execute(ctx, c.Scoring, workers, in)
	if runErr != nil && run.Status != model.RunStatusCancelled {
		return run, eris.Wrap(runErr, "allocate")
	}

	if err := writeOutputs(o, in.Zones, run, stdout); err != nil {
		return run, err
	}

	if o.persist {
		st, err := initStore(ctx, c)
		if err != nil {
			return run, err
		}
		defer st.Close() //nolint:errcheck
		if err := st.SaveRun(context.WithoutCancel(ctx), run); err != nil {
			return run, eris.Wrap(err, "save run")
		}
		zap.L().Info("allocate: run saved", zap.String("run_id", run.ID))
	}

	formatRunSummary(stderr, run)
	return run, runErr
}

// loadInput reads the three inputs. Each may be a local path, an http(s)
// URL or a .zip archive holding one input file.
func loadInput(ctx context.Context, c *config.Config, o allocateOptions) (allocate.Input, error) {
	var in allocate.Input

	res, err := newInputResolver()
	if err != nil {
		return in, err
	}
	defer res.Close() //nolint:errcheck

	if o.officers, err = res.resolve(ctx, o.officers); err != nil {
		return in, err
	}
	if o.sites, err = res.resolve(ctx, o.sites); err != nil {
		return in, err
	}
	if o.zones, err = res.resolve(ctx, o.zones); err != nil {
		return in, err
	}

	officers, errs, err := loader.Officers(o.officers, c.Input.OfficerSheet)
	if err != nil {
		return in, err
	}
	in.Officers = officers
	in.InputErrors = append(in.InputErrors, errs...)

	sites, errs, err := loader.Sites(o.sites, c.Input.SiteSheet)
	if err != nil {
		return in, err
	}
	in.Sites = sites
	in.InputErrors = append(in.InputErrors, errs...)

	if o.zones != "" {
		zones, errs, err := loader.Zones(o.zones, c.Input.ZoneSheet)
		if err != nil {
			return in, err
		}
		in.Zones = zones
		in.InputErrors = append(in.InputErrors, errs...)
	}
	return in, nil
}

func writeOutputs(o allocateOptions, zones []model.Zone, run *model.Run, stdout io.Writer) error {
	if o.out != "" {
		if err := export.WriteAssignments(o.out, run.Assignments); err != nil {
			return err
		}
	} else if err := export.EncodeAssignmentsCSV(stdout, run.Assignments); err != nil {
		return err
	}

	if o.officersOut != "" {
		if err := export.WriteOfficers(o.officersOut, run.Officers); err != nil {
			return err
		}
	}

	if o.geojson != "" {
		layers := export.Layers{
			Zones:       zones,
			Assignments: run.Assignments,
			Unassigned:  run.Unassigned,
			Officers:    run.Officers,
		}
		if err := export.WriteGeoJSON(o.geojson, layers); err != nil {
			return err
		}
	}
	return nil
}

// formatRunSummary writes run totals and any rejected input records to w.
func formatRunSummary(out io.Writer, run *model.Run) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if run.ID != "" {
		_, _ = fmt.Fprintf(w, "Run:\t%s\n", run.ID)
	}
	_, _ = fmt.Fprintf(w, "Status:\t%s\n", run.Status)
	_, _ = fmt.Fprintf(w, "Assigned:\t%d\n", len(run.Assignments))
	_, _ = fmt.Fprintf(w, "Unassigned:\t%d\n", len(run.Unassigned))
	_, _ = fmt.Fprintf(w, "Officers:\t%d\n", len(run.Officers))
	_, _ = fmt.Fprintf(w, "Rejected records:\t%d\n", len(run.InputErrors))
	for _, ie := range run.InputErrors {
		_, _ = fmt.Fprintf(w, "  %s\n", ie.Error())
	}
	_ = w.Flush()
}
