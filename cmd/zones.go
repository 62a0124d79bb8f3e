package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/field-allocator/internal/loader"
	"github.com/sells-group/field-allocator/internal/zone"
)

var zonesCmd = &cobra.Command{
	Use:   "zones",
	Short: "Show which zone contains each site",
	RunE: func(cmd *cobra.Command, _ []string) error {
		zonesPath, _ := cmd.Flags().GetString("zones")
		sitesPath, _ := cmd.Flags().GetString("sites")

		res, err := newInputResolver()
		if err != nil {
			return err
		}
		defer res.Close() //nolint:errcheck
		if zonesPath, err = res.resolve(cmd.Context(), zonesPath); err != nil {
			return err
		}
		if sitesPath, err = res.resolve(cmd.Context(), sitesPath); err != nil {
			return err
		}

		zones, _, err := loader.Zones(zonesPath, cfg.Input.ZoneSheet)
		if err != nil {
			return err
		}
		sites, _, err := loader.Sites(sitesPath, cfg.Input.SiteSheet)
		if err != nil {
			return err
		}

		idx, _ := zone.New(zones)
		formatPartition(os.Stdout, idx.Partition(sites))
		return nil
	},
}

func init() {
	zonesCmd.Flags().String("zones", "", "zone polygons (.xlsx, .csv, .yaml or .shp)")
	zonesCmd.Flags().String("sites", "", "site queue (.xlsx or .csv)")
	_ = zonesCmd.MarkFlagRequired("zones")
	_ = zonesCmd.MarkFlagRequired("sites")
	rootCmd.AddCommand(zonesCmd)
}

// formatPartition writes one line per site followed by per-zone totals.
func formatPartition(out io.Writer, p zone.Partition) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "REQUEST_ID\tZONE\tLAT\tLON")
	for _, id := range p.Order {
		for _, s := range p.ByZone[id] {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%.6f\t%.6f\n", s.RequestID, id, s.Location.Lat, s.Location.Lon)
		}
	}
	for _, s := range p.Outside {
		_, _ = fmt.Fprintf(w, "%s\t-\t%.6f\t%.6f\n", s.RequestID, s.Location.Lat, s.Location.Lon)
	}
	_ = w.Flush()

	_, _ = fmt.Fprintln(out)
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ZONE\tSITES")
	counts := p.Counts()
	for _, id := range p.Order {
		_, _ = fmt.Fprintf(w, "%s\t%d\n", id, counts[id])
	}
	_, _ = fmt.Fprintf(w, "(outside)\t%d\n", len(p.Outside))
	_ = w.Flush()
}
