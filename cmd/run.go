package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"snowreport/internal/render"
	"snowreport/internal/report"
	"snowreport/internal/session"
	"snowreport/internal/ui"
	"snowreport/internal/warehouse"
)

var (
	runPageSize int
	runNoCache  bool
	runCompany  string

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the built-in portfolio report",
		Long: "Computes daily company positions, the top quartile of companies by\n" +
			"average position, and daily sector positions, then renders them as a\n" +
			"sector bar chart, a paginated grid and a per-company series.",
		RunE: runReport,
	}
)

func init() {
	addDisplayFlags(runCmd.Flags(), &runPageSize)
	runCmd.Flags().BoolVar(&runNoCache, "no-cache", false, "recompute instead of reusing session results")
	runCmd.Flags().StringVar(&runCompany, "company", "", "ticker for the position series (skips the selector)")

	rootCmd.AddCommand(runCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, whConfig, err := loadWarehouseConfig()
	if err != nil {
		return err
	}

	pageSize := runPageSize
	if pageSize <= 0 {
		pageSize = cfg.Display.PageSize
	}
	if cfg.Display.NoColor {
		ui.DisableColor()
	}

	svc := warehouse.NewService(whConfig)
	if err := svc.Connect(); err != nil {
		return err
	}
	defer svc.Close()

	runner := &report.Runner{
		Fetcher:  svc,
		Store:    session.NewStore(),
		Renderer: render.NewRenderer(os.Stdout, pageSize),
		UI:       ui.NewUI(verbose, quiet),
		Company:  runCompany,
		NoCache:  runNoCache || !cfg.Reports.Cache,
	}

	return runner.Run(cmd.Context())
}
