package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"snowreport/internal/query"
	"snowreport/internal/render"
	"snowreport/internal/repo"
	"snowreport/internal/ui"
	"snowreport/internal/warehouse"
	"snowreport/pkg/errors"
)

var (
	queryPageSize int
	queryWith     []string
	queryFinal    string

	queryCmd = &cobra.Command{
		Use:   "query [plan]",
		Short: "Execute a report plan",
		Long: "Executes a plan from a YAML file, a synced definition name, or inline\n" +
			"--with/--final flags, and renders the result as a paginated grid plus\n" +
			"the plan's chart when one is defined.\n\n" +
			"Examples:\n" +
			"  snowreport query sector_summary\n" +
			"  snowreport query ./plans/adhoc.yaml\n" +
			"  snowreport query --with 'A=SELECT 1' --final 'SELECT * FROM A'",
		Args: cobra.MaximumNArgs(1),
		RunE: runQuery,
	}
)

func init() {
	addDisplayFlags(queryCmd.Flags(), &queryPageSize)
	queryCmd.Flags().StringArrayVar(&queryWith, "with", nil, "named subquery as alias=SQL (repeatable, ordered)")
	queryCmd.Flags().StringVar(&queryFinal, "final", "", "terminal query following the named subqueries")

	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, whConfig, err := loadWarehouseConfig()
	if err != nil {
		return err
	}

	var def *repo.Definition
	switch {
	case len(args) == 1:
		def, err = resolveDefinition(args[0], definitionsDir(cfg))
	case len(queryWith) > 0 || queryFinal != "":
		def, err = planFromFlags(queryWith, queryFinal)
	default:
		return fmt.Errorf("either a plan argument or --with/--final flags are required")
	}
	if err != nil {
		return err
	}

	pageSize := queryPageSize
	if pageSize <= 0 {
		pageSize = cfg.Display.PageSize
	}

	svc := warehouse.NewService(whConfig)
	if err := svc.Connect(); err != nil {
		return err
	}
	defer svc.Close()

	u := ui.NewUI(verbose, quiet)
	u.StartProgress("Running " + def.Title)

	t, err := svc.QueryPlan(cmd.Context(), def.Plan)
	if err != nil {
		u.StopProgress(false, def.Title)
		return err
	}
	u.StopProgress(true, def.Title)

	if t.Empty() {
		u.Warning("Query returned no rows")
	}

	renderer := render.NewRenderer(os.Stdout, pageSize)
	if err := renderer.Browse(def.Title, t); err != nil {
		return err
	}

	if def.Chart != nil && !t.Empty() {
		switch def.Chart.Type {
		case "bar":
			top := def.Chart.Top
			if top <= 0 {
				top = cfg.Display.TopN
			}
			renderer.BarChart(def.Title, t, def.Chart.X, def.Chart.Y, top)
		case "line":
			renderer.LineChart(def.Title, t, def.Chart.X, def.Chart.Y)
		}
	}

	return nil
}

// resolveDefinition loads a plan from a file path, falling back to a synced
// definition of that name.
func resolveDefinition(arg, defsDir string) (*repo.Definition, error) {
	if _, err := os.Stat(arg); err == nil {
		return repo.LoadPlanFile(arg)
	}

	defs, err := repo.LoadDir(defsDir)
	if err != nil {
		return nil, err
	}
	for _, def := range defs {
		if def.Name == arg {
			return def, nil
		}
	}

	return nil, errors.New(errors.ErrCodeDefsNotFound,
		fmt.Sprintf("No plan file or definition named %q", arg)).
		WithSuggestions("Run 'snowreport defs list' to see synced definitions")
}

// planFromFlags builds an inline plan from repeated alias=SQL pairs and a
// terminal query.
func planFromFlags(with []string, final string) (*repo.Definition, error) {
	fragments := make([]query.Fragment, 0, len(with))
	for _, raw := range with {
		alias, body, ok := strings.Cut(raw, "=")
		if !ok {
			return nil, errors.InvalidArgument(fmt.Sprintf("--with %q is not of the form alias=SQL", raw))
		}
		fragments = append(fragments, query.Fragment{
			Alias: strings.TrimSpace(alias),
			Body:  strings.TrimSpace(body),
		})
	}

	def := &repo.Definition{
		Plan: query.Plan{
			Name:      "adhoc",
			Title:     "Ad-hoc query",
			Fragments: fragments,
			Final:     final,
		},
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}
	return def, nil
}
