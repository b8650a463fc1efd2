package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"snowreport/internal/config"
	"snowreport/internal/repo"
	"snowreport/internal/ui"
)

var defsCmd = &cobra.Command{
	Use:   "defs",
	Short: "Manage report plan definitions",
}

var defsPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Sync definitions from the configured git repository",
	RunE:  runDefsPull,
}

var defsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List synced report definitions",
	RunE:  runDefsList,
}

func init() {
	defsCmd.AddCommand(defsPullCmd)
	defsCmd.AddCommand(defsListCmd)
	rootCmd.AddCommand(defsCmd)
}

func runDefsPull(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	dir := definitionsDir(cfg)
	if err := repo.Sync(cfg.Reports.GitURL, cfg.Reports.GitBranch, dir); err != nil {
		return err
	}

	defs, err := repo.LoadDir(dir)
	if err != nil {
		return err
	}

	ui.ShowSuccess(fmt.Sprintf("Synced %d definitions to %s", len(defs), dir))
	return nil
}

func runDefsList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	defs, err := repo.LoadDir(definitionsDir(cfg))
	if err != nil {
		return err
	}

	if len(defs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No definitions found.")
		fmt.Fprintln(cmd.OutOrStdout(), "Use 'snowreport defs pull' to sync the definitions repository")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTITLE\tFRAGMENTS\tCHART")
	fmt.Fprintln(w, "----\t-----\t---------\t-----")

	for _, def := range defs {
		chart := "-"
		if def.Chart != nil {
			chart = def.Chart.Type
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", def.Name, def.Title, len(def.Fragments), chart)
	}
	return w.Flush()
}
