// Package report implements the built-in portfolio report: three CTE plans
// over the COMPANY, PRICE and POSITION tables, computed once per session
// and rendered as a sector bar chart, a ranked company grid and a
// per-company position series.
package report

import (
	"context"

	"snowreport/internal/query"
	"snowreport/internal/render"
	"snowreport/internal/session"
	"snowreport/internal/table"
	"snowreport/internal/ui"
	"snowreport/pkg/errors"
)

// PlanFetcher executes a composed plan, reporting failures through the
// callback and substituting an empty table. *warehouse.Service implements it.
type PlanFetcher interface {
	FetchPlan(ctx context.Context, plan query.Plan, report func(error)) *table.Table
}

// Runner computes and renders the portfolio report.
type Runner struct {
	Fetcher  PlanFetcher
	Store    *session.Store
	Renderer *render.Renderer
	UI       *ui.UI

	// Company preselects the ticker for the position series widget and
	// skips the interactive selector.
	Company string

	// NoCache drops any cached tables before computing.
	NoCache bool
}

// Run computes the three report tables (cached write-once per session) and
// renders the widgets. A failed query yields an empty table and a reported
// error; the remaining widgets still render.
func (r *Runner) Run(ctx context.Context) error {
	if r.NoCache {
		r.Store.Delete(KeyDailyPositions)
		r.Store.Delete(KeyTopCompanies)
		r.Store.Delete(KeySectorPositions)
	}

	daily := r.fetch(ctx, DailyPositionsPlan())
	top := r.fetch(ctx, TopCompaniesPlan())
	sectors := r.fetch(ctx, SectorPositionsPlan())

	r.renderSectorChart(sectors)

	if err := r.Renderer.Browse(TopCompaniesPlan().Title, top); err != nil {
		return err
	}

	return r.renderCompanySeries(daily)
}

// fetch returns the cached table for the plan, computing it on a miss.
func (r *Runner) fetch(ctx context.Context, plan query.Plan) *table.Table {
	return r.Store.GetOrCompute(plan.Name, func() *table.Table {
		r.UI.StartProgress("Running " + plan.Title)
		t := r.Fetcher.FetchPlan(ctx, plan, r.report)
		if t.Empty() {
			r.UI.StopProgress(false, plan.Title)
		} else {
			r.UI.StopProgress(true, plan.Title)
		}
		return t
	})
}

func (r *Runner) report(err error) {
	if errors.IsEmptyResult(err) {
		r.UI.Warning("Query returned no rows")
		return
	}
	r.UI.Error(err)
}

func (r *Runner) renderSectorChart(sectors *table.Table) {
	if sectors.Empty() {
		r.UI.Warning("No sector position data available.")
		return
	}

	latest := sectors.MaxString("DATE")
	onDate := sectors.Filter("DATE", latest)

	r.Renderer.BarChart(
		"Top 10 Sectors by USD Position on "+latest,
		onDate, "SECTOR_NAME", "USD_POSITION", 10,
	)
}

func (r *Runner) renderCompanySeries(daily *table.Table) error {
	if daily.Empty() {
		r.UI.Warning("No company position data available.")
		return nil
	}

	tickers := daily.Unique("TICKER")

	selected := r.Company
	if selected == "" {
		if !ui.IsTerminal() {
			selected = tickers[0]
		} else {
			var err error
			selected, err = ui.SearchableSelect("Select a company:", tickers)
			if err != nil {
				return err
			}
		}
	}

	series := daily.Filter("TICKER", selected)
	if series.Empty() {
		r.UI.Warning("No position data for " + selected + ".")
		return nil
	}

	r.Renderer.LineChart(
		"Daily Close Position for "+selected,
		series, "DATE", "CLOSE_USD_POSITION",
	)
	return nil
}
