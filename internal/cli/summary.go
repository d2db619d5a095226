package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"aidash/internal/config"
	"aidash/internal/display"
	"aidash/internal/engine"
)

var (
	mutedColor = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#60A5FA"})
	labelStyle = lipgloss.NewStyle().Width(26).Foreground(mutedColor)
	valueStyle = lipgloss.NewStyle().Bold(true)
	emptyStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#FBBF24"})
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(mutedColor).Padding(0, 1)
)

func newSummaryCommand(opts *rootOptions) *cobra.Command {
	var (
		dataPath   string
		years      []int
		countries  []string
		industries []string
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the KPI block for a selection",
		Example: `  aidash summary --data data.csv
  aidash summary --year 2023,2024 --country USA --industry Media`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(func(c *config.Config) {
				if dataPath != "" {
					c.Data.Path = dataPath
				}
			})
			if err != nil {
				return err
			}

			store, err := engine.LoadCSV(cfg.Data.Path)
			if err != nil {
				return fmt.Errorf("load dataset: %w", err)
			}

			// Unset flags leave their dimension unrestricted.
			sel := engine.SelectAll()
			if cmd.Flags().Changed("year") {
				sel.Years = years
			}
			if cmd.Flags().Changed("country") {
				sel.Countries = countries
			}
			if cmd.Flags().Changed("industry") {
				sel.Industries = industries
			}

			view := engine.Filter(store, sel)
			fmt.Fprintln(cmd.OutOrStdout(), renderSummary(cfg.Data.Path, sel, engine.ComputeKPIs(view)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dataPath, "data", "d", "", "dataset CSV path (overrides data.path)")
	cmd.Flags().IntSliceVar(&years, "year", nil, "years to include (repeatable or comma separated)")
	cmd.Flags().StringSliceVar(&countries, "country", nil, "countries to include")
	cmd.Flags().StringSliceVar(&industries, "industry", nil, "industries to include")
	return cmd
}

func renderSummary(path string, sel engine.Selection, k engine.KPIs) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("🌍 Global AI Content Impact"))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Dataset") + path + "\n")
	b.WriteString(labelStyle.Render("Selection") + describeSelection(sel) + "\n\n")

	if k.Records == 0 {
		b.WriteString(emptyStyle.Render("No records match the selection."))
		b.WriteString("\n")
	}

	rows := []struct {
		label string
		value string
	}{
		{"Records", strconv.Itoa(k.Records)},
		{"Average AI Adoption", display.Percent(k.AvgAdoption)},
		{"Average Job Impact", display.Percent(k.AvgJobLoss)},
		{"Average Revenue Impact", display.Percent(k.AvgRevenue)},
		{"Average Consumer Trust", display.Percent(k.AvgTrust)},
		{"Avg Collaboration Rate", display.Percent(k.AvgCollaboration)},
		{"Total AI Content Volume", display.Volume(k.TotalContentVolume)},
		{"Countries Covered", strconv.Itoa(k.Countries)},
		{"Industries Covered", strconv.Itoa(k.Industries)},
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, labelStyle.Render(r.label)+valueStyle.Render(r.value))
	}
	b.WriteString(boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
	return b.String()
}

func describeSelection(sel engine.Selection) string {
	part := func(name string, values []string, all bool) string {
		switch {
		case all:
			return name + "=all"
		case len(values) == 0:
			return name + "=none"
		default:
			return name + "=" + strings.Join(values, ",")
		}
	}
	years := make([]string, len(sel.Years))
	for i, y := range sel.Years {
		years[i] = strconv.Itoa(y)
	}
	return strings.Join([]string{
		part("years", years, sel.Years == nil),
		part("countries", sel.Countries, sel.Countries == nil),
		part("industries", sel.Industries, sel.Industries == nil),
	}, " ")
}
