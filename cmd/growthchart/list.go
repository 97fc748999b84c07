package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"growthchart/internal/domain"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print stored measurements with their growth band",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		birth, err := cfg.Birth()
		if err != nil {
			return err
		}
		table, err := cfg.Table()
		if err != nil {
			return err
		}
		st, err := openStore(cfg.Database)
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		ms, err := st.ListMeasurements(cmd.Context())
		if err != nil {
			return err
		}
		return renderList(os.Stdout, ms, table, birth)
	},
}

func renderList(w io.Writer, ms []domain.Measurement, table *domain.GrowthTable, birth time.Time) error {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"Date", "Week", "Weight (kg)", "Min", "Max"})
	tw.SetAlignment(tablewriter.ALIGN_RIGHT)

	for _, m := range ms {
		day, err := m.Day()
		if err != nil {
			return err
		}
		week := domain.WeekIndex(day, birth)
		band, err := table.Lookup(week)
		if err != nil {
			return fmt.Errorf("%s: %w", m.Date, err)
		}
		tw.Append([]string{
			m.Date,
			fmt.Sprint(week),
			fmt.Sprintf("%.2f", m.Weight),
			fmt.Sprintf("%.2f", band.Min),
			fmt.Sprintf("%.2f", band.Max),
		})
	}
	tw.Render()
	return nil
}
