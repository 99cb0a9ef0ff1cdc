package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/xenexes/bragbuddy/internal/journal"
	"github.com/xenexes/bragbuddy/internal/model"
	"github.com/xenexes/bragbuddy/internal/timecalc"
)

var showTimeframe string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show journal entries for a time period",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		spec, ok := model.ParseTimeframeSpec(showTimeframe)
		if !ok {
			return errTimeframeNotRecognized(showTimeframe)
		}
		r, err := timecalc.Resolve(spec, time.Now())
		if err != nil {
			return err
		}

		store := journal.NewStore(cfg.DocsLocation)
		entries, err := store.FindByDateRange(r)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Printf("No entries between %s and %s.\n",
				r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
			return nil
		}

		var day time.Time
		for _, e := range entries {
			if d := e.Date(); !d.Equal(day) {
				day = d
				fmt.Printf("%s\n", day.Format("2006-01-02"))
			}
			fmt.Printf("  * %s %s\n", e.Timestamp.Format("15:04:05"), e.Content)
		}
		return nil
	},
}

func init() {
	showCmd.Flags().StringVarP(&showTimeframe, "timeframe", "t", "last-week", timeframeFlagHelp)
}
