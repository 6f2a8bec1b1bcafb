package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	scheduler "github.com/TudorHulban/framescheduler"
)

var (
	flagConfig string
	flagWidth  int
)

var rootCmd = &cobra.Command{
	Use:   "framedemo",
	Short: "Negotiates time slots against several timelines at once",
	Long: "framedemo seeds an open-close schedule, an operations schedule and a " +
		"use schedule, searches slots acceptable to all three and renders the " +
		"resulting frame histories.",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the slot negotiation demo",
	RunE:  runDemo,
}

func init() {
	runCmd.Flags().StringVar(&flagConfig, "config", "", "YAML config path (defaults built in)")
	runCmd.Flags().IntVar(&flagWidth, "width", 0, "render width in characters (defaults to the terminal)")

	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger() zerolog.Logger {
	return zerolog.New(
		zerolog.ConsoleWriter{Out: os.Stderr},
	).With().Timestamp().Logger()
}

// renderWidth prefers the flag, then the terminal, then a fixed fallback.
func renderWidth() int {
	if flagWidth > 0 {
		return flagWidth
	}

	if width, _, errSize := term.GetSize(int(os.Stdout.Fd())); errSize == nil && width > 6 {
		return width - 6
	}

	return 100
}

// newDailySchedule closes every day outside [openHour, closeHour).
func newDailySchedule(name string, days int, openHour, closeHour float64) (*scheduler.Timeline, error) {
	timeline, errCr := scheduler.NewTimeline(
		&scheduler.ParamsNewTimeline{
			Name: name,
		},
	)
	if errCr != nil {
		return nil, errCr
	}

	for day := 0; day < days; day++ {
		dayStart := float64(day) * 24

		if errOccupy := timeline.OccupyTime(
			&scheduler.ParamsOccupyTime{
				TimeStart: dayStart,
				TimeEnd:   dayStart + openHour,
			},
		); errOccupy != nil {
			return nil, errOccupy
		}

		if closeHour < 24 {
			if errOccupy := timeline.OccupyTime(
				&scheduler.ParamsOccupyTime{
					TimeStart: dayStart + closeHour,
					TimeEnd:   dayStart + 24,
				},
			); errOccupy != nil {
				return nil, errOccupy
			}
		}
	}

	return timeline, nil
}

func runDemo(_ *cobra.Command, _ []string) error {
	logger := newLogger()

	cfg, errLoad := LoadConfig(flagConfig)
	if errLoad != nil {
		return errLoad
	}

	openClose, errOpenClose := newDailySchedule("open-close", cfg.Days, cfg.OpenHour, cfg.CloseHour)
	if errOpenClose != nil {
		return errOpenClose
	}

	operations, errOperations := newDailySchedule("operations", cfg.Days, cfg.OpenHour, cfg.OperationCloseHour)
	if errOperations != nil {
		return errOperations
	}

	use, errUse := scheduler.NewTimeline(
		&scheduler.ParamsNewTimeline{
			Name: "use",
		},
	)
	if errUse != nil {
		return errUse
	}

	sched, errSched := scheduler.NewScheduler(
		&scheduler.ParamsNewScheduler{
			Pairs: []scheduler.SchedulePair{
				{Timeline: openClose, Strategy: scheduler.FindAvailable{}},
				{Timeline: operations, Strategy: scheduler.FindAvailableWithExtension{}},
				{Timeline: use, Strategy: scheduler.FindClear{}},
			},
		},
	)
	if errSched != nil {
		return errSched
	}

	for ix, request := range cfg.Requests {
		if request.Commit {
			receipt, errBook := sched.Book(
				&scheduler.ParamsBook{
					TimeStart: request.TimeStart,
					Duration:  request.Duration,
					Target:    use,
				},
			)
			if errBook != nil {
				logger.Error().
					Err(errBook).
					Int("request", ix).
					Msg("booking failed")

				continue
			}

			logger.Info().
				Int("request", ix).
				Str("booking_id", receipt.ID.String()).
				Float64("time_start", receipt.TimeStart).
				Float64("time_end", receipt.TimeEnd).
				Msg("booked")

			continue
		}

		proposal, errSearch := sched.SearchOpening(
			&scheduler.ParamsSearchOpening{
				TimeStart: request.TimeStart,
				Duration:  request.Duration,
			},
		)
		if errSearch != nil {
			logger.Error().
				Err(errSearch).
				Int("request", ix).
				Msg("search failed")

			continue
		}

		logger.Info().
			Int("request", ix).
			Float64("time_start", proposal.TimeStart).
			Float64("time_end", proposal.TimeEnd).
			Msg("opening found")
	}

	width := renderWidth()
	until := float64(cfg.Days) * 24

	for _, timeline := range []*scheduler.Timeline{openClose, operations, use} {
		history, errRender := timeline.FrameHistory(
			&scheduler.ParamsFrameHistory{
				TimeStart: 0,
				TimeEnd:   until,
				TextWidth: width,
			},
		)
		if errRender != nil {
			return errRender
		}

		fmt.Printf("%-12s %s\n", timeline.Name, history)
	}

	return nil
}
