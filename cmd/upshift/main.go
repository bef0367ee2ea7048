package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"upshift/internal/config"
	"upshift/internal/earnings"
	"upshift/internal/geo"
	"upshift/internal/identity"
	"upshift/internal/location"
	"upshift/internal/remote"
	"upshift/internal/shift"
	"upshift/internal/today"
)

type app struct {
	cfg      config.Config
	session  identity.Provider
	shifts   shift.Service
	today    today.Service
	earnings earnings.Service
	remote   remote.Service
}

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	var (
		a   app
		lat float64
		lon float64
	)

	root := &cobra.Command{
		Use:           "upshift",
		Short:         "Shift scheduling client: browse, claim and clock shifts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			a = buildApp(cfg, geo.Coordinate{Latitude: lat, Longitude: lon}, logger)
			return nil
		},
	}
	root.PersistentFlags().Float64Var(&lat, "lat", 0, "device latitude (stands in for the location sensor)")
	root.PersistentFlags().Float64Var(&lon, "lon", 0, "device longitude (stands in for the location sensor)")

	root.AddCommand(
		whoamiCmd(&a),
		shiftsCmd(&a),
		myShiftsCmd(&a),
		claimCmd(&a),
		unclaimCmd(&a),
		todayCmd(&a),
		checkInCmd(&a),
		checkOutCmd(&a),
		statusCmd(&a),
		earningsCmd(&a),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func buildApp(cfg config.Config, device geo.Coordinate, logger *zap.Logger) app {
	session := identity.NewTokenSession(cfg.SessionToken)
	rs := remote.NewGraphQLService(cfg.GraphQLEndpoint, session, cfg.RemoteRequestsPerSecond, logger)
	shiftSvc := shift.NewService(rs, cfg, logger)
	locManager := location.NewManager(location.NewStatic(device), cfg.FixTimeout, logger)
	reconciler := today.NewReconciler(cfg, logger)
	todaySvc := today.NewService(shiftSvc, rs, locManager, reconciler, cfg, logger)
	earningsSvc := earnings.NewService(shiftSvc, cfg, logger)
	return app{
		cfg:      cfg,
		session:  session,
		shifts:   shiftSvc,
		today:    todaySvc,
		earnings: earningsSvc,
		remote:   rs,
	}
}

func whoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in worker",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.session.IsSignedIn() {
				fmt.Println("not signed in")
				return nil
			}
			p, err := a.session.Profile()
			if err != nil {
				return err
			}
			fmt.Printf("%s (%s) <%s>\n", p.Name, p.UserID, p.Email)
			return nil
		},
	}
}

func shiftsCmd(a *app) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "shifts",
		Short: "List open shifts for the coming days",
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			end := start.AddDate(0, 0, days)
			shifts, err := a.shifts.Browse(cmd.Context(), start, end)
			if err != nil {
				return err
			}
			if len(shifts) == 0 {
				fmt.Println("no open shifts")
				return nil
			}
			for _, s := range shifts {
				fmt.Printf("%s  %s  %s-%s  %-16s %d/%d spots\n",
					s.ID, s.Date.Format("Mon Jan 2"), s.StartTime, s.EndTime,
					s.DisplayRole(), s.AvailableSpots, s.PeopleNeeded)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 7, "how many days ahead to list")
	return cmd
}

func myShiftsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "my-shifts",
		Short: "List your claimed shifts",
		RunE: func(cmd *cobra.Command, args []string) error {
			claims, err := a.shifts.MyShifts(cmd.Context())
			if err != nil {
				return err
			}
			if len(claims) == 0 {
				fmt.Println("no claimed shifts")
				return nil
			}
			for _, c := range claims {
				fmt.Printf("%s  %s  %s-%s  %s (claimed %s)\n",
					c.ShiftID, c.Shift.Date.Format("Mon Jan 2"),
					c.Shift.StartTime, c.Shift.EndTime, c.Shift.Role,
					c.ClaimedAt.Format("Jan 2 15:04"))
			}
			return nil
		},
	}
}

func claimCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "claim <shift-id>",
		Short: "Claim an open shift",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.shifts.Claim(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("claimed shift %s (%s %s-%s)\n",
				c.ShiftID, c.Shift.Date.Format("Mon Jan 2"), c.Shift.StartTime, c.Shift.EndTime)
			return nil
		},
	}
}

func unclaimCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unclaim <shift-id>",
		Short: "Release a claimed shift",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.shifts.Unclaim(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("unclaimed shift %s\n", args[0])
			return nil
		},
	}
}

func todayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's shifts and their check-in state",
		RunE: func(cmd *cobra.Command, args []string) error {
			shifts, err := a.today.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			if len(shifts) == 0 {
				fmt.Println("no shifts today")
				return nil
			}
			for _, ts := range shifts {
				printTodayShift(ts)
			}
			return nil
		},
	}
}

func printTodayShift(ts today.TodayShift) {
	fmt.Printf("%s  %s-%s  %s  [%s]\n",
		ts.Claim.ShiftID, ts.Claim.Shift.StartTime, ts.Claim.Shift.EndTime,
		ts.Claim.Shift.Role, ts.Status().DisplayName())
	if r := ts.Record; r != nil {
		if r.CheckInTime != nil {
			fmt.Printf("    checked in %s", r.CheckInTime.Format("15:04"))
			if r.IsLateCheckIn() {
				fmt.Printf(" (%dm late)", *r.LateCheckInMinutes)
			}
			if r.IsEarlyCheckIn() {
				fmt.Printf(" (%dm early)", *r.EarlyCheckInMinutes)
			}
			fmt.Println()
		}
		if r.CheckOutTime != nil {
			fmt.Printf("    checked out %s", r.CheckOutTime.Format("15:04"))
			if r.IsEarlyCheckOut() {
				fmt.Printf(" (%dm early)", *r.EarlyCheckOutMinutes)
			}
			if r.IsLateCheckOut() {
				fmt.Printf(" (%dm late)", *r.LateCheckOutMinutes)
			}
			fmt.Println()
		}
		if r.RequiresManagerApproval {
			fmt.Println("    requires manager approval")
		}
		if r.ActualHoursWorked != nil {
			fmt.Printf("    hours worked: %.2f (scheduled %.2f)\n", *r.ActualHoursWorked, r.ScheduledHours)
		}
	}
}

func checkInCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check-in <shift-id>",
		Short: "Check in to one of today's shifts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := findTodayShift(cmd, a, args[0])
			if err != nil {
				return err
			}
			if !ts.CanCheckIn() {
				return fmt.Errorf("shift %s is not ready for check-in (status %s)", args[0], ts.Status())
			}
			if err := a.today.CheckIn(cmd.Context(), ts); err != nil {
				return err
			}
			fmt.Println("checked in")
			return nil
		},
	}
}

func checkOutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check-out <shift-id>",
		Short: "Check out of the shift you are clocked into",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := findTodayShift(cmd, a, args[0])
			if err != nil {
				return err
			}
			if !ts.CanCheckOut() {
				return fmt.Errorf("shift %s is not ready for check-out (status %s)", args[0], ts.Status())
			}
			if err := a.today.CheckOut(cmd.Context(), ts); err != nil {
				return err
			}
			fmt.Println("checked out")
			return nil
		},
	}
}

func findTodayShift(cmd *cobra.Command, a *app, shiftID string) (today.TodayShift, error) {
	shifts, err := a.today.Refresh(cmd.Context())
	if err != nil {
		return today.TodayShift{}, err
	}
	for _, ts := range shifts {
		if ts.Claim.ShiftID == shiftID {
			return ts, nil
		}
	}
	return today.TodayShift{}, fmt.Errorf("no claimed shift %s today", shiftID)
}

func statusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show current clock status",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.remote.ClockStatus(cmd.Context())
			if err != nil {
				return err
			}
			if !st.IsClockedIn {
				fmt.Println("not clocked in")
				return nil
			}
			fmt.Println("clocked in")
			if st.ActiveEntry != nil {
				fmt.Printf("    entry %s since %s\n", st.ActiveEntry.ID, st.ActiveEntry.ClockInTime)
			}
			return nil
		},
	}
}

func earningsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "earnings",
		Short: "Summarize the current week's completed shifts",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
			start := midnight.AddDate(0, 0, -int(now.Weekday()))
			end := start.AddDate(0, 0, 6)

			shifts, summary, err := a.earnings.FetchWeek(cmd.Context(), start, end)
			if err != nil {
				return err
			}
			for _, s := range shifts {
				fmt.Printf("%s  %s  %s  %s  $%.2f\n",
					s.Date.Format("Mon Jan 2"), s.TimeRange(), s.Role, s.HoursWorkedLabel(), s.Pay())
			}
			fmt.Printf("total: %.1fh across %d shifts, projected pay $%.2f\n",
				summary.TotalHours, summary.ShiftsCount, summary.ProjectedPay)
			return nil
		},
	}
}
