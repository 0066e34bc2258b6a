package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/healthmaster/healthmaster-go/internal/config"
	"github.com/healthmaster/healthmaster-go/internal/service/appointment"
	"github.com/healthmaster/healthmaster-go/internal/service/medication"
	"github.com/healthmaster/healthmaster-go/internal/service/reminder"
	"github.com/healthmaster/healthmaster-go/internal/service/session"
	"github.com/healthmaster/healthmaster-go/internal/service/vitals"
	"github.com/healthmaster/healthmaster-go/internal/store/appwrite"
	"github.com/healthmaster/healthmaster-go/pkg/logger"
	"github.com/healthmaster/healthmaster-go/pkg/metrics"
)

func main() {
	email := flag.String("email", os.Getenv("HEALTHMASTER_EMAIL"), "account email to sign in with")
	password := flag.String("password", os.Getenv("HEALTHMASTER_PASSWORD"), "account password")
	flag.Parse()

	log := logger.NewLogger(nil)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err, "failed to load configuration")
	}

	client := appwrite.NewClient(cfg.Store,
		appwrite.WithLogger(log),
		appwrite.WithMetrics(metrics.NewMetrics("healthmaster", prometheus.DefaultRegisterer)),
	)
	sessions := session.NewManager(client, cfg.Store, log)
	appointments := appointment.NewService(sessions, client, cfg.Store, log)
	medications := medication.NewService(sessions, client, cfg.Store, log)
	reminders := reminder.NewService(sessions, client, cfg.Store, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *email != "" {
		if _, err := sessions.SignIn(ctx, *email, *password); err != nil {
			log.Fatal(err, "sign in failed")
		}
		defer func() {
			if err := sessions.SignOut(context.Background()); err != nil {
				log.Error(err, "sign out failed")
			}
		}()
	}

	command := flag.Arg(0)
	if command == "" {
		command = "whoami"
	}

	if err := run(ctx, command, sessions, appointments, medications, reminders); err != nil {
		log.Fatal(err, "command failed", "command", command)
	}
}

func run(ctx context.Context, command string, sessions *session.Manager,
	appointments *appointment.Service, medications *medication.Service, reminders *reminder.Service) error {
	switch command {
	case "whoami":
		user, err := sessions.CurrentUser(ctx)
		if err != nil {
			return err
		}
		if user == nil {
			fmt.Println("not signed in")
			return nil
		}
		fmt.Printf("%s <%s> (profile %s)\n", user.Username, user.Email, user.ID)
		return nil

	case "appointments":
		list, err := appointments.List(ctx)
		if err != nil {
			return err
		}
		for _, apt := range list {
			fmt.Printf("%s  %-12s %-10s %s\n", apt.Date, apt.Status.Display(), apt.Severity.Display(), apt.DoctorName)
		}
		fmt.Printf("%d appointment(s)\n", len(list))
		return nil

	case "medications":
		list, err := medications.List(ctx)
		if err != nil {
			return err
		}
		for _, med := range list {
			status := med.Status
			if status == "" {
				status = "Active"
			}
			fmt.Printf("%-20s %-10s dose %d at %s\n", med.Name, status, med.Dosage, med.TimeOfDay)
		}
		fmt.Printf("%d medication(s)\n", len(list))
		return nil

	case "reminders":
		list, err := reminders.List(ctx)
		if err != nil {
			return err
		}
		for _, rem := range list {
			fmt.Printf("%s %s  %-12s %s\n", rem.Date, rem.Time, rem.Type, rem.Title)
		}
		fmt.Printf("%d reminder(s)\n", len(list))
		return nil

	case "vitals":
		source := vitals.NewSimulated(time.Now().UnixNano())
		reading, err := source.Read(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("heart rate: %d bpm\nblood pressure: %d/%d mmHg\nglucose: %d mg/dL\noxygen: %d%%\nsteps: %d\n",
			reading.HeartRate, reading.Systolic, reading.Diastolic,
			reading.Glucose, reading.OxygenSaturation, reading.Steps)
		for _, alert := range vitals.Evaluate(reading) {
			fmt.Printf("[%s] %s\n", alert.Level, alert.Message)
		}
		return nil

	default:
		return fmt.Errorf("unknown command %q (expected whoami, appointments, medications, reminders or vitals)", command)
	}
}
