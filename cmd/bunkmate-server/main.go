package main

import (
	"flag"
	"fmt"
	"net/http"

	"bunkmate-backend/lib/alerting"
	"bunkmate-backend/lib/attendancestore"
	"bunkmate-backend/lib/configutil"
	"bunkmate-backend/lib/serviceutil"
	"bunkmate-backend/lib/sqliteutil"
	"bunkmate-backend/services/attendance"
)

func main() {
	verbose := flag.Bool("v", false, "Enable verbose logging/instrumentation.")
	flag.Parse()

	ctx := serviceutil.SignalContext()

	InitTelemetry(ctx, *verbose)

	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("read config", err)
	}
	if cfg.PortalBaseUrl == "" {
		serviceutil.Fatal("read config", fmt.Errorf("portal_base_url is required"))
	}
	if cfg.Port == 0 {
		cfg.Port = 8000
	}

	var store *attendancestore.Store
	if cfg.Database != "" {
		db, err := sqliteutil.OpenDB(attendancestore.Schema, cfg.Database)
		if err != nil {
			serviceutil.Fatal("init snapshot db", err)
		}
		s := attendancestore.NewStore(db)
		store = &s
	}

	mux := http.NewServeMux()
	service := attendance.NewService(attendance.ServiceOptions{
		BaseUrl: cfg.PortalBaseUrl,
		Store:   store,
		Mailer:  alerting.NewMailer(cfg.Alerting),
	})
	service.Register(mux)

	go serviceutil.StartHttpServer(cfg.Port, mux)
	<-ctx.Done()
}
