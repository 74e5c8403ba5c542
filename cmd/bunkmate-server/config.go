package main

import (
	"bunkmate-backend/lib/alerting"
)

type Config struct {
	// port the api listens on, defaults to 8000
	Port int `json:"port"`
	// base url of the college portal, e.g. "https://sctce.etlab.in"
	PortalBaseUrl string `json:"portal_base_url"`
	// path or libsql url of the snapshot database, history is
	// disabled when empty
	Database string          `json:"database"`
	Alerting alerting.Config `json:"alerting"`
}
