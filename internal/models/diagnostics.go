package models

// DiagnosticsReport is the response of the /test endpoint. Field values are
// human-readable status strings; the endpoint never fails, storage errors are
// folded into the Database field instead.
type DiagnosticsReport struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      *string  `json:"database_url"`
	DatabaseName     *string  `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}
