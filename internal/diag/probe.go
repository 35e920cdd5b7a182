package diag

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Diagnostic payload values.
const (
	statusConnected    = "connected"
	statusNotConnected = "not connected"
	envSet             = "set"
	envNotSet          = "not set"
)

// At most this many collection names appear in a report.
const maxCollections = 10

// Error text in a report is cut to this many characters.
const maxErrorLen = 80

// Report is the diagnostic payload returned by the /test endpoint. Field
// names match the original backend's report.
type Report struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

// Probe checks the optional MongoDB dependency.
type Probe struct {
	uri     string
	name    string
	timeout time.Duration
	lg      *zap.SugaredLogger
}

// NewProbe creates a database probe. An empty uri means no database is
// configured; the probe then reports absence without dialing anything.
func NewProbe(uri, name string, timeout time.Duration, lg *zap.SugaredLogger) *Probe {
	return &Probe{uri: uri, name: name, timeout: timeout, lg: lg}
}

// Report produces one diagnostic report. It always returns a complete
// payload; connectivity problems become report fields, never errors.
func (p *Probe) Report(ctx context.Context) Report {
	report := Report{
		Backend:          "running",
		Database:         "not available",
		DatabaseURL:      envNotSet,
		DatabaseName:     envNotSet,
		ConnectionStatus: statusNotConnected,
		Collections:      []string{},
	}
	if p.uri != "" {
		report.DatabaseURL = envSet
	}
	if p.name != "" {
		report.DatabaseName = envSet
	}

	if p.uri == "" {
		report.Database = "not configured (set DATABASE_URL to enable)"
		return report
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(p.uri))
	if err != nil {
		report.Database = diagError(errors.Wrap(err, "connect"))
		return report
	}
	defer func() {
		// Disconnect under a fresh deadline; the request context may
		// already be exhausted.
		dctx, dcancel := context.WithTimeout(context.Background(), p.timeout)
		defer dcancel()
		if err := client.Disconnect(dctx); err != nil {
			p.lg.Debugw("database disconnect failed", "err", err.Error())
		}
	}()

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		report.Database = diagError(errors.Wrap(err, "ping"))
		return report
	}

	report.ConnectionStatus = statusConnected

	if p.name == "" {
		report.Database = "connected (set DATABASE_NAME to list collections)"
		return report
	}

	names, err := client.Database(p.name).ListCollectionNames(ctx, bson.D{})
	if err != nil {
		report.Database = "connected but " + diagError(errors.Wrap(err, "list collections"))
		return report
	}

	if len(names) > maxCollections {
		names = names[:maxCollections]
	}
	report.Collections = names
	report.Database = "connected and working"
	return report
}

// diagError formats an error for inclusion in a report, bounded in length.
func diagError(err error) string {
	msg := "error: " + err.Error()
	if len(msg) > maxErrorLen {
		msg = msg[:maxErrorLen]
	}
	return msg
}
