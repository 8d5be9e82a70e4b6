// Package logger builds the zap logger shared by the server and the CLI.
//
// Format "console" gives colored, human oriented output for running commands
// in a terminal; "json" is meant for the server behind a log collector.
// Logs go to stderr unless Output names stdout or a file, which keeps them
// apart from the reports the CLI prints. Setting Collection stamps every line
// with the collection name.
//
// # Request Correlation
//
// The rayid middleware stores a request id under RayIDKey in the Fiber locals.
// WithRayID returns a child logger carrying that id, so the lines written
// while importing a CSV or running an upload batch for one request can be
// grouped together.
//
// # Usage
//
//	log, err := logger.New(&logger.Config{Level: "info", Format: "json"})
//	if err != nil {
//	    return err
//	}
//	log.Info("Uploading images", zap.Int("count", n))
//
//	// In a request handler:
//	logger.WithRayID(log, c).Warn("Import rejected", zap.Error(err))
package logger
