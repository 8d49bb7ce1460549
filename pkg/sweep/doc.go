// Package sweep triggers the patrol service's inactive-session sweep.
//
// One call to Run issues exactly one authenticated GET and returns nil only
// for a 2xx response. Scheduling and retries belong to the caller, usually
// cron:
//
//	*/15 * * * * BACKEND_API_KEY=... sessionsweep --quiet
//
// Embedding it in another program looks like:
//
//	cfg := sweep.DefaultConfig()
//	cfg.APIKey = os.Getenv("BACKEND_API_KEY")
//	if _, err := sweep.Run(ctx, cfg, sweep.WithOutput(os.Stdout)); err != nil {
//	    return err
//	}
package sweep
