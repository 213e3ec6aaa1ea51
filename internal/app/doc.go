// Package app is the composition root of bloglist.
//
// New turns Options into a ready App:
//
//	config.Load()           read ~/.config/bloglist/config.toml (or --config)
//	logging.New()           zap JSON logger on the log file
//	blogapi.NewClient()     HTTP client with timeout and request ids
//	state.Stores{}          session, posts, authors, notification
//	session.FileStorage     durable session file
//	blog.NewService()       synchronization layer over all of the above
//	Service.Restore()       rehydrate a saved session, no network
//
// Bootstrap performs the initial load of posts and authors in parallel with
// errgroup. Run does New, Bootstrap and then hands the service to the TUI.
//
// # Background refresh
//
// The client loads once at start. When refresh_seconds is set, StartPoller
// also calls Service.Sync on that interval. Consecutive failures double the
// wait up to 30 seconds; the first success resets it. Sync never publishes
// notifications, so an unreachable backend only shows up in the log.
//
// # Errors
//
// New fails on a malformed config, an unusable log path or an invalid API URL.
// A failed initial load is not fatal: the failure banner is already showing
// and the UI starts regardless.
package app
