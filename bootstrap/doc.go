// Package bootstrap runs a gladiaflow process through a uniform lifecycle:
// validate config, start components, run configuration callbacks, check
// readiness, then either serve until a signal (Run) or execute a finite
// task (RunTask), and finally stop components in reverse order.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.RegisterComponent(transcription.NewComponent(svc))
//	err = app.RunTask(ctx, func(ctx context.Context) error {
//	    return runBatch(ctx)
//	})
package bootstrap
