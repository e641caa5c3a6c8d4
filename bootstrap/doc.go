// Package bootstrap runs the labauth process lifecycle.
//
// An App starts the registered components, runs the configure callbacks
// that wire the business layer, starts any components registered while
// configuring, prints the startup summary and blocks until SIGINT or
// SIGTERM. Shutdown stops components in reverse order and then runs the
// OnStop hooks.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.RegisterComponent(db)
//	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*Config]) error {
//	    return a.RegisterComponent(server.NewComponent(srv))
//	})
//	err = app.Run(ctx)
package bootstrap
