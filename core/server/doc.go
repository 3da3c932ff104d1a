// Package server wraps http.Server with graceful shutdown, env-driven
// configuration and an errgroup-friendly Run method.
//
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, router))
//	return g.Wait()
//
// Cancelling ctx triggers Shutdown with the configured timeout; in-flight
// requests finish before Run returns. TLS is expected to terminate in front
// of the server.
package server
