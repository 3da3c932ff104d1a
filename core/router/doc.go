// Package router serves typed handlers (handler.HandlerFunc[C]) on top of the
// go-chi routing tree.
//
// chi does the matching ({param} patterns, sub-router mounting, 404/405
// detection); this package adds the typed request context, middleware
// chaining at registration time, panic recovery and a single error handler
// for routing, rendering and panic errors.
//
//	r := router.New[*router.Context](
//		router.WithErrorHandler(response.JSONErrorHandler[*router.Context]),
//	)
//	r.Use(middleware.RequestID[*router.Context]())
//	r.Post("/polljoy/{appId}", func(ctx *router.Context) handler.Response {
//		return response.String(ctx.Param("appId"))
//	})
//	http.ListenAndServe(":8080", r)
//
// Custom context types are supported through WithContextFactory; without a
// factory the context type must be *router.Context.
package router
