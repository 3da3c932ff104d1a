// Package middleware provides typed handler.Middleware for cross-cutting HTTP
// concerns: request ids, access logging and request body limits.
//
// Every middleware has a default constructor and a WithConfig variant whose
// config carries an optional Skip func:
//
//	r := router.New[*router.Context](
//		router.WithMiddleware(
//			middleware.RequestID[*router.Context](),
//			middleware.LoggingWithLogger[*router.Context](log),
//			middleware.BodyLimitWithSize[*router.Context](64*middleware.KB),
//		),
//	)
//
// Logging picks up the id set by RequestID, so RequestID must run first.
package middleware
