// Package handler defines the request-processing contract shared by the
// router, the middleware and the polljoy integration: a typed request
// context, a deferred response renderer and the middleware signature.
//
//	type Response func(w http.ResponseWriter, r *http.Request) error
//	type HandlerFunc[C Context] func(ctx C) Response
//	type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]
//
// Handlers return a Response instead of writing directly, so middleware can
// decorate the rendering step (add headers, measure status codes) and errors
// returned while rendering reach the router's ErrorHandler.
//
//	func ping(ctx handler.Context) handler.Response {
//		return response.String("pong")
//	}
package handler
