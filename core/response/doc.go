// Package response builds handler.Response values: plain text, raw bytes,
// JSON (encoded or pre-encoded) and structured HTTP errors.
//
//	func status(ctx handler.Context) handler.Response {
//		return response.JSON(map[string]string{"status": "ok"})
//	}
//
//	func proxied(ctx handler.Context) handler.Response {
//		return response.RawJSON(payload) // passes backend bytes through untouched
//	}
//
// Handlers return response.Error(err) to defer rendering to the router's
// error handler. JSONErrorHandler renders HTTPError values as is and maps any
// other error through its StatusCode() method, defaulting to 500:
//
//	r := router.New[*router.Context](
//		router.WithErrorHandler(response.JSONErrorHandler[*router.Context]),
//	)
package response
