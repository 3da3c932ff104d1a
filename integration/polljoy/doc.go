// Package polljoy connects a web application to the polljoy poll backend.
//
// A Connector proxies three operations, chosen by query markers on a POST
// request: session registration (?register), adaptive poll retrieval (?sg)
// and poll-response submission (?response&token=...). Each request is
// identified by a device fingerprint built from the user-agent and the
// client IP, and backend payloads are stripped of the application id before
// they reach the browser.
//
// Registered sessions are cached per browser in a SessionStore, so repeated
// register calls are answered locally until the caller presents a different
// device id.
//
//	conn, err := polljoy.New(cfg,
//		polljoy.WithSessionStore(polljoy.NewSessionStore(manager)),
//		polljoy.WithHandleSource(sessiontransport.NewCookie(cookies, "polljoy_sid", 0)),
//		polljoy.WithLogger(log),
//	)
//	if err != nil {
//		return err
//	}
//	polljoy.Mount[*router.Context](r, "/polljoy", conn)
//
// The application id comes from Config.AppID unless the request path carries
// one (POST /polljoy/{appId}); the override applies to that request only.
package polljoy
