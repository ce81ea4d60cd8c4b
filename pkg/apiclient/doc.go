/*
Package apiclient is the HTTP adapter for the Idea platform business API.

# Overview

A Client wraps every outgoing call with the configured base URL and, when the
TokenSource yields one, an "Authorization: Bearer" header. It never mutates
shared state: a 401 is reported as KindSessionExpired and the caller decides
what happens to the session.

	c := apiclient.New("http://localhost:8000/api")
	c.Tokens = apiclient.TokenFunc(func() string { return token })

	raw, err := c.Request(ctx, http.MethodGet, "/projects/", nil, url.Values{"status": {"active"}})
	page, err := apiclient.DecodePage[domain.Project](raw)

# Errors

Every failure is an *Error carrying a Kind:

  - KindTransport: no response was received
  - KindServer: the server answered with a failure status
  - KindValidation: 400/422 with field errors in Fields
  - KindSessionExpired: the credential was rejected (401)
  - KindCanceled: the request context was canceled

Message holds the server provided message when there is one, otherwise a
generic transport failure message suitable for display.

# Cancellation

The context passed to Request is the cancellation token. There is no client
enforced timeout unless HTTPClient.Timeout is set.

# Lists

List endpoints return either a bare JSON array or a {results, count, next,
previous} envelope. DecodePage accepts both.
*/
package apiclient
