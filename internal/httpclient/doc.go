// Package httpclient builds the *http.Client instances used by the chart and
// metadata clients.
//
// Transport behaviour is configured per client through Options: request
// timeout, User-Agent header, and whether TLS certificates are verified.
// Nothing here touches process-wide state, so a client that skips
// verification for one host does not weaken any other client.
package httpclient
