/*
Package casdoor is a client for the Casdoor identity service HTTP API.

Every Casdoor action lives under "<endpoint>/api/<action>" and answers with
the same JSON envelope:

	{"status": "ok", "msg": "", "data": ..., "data2": ...}

The client sends each call with an HTTP Basic credential derived from the
application's client id and secret, decodes the envelope and hands back
either the typed payloads or an error. It is action agnostic: the shape of
data and data2 is chosen by the caller through type parameters.

# Quick Start

	cfg, err := config.New("https://door.example.com", clientID, clientSecret)
	if err != nil {
	    log.Fatal(err)
	}

	client, err := casdoor.New(cfg)
	if err != nil {
	    log.Fatal(err)
	}

	resp, err := casdoor.Get[models.User, any](ctx, client, "get-user",
	    map[string]string{"id": "built-in/alice"})
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Println(resp.Data.DisplayName)

# Request Shapes

Four request shapes cover the whole API:

  - Get: query parameters only
  - PostForm: application/x-www-form-urlencoded body
  - PostRawBody: body sent verbatim (usually JSON)
  - PostFile: multipart upload of a local file

All four build the same URL. An empty query still produces a trailing "?".

# Errors

A call fails with one of two error kinds:

  - *TransportError (matches ErrTransport): the request could not be sent,
    the body could not be read, or the body was not a valid envelope.
    Cancellation unwraps to context.Canceled or context.DeadlineExceeded.
  - *APICallError (matches ErrAPICall): Casdoor answered with a status other
    than "ok". The error carries the request URL and Casdoor's message.

Nothing is retried.

	_, err := casdoor.Get[models.User, any](ctx, client, "get-user", query)
	switch {
	case errors.Is(err, casdoor.ErrAPICall):
	    // Casdoor rejected the call
	case casdoor.IsCanceled(err):
	    // ctx was canceled or timed out
	case errors.Is(err, casdoor.ErrTransport):
	    // network or decoding failure
	}

# Observability

Logging, metrics and tracing are pluggable through WithLogger (zap, zerolog
and logrus adapters are provided), WithMetrics (Prometheus) and WithTracer
(OpenTelemetry). All three default to no-ops.
*/
package casdoor
