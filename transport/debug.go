package transport

import (
	"net/http"
	"net/http/httputil"
	"strings"
)

// debugRoundTripper logs full request and response dumps. The Authorization
// header is masked before dumping.
type debugRoundTripper struct {
	base   http.RoundTripper
	logger Logger
}

func (d *debugRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	masked := req.Clone(req.Context())
	if auth := masked.Header.Get("Authorization"); auth != "" {
		masked.Header.Set("Authorization", maskCredential(auth))
	}
	// Body is not dumped: it may be a large file upload and DumpRequestOut
	// would consume it.
	if dump, err := httputil.DumpRequestOut(masked, false); err == nil {
		d.logger.Debugf("casdoor http request: %s", dump)
	}

	resp, err := d.base.RoundTrip(req)
	if err != nil {
		d.logger.Debugf("casdoor http request failed: %s %s: %v", req.Method, req.URL.Redacted(), err)
		return nil, err
	}

	if dump, err := httputil.DumpResponse(resp, true); err == nil {
		d.logger.Debugf("casdoor http response: %s", dump)
	}
	return resp, nil
}

func maskCredential(v string) string {
	scheme, _, found := strings.Cut(v, " ")
	if !found {
		return "***"
	}
	return scheme + " ***"
}
