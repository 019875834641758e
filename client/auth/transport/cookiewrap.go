package transport

import (
	"net/http"
)

// cookieWrap attaches jar cookies before delegating to the inner RoundTripper and
// stores response cookies back, so the refresh cookie follows replays even when
// the RoundTripper is used without an http.Client.
type cookieWrap struct {
	inner http.RoundTripper
	jar   http.CookieJar
}

// WrapWithCookieJar wraps inner with jar, it returns inner when either is nil
func WrapWithCookieJar(inner http.RoundTripper, jar http.CookieJar) http.RoundTripper {
	if jar == nil || inner == nil {
		return inner
	}
	return &cookieWrap{inner: inner, jar: jar}
}

func (w *cookieWrap) RoundTrip(req *http.Request) (*http.Response, error) {
	cloned := req.Clone(req.Context())
	for _, c := range w.jar.Cookies(cloned.URL) {
		if _, err := cloned.Cookie(c.Name); err == nil {
			continue
		}
		cloned.AddCookie(c)
	}
	resp, err := w.inner.RoundTrip(cloned)
	if err != nil {
		return nil, err
	}
	if cookies := resp.Cookies(); len(cookies) > 0 {
		w.jar.SetCookies(cloned.URL, cookies)
	}
	return resp, nil
}
