package transport

import (
	"bytes"
	"io"
	"net/http"
	"strings"
)

// readBody reads and closes the request body so it can be sent more than once;
// the caller's request is left untouched.
func readBody(r *http.Request) ([]byte, bool, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, false, nil
	}
	defer r.Body.Close()
	buf, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, false, err
	}
	return buf, true, nil
}

func clone(r *http.Request, body []byte, hasBody bool) *http.Request {
	cloned := r.Clone(r.Context())
	if !hasBody {
		return cloned
	}
	cloned.Body = io.NopCloser(bytes.NewReader(body))
	cloned.ContentLength = int64(len(body))
	cloned.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(body)), nil
	}
	return cloned
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if len(header) < len("Bearer ") || !strings.EqualFold(header[:len("Bearer ")], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(header[len("Bearer "):])
}
