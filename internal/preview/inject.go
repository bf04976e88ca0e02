package preview

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"
)

// liveReloadScript connects to LiveReloadPath and reloads on ReloadMessage.
const liveReloadScript = `<script>(function(){var p=location.protocol==="https:"?"wss://":"ws://";` +
	`var ws=new WebSocket(p+location.host+"` + LiveReloadPath + `");` +
	`ws.onmessage=function(e){if(e.data==="` + ReloadMessage + `"){location.reload();}};})();</script>`

// injectLiveReload adds the reload client to HTML responses. Files on disk
// are never touched.
func injectLiveReload(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := r.URL.Path
		isPage := p == "" || strings.HasSuffix(p, "/") || strings.HasSuffix(p, ".html")
		if r.Method != http.MethodGet || !isPage {
			next.ServeHTTP(w, r)
			return
		}
		rec := &bufferedWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		rec.flush()
	})
}

// bufferedWriter holds the body until the handler is done so the script can
// be placed before </body>.
type bufferedWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (b *bufferedWriter) WriteHeader(code int) { b.status = code }

func (b *bufferedWriter) Write(p []byte) (int, error) { return b.buf.Write(p) }

func (b *bufferedWriter) flush() {
	body := b.buf.Bytes()
	h := b.ResponseWriter.Header()
	if b.status == http.StatusOK && strings.Contains(h.Get("Content-Type"), "text/html") {
		body = insertBeforeBody(body)
		h.Set("Content-Length", strconv.Itoa(len(body)))
	}
	b.ResponseWriter.WriteHeader(b.status)
	_, _ = b.ResponseWriter.Write(body)
}

func insertBeforeBody(body []byte) []byte {
	idx := bytes.LastIndex(bytes.ToLower(body), []byte("</body>"))
	if idx < 0 {
		return append(body, liveReloadScript...)
	}
	out := make([]byte, 0, len(body)+len(liveReloadScript))
	out = append(out, body[:idx]...)
	out = append(out, liveReloadScript...)
	return append(out, body[idx:]...)
}
