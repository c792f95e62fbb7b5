package preview

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
)

// renderMarkdownPage renders a native markdown docs file to a minimal HTML
// page for the preview. Extra files never pass through here; they are served
// as opaque bytes from their original location.
func renderMarkdownPage(title string, body []byte, liveReload bool) ([]byte, error) {
	md := goldmark.New()
	var buf bytes.Buffer
	if err := md.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	page.WriteString(html.EscapeString(title))
	page.WriteString("</title>\n<style>body{max-width:48rem;margin:2rem auto;padding:0 1rem;font-family:sans-serif;line-height:1.6}pre{background:#f4f4f4;padding:1rem;overflow-x:auto}</style>\n")
	if liveReload {
		page.WriteString(liveReloadScript)
	}
	page.WriteString("</head>\n<body>\n")
	page.Write(buf.Bytes())
	page.WriteString("\n</body>\n</html>\n")
	return page.Bytes(), nil
}

const liveReloadScript = `<script>
(function(){
  var es = new EventSource("/livereload");
  var current = null;
  es.onmessage = function(ev){
    try {
      var data = JSON.parse(ev.data);
      if (current === null) { current = data.build; return; }
      if (data.build !== current) { location.reload(); }
    } catch (e) {}
  };
})();
</script>
`
