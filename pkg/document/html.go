package document

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"tableflip.dev/longread/pkg/outline"
	"tableflip.dev/longread/pkg/scrollsync"
)

// ExportHTML writes src as a standalone page. Heading ids follow
// outline.Slug, and the page carries the same reading aids as the terminal
// reader: a progress bar, a table of contents that follows the scroll
// position and a back-to-top button.
func ExportHTML(w io.Writer, src, title string) error {
	raw := []byte(src)
	md := newMarkdown()
	doc := parse(md, raw)
	for _, h := range sourceHeadings(doc, raw) {
		h.node.SetAttributeString("id", []byte(h.ID))
	}

	var body bytes.Buffer
	if err := md.Renderer().Render(&body, raw, doc); err != nil {
		return fmt.Errorf("document: render html: %w", err)
	}

	headings := outline.Extract(src)
	if strings.TrimSpace(title) == "" {
		if len(headings) > 0 {
			title = headings[0].Text
		} else {
			title = "Untitled"
		}
	}

	err := pageTemplate.Execute(w, pageData{
		Title:     title,
		Outline:   headings,
		Body:      template.HTML(body.String()),
		Threshold: scrollsync.DefaultBackToTopThreshold,
		Margin:    scrollsync.DefaultHeadingMargin,
		BandTop:   int(scrollsync.DefaultBand.Top * 100),
		BandBot:   int(scrollsync.DefaultBand.Bottom * 100),
	})
	if err != nil {
		return fmt.Errorf("document: write page: %w", err)
	}
	return nil
}

type pageData struct {
	Title     string
	Outline   outline.Headings
	Body      template.HTML
	Threshold int
	Margin    int
	BandTop   int
	BandBot   int
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { margin: 0; font-family: system-ui, sans-serif; color: #374151; }
#progress { position: fixed; top: 0; left: 0; height: 4px; width: 0; z-index: 50;
  background: linear-gradient(to right, #22c55e, #06b6d4, #ec4899); transition: width 75ms ease-out; }
#toc { position: fixed; top: 4rem; left: 1rem; width: 16rem; }
#toc button { display: block; width: 100%; text-align: left; border: 0; background: none;
  padding: .25rem .5rem; font-size: .875rem; color: #9ca3af; cursor: pointer; }
#toc button.active { color: #1f2937; }
#toc .l2 { padding-left: 1.25rem; } #toc .l3 { padding-left: 2rem; }
#top { position: fixed; bottom: 2rem; right: 2rem; display: none; border: 0; border-radius: 9999px;
  background: #1f2937; color: #fff; padding: .75rem 1rem; cursor: pointer; }
main { max-width: 48rem; margin: 0 auto; padding: 2rem 1rem; }
pre, code { background: #f3f4f6; border-radius: .25rem; }
pre { padding: 1rem; overflow-x: auto; }
@media (max-width: 80rem) { #toc { display: none; } }
</style>
</head>
<body>
<div id="progress" role="progressbar" aria-valuemin="0" aria-valuemax="100" aria-valuenow="0"></div>
<button id="top" type="button" aria-label="Scroll to top">&uarr;</button>
{{- if .Outline}}
<nav id="toc">
{{- range .Outline}}
<button type="button" class="l{{.Level}}" data-target="{{.ID}}">{{.Text}}</button>
{{- end}}
</nav>
{{- end}}
<main><article>
{{.Body}}
</article></main>
<script>
(function () {
  var threshold = {{.Threshold}}, margin = {{.Margin}};
  var bar = document.getElementById("progress"), top = document.getElementById("top");
  function onScroll() {
    var y = window.scrollY, h = document.documentElement.scrollHeight - window.innerHeight;
    var p = h > 0 ? Math.min(100, Math.max(0, y / h * 100)) : 0;
    bar.style.width = p + "%";
    bar.setAttribute("aria-valuenow", Math.round(p));
    top.style.display = y > threshold ? "block" : "none";
  }
  window.addEventListener("scroll", onScroll, { passive: true });
  top.addEventListener("click", function () { window.scrollTo({ top: 0, behavior: "smooth" }); });
  var buttons = document.querySelectorAll("#toc button");
  buttons.forEach(function (b) {
    b.addEventListener("click", function () {
      var el = document.getElementById(b.dataset.target);
      if (el) { window.scrollTo({ top: el.offsetTop - margin, behavior: "smooth" }); }
    });
  });
  var observer = new IntersectionObserver(function (entries) {
    var best = "", bestTop = Infinity;
    entries.forEach(function (e) {
      if (e.isIntersecting && e.boundingClientRect.top < bestTop) { bestTop = e.boundingClientRect.top; best = e.target.id; }
    });
    if (!best) { return; }
    buttons.forEach(function (b) { b.classList.toggle("active", b.dataset.target === best); });
  }, { rootMargin: "-{{.BandTop}}% 0px -{{.BandBot}}% 0px", threshold: [0, 0.1, 0.5, 1] });
  buttons.forEach(function (b) {
    var el = document.getElementById(b.dataset.target);
    if (el) { observer.observe(el); }
  });
  onScroll();
})();
</script>
</body>
</html>
`))
