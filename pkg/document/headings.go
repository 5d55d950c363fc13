package document

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"tableflip.dev/longread/pkg/outline"
)

// sourceHeading is a heading block found in the markdown source.
type sourceHeading struct {
	ID    string
	Level int
	// Start is the byte offset of the heading's first line.
	Start int
	node  *ast.Heading
}

func newMarkdown() goldmark.Markdown {
	return goldmark.New(goldmark.WithExtensions(extension.GFM))
}

func parse(md goldmark.Markdown, src []byte) ast.Node {
	return md.Parser().Parse(text.NewReader(src))
}

// sourceHeadings returns the top-level ATX headings of rank 1-3. The id of
// each is taken from its raw source line through outline.Extract, so the
// rendered anchors always agree with the extracted outline. Heading-like
// lines inside code blocks are not headings and are skipped.
func sourceHeadings(doc ast.Node, src []byte) []sourceHeading {
	var out []sourceHeading
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || h.Level > outline.MaxLevel || h.Lines().Len() == 0 {
			continue
		}
		seg := h.Lines().At(0)
		start := bytes.LastIndexByte(src[:seg.Start], '\n') + 1
		end := bytes.IndexByte(src[seg.Start:], '\n')
		if end < 0 {
			end = len(src)
		} else {
			end += seg.Start
		}
		found := outline.Extract(string(src[start:end]))
		if len(found) != 1 {
			continue
		}
		out = append(out, sourceHeading{
			ID:    found[0].ID,
			Level: found[0].Level,
			Start: start,
			node:  h,
		})
	}
	return out
}
