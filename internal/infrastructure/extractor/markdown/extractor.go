// Package markdown extracts labeled vectors from Markdown samples locally.
// MD is the one format whose extraction is cheap enough to run in-process;
// the heavyweight formats go through the remote extraction service.
package markdown

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	gmtext "github.com/yuin/goldmark/text"

	"github.com/genoslab/docregress/internal/core/domain"
)

const (
	labelSectionHeader = "section_header"
	labelText          = "text"
	labelListItem      = "list_item"
	labelTable         = "table"
	labelCode          = "code"
)

type Extractor struct {
	md goldmark.Markdown
}

func New() *Extractor {
	return &Extractor{md: goldmark.New(goldmark.WithExtensions(extension.Table))}
}

func (e *Extractor) Extract(_ context.Context, samplePath string) ([]domain.RawVector, error) {
	source, err := os.ReadFile(samplePath)
	if err != nil {
		return nil, fmt.Errorf("read markdown sample: %w", err)
	}

	doc := e.md.Parser().Parse(gmtext.NewReader(source))

	w := &vectorWalker{source: source}
	w.walk(doc)
	return w.vectors, nil
}

type vectorWalker struct {
	source  []byte
	vectors []domain.RawVector
}

func (w *vectorWalker) walk(node ast.Node) {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Heading:
			w.emit(labelSectionHeader, string(n.Text(w.source)))
		case *ast.Paragraph:
			w.emit(labelText, paragraphText(n, w.source))
		case *ast.List:
			w.walkList(n)
		case *ast.FencedCodeBlock:
			w.emit(labelCode, blockLines(n, w.source))
		case *ast.CodeBlock:
			w.emit(labelCode, blockLines(n, w.source))
		case *ast.Blockquote:
			w.walk(n)
		case *east.Table:
			w.emit(labelTable, tableText(n, w.source))
		case *ast.ThematicBreak:
			// no content to compare
		}
	}
}

func (w *vectorWalker) walkList(list *ast.List) {
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		li, ok := item.(*ast.ListItem)
		if !ok {
			continue
		}
		var text string
		if first := li.FirstChild(); first != nil {
			if p, isPara := first.(*ast.Paragraph); isPara {
				text = paragraphText(p, w.source)
			} else {
				text = string(first.Text(w.source))
			}
		}
		w.emit(labelListItem, text)

		// Nested lists become their own list_item vectors, in order.
		for child := li.FirstChild(); child != nil; child = child.NextSibling() {
			if nested, isList := child.(*ast.List); isList {
				w.walkList(nested)
			}
		}
	}
}

func (w *vectorWalker) emit(label, text string) {
	idx := len(w.vectors)
	w.vectors = append(w.vectors, domain.RawVector{
		OrderIndex: &idx,
		Label:      &label,
		Text:       strings.TrimSpace(text),
	})
}

func paragraphText(n *ast.Paragraph, source []byte) string {
	var sb strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			sb.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
			continue
		}
		sb.WriteString(string(child.Text(source)))
	}
	return sb.String()
}

// tableText flattens a table row-major, cells separated by " | " and rows by
// newlines, so cell-level edits move the similarity score instead of erasing it.
func tableText(table *east.Table, source []byte) string {
	var rows []string
	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, strings.TrimSpace(string(cell.Text(source))))
		}
		rows = append(rows, strings.Join(cells, " | "))
	}
	return strings.Join(rows, "\n")
}

func blockLines(n ast.Node, source []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		sb.Write(segment.Value(source))
	}
	return sb.String()
}
