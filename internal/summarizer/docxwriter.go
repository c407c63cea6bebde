package summarizer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const (
	fontName = "Times New Roman"
	codeFont = "Courier New"
	fontSize = 13
)

// ExportDocx renders the markdown note at markdownPath into a styled Word document.
func ExportDocx(title, markdownPath, outputPath string) error {
	src, err := os.ReadFile(markdownPath)
	if err != nil {
		return fmt.Errorf("read note: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("create docx dir: %w", err)
	}
	return markdownToDocx(title, src, outputPath)
}

func markdownToDocx(title string, src []byte, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), title, true, 16)

	root := goldmark.DefaultParser().Parse(text.NewReader(src))
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		writeBlock(doc, n, src, "")
	}

	return doc.SaveTo(outputPath)
}

// writeBlock renders one block node. prefix is a list marker for the first paragraph of a list item.
func writeBlock(doc *docx.RootDoc, n ast.Node, src []byte, prefix string) {
	switch b := n.(type) {
	case *ast.Heading:
		p := doc.AddParagraph("")
		writeInline(p, b, src, true, headingSize(b.Level))

	case *ast.Paragraph, *ast.TextBlock:
		p := doc.AddParagraph("")
		if prefix != "" {
			addStyledRun(p, prefix, false, fontSize)
		}
		writeInline(p, b, src, false, fontSize)

	case *ast.List:
		i := b.Start
		for item := b.FirstChild(); item != nil; item = item.NextSibling() {
			marker := "• "
			if b.IsOrdered() {
				marker = fmt.Sprintf("%d. ", i)
				i++
			}
			for c := item.FirstChild(); c != nil; c = c.NextSibling() {
				writeBlock(doc, c, src, marker)
				marker = ""
			}
		}

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			line := strings.TrimRight(string(seg.Value(src)), "\r\n")
			doc.AddParagraph("").AddText(line).Font(codeFont).Size(fontSize - 2).Color("000000")
		}

	case *ast.Blockquote:
		for c := b.FirstChild(); c != nil; c = c.NextSibling() {
			writeBlock(doc, c, src, prefix)
		}

	case *ast.ThematicBreak, *ast.HTMLBlock:
		// nothing to render
	}
}

func writeInline(p *docx.Paragraph, n ast.Node, src []byte, bold bool, size uint64) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch in := c.(type) {
		case *ast.Text:
			s := string(in.Segment.Value(src))
			if in.SoftLineBreak() || in.HardLineBreak() {
				s += " "
			}
			addStyledRun(p, s, bold, size)
		case *ast.String:
			addStyledRun(p, string(in.Value), bold, size)
		case *ast.Emphasis:
			writeInline(p, in, src, bold || in.Level >= 2, size)
		case *ast.AutoLink:
			addStyledRun(p, string(in.URL(src)), bold, size)
		default:
			writeInline(p, c, src, bold, size)
		}
	}
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 15
	case 3:
		return 14
	default:
		return fontSize
	}
}

func addStyledRun(p *docx.Paragraph, s string, bold bool, size uint64) {
	if s == "" {
		return
	}
	run := p.AddText(s).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
