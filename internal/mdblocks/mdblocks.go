// Package mdblocks extracts fenced code blocks from Markdown documents.
package mdblocks

import (
	"bytes"
	"context"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Block is one fenced code block.
type Block struct {
	Index    int    // 1-based position among the extracted blocks
	Language string // first word of the info string, empty when absent
	Code     string
	Line     int // 1-based source line of the first code line
}

// Extractor parses Markdown with goldmark and collects fenced code blocks.
type Extractor struct {
	md goldmark.Markdown
}

// NewExtractor creates an Extractor with GFM extensions enabled so blocks
// nested in GFM constructs are found.
func NewExtractor() *Extractor {
	return &Extractor{md: goldmark.New(goldmark.WithExtensions(extension.GFM))}
}

// Extract returns the non-empty fenced code blocks of src in document order.
// Goldmark has no context support, so the parse runs in a goroutine and the
// call returns early when ctx is done.
func (e *Extractor) Extract(ctx context.Context, src []byte) ([]Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := make(chan []Block, 1)
	go func() {
		done <- e.extract(src)
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case blocks := <-done:
		return blocks, nil
	}
}

func (e *Extractor) extract(src []byte) []Block {
	doc := e.md.Parser().Parse(text.NewReader(src))

	var blocks []Block
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fenced, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		lines := fenced.Lines()
		if lines.Len() == 0 {
			return ast.WalkSkipChildren, nil
		}

		var code strings.Builder
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			code.Write(seg.Value(src))
		}

		blocks = append(blocks, Block{
			Index:    len(blocks) + 1,
			Language: string(fenced.Language(src)),
			Code:     code.String(),
			Line:     bytes.Count(src[:lines.At(0).Start], []byte("\n")) + 1,
		})
		return ast.WalkSkipChildren, nil
	})
	return blocks
}

// Extract parses src with a default Extractor.
func Extract(ctx context.Context, src []byte) ([]Block, error) {
	return NewExtractor().Extract(ctx, src)
}
