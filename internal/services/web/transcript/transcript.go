// Package transcript renders assistant chat messages. Messages are markdown;
// fenced blocks whose info string matches the structured tag grammar are
// replaced by the dispatched entity component or an inline error.
package transcript

import (
	"bytes"
	"context"
	"log/slog"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
	"golang.org/x/sync/errgroup"

	"github.com/louisbranch/tabletop/internal/platform/logging"
	"github.com/louisbranch/tabletop/internal/services/shared/structured"
	"github.com/louisbranch/tabletop/internal/services/web/templates"
)

// renderedAttr carries pre-rendered block HTML from the dispatch pass to the
// render pass on the node itself.
var renderedAttr = []byte("tabletop-structured-html")

// Dispatcher resolves one structured block.
type Dispatcher interface {
	Dispatch(ctx context.Context, tag string, payload string) (structured.Result, error)
}

// Renderer turns message markdown into an HTML fragment.
type Renderer struct {
	md         goldmark.Markdown
	dispatcher Dispatcher
	logger     *slog.Logger
}

// New builds a Renderer. A nil dispatcher leaves structured blocks as plain
// code.
func New(dispatcher Dispatcher, logger *slog.Logger) *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			renderer.WithNodeRenderers(util.Prioritized(blockRenderer{}, 100)),
		),
	)
	return &Renderer{md: md, dispatcher: dispatcher, logger: logging.OrDiscard(logger)}
}

type pendingBlock struct {
	node    *ast.FencedCodeBlock
	tag     string
	payload string
	html    []byte
}

// Render renders content. Block failures are rendered inline and never fail
// the message.
func (r *Renderer) Render(ctx context.Context, content string, loc templates.Localizer) (string, error) {
	source := []byte(content)
	document := r.md.Parser().Parse(text.NewReader(source))

	blocks := collectBlocks(document, source)
	if len(blocks) > 0 && r.dispatcher != nil {
		g, gctx := errgroup.WithContext(ctx)
		for _, block := range blocks {
			g.Go(func() error {
				block.html = r.renderBlock(gctx, block, loc)
				return nil
			})
		}
		_ = g.Wait()
		for _, block := range blocks {
			if block.html != nil {
				block.node.SetAttribute(renderedAttr, block.html)
			}
		}
	}

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, source, document); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *Renderer) renderBlock(ctx context.Context, block *pendingBlock, loc templates.Localizer) []byte {
	result, err := r.dispatcher.Dispatch(ctx, block.tag, block.payload)
	component := templates.StructuredBlock(result, loc)
	if err != nil {
		component = templates.StructuredError(err, loc)
	} else if !result.Applicable() {
		return nil
	}
	var buf bytes.Buffer
	if renderErr := component.Render(ctx, &buf); renderErr != nil {
		r.logger.WarnContext(ctx, "render structured block", "tag", block.tag, "error", renderErr)
		return nil
	}
	return buf.Bytes()
}

func collectBlocks(document ast.Node, source []byte) []*pendingBlock {
	var blocks []*pendingBlock
	_ = ast.Walk(document, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fenced, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		tag := string(fenced.Language(source))
		if _, ok := structured.ParseTag(tag); !ok {
			return ast.WalkSkipChildren, nil
		}
		blocks = append(blocks, &pendingBlock{node: fenced, tag: tag, payload: blockText(fenced, source)})
		return ast.WalkSkipChildren, nil
	})
	return blocks
}

func blockText(n *ast.FencedCodeBlock, source []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		b.Write(segment.Value(source))
	}
	return b.String()
}

// blockRenderer overrides fenced code rendering to emit pre-rendered blocks.
type blockRenderer struct{}

func (blockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, renderFencedBlock)
}

func renderFencedBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	if value, ok := node.Attribute(renderedAttr); ok {
		if rendered, ok := value.([]byte); ok {
			_, _ = w.Write(rendered)
			_ = w.WriteByte('\n')
			return ast.WalkSkipChildren, nil
		}
	}
	fenced := node.(*ast.FencedCodeBlock)
	_, _ = w.WriteString("<pre><code")
	if language := fenced.Language(source); language != nil {
		_, _ = w.WriteString(` class="language-`)
		_, _ = w.Write(util.EscapeHTML(language))
		_, _ = w.WriteString(`"`)
	}
	_ = w.WriteByte('>')
	lines := fenced.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		_, _ = w.Write(util.EscapeHTML(segment.Value(source)))
	}
	_, _ = w.WriteString("</code></pre>\n")
	return ast.WalkSkipChildren, nil
}
