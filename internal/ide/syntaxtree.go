package ide

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wgsl-analyzer/wgsl-analyzer/internal/span"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/syntax"
)

// DumpSyntaxTree renders root as a line/column-annotated JSON tree, so an
// editor panel can show the raw parse result without pulling in the whole
// query database.
func DumpSyntaxTree(text string, root *syntax.SyntaxNode) string {
	li := span.NewLineIndex(text)
	var b strings.Builder
	dumpNode(&b, li, root)
	return b.String()
}

func dumpNode(b *strings.Builder, li *span.LineIndex, n *syntax.SyntaxNode) {
	start := li.LineCol(n.Range.Start)
	end := li.LineCol(n.Range.End)
	if n.IsToken() {
		fmt.Fprintf(b, `{"type":"Token","kind":%s,"start":%s,"end":%s}`,
			jsonKind(n.Kind), jsonPos(n.Range.Start, start), jsonPos(n.Range.End, end))
		return
	}
	fmt.Fprintf(b, `{"type":"Node","kind":%s,"start":%s,"end":%s,"children":[`,
		jsonKind(n.Kind), jsonPos(n.Range.Start, start), jsonPos(n.Range.End, end))
	for i, c := range n.Children {
		if i > 0 {
			b.WriteByte(',')
		}
		dumpNode(b, li, c)
	}
	b.WriteString("]}")
}

func jsonKind(k syntax.SyntaxKind) string {
	return strconv.Quote(k.String())
}

func jsonPos(offset span.Offset, lc span.LineCol) string {
	return fmt.Sprintf("[%d,%d,%d]", offset, lc.Line, lc.Column)
}
