package scene

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

// SVG returns the scene encoded as a standalone SVG document.
func (s Scene) SVG() string {
	var buf bytes.Buffer
	_ = EncodeSVG(&buf, s)
	return buf.String()
}

// EncodeSVG writes s as a standalone SVG document.
func EncodeSVG(w io.Writer, s Scene) error {
	bw := bufio.NewWriter(w)
	vb := s.ViewBox
	if vb == ([4]float64{}) {
		vb = DefaultViewBox
	}

	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s"`,
		num(vb[0]), num(vb[1]), num(vb[2]), num(vb[3]))
	if s.Formation != "" {
		writeAttr(bw, "data-formation", s.Formation)
	}
	bw.WriteString(">\n")

	if len(s.Filters) > 0 {
		bw.WriteString("  <defs>\n")
		for _, f := range s.Filters {
			bw.WriteString(`    <filter`)
			writeAttr(bw, "id", f.ID)
			bw.WriteString(` x="-50%" y="-50%" width="200%" height="200%">` + "\n")
			fmt.Fprintf(bw, `      <feGaussianBlur stdDeviation="%s" result="coloredBlur"/>`+"\n", num(f.StdDeviation))
			bw.WriteString(`      <feMerge><feMergeNode in="coloredBlur"/><feMergeNode in="SourceGraphic"/></feMerge>` + "\n")
			bw.WriteString("    </filter>\n")
		}
		bw.WriteString("  </defs>\n")
	}

	writeNode(bw, s.Root, 1)
	bw.WriteString("</svg>\n")
	return bw.Flush()
}

func writeNode(w *bufio.Writer, n Node, depth int) {
	indent := strings.Repeat("  ", depth)
	kind := n.Kind
	if kind == "" {
		kind = KindGroup
	}

	w.WriteString(indent + "<" + string(kind))
	switch kind {
	case KindCircle:
		writeNum(w, "cx", n.CX)
		writeNum(w, "cy", n.CY)
		writeNum(w, "r", n.R)
	case KindLine:
		writeNum(w, "x1", n.X1)
		writeNum(w, "y1", n.Y1)
		writeNum(w, "x2", n.X2)
		writeNum(w, "y2", n.Y2)
	case KindPath:
		writeAttr(w, "d", n.D)
	}
	if n.Transform != "" {
		writeAttr(w, "transform", n.Transform)
	}
	writeStyle(w, n.Style)

	if len(n.Animations) == 0 && len(n.Children) == 0 {
		w.WriteString("/>\n")
		return
	}
	w.WriteString(">\n")
	for _, a := range n.Animations {
		writeAnimation(w, a, depth+1)
	}
	for _, c := range n.Children {
		writeNode(w, c, depth+1)
	}
	w.WriteString(indent + "</" + string(kind) + ">\n")
}

func writeStyle(w *bufio.Writer, s Style) {
	if s.Fill != "" {
		writeAttr(w, "fill", s.Fill)
	}
	if s.Stroke != "" {
		writeAttr(w, "stroke", s.Stroke)
	}
	if s.StrokeWidth != 0 {
		writeNum(w, "stroke-width", s.StrokeWidth)
	}
	if s.StrokeOpacity != 0 {
		writeNum(w, "stroke-opacity", s.StrokeOpacity)
	}
	if s.DashArray != "" {
		writeAttr(w, "stroke-dasharray", s.DashArray)
	}
	if s.LineCap != "" {
		writeAttr(w, "stroke-linecap", s.LineCap)
	}
	if s.LineJoin != "" {
		writeAttr(w, "stroke-linejoin", s.LineJoin)
	}
	if s.Opacity != 0 {
		writeNum(w, "opacity", s.Opacity)
	}
	if s.Filter != "" {
		writeAttr(w, "filter", "url(#"+s.Filter+")")
	}
}

func writeAnimation(w *bufio.Writer, a Animation, depth int) {
	w.WriteString(strings.Repeat("  ", depth) + "<" + string(a.Kind))
	if a.Attribute != "" {
		writeAttr(w, "attributeName", a.Attribute)
	}
	if a.TransformType != "" {
		writeAttr(w, "type", a.TransformType)
	}
	if a.MotionPath != "" {
		writeAttr(w, "path", a.MotionPath)
	}
	if len(a.Values) > 0 {
		writeAttr(w, "values", strings.Join(a.Values, ";"))
	}
	if a.From != "" {
		writeAttr(w, "from", a.From)
	}
	if a.To != "" {
		writeAttr(w, "to", a.To)
	}
	writeAttr(w, "dur", seconds(a.Dur))
	if a.Begin > 0 {
		writeAttr(w, "begin", seconds(a.Begin))
	}
	if a.Additive != "" {
		writeAttr(w, "additive", a.Additive)
	}
	if a.Forever {
		writeAttr(w, "repeatCount", "indefinite")
	}
	w.WriteString("/>\n")
}

func writeAttr(w *bufio.Writer, name, value string) {
	w.WriteString(" " + name + `="`)
	_ = xml.EscapeText(w, []byte(value))
	w.WriteString(`"`)
}

func writeNum(w *bufio.Writer, name string, v float64) {
	writeAttr(w, name, num(v))
}

func num(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func seconds(d time.Duration) string {
	return num(d.Seconds()) + "s"
}
