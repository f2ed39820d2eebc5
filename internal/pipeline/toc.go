package pipeline

import "strings"

// MaxHeadingLevel is the deepest heading level recognized.
const MaxHeadingLevel = 9

// tocFrame is one open <ul>; itemOpen is set while its last <li> is open.
type tocFrame struct {
	itemOpen bool
}

type tocWriter struct {
	b      strings.Builder
	frames []tocFrame
}

func (w *tocWriter) open() {
	if n := len(w.frames); n > 0 && w.frames[n-1].itemOpen {
		w.b.WriteString("\n")
	}
	w.b.WriteString("<ul>\n")
	w.frames = append(w.frames, tocFrame{})
}

func (w *tocWriter) closeItem() {
	top := &w.frames[len(w.frames)-1]
	if top.itemOpen {
		w.b.WriteString("</li>\n")
		top.itemOpen = false
	}
}

func (w *tocWriter) closeList() {
	w.closeItem()
	w.b.WriteString("</ul>\n")
	w.frames = w.frames[:len(w.frames)-1]
}

// bridge opens an empty item so a list skipping a level still sits
// inside an <li>.
func (w *tocWriter) bridge() {
	w.b.WriteString("<li>")
	w.frames[len(w.frames)-1].itemOpen = true
}

func (w *tocWriter) item(h Heading) {
	w.b.WriteString(`<li><a href="#` + h.ID + `">` + h.Text + "</a>")
	w.frames[len(w.frames)-1].itemOpen = true
}

// BuildTOC renders the headings of an anchor-processed fragment as nested
// lists. Only levels 1..maxLevel are included; a maxLevel outside 1..9
// means every level. Each step down in level opens a list inside the
// current item, each step up closes one; the first heading opens one list
// per level, so an opening h3 sits three lists deep. A skipped level gets
// an empty <li> around the nested list. A fragment without headings
// yields "".
func BuildTOC(htmlContent string, maxLevel int) string {
	if maxLevel < 1 || maxLevel > MaxHeadingLevel {
		maxLevel = MaxHeadingLevel
	}

	var (
		w    tocWriter
		prev int
	)
	for _, h := range ExtractHeadings(htmlContent) {
		if h.Level > maxLevel {
			continue
		}
		switch {
		case h.Level > prev:
			for i := range h.Level - prev {
				if i > 0 {
					w.bridge()
				}
				w.open()
			}
		case h.Level < prev:
			for range prev - h.Level {
				w.closeList()
			}
			w.closeItem()
		default:
			w.closeItem()
		}
		w.item(h)
		prev = h.Level
	}

	for len(w.frames) > 0 {
		w.closeList()
	}
	return w.b.String()
}
