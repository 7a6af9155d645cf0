package render

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	gofpdf "github.com/lvillar/gofpdf"
)

// Renderer turns document payloads into PDF bytes. It is safe for
// concurrent use; the only shared state is the injected asset cache.
type Renderer struct {
	assets *AssetCache
}

// NewRenderer wires a renderer onto the process-owned asset cache. A nil
// cache gets a private one.
func NewRenderer(cache *AssetCache) *Renderer {
	if cache == nil {
		cache = NewAssetCache()
	}
	return &Renderer{assets: cache}
}

// job carries the state of a single render: the document backbone, the
// resolved theme, and the layout constants already multiplied by the
// requested scale.
type job struct {
	pdf    *gofpdf.Fpdf
	cv     *canvas
	theme  Theme
	doc    *Document
	brand  *Brand
	opts   Options
	assets *AssetCache

	s        float64 // scale factor, applied to every size constant
	margin   float64
	contentW float64
	font     string
}

// Render produces the paginated document for one payload. Asset and
// numeric problems degrade locally (placeholders, zero coercion,
// pagination); only a failure to construct or serialize the document
// backbone is returned as an error.
func (r *Renderer) Render(doc Document, brand Brand, opts Options) ([]byte, error) {
	s := opts.scale()

	pdf := gofpdf.New("P", "pt", "A4", "")
	if pdf == nil {
		return nil, errors.New("render: could not create document backbone")
	}

	pageW, pageH := pdf.GetPageSize()
	margin := 40 * s
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(strings.TrimSpace(doc.Kind.Title()+" "+doc.Number), true)

	family := "Helvetica"
	if brand.FontSrc != "" {
		if data := r.assets.Bytes(brand.FontSrc); looksLikeTTF(data) {
			pdf.AddUTF8FontFromBytes("brandfont", "", data)
			pdf.AddUTF8FontFromBytes("brandfont", "B", data)
			family = "brandfont"
		}
	}

	j := &job{
		pdf:      pdf,
		cv:       &canvas{pdf: pdf, pageH: pageH, margin: margin},
		theme:    ResolveTheme(brand.PrimaryColor, brand.SecondaryColor, brand.Template),
		doc:      &doc,
		brand:    &brand,
		opts:     opts,
		assets:   r.assets,
		s:        s,
		margin:   margin,
		contentW: pageW - 2*margin,
		font:     family,
	}

	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		j.setFont("", 7*s)
		j.setText(j.theme.Muted)
		txt := fmt.Sprintf("%s  -  Page %d of {nb}", doc.Number, pdf.PageNo())
		pdf.Text((pageW-pdf.GetStringWidth(txt))/2, pageH-margin/2, txt)
	})

	pdf.AddPage()
	pdf.SetY(margin)

	j.drawHeader()
	j.drawParties()
	j.drawNarrative()
	j.drawItemTable()

	bd := ComputeTotals(doc.Items, doc.Adjustments)

	// A totals card or signature box squeezed against the bottom margin
	// is technically drawable but visually cramped; force a fresh page
	// below this headroom.
	headroom := 150 * s
	if j.cv.remaining() < headroom {
		j.cv.breakPage()
	}
	j.drawSummary(bd)

	if opts.ShowSignature {
		if j.cv.remaining() < headroom {
			j.cv.breakPage()
		}
		j.drawSignatureRow(j.signatureSlots())
	}

	if pdf.Err() {
		return nil, fmt.Errorf("render: %w", pdf.Error())
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// drawHeader paints brand identity on the left and the document title,
// number, dates, and status on the right, closed by a rule line.
func (j *job) drawHeader() {
	top := j.cv.y()
	x := j.margin
	if j.brand.LogoSrc != "" {
		j.drawImage(j.brand.LogoSrc, x, top, 90*j.s, 36*j.s, true)
		x += 100 * j.s
	}

	identW := j.contentW*0.52 - (x - j.margin)
	y := top + 11*j.s
	if j.brand.ShowName && j.brand.Name != "" {
		j.setFont("B", 12.5*j.s)
		j.setText(j.theme.Header)
		j.pdf.Text(x, y, j.brand.Name)
		y += 14 * j.s
	}
	j.setFont("", 7.5*j.s)
	j.setText(j.theme.Muted)
	if j.brand.ShowAddress && j.brand.Address != "" {
		for _, ln := range capLines(wrapText(j.pdf, j.brand.Address, identW), 2) {
			j.pdf.Text(x, y, ln)
			y += 9 * j.s
		}
	}
	contact := make([]string, 0, 3)
	if j.brand.ShowEmail && j.brand.Email != "" {
		contact = append(contact, j.brand.Email)
	}
	if j.brand.Phone != "" {
		contact = append(contact, j.brand.Phone)
	}
	if j.brand.ShowWebsite && j.brand.Website != "" {
		contact = append(contact, j.brand.Website)
	}
	for _, ln := range contact {
		j.pdf.Text(x, y, ln)
		y += 9 * j.s
	}

	// Right block, all right-aligned against the content edge.
	right := j.margin + j.contentW
	ry := top + 16*j.s
	title := j.doc.Kind.Title()
	j.setFont("B", 17*j.s)
	j.setText(j.theme.Accent)
	j.pdf.Text(right-j.pdf.GetStringWidth(title), ry, title)
	ry += 15 * j.s

	if j.doc.Number != "" {
		j.setFont("", 9*j.s)
		j.setText(j.theme.Header)
		j.pdf.Text(right-j.pdf.GetStringWidth(j.doc.Number), ry, j.doc.Number)
		ry += 11 * j.s
	}

	j.setFont("", 8*j.s)
	j.setText(j.theme.Muted)
	if !j.doc.IssueDate.IsZero() {
		ln := "Issue Date: " + formatDate(j.doc.IssueDate)
		j.pdf.Text(right-j.pdf.GetStringWidth(ln), ry, ln)
		ry += 10 * j.s
	}
	if !j.doc.DueDate.IsZero() {
		label := "Due Date: "
		if j.doc.Kind == KindQuotation {
			label = "Valid Until: "
		}
		ln := label + formatDate(j.doc.DueDate)
		j.pdf.Text(right-j.pdf.GetStringWidth(ln), ry, ln)
		ry += 10 * j.s
	}
	if j.doc.Status != "" {
		st := strings.ToUpper(j.doc.Status)
		j.setFont("B", 8*j.s)
		j.setText(j.theme.Accent)
		j.pdf.Text(right-j.pdf.GetStringWidth(st), ry, st)
		ry += 10 * j.s
	}

	bottom := math.Max(math.Max(y, ry), top+40*j.s)
	j.setDraw(j.theme.Primary)
	j.pdf.SetLineWidth(1.2 * j.s)
	j.pdf.Line(j.margin, bottom+6*j.s, j.margin+j.contentW, bottom+6*j.s)
	j.cv.setY(bottom + 18*j.s)
}

// drawParties renders issuer and counter-party side by side.
func (j *job) drawParties() {
	colW := (j.contentW - 16*j.s) / 2

	billLabel := "Bill To"
	switch j.doc.Kind {
	case KindQuotation:
		billLabel = "Prepared For"
	case KindReceipt:
		billLabel = "Received From"
	}

	// Measure both columns before committing the block.
	j.setFont("", 8*j.s)
	leftAddr := j.partyAddress(j.doc.Issuer, colW)
	rightAddr := j.partyAddress(j.doc.Customer, colW)
	leftH := j.partyHeight(j.doc.Issuer, leftAddr)
	rightH := j.partyHeight(j.doc.Customer, rightAddr)
	blockH := math.Max(leftH, rightH)
	j.cv.ensure(blockH + 14*j.s)

	top := j.cv.y()
	j.drawParty(j.margin, top, "From", j.doc.Issuer, leftAddr)
	j.drawParty(j.margin+colW+16*j.s, top, billLabel, j.doc.Customer, rightAddr)
	j.cv.setY(top + blockH + 14*j.s)
}

func (j *job) partyAddress(p Party, colW float64) []string {
	var lines []string
	for _, raw := range p.Address {
		lines = append(lines, wrapText(j.pdf, raw, colW)...)
	}
	return capLines(lines, 3)
}

func (j *job) partyHeight(p Party, addr []string) float64 {
	return 12*j.s + 12*j.s + float64(len(p.Contact)+len(addr))*10*j.s
}

func (j *job) drawParty(x, top float64, label string, p Party, addr []string) {
	j.setFont("B", 7.5*j.s)
	j.setText(j.theme.Muted)
	j.pdf.Text(x, top+8*j.s, strings.ToUpper(label))

	j.setFont("B", 10*j.s)
	j.setText(j.theme.Header)
	j.pdf.Text(x, top+20*j.s, p.Name)

	j.setFont("", 8*j.s)
	j.setText(j.theme.Secondary)
	y := top + 31*j.s
	for _, ln := range p.Contact {
		j.pdf.Text(x, y, ln)
		y += 10 * j.s
	}
	j.setText(j.theme.Muted)
	for _, ln := range addr {
		j.pdf.Text(x, y, ln)
		y += 10 * j.s
	}
}

// drawNarrative renders the optional free-text section between the
// parties and the item table.
func (j *job) drawNarrative() {
	if !j.opts.ShowProjectDescription || j.doc.Narrative == "" {
		return
	}
	j.setFont("", 8.5*j.s)
	lines := capLines(wrapText(j.pdf, j.doc.Narrative, j.contentW), 8)
	blockH := 14*j.s + float64(len(lines))*11*j.s
	j.cv.ensure(blockH + 10*j.s)

	j.sectionLabel("Project Description")
	j.setFont("", 8.5*j.s)
	j.setText(j.theme.Secondary)
	y := j.cv.y() + 9*j.s
	for _, ln := range lines {
		j.pdf.Text(j.margin, y, ln)
		y += 11 * j.s
	}
	j.cv.setY(y + 4*j.s)
}

// sectionLabel prints a small uppercase section heading and advances.
func (j *job) sectionLabel(label string) {
	j.setFont("B", 8.5*j.s)
	j.setText(j.theme.Accent)
	j.pdf.Text(j.margin, j.cv.y()+9*j.s, strings.ToUpper(label))
	j.cv.setY(j.cv.y() + 14*j.s)
}

// ---- shared drawing state helpers

func (j *job) setFont(style string, size float64) {
	j.pdf.SetFont(j.font, style, size)
}

func (j *job) setText(c RGB) {
	j.pdf.SetTextColor(c.R, c.G, c.B)
}

func (j *job) setFill(c RGB) {
	j.pdf.SetFillColor(c.R, c.G, c.B)
}

func (j *job) setDraw(c RGB) {
	j.pdf.SetDrawColor(c.R, c.G, c.B)
}

// cellText positions text inside a cell of width w per the column
// alignment. y is the text baseline.
func (j *job) cellText(x, w, y float64, text, align string) {
	pad := 4 * j.s
	switch align {
	case "R":
		j.pdf.Text(x+w-pad-j.pdf.GetStringWidth(text), y, text)
	case "C":
		j.pdf.Text(x+(w-j.pdf.GetStringWidth(text))/2, y, text)
	default:
		j.pdf.Text(x+pad, y, text)
	}
}

// drawImage embeds the asset fit-scaled and centered inside the given
// bounding box. Assets are only shrunk, never upscaled. A source that
// cannot be loaded draws a bordered placeholder of the full box size
// when placeholder is true.
func (j *job) drawImage(src string, x, y, maxW, maxH float64, placeholder bool) {
	a := j.assets.Image(src)
	if a == nil {
		if placeholder {
			j.drawPlaceholder(x, y, maxW, maxH)
		}
		return
	}

	if j.pdf.GetImageInfo(src) == nil {
		j.pdf.RegisterImageOptionsReader(src, gofpdf.ImageOptions{ImageType: a.Format}, bytes.NewReader(a.Data))
	}
	scale := FitScale(float64(a.Width), float64(a.Height), maxW, maxH)
	w := float64(a.Width) * scale
	h := float64(a.Height) * scale
	j.pdf.ImageOptions(src, x+(maxW-w)/2, y+(maxH-h)/2, w, h, false, gofpdf.ImageOptions{ImageType: a.Format}, 0, "")
}

// drawPlaceholder marks a missing asset with a bordered box of the
// caller-specified dimensions so the layout around it stays stable.
func (j *job) drawPlaceholder(x, y, w, h float64) {
	j.setDraw(j.theme.Border)
	j.pdf.SetLineWidth(0.5 * j.s)
	j.pdf.Rect(x, y, w, h, "D")

	label := "no image"
	j.setFont("", 6*j.s)
	j.setText(j.theme.Muted)
	if j.pdf.GetStringWidth(label) < w {
		j.pdf.Text(x+(w-j.pdf.GetStringWidth(label))/2, y+h/2+2*j.s, label)
	}
}

// money renders an amount with the brand currency prefix.
func (j *job) money(v float64) string {
	if j.brand.Currency == "" {
		return formatMoney(v)
	}
	return j.brand.Currency + " " + formatMoney(v)
}

// formatMoney prints v with thousands separators and two decimals.
func formatMoney(v float64) string {
	v = Num(v)
	neg := v < 0
	s := strconv.FormatFloat(math.Abs(v), 'f', 2, 64)

	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	var b strings.Builder
	for i, ch := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(ch)
	}
	out := b.String() + frac
	if neg {
		return "-" + out
	}
	return out
}

func formatDate(t time.Time) string {
	return t.Format("02 Jan 2006")
}

// looksLikeTTF sanity-checks a font payload before handing it to the PDF
// backend, which treats a bad font as a document-level failure rather
// than a degradable asset.
func looksLikeTTF(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	switch string(data[:4]) {
	case "\x00\x01\x00\x00", "true", "OTTO", "ttcf":
		return true
	}
	return false
}
