package render

import "strconv"

// column describes one table column: a stable key, the printed label, a
// width ratio in (0,1], and the horizontal alignment of its cells.
// Ratios across a column set must sum to 1.0; resolveWidths gives any
// rounding remainder to the last column so the pixel sum is exact.
type column struct {
	key   string
	label string
	ratio float64
	align string // "L", "C", "R"
}

func resolveWidths(cols []column, contentW float64) []float64 {
	widths := make([]float64, len(cols))
	if len(cols) == 0 {
		return widths
	}
	var used float64
	for i, col := range cols[:len(cols)-1] {
		widths[i] = contentW * col.ratio
		used += widths[i]
	}
	widths[len(cols)-1] = contentW - used
	return widths
}

func (j *job) itemColumns() []column {
	return []column{
		{key: "no", label: "No", ratio: 0.06, align: "C"},
		{key: "item", label: "Item", ratio: 0.40, align: "L"},
		{key: "qty", label: "Qty", ratio: 0.10, align: "C"},
		{key: "unit", label: "Unit", ratio: 0.08, align: "C"},
		{key: "price", label: "Price", ratio: 0.16, align: "R"},
		{key: "amount", label: "Amount", ratio: 0.20, align: "R"},
	}
}

// drawTableHeader paints the column header row at the current cursor and
// advances past it. Called once at table start and again after every
// page break inside the table.
func (j *job) drawTableHeader(cols []column, widths []float64) {
	headerH := 20 * j.s
	y := j.cv.y()

	j.setFill(j.theme.TableHeaderBg)
	j.pdf.Rect(j.margin, y, j.contentW, headerH, "F")

	j.setFont("B", 8*j.s)
	j.setText(j.theme.Header)
	x := j.margin
	for i, col := range cols {
		j.cellText(x, widths[i], y+headerH/2+3*j.s, col.label, col.align)
		x += widths[i]
	}

	j.cv.setY(y + headerH + 4*j.s)
}

// drawItemTable renders the line item list with dynamic row heights,
// zebra striping, and header repetition across page breaks. Returns the
// running total accumulated from the rows; the cursor ends just below
// the table with a trailing gap.
func (j *job) drawItemTable() float64 {
	cols := j.itemColumns()
	widths := resolveWidths(cols, j.contentW)

	j.sectionLabel("Items")
	j.drawTableHeader(cols, widths)

	var (
		lineH   = 11 * j.s
		descH   = 10 * j.s
		padV    = 6 * j.s
		padH    = 4 * j.s
		minRowH = 24 * j.s
		thumb   = 26 * j.s
	)

	itemW := widths[1]
	textX := padH
	if j.opts.ShowImage {
		textX += thumb + padH
	}

	var total float64
	for i, it := range j.doc.Items {
		j.setFont("", 9*j.s)
		nameLines := capLines(wrapText(j.pdf, it.Name, itemW-textX-padH), 2)

		var descLines []string
		if j.opts.ShowDescription && it.Description != "" {
			j.setFont("", 7.5*j.s)
			descLines = capLines(wrapText(j.pdf, it.Description, itemW-textX-padH), 3)
		}

		textH := float64(len(nameLines))*lineH + float64(len(descLines))*descH
		rowH := textH + 2*padV
		if rowH < minRowH {
			rowH = minRowH
		}

		hasImage := j.opts.ShowImage && it.ImageSrc != ""
		if hasImage {
			imgH := thumb
			if a := j.assets.Image(it.ImageSrc); a != nil {
				imgH = float64(a.Height) * FitScale(float64(a.Width), float64(a.Height), thumb, thumb)
			}
			if imgH+2*padV > rowH {
				rowH = imgH + 2*padV
			}
		}

		if j.cv.ensure(rowH) {
			j.drawTableHeader(cols, widths)
		}
		top := j.cv.y()

		if i%2 == 0 {
			j.setFill(j.theme.ZebraBg)
			j.pdf.Rect(j.margin, top, j.contentW, rowH, "F")
		}

		x := j.margin
		baseline := top + padV + 8*j.s

		j.setFont("", 9*j.s)
		j.setText(j.theme.Secondary)
		j.cellText(x, widths[0], baseline, strconv.Itoa(i+1), cols[0].align)
		x += widths[0]

		// Item cell: optional thumbnail, then name and wrapped description.
		if hasImage {
			j.drawImage(it.ImageSrc, x+padH, top+padV, thumb, thumb, true)
		}
		ty := baseline
		j.setText(j.theme.Header)
		for _, ln := range nameLines {
			j.pdf.Text(x+textX, ty, ln)
			ty += lineH
		}
		if len(descLines) > 0 {
			j.setFont("", 7.5*j.s)
			j.setText(j.theme.Muted)
			for _, ln := range descLines {
				j.pdf.Text(x+textX, ty, ln)
				ty += descH
			}
		}
		x += widths[1]

		j.setFont("", 9*j.s)
		j.setText(j.theme.Secondary)
		j.cellText(x, widths[2], baseline, formatQty(it.Quantity), cols[2].align)
		x += widths[2]
		j.cellText(x, widths[3], baseline, it.Unit, cols[3].align)
		x += widths[3]
		j.cellText(x, widths[4], baseline, j.money(Num(it.UnitPrice)), cols[4].align)
		x += widths[4]

		// Amount column always in the emphasis font.
		amount := it.Amount()
		j.setFont("B", 9*j.s)
		j.setText(j.theme.Header)
		j.cellText(x, widths[5], baseline, j.money(amount), cols[5].align)

		j.setDraw(j.theme.Border)
		j.pdf.SetLineWidth(0.4 * j.s)
		j.pdf.Line(j.margin, top+rowH, j.margin+j.contentW, top+rowH)

		j.cv.setY(top + rowH)
		total += amount
	}

	j.cv.setY(j.cv.y() + 10*j.s)
	return Round2(total)
}

// formatQty prints a quantity without trailing zeros; malformed input
// collapses to "0" like every other numeric field.
func formatQty(q float64) string {
	return strconv.FormatFloat(Num(q), 'f', -1, 64)
}
