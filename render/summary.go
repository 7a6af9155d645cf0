package render

// adjustmentLine is one label/value pair in the stack above the totals
// card. Negative values render with a leading "- ".
type adjustmentLine struct {
	label string
	value float64
}

func (j *job) adjustmentLines(bd Breakdown) []adjustmentLine {
	lines := []adjustmentLine{{"Subtotal", bd.Subtotal}}
	if bd.Discount != 0 {
		lines = append(lines, adjustmentLine{"Discount", -bd.Discount})
	}
	if bd.ExtraDiscount != 0 {
		lines = append(lines, adjustmentLine{"Extra Discount", -bd.ExtraDiscount})
	}
	if bd.Shipping != 0 {
		lines = append(lines, adjustmentLine{"Shipping", bd.Shipping})
	}
	if bd.Tax != 0 {
		label := "Tax"
		if bd.TaxInclusive {
			label = "Tax (included)"
		}
		lines = append(lines, adjustmentLine{label, bd.Tax})
	}
	if bd.DownPayment != 0 {
		lines = append(lines, adjustmentLine{"Down Payment", -bd.DownPayment})
	}
	return lines
}

// summaryBlock is one left-region text block: a label plus wrapped lines
// bounded by a per-block cap.
type summaryBlock struct {
	label string
	lines []string
	fill  bool // paint the notes background behind the block
}

func (j *job) summaryBlocks(leftW float64) []summaryBlock {
	j.setFont("", 8*j.s)

	var blocks []summaryBlock
	if j.doc.Notes != "" {
		blocks = append(blocks, summaryBlock{
			label: "Notes",
			lines: capLines(wrapText(j.pdf, j.doc.Notes, leftW-8*j.s), 6),
			fill:  true,
		})
	}
	if len(j.brand.PaymentLines) > 0 {
		var lines []string
		for _, raw := range j.brand.PaymentLines {
			lines = append(lines, wrapText(j.pdf, raw, leftW-8*j.s)...)
		}
		blocks = append(blocks, summaryBlock{label: "Payment Info", lines: capLines(lines, 6)})
	}
	if len(j.brand.TermsLines) > 0 {
		var lines []string
		for _, raw := range j.brand.TermsLines {
			lines = append(lines, wrapText(j.pdf, raw, leftW-8*j.s)...)
		}
		blocks = append(blocks, summaryBlock{label: "Terms & Conditions", lines: capLines(lines, 8)})
	}
	return blocks
}

// drawSummary lays out the two-region totals panel: a narrow right
// column with the itemized adjustments and the totals card, and a wide
// left column with notes, payment info, and terms. Both regions hang off
// the same start anchor and grow independently; the cursor ends below
// whichever grew taller, plus a trailing gap.
func (j *job) drawSummary(bd Breakdown) {
	var (
		lineH  = 12 * j.s
		cardH  = 64 * j.s
		gap    = 10 * j.s
		rightW = j.contentW * 0.32
		leftW  = j.contentW - rightW - 14*j.s
		rightX = j.margin + j.contentW - rightW
	)

	adj := j.adjustmentLines(bd)
	blocks := j.summaryBlocks(leftW)

	// The whole panel is committed as one atomic block; both regions are
	// bounded by their line caps, so this height always fits one page.
	rightH := float64(len(adj))*lineH + 6*j.s + cardH
	leftH := 0.0
	for _, b := range blocks {
		leftH += 13*j.s + float64(len(b.lines))*10*j.s + 8*j.s
	}
	need := rightH
	if leftH > need {
		need = leftH
	}
	j.cv.ensure(need + gap)

	startY := j.cv.y()

	// Right region: adjustment stack, then the card.
	y := startY + 9*j.s
	for _, a := range adj {
		j.setFont("", 8.5*j.s)
		j.setText(j.theme.Muted)
		j.pdf.Text(rightX, y, a.label)

		v := a.value
		text := j.money(v)
		if v < 0 {
			text = "- " + j.money(-v)
		}
		j.setFont("", 8.5*j.s)
		j.setText(j.theme.Header)
		j.pdf.Text(rightX+rightW-j.pdf.GetStringWidth(text), y, text)
		y += lineH
	}
	y += 6 * j.s

	j.drawTotalsCard(rightX, y-9*j.s, rightW, cardH, bd.TotalDue)
	rightEnd := y - 9*j.s + cardH

	// Left region: independently flowing text blocks.
	ly := startY
	for _, b := range blocks {
		blockH := 13*j.s + float64(len(b.lines))*10*j.s
		if b.fill {
			j.setFill(j.theme.NotesBg)
			j.pdf.Rect(j.margin, ly, leftW, blockH+4*j.s, "F")
		}
		j.setFont("B", 8*j.s)
		j.setText(j.theme.Accent)
		j.pdf.Text(j.margin+4*j.s, ly+10*j.s, b.label)

		j.setFont("", 8*j.s)
		j.setText(j.theme.Secondary)
		ty := ly + 13*j.s + 8*j.s
		for _, ln := range b.lines {
			j.pdf.Text(j.margin+4*j.s, ty, ln)
			ty += 10 * j.s
		}
		ly += blockH + 8*j.s
	}
	leftEnd := ly

	end := rightEnd
	if leftEnd > end {
		end = leftEnd
	}
	j.cv.setY(end + gap)
}

// drawTotalsCard paints the rounded card with the "TOTAL DUE" label, the
// amount, and the optional footer message. The amount's font size is
// reduced, never wrapped, until the formatted value fits the card.
func (j *job) drawTotalsCard(x, y, w, h, totalDue float64) {
	innerW := w - 16*j.s

	j.setFill(j.theme.TotalsCardBg)
	j.pdf.RoundedRect(x, y, w, h, 5*j.s, "1234", "F")

	j.setFont("B", 7.5*j.s)
	j.setText(j.theme.TotalsCardText)
	label := "TOTAL DUE"
	j.pdf.Text(x+w-8*j.s-j.pdf.GetStringWidth(label), y+16*j.s, label)

	amount := j.money(totalDue)
	size := 15 * j.s
	for size > 7 {
		j.setFont("B", size)
		if j.pdf.GetStringWidth(amount) <= innerW {
			break
		}
		size -= 0.5
	}
	j.pdf.Text(x+w-8*j.s-j.pdf.GetStringWidth(amount), y+36*j.s, amount)

	if msg := j.brand.FooterMessage; msg != "" {
		j.setFont("", 7*j.s)
		if j.pdf.GetStringWidth(msg) > innerW {
			runes := []rune(msg)
			for len(runes) > 1 && j.pdf.GetStringWidth(string(runes)+"...") > innerW {
				runes = runes[:len(runes)-1]
			}
			msg = string(runes) + "..."
		}
		j.pdf.Text(x+w-8*j.s-j.pdf.GetStringWidth(msg), y+h-12*j.s, msg)
	}
}
