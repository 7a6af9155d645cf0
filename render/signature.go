package render

// SignatureSlot is one signing column: a caption above the box, the
// signer's printed name, and an optional signature image.
type SignatureSlot struct {
	Caption  string
	Name     string
	ImageSrc string
}

// drawSignatureRow renders N equal-width signing slots sharing one row.
// The row is a fixed-height atomic block and is never split across
// pages: when the current page lacks the headroom, the whole row moves
// to a fresh page.
func (j *job) drawSignatureRow(slots []SignatureSlot) {
	if len(slots) == 0 {
		return
	}

	sigH := 110 * j.s
	if j.cv.remaining() < sigH {
		j.cv.breakPage()
	}
	top := j.cv.y()

	slotW := j.contentW / float64(len(slots))
	for i, slot := range slots {
		x := j.margin + slotW*float64(i)
		cx := x + slotW/2

		j.setFont("B", 8.5*j.s)
		j.setText(j.theme.Header)
		j.pdf.Text(cx-j.pdf.GetStringWidth(slot.Caption)/2, top+12*j.s, slot.Caption)

		if slot.ImageSrc != "" {
			boxW := slotW - 44*j.s
			boxH := 44 * j.s
			j.drawImage(slot.ImageSrc, cx-boxW/2, top+22*j.s, boxW, boxH, true)
		}

		divW := slotW * 0.6
		if divW > 170*j.s {
			divW = 170 * j.s
		}
		j.setDraw(j.theme.Border)
		j.pdf.SetLineWidth(0.6 * j.s)
		j.pdf.Line(cx-divW/2, top+74*j.s, cx+divW/2, top+74*j.s)

		j.setFont("", 9*j.s)
		j.setText(j.theme.Secondary)
		j.pdf.Text(cx-j.pdf.GetStringWidth(slot.Name)/2, top+88*j.s, slot.Name)
	}

	j.cv.setY(top + sigH)
}

// signatureSlots decides who signs. The authenticated actor wins over
// the brand's configured signer; receipts get the two-column
// issued/received layout, everything else a single centered block.
func (j *job) signatureSlots() []SignatureSlot {
	signer := j.opts.Actor
	if signer == "" {
		signer = j.brand.SignerName
	}
	if signer == "" {
		signer = j.brand.Name
	}

	if j.doc.Kind == KindReceipt {
		return []SignatureSlot{
			{Caption: "Issued by", Name: signer, ImageSrc: j.brand.SignatureSrc},
			{Caption: "Received by", Name: j.doc.Customer.Name},
		}
	}
	return []SignatureSlot{
		{Caption: "Authorized Signature", Name: signer, ImageSrc: j.brand.SignatureSrc},
	}
}
