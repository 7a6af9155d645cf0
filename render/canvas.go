package render

import gofpdf "github.com/lvillar/gofpdf"

// canvas owns the page sequence and the vertical write cursor. Automatic
// page breaking is disabled on the underlying document; ensure is the one
// mechanism by which drawing code avoids running past the bottom margin.
type canvas struct {
	pdf    *gofpdf.Fpdf
	pageH  float64
	margin float64
}

func (cv *canvas) y() float64 {
	return cv.pdf.GetY()
}

func (cv *canvas) setY(y float64) {
	cv.pdf.SetY(y)
}

// remaining is the vertical space left above the bottom margin.
func (cv *canvas) remaining() float64 {
	return cv.pageH - cv.margin - cv.pdf.GetY()
}

// ensure guarantees h units of vertical space before the caller commits
// to drawing an atomic block. When the current page cannot hold it, a new
// page is allocated and the cursor resets to the top margin. Returns true
// when a page break happened, so table contexts can redraw their header
// row before continuing.
func (cv *canvas) ensure(h float64) bool {
	if cv.remaining() >= h {
		return false
	}
	cv.pdf.AddPage()
	cv.pdf.SetY(cv.margin)
	return true
}

// breakPage unconditionally starts a fresh page. Used for section-level
// headroom checks where ensure would technically still succeed but leave
// a totals card or signature box cramped at the page bottom.
func (cv *canvas) breakPage() {
	cv.pdf.AddPage()
	cv.pdf.SetY(cv.margin)
}
