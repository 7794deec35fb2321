package pipeline

// Position computes the raw-space draw origin that puts a textW x textH
// watermark in the bottom-right corner of the photo as the viewer sees it.
// The anchor is computed in visual space with an adaptive margin, then
// mapped back through the orientation transform. Negative coordinates
// (text larger than the image) fall back to a fixed inset so the text
// never starts off-canvas.
func Position(o Orientation, rawW, rawH, textW, textH int) (int, int) {
	visualW, visualH := o.VisualDims(rawW, rawH)

	margin := min(visualW, visualH) / 100
	if margin < 10 {
		margin = 10
	}

	vx := visualW - textW - margin
	vy := visualH - textH - margin

	x, y := o.MapVisualRectToRaw(vx, vy, textW, textH, rawW, rawH)

	if x < 0 {
		x = max(0, rawW/20)
	}
	if y < 0 {
		y = max(0, rawH/20)
	}
	return x, y
}
