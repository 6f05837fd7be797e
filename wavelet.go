package rfbenc

// Cohen-Daubechies-Feauveau 9/7 lifting coefficients, the standard
// irreversible wavelet filter (JPEG2000 Annex F.4.3.2). No repository in the
// retrieved pack implements a wavelet transform; this is a from-scratch
// numeric routine built to the filter's published coefficients, layered
// underneath ZRLE's existing tiling and subencoding machinery.
const (
	cdf97Alpha = -1.586134342059924
	cdf97Beta  = -0.052980118572961
	cdf97Gamma = 0.882911075530934
	cdf97Delta = 0.443506852043971
	cdf97Zeta  = 1.149604398260250
)

// refl performs symmetric (mirror) boundary extension of index i into
// [0,n).
func refl(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		}
		if i >= n {
			i = 2*n - 2 - i
		}
	}
	return i
}

// cdf97Forward1D applies one level of the CDF 9/7 forward lifting transform
// to x in place: even indices hold the lowpass sample, odd indices the
// highpass (detail) coefficient, interleaved.
func cdf97Forward1D(x []float64) {
	n := len(x)
	if n < 2 {
		return
	}
	at := func(i int) float64 { return x[refl(i, n)] }

	for i := 1; i < n; i += 2 {
		x[i] += cdf97Alpha * (at(i-1) + at(i+1))
	}
	for i := 0; i < n; i += 2 {
		x[i] += cdf97Beta * (at(i-1) + at(i+1))
	}
	for i := 1; i < n; i += 2 {
		x[i] += cdf97Gamma * (at(i-1) + at(i+1))
	}
	for i := 0; i < n; i += 2 {
		x[i] += cdf97Delta * (at(i-1) + at(i+1))
	}
	for i := 0; i < n; i += 2 {
		x[i] /= cdf97Zeta
		if i+1 < n {
			x[i+1] *= cdf97Zeta
		}
	}
}

// cdf97Inverse1D undoes cdf97Forward1D.
func cdf97Inverse1D(x []float64) {
	n := len(x)
	if n < 2 {
		return
	}
	for i := 0; i < n; i += 2 {
		x[i] *= cdf97Zeta
		if i+1 < n {
			x[i+1] /= cdf97Zeta
		}
	}
	at := func(i int) float64 { return x[refl(i, n)] }
	for i := 0; i < n; i += 2 {
		x[i] -= cdf97Delta * (at(i-1) + at(i+1))
	}
	for i := 1; i < n; i += 2 {
		x[i] -= cdf97Gamma * (at(i-1) + at(i+1))
	}
	for i := 0; i < n; i += 2 {
		x[i] -= cdf97Beta * (at(i-1) + at(i+1))
	}
	for i := 1; i < n; i += 2 {
		x[i] -= cdf97Alpha * (at(i-1) + at(i+1))
	}
}

// deinterleave reorders x's even/odd-indexed lifting output into a
// [low half | high half] layout, the form the recursive Mallat pyramid
// expects for the next decomposition level. len(x) must be even: for an odd
// length the last even-indexed sample is dropped (interleave has the same
// restriction).
func deinterleave(x []float64) {
	n := len(x)
	tmp := make([]float64, n)
	half := n / 2
	for i := 0; i < half; i++ {
		tmp[i] = x[2*i]
		tmp[half+i] = x[2*i+1]
	}
	copy(x, tmp)
}

func interleave(x []float64) {
	n := len(x)
	tmp := make([]float64, n)
	half := n / 2
	for i := 0; i < half; i++ {
		tmp[2*i] = x[i]
		tmp[2*i+1] = x[half+i]
	}
	copy(x, tmp)
}

// planeDWT holds one colour channel's samples for a w x h tile in row-major
// order, transformed in place by forward2D/inverse2D.
type planeDWT struct {
	data []float64
	w, h int
}

func newPlaneDWT(w, h int) *planeDWT {
	return &planeDWT{data: make([]float64, w*h), w: w, h: h}
}

func (p *planeDWT) row(y, w int) []float64 {
	return p.data[y*p.w : y*p.w+w]
}

func (p *planeDWT) col(x, h int) []float64 {
	c := make([]float64, h)
	for y := 0; y < h; y++ {
		c[y] = p.data[y*p.w+x]
	}
	return c
}

func (p *planeDWT) setCol(x int, c []float64) {
	for y, v := range c {
		p.data[y*p.w+x] = v
	}
}

// forward2D runs levels of separable 2-D CDF 9/7 decomposition, each level
// operating on the shrinking top-left (cw x ch) low-pass quadrant, the
// standard Mallat pyramid.
func (p *planeDWT) forward2D(levels int) {
	cw, ch := p.w, p.h
	for l := 0; l < levels; l++ {
		if cw < 2 || ch < 2 {
			break
		}
		for y := 0; y < ch; y++ {
			row := p.row(y, cw)
			cdf97Forward1D(row)
			deinterleave(row)
		}
		for x := 0; x < cw; x++ {
			col := p.col(x, ch)
			cdf97Forward1D(col)
			deinterleave(col)
			p.setCol(x, col)
		}
		cw /= 2
		ch /= 2
	}
}

// inverse2D undoes forward2D; levels and the resulting cw/ch sequence must
// match the forward call exactly.
func (p *planeDWT) inverse2D(levels int) {
	// Recompute the sequence of (cw, ch) sizes forward2D visited, then
	// invert them outermost-last (finest level first, matching forward's
	// innermost-first order reversed).
	sizes := make([][2]int, 0, levels)
	cw, ch := p.w, p.h
	for l := 0; l < levels; l++ {
		if cw < 2 || ch < 2 {
			break
		}
		sizes = append(sizes, [2]int{cw, ch})
		cw /= 2
		ch /= 2
	}
	for i := len(sizes) - 1; i >= 0; i-- {
		cw, ch := sizes[i][0], sizes[i][1]
		for x := 0; x < cw; x++ {
			col := p.col(x, ch)
			interleave(col)
			cdf97Inverse1D(col)
			p.setCol(x, col)
		}
		for y := 0; y < ch; y++ {
			row := p.row(y, cw)
			interleave(row)
			cdf97Inverse1D(row)
		}
	}
}

// quantizeDetail zeroes every coefficient in the level-l detail subbands
// (LH, HL, HH — everything in the cw x ch quadrant outside its own
// half-size low-pass corner) whose magnitude falls below threshold. The
// approximation (LL) corner is never touched: zeroing it would discard the
// tile's coarse colour entirely rather than just its fine detail.
func (p *planeDWT) quantizeDetail(cw, ch int, threshold float64) {
	hw, hh := cw/2, ch/2
	for y := 0; y < ch; y++ {
		for x := 0; x < cw; x++ {
			if x < hw && y < hh {
				continue // LL corner
			}
			i := y*p.w + x
			if p.data[i] < threshold && p.data[i] > -threshold {
				p.data[i] = 0
			}
		}
	}
}
