package theme

import "math"

// Okhsl to sRGB conversion after Björn Ottosson's reference
// implementation. Hue is in [0,1), saturation and lightness in [0,1].

// toe maps oklab lightness to okhsl lightness.
func toe(x float64) float64 {
	const k1, k2 = 0.206, 0.03
	const k3 = (1.0 + k1) / (1.0 + k2)
	return 0.5 * (k3*x - k1 + math.Sqrt((k3*x-k1)*(k3*x-k1)+4*k2*k3*x))
}

func toeInv(x float64) float64 {
	const k1, k2 = 0.206, 0.03
	const k3 = (1.0 + k1) / (1.0 + k2)
	return (x*x + k1*x) / (k3 * (x + k2))
}

func oklabToLinearSRGB(L, a, b float64) (float64, float64, float64) {
	l_ := L + 0.3963377774*a + 0.2158037573*b
	m_ := L - 0.1055613458*a - 0.0638541728*b
	s_ := L - 0.0894841775*a - 1.2914855480*b

	l := l_ * l_ * l_
	m := m_ * m_ * m_
	s := s_ * s_ * s_

	return 4.0767416621*l - 3.3077115913*m + 0.2309699292*s,
		-1.2684380046*l + 2.6097574011*m - 0.3413193965*s,
		-0.0041960863*l - 0.7034186147*m + 1.7076147010*s
}

// computeMaxSaturation finds the saturation S = C/L at which an sRGB
// component first leaves the gamut for the hue direction (a, b), using
// a polynomial guess sharpened by one Halley step.
func computeMaxSaturation(a, b float64) float64 {
	var k0, k1, k2, k3, k4, wl, wm, ws float64
	switch {
	case -1.88170328*a-0.80936493*b > 1:
		// red component goes below zero first
		k0, k1, k2, k3, k4 = 1.19086277, 1.76576728, 0.59662641, 0.75515197, 0.56771245
		wl, wm, ws = 4.0767416621, -3.3077115913, 0.2309699292
	case 1.81444104*a-1.19445276*b > 1:
		// green component
		k0, k1, k2, k3, k4 = 0.73956515, -0.45954404, 0.08285427, 0.12541070, 0.14503204
		wl, wm, ws = -1.2684380046, 2.6097574011, -0.3413193965
	default:
		// blue component
		k0, k1, k2, k3, k4 = 1.35733652, -0.00915799, -1.15130210, -0.50559606, 0.00692167
		wl, wm, ws = -0.0041960863, -0.7034186147, 1.7076147010
	}

	S := k0 + k1*a + k2*b + k3*a*a + k4*a*b

	kl := 0.3963377774*a + 0.2158037573*b
	km := -0.1055613458*a - 0.0638541728*b
	ks := -0.0894841775*a - 1.2914855480*b

	l_ := 1.0 + S*kl
	m_ := 1.0 + S*km
	s_ := 1.0 + S*ks

	l := l_ * l_ * l_
	m := m_ * m_ * m_
	s := s_ * s_ * s_

	ldS := 3.0 * kl * l_ * l_
	mdS := 3.0 * km * m_ * m_
	sdS := 3.0 * ks * s_ * s_

	ldS2 := 6.0 * kl * kl * l_
	mdS2 := 6.0 * km * km * m_
	sdS2 := 6.0 * ks * ks * s_

	f := wl*l + wm*m + ws*s
	f1 := wl*ldS + wm*mdS + ws*sdS
	f2 := wl*ldS2 + wm*mdS2 + ws*sdS2

	return S - f*f1/(f1*f1-0.5*f*f2)
}

type cusp struct {
	L, C float64
}

// findCusp locates the point of maximum chroma on the gamut boundary
// for the hue direction (a, b).
func findCusp(a, b float64) cusp {
	sCusp := computeMaxSaturation(a, b)

	r, g, bl := oklabToLinearSRGB(1, sCusp*a, sCusp*b)
	lCusp := math.Cbrt(1.0 / math.Max(math.Max(r, g), bl))
	return cusp{L: lCusp, C: lCusp * sCusp}
}

// findGamutIntersection finds t so that (L0 + t*(L1-L0), t*C1) lies on
// the gamut boundary for the hue direction (a, b).
func findGamutIntersection(a, b, l1, c1, l0 float64, cu cusp) float64 {
	if (l1-l0)*cu.C-(cu.L-l0)*c1 <= 0 {
		// lower half of the gamut triangle is exact
		return cu.C * l0 / (c1*cu.L + cu.C*(l0-l1))
	}

	// upper half: intersect the triangle edge, then one Halley step
	// against the true boundary.
	t := cu.C * (l0 - 1.0) / (c1*(cu.L-1.0) + cu.C*(l0-l1))

	dL := l1 - l0
	dC := c1

	kl := 0.3963377774*a + 0.2158037573*b
	km := -0.1055613458*a - 0.0638541728*b
	ks := -0.0894841775*a - 1.2914855480*b

	lDt := dL + dC*kl
	mDt := dL + dC*km
	sDt := dL + dC*ks

	L := l0*(1.0-t) + t*l1
	C := t * c1

	l_ := L + C*kl
	m_ := L + C*km
	s_ := L + C*ks

	l := l_ * l_ * l_
	m := m_ * m_ * m_
	s := s_ * s_ * s_

	ldt := 3 * lDt * l_ * l_
	mdt := 3 * mDt * m_ * m_
	sdt := 3 * sDt * s_ * s_

	ldt2 := 6 * lDt * lDt * l_
	mdt2 := 6 * mDt * mDt * m_
	sdt2 := 6 * sDt * sDt * s_

	r := 4.0767416621*l - 3.3077115913*m + 0.2309699292*s - 1
	r1 := 4.0767416621*ldt - 3.3077115913*mdt + 0.2309699292*sdt
	r2 := 4.0767416621*ldt2 - 3.3077115913*mdt2 + 0.2309699292*sdt2

	uR := r1 / (r1*r1 - 0.5*r*r2)
	tR := -r * uR

	g := -1.2684380046*l + 2.6097574011*m - 0.3413193965*s - 1
	g1 := -1.2684380046*ldt + 2.6097574011*mdt - 0.3413193965*sdt
	g2 := -1.2684380046*ldt2 + 2.6097574011*mdt2 - 0.3413193965*sdt2

	uG := g1 / (g1*g1 - 0.5*g*g2)
	tG := -g * uG

	bb := -0.0041960863*l - 0.7034186147*m + 1.7076147010*s - 1
	b1 := -0.0041960863*ldt - 0.7034186147*mdt + 1.7076147010*sdt
	b2 := -0.0041960863*ldt2 - 0.7034186147*mdt2 + 1.7076147010*sdt2

	uB := b1 / (b1*b1 - 0.5*bb*b2)
	tB := -bb * uB

	if uR < 0 {
		tR = math.MaxFloat64
	}
	if uG < 0 {
		tG = math.MaxFloat64
	}
	if uB < 0 {
		tB = math.MaxFloat64
	}

	return t + math.Min(tR, math.Min(tG, tB))
}

// getSTMid is a rational approximation of the gamut shape around the
// midpoint chroma, valid for okhsl where the line starts at L0 = L.
func getSTMid(a, b float64) (s, t float64) {
	s = 0.11516993 + 1.0/(7.44778970+4.15901240*b+
		a*(-2.19557347+1.75198401*b+
			a*(-2.13704948-10.02301043*b+
				a*(-4.24894561+5.38770819*b+4.69891013*a))))

	t = 0.11239642 + 1.0/(1.61320320-0.68124379*b+
		a*(0.40370612+0.90148123*b+
			a*(-0.27087943+0.61223990*b+
				a*(0.00299215-0.45399568*b-0.14661872*a))))
	return s, t
}

// getCs returns the three characteristic chroma values for lightness L
// and hue direction (a, b): the slope at zero saturation, the chroma at
// saturation 0.8 and the chroma on the gamut boundary.
func getCs(L, a, b float64) (c0, cMid, cMax float64) {
	cu := findCusp(a, b)

	cMax = findGamutIntersection(a, b, L, 1, L, cu)

	stMaxS := cu.C / cu.L
	stMaxT := cu.C / (1.0 - cu.L)

	// Scale factor compensating for the curved part of the gamut.
	k := cMax / math.Min(L*stMaxS, (1.0-L)*stMaxT)

	stMidS, stMidT := getSTMid(a, b)
	ca := L * stMidS
	cb := (1.0 - L) * stMidT
	cMid = 0.9 * k * math.Sqrt(math.Sqrt(1.0/(1.0/(ca*ca*ca*ca)+1.0/(cb*cb*cb*cb))))

	ca = L * 0.4
	cb = (1.0 - L) * 0.8
	c0 = math.Sqrt(1.0 / (1.0/(ca*ca) + 1.0/(cb*cb)))

	return c0, cMid, cMax
}

// okhslToSRGB converts okhsl to nonlinear sRGB components in [0,1].
// Chroma is interpolated in two rational segments so that the slope at
// s=0 is C_0, the value at s=0.8 is C_mid and the value at s=1 is C_max.
func okhslToSRGB(h, s, l float64) (float64, float64, float64) {
	if l >= 0.999999 {
		return 1, 1, 1
	}
	if l <= 0.000001 {
		return 0, 0, 0
	}

	L := toeInv(l)
	a := math.Cos(2 * math.Pi * h)
	b := math.Sin(2 * math.Pi * h)

	c0, cMid, cMax := getCs(L, a, b)

	var C float64
	switch {
	case s <= 0 || cMax <= 0:
		// achromatic gray at this lightness
	case s < 0.8:
		t := 1.25 * s
		k1 := 0.8 * c0
		k2 := 1.0 - k1/cMid
		C = t * k1 / (1.0 - k2*t)
	default:
		t := (s - 0.8) / 0.2
		k1 := 0.2 * cMid * cMid * 1.25 * 1.25 / c0
		k2 := 1.0 - k1/(cMax-cMid)
		C = cMid + t*k1/(1.0-k2*t)
	}

	r, g, bl := oklabToLinearSRGB(L, C*a, C*b)
	return srgbTransfer(r), srgbTransfer(g), srgbTransfer(bl)
}

// srgbTransfer applies the sRGB gamma transfer to a linear component.
func srgbTransfer(x float64) float64 {
	if x <= 0.0031308 {
		return 12.92 * x
	}
	return 1.055*math.Pow(x, 1.0/2.4) - 0.055
}
