package theme

import (
	"math"
	"testing"
)

var okhslTests = map[[3]float64][3]uint8{
	{30.0 / 360, 1, 0.5}:   {222, 17, 0},
	{0, 1, 0.5}:            {215, 0, 113},
	{210.0 / 360, 1, 0.6}:  {0, 163, 183},
	{0.5, 0.5, 0.5}:        {71, 132, 120},
	{90.0 / 360, 1, 0.275}: {79, 61, 0},
	{330.0 / 360, 1, 0.8}:  {255, 159, 247},
}

func TestOkhslToSRGB(t *testing.T) {
	for in, expected := range okhslTests {
		r, g, b := okhslToSRGB(in[0], in[1], in[2])
		out := [3]uint8{channel(r), channel(g), channel(b)}
		if out != expected {
			t.Log(in, "expected", expected, "got", out)
			t.Fail()
		}
	}
}

func TestOkhslDegenerate(t *testing.T) {
	if r, g, b := okhslToSRGB(0.3, 1, 0.9999995); r != 1 || g != 1 || b != 1 {
		t.Log("expected white, got", r, g, b)
		t.Fail()
	}
	if r, g, b := okhslToSRGB(0.3, 1, 0.0000005); r != 0 || g != 0 || b != 0 {
		t.Log("expected black, got", r, g, b)
		t.Fail()
	}
}

func TestOkhslAchromatic(t *testing.T) {
	r, g, b := okhslToSRGB(0.25, 0, 0.7)
	if r != g || g != b {
		t.Log("expected equal channels, got", r, g, b)
		t.Fail()
	}
}

func TestToeRoundTrip(t *testing.T) {
	for _, x := range []float64{0.05, 0.275, 0.5, 0.8, 0.95} {
		if d := math.Abs(toe(toeInv(x)) - x); d > 1e-9 {
			t.Log("toe roundtrip error at", x, "is", d)
			t.Fail()
		}
	}
}

func TestOkhslStaysInGamut(t *testing.T) {
	// Full saturation tracks the gamut boundary; a single Halley step
	// leaves at most a small overshoot.
	for h := 0; h < 360; h += 5 {
		for _, l := range []float64{0.275, 0.5, 0.8} {
			r, g, b := okhslToSRGB(float64(h)/360, 1, l)
			for _, v := range []float64{r, g, b} {
				if v < -0.01 || v > 1.01 {
					t.Log("hue", h, "lightness", l, "out of gamut:", r, g, b)
					t.Fail()
				}
			}
		}
	}
}

var result [3]float64

func BenchmarkOkhslToSRGB(b *testing.B) {
	var r, g, bl float64
	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		r, g, bl = okhslToSRGB(0.25, 1, 0.5)
	}

	result = [3]float64{r, g, bl}
}
