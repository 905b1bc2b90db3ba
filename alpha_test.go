package judgeline

import "testing"

func TestDecodeLineAlpha(t *testing.T) {
	tests := []struct {
		name      string
		alpha     float64
		extension bool
		want      LineAlpha
	}{
		{"opaque", 1, true, LineAlpha{Mode: AlphaNormal, Alpha: 1}},
		{"translucent", 0.3, true, LineAlpha{Mode: AlphaNormal, Alpha: 0.3}},
		{"zero", 0, true, LineAlpha{Mode: AlphaNormal}},
		{"hidden", -1, true, LineAlpha{Mode: AlphaHidden}},
		{"hidden fraction", -1.7, true, LineAlpha{Mode: AlphaHidden}},
		{"suppress below", -2, true, LineAlpha{Mode: AlphaSuppressBelow}},
		{"appear before", -125, true, LineAlpha{Mode: AlphaAppearBefore, AppearBefore: 2.5}},
		{"appear before lower bound", -100, true, LineAlpha{Mode: AlphaAppearBefore}},
		{"appear before upper bound", -999, true, LineAlpha{Mode: AlphaAppearBefore, AppearBefore: 89.9}},
		{"reserved range", -1500, true, LineAlpha{Mode: AlphaNormal}},
		{"unknown code", -50, true, LineAlpha{Mode: AlphaNormal}},
		{"small negative", -0.5, true, LineAlpha{Mode: AlphaNormal}},
		{"no extension", -2, false, LineAlpha{Mode: AlphaHidden}},
		{"no extension small", -0.5, false, LineAlpha{Mode: AlphaHidden}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeLineAlpha(tt.alpha, tt.extension)
			if got.Mode != tt.want.Mode {
				t.Errorf("Mode = %d, want %d", got.Mode, tt.want.Mode)
			}
			assertNear(t, "Alpha", got.Alpha, tt.want.Alpha)
			if d := got.AppearBefore - tt.want.AppearBefore; d > 1e-9 || d < -1e-9 {
				t.Errorf("AppearBefore = %v, want %v", got.AppearBefore, tt.want.AppearBefore)
			}
		})
	}
}
