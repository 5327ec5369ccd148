package domain

import "testing"

func TestAccessLevelValid(t *testing.T) {
	for _, lvl := range []AccessLevel{AccessLevelPublic, AccessLevelLocked} {
		if !lvl.Valid() {
			t.Errorf("%q should be valid", lvl)
		}
	}
	for _, lvl := range []AccessLevel{"", "premium", "Public"} {
		if lvl.Valid() {
			t.Errorf("%q should be invalid", lvl)
		}
	}
}

func TestFilterNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Filter
		want Filter
	}{
		{"zero", Filter{}, Filter{}},
		{"trims fields", Filter{Search: " hosting ", Category: " infra "}, Filter{Search: "hosting", Category: "infra"}},
		{"keeps valid access level", Filter{AccessLevel: "locked"}, Filter{AccessLevel: "locked"}},
		{"trims access level", Filter{AccessLevel: " public "}, Filter{AccessLevel: "public"}},
		{"drops unknown access level", Filter{AccessLevel: "premium"}, Filter{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Normalize(); got != tt.want {
				t.Errorf("Normalize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
