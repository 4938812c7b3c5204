package normalize

import "testing"

func TestCanonicalCity(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"cyrillic", "нячанг", "Нячанг"},
		{"latin spaced", "Nha Trang", "Нячанг"},
		{"latin joined", "nhatrang", "Нячанг"},
		{"saigon alias", "Сайгон", "Хошимин"},
		{"abbreviation", "HCM", "Хошимин"},
		{"unknown", "Лондон", ""},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanonicalCity(tc.raw); got != tc.want {
				t.Fatalf("expected %q got %q", tc.want, got)
			}
		})
	}
}

func TestResolveCityIdempotent(t *testing.T) {
	first := ResolveCity("mui ne", "", "")
	if first != "Муйне" {
		t.Fatalf("expected Муйне, got %q", first)
	}
	second := ResolveCity(first, "", "")
	if second != first {
		t.Fatalf("resolving a canonical name must be a no-op, got %q", second)
	}
}

func TestResolveCityFallbackScan(t *testing.T) {
	got := ResolveCity("", "Сдам студию", "Уютная студия в центре Дананга рядом с морем")
	if got != "Дананг" {
		t.Fatalf("expected Дананг from description scan, got %q", got)
	}

	if got := ResolveCity("", "Сдам студию", "Без указания города"); got != "" {
		t.Fatalf("expected empty city, got %q", got)
	}
}

func TestCityTargets(t *testing.T) {
	targets := make(map[string]bool)
	for _, target := range CityTargets("нячанг") {
		targets[target] = true
	}
	for _, want := range []string{"нячанг", "nha trang", "nhatrang"} {
		if !targets[want] {
			t.Fatalf("missing target %q in %v", want, targets)
		}
	}

	free := CityTargets("лондон")
	if len(free) != 1 || free[0] != "лондон" {
		t.Fatalf("unknown city must pass through, got %v", free)
	}
}
