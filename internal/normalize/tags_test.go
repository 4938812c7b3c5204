package normalize

import "testing"

func TestDealType(t *testing.T) {
	cases := []struct {
		name        string
		explicit    string
		description string
		want        string
	}{
		{"explicit wins", "rent", "Продам байк, цена 500$", "rent"},
		{"sale keyword", "", "Продам Honda Airblade 2021", "sale"},
		{"rent keyword", "", "Сдаю байк в аренду помесячно", "rent"},
		{"sale priority on mixed text", "", "Аренда закончилась, продам срочно", "sale"},
		{"no keywords", "", "Honda Airblade, обращайтесь в личку", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DealType(tc.explicit, "", tc.description)
			if got != tc.want {
				t.Fatalf("expected %q got %q", tc.want, got)
			}
		})
	}
}

func TestKidsType(t *testing.T) {
	cases := []struct {
		name        string
		title       string
		description string
		want        string
	}{
		{"events", "Аниматоры на день рождения", "", KidsEvents},
		{"nannies", "", "Опытная няня с проживанием", KidsNannies},
		{"schools", "Детский садик Солнышко", "", KidsSchools},
		{"untagged", "Коляска б/у", "Отдам даром", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := KidsType("", tc.title, tc.description)
			if got != tc.want {
				t.Fatalf("expected %q got %q", tc.want, got)
			}
		})
	}
}

func TestMinAge(t *testing.T) {
	if min, ok := MinAge("5-7 лет"); !ok || min != 5 {
		t.Fatalf("expected 5, got %d ok=%v", min, ok)
	}
	if min, ok := MinAge("от 12"); !ok || min != 12 {
		t.Fatalf("expected 12, got %d ok=%v", min, ok)
	}
	if _, ok := MinAge("для всех"); ok {
		t.Fatal("text without digits must not parse")
	}
}
