package normalize

import "testing"

func TestPrice(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"16.4万円", "164,000"},
		{"8万円", "80,000"},
		{"1,200万円", "12,000,000"},
		{"10000円", "10,000"},
		{"3000円", "3,000"},
		{"300円", "300"},
		{"", "0"},
		{"-", "0"},
		{"なし", "0"},
	}
	for _, tt := range tests {
		if got := Price(tt.raw); got != tt.want {
			t.Errorf("Price(%q) = %q; want %q", tt.raw, got, tt.want)
		}
	}
}

func TestMinutes(t *testing.T) {
	tests := []struct {
		raw    string
		want   int
		wantOK bool
	}{
		{"徒歩12分", 12, true},
		{"歩3分", 3, true},
		{"東急大井町線/尾山台駅 歩7分", 7, true},
		{"徒歩 5 分", 5, true},
		{"バス15分", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := Minutes(tt.raw)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Minutes(%q) = %d, %v; want %d, %v", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestPriceRangeLabel(t *testing.T) {
	tests := []struct {
		rent int
		want string
	}{
		{0, "¥100~199K"},
		{-5, "¥100~199K"},
		{150000, "¥100~199K"},
		{199999, "¥100~199K"},
		{200000, "¥200~299K"},
		{360000, "¥300~399K"},
		{450000, "¥400~499K"},
		{999999, "¥900~999K"},
		{1000000, "¥1M~"},
		{1200000, "¥1M~"},
	}
	for _, tt := range tests {
		if got := PriceRangeLabel(tt.rent); got != tt.want {
			t.Errorf("PriceRangeLabel(%d) = %q; want %q", tt.rent, got, tt.want)
		}
	}
}

func TestStationEN(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"minami shinjuku station", "Minami-Shinjuku"},
		{"Komazawa Daigaku", "Komazawa-Daigaku"},
		{"YOYOGI STATION", "Yoyogi"},
		{"  oyamadai   station ", "Oyamadai"},
		{"Shibuya", "Shibuya"},
	}
	for _, tt := range tests {
		if got := StationEN(tt.raw); got != tt.want {
			t.Errorf("StationEN(%q) = %q; want %q", tt.raw, got, tt.want)
		}
	}
}

func TestSpaces(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"  a  b ", "a b"},
		{"a\t\nb", "a b"},
		{"玉堤　２丁目", "玉堤 ２丁目"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Spaces(tt.raw); got != tt.want {
			t.Errorf("Spaces(%q) = %q; want %q", tt.raw, got, tt.want)
		}
	}
}

func TestTitleWords(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"setagaya", "Setagaya"},
		{"minato  ward", "Minato Ward"},
		{"EDOGAWA", "Edogawa"},
	}
	for _, tt := range tests {
		if got := TitleWords(tt.raw); got != tt.want {
			t.Errorf("TitleWords(%q) = %q; want %q", tt.raw, got, tt.want)
		}
	}
}

func TestCategoryEN(t *testing.T) {
	if en, ok := CategoryEN("マンション"); !ok || en != "Apartment" {
		t.Errorf("CategoryEN(マンション) = %q, %v; want Apartment, true", en, ok)
	}
	if en, ok := CategoryEN("一戸建て"); !ok || en != "Detached house" {
		t.Errorf("CategoryEN(一戸建て) = %q, %v; want Detached house, true", en, ok)
	}
	if en, ok := CategoryEN("アパート"); ok {
		t.Errorf("CategoryEN(アパート) = %q, %v; want unmapped", en, ok)
	}
}

func TestKindFromURL(t *testing.T) {
	tests := []struct {
		url    string
		want   string
		wantOK bool
	}{
		{"https://suumo.jp/chintai/jnc_000012345678/", "For Rent", true},
		{"https://suumo.jp/ms/chuko/tokyo/sc_setagaya/nc_12345/", "For Buy", true},
		{"https://suumo.jp/ms/shinchiku/tokyo/sc_meguro/nc_9/", "For Buy", true},
		{"https://suumo.jp/library/article/", "", false},
	}
	for _, tt := range tests {
		got, ok := KindFromURL(tt.url)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("KindFromURL(%q) = %q, %v; want %q, %v", tt.url, got, ok, tt.want, tt.wantOK)
		}
	}
}
