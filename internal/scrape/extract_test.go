package scrape

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func loadDocument(t *testing.T, name string) *goquery.Document {
	t.Helper()
	path := filepath.Join("testdata", name)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read fixture %s: %v", name, err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("failed to parse fixture %s: %v", name, err)
	}
	return doc
}

func docFromString(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse html: %v", err)
	}
	return doc
}

func TestName(t *testing.T) {
	doc := loadDocument(t, "listing.html")
	if got := Name(doc); got != "ガーデン玉堤 2階 1LDK" {
		t.Errorf("Name = %q", got)
	}

	empty := docFromString(t, "<html><body><h1>no class</h1></body></html>")
	if got := Name(empty); got != "" {
		t.Errorf("Name on page without heading = %q; want empty", got)
	}
}

func TestRentAndFee(t *testing.T) {
	doc := loadDocument(t, "listing.html")
	rent, fee := RentAndFee(doc)
	if rent != "164,000" {
		t.Errorf("rent = %q; want 164,000", rent)
	}
	if fee != "10,000" {
		t.Errorf("fee = %q; want 10,000", fee)
	}

	sparse := docFromString(t, "<html><body></body></html>")
	rent, fee = RentAndFee(sparse)
	if rent != "0" || fee != "0" {
		t.Errorf("sparse rent, fee = %q, %q; want 0, 0", rent, fee)
	}
}

func TestDepositAndKeyMoney(t *testing.T) {
	doc := loadDocument(t, "listing.html")
	deposit, keyMoney := DepositAndKeyMoney(doc)
	if deposit != "164,000" {
		t.Errorf("deposit = %q; want 164,000", deposit)
	}
	if keyMoney != "82,000" {
		t.Errorf("key money = %q; want 82,000", keyMoney)
	}

	sparse := docFromString(t, "<html><body></body></html>")
	deposit, keyMoney = DepositAndKeyMoney(sparse)
	if deposit != "0" || keyMoney != "0" {
		t.Errorf("sparse deposit, key money = %q, %q; want 0, 0", deposit, keyMoney)
	}
}

func TestLayoutAndSize(t *testing.T) {
	doc := loadDocument(t, "listing.html")
	layout, size := LayoutAndSize(doc)
	if layout != "1LDK" {
		t.Errorf("layout = %q; want 1LDK", layout)
	}
	// 40.57m² rounds up to 41.
	if size != "41" {
		t.Errorf("size = %q; want 41", size)
	}

	sparse := docFromString(t, "<html><body><table><tr><th>築年数</th><td>築12年</td></tr></table></body></html>")
	layout, size = LayoutAndSize(sparse)
	if layout != "N/A" || size != "N/A" {
		t.Errorf("sparse layout, size = %q, %q; want N/A, N/A", layout, size)
	}
}

func TestCategory(t *testing.T) {
	doc := loadDocument(t, "listing.html")
	if got := Category(doc); got != "マンション" {
		t.Errorf("Category = %q; want マンション", got)
	}

	sparse := docFromString(t, "<html><body></body></html>")
	if got := Category(sparse); got != "" {
		t.Errorf("sparse Category = %q; want empty", got)
	}
}

func TestAddress(t *testing.T) {
	doc := loadDocument(t, "listing.html")
	if got := Address(doc); got != "東京都世田谷区玉堤２" {
		t.Errorf("Address = %q", got)
	}

	// Rows in other tables must not satisfy the location lookup.
	other := docFromString(t, `<html><body><table class="other"><tr><th>所在地</th><td>nope</td></tr></table></body></html>`)
	if got := Address(other); got != "" {
		t.Errorf("Address outside property_view_table = %q; want empty", got)
	}
}

func TestSplitAddress(t *testing.T) {
	tests := []struct {
		addr       string
		wantWard   string
		wantStreet string
	}{
		{"東京都世田谷区玉堤２", "世田谷", "玉堤２"},
		{"世田谷区玉堤２", "世田谷", "玉堤２"},
		{"東京都渋谷区神南１丁目", "渋谷", "神南１丁目"},
		// No ward marker: ward unresolved, the input kept whole.
		{"東京都武蔵野市吉祥寺本町", "", "東京都武蔵野市吉祥寺本町"},
		{"", "", ""},
	}
	for _, tt := range tests {
		ward, street := SplitAddress(tt.addr)
		if ward != tt.wantWard || street != tt.wantStreet {
			t.Errorf("SplitAddress(%q) = %q, %q; want %q, %q", tt.addr, ward, street, tt.wantWard, tt.wantStreet)
		}
	}
}

func TestStations(t *testing.T) {
	doc := loadDocument(t, "listing.html")
	stations := Stations(doc)
	if len(stations) != 2 {
		t.Fatalf("expected at most two stations, got %d", len(stations))
	}

	if stations[0].Name != "尾山台" {
		t.Errorf("first station = %q; want 尾山台", stations[0].Name)
	}
	if stations[0].Minutes == nil || *stations[0].Minutes != 7 {
		t.Errorf("first station minutes = %v; want 7", stations[0].Minutes)
	}

	if stations[1].Name != "等々力" {
		t.Errorf("second station = %q; want 等々力", stations[1].Name)
	}
	if stations[1].Minutes == nil || *stations[1].Minutes != 14 {
		t.Errorf("second station minutes = %v; want 14", stations[1].Minutes)
	}
}

func TestStationsWithoutWalkPhrase(t *testing.T) {
	doc := docFromString(t, `<html><body><table>
<tr><th>駅徒歩</th><td>
<div class="property_view_table-read">東急バス/玉堤バス停</div>
<div class="property_view_table-read"></div>
</td></tr>
</table></body></html>`)

	stations := Stations(doc)
	if len(stations) != 1 {
		t.Fatalf("expected one station, got %d", len(stations))
	}
	if stations[0].Name != "玉堤バス停" {
		t.Errorf("station = %q; want 玉堤バス停", stations[0].Name)
	}
	if stations[0].Minutes != nil {
		t.Errorf("minutes = %v; want nil when no walk phrase", *stations[0].Minutes)
	}
}

func TestStationsMissingRow(t *testing.T) {
	doc := docFromString(t, "<html><body></body></html>")
	if stations := Stations(doc); len(stations) != 0 {
		t.Errorf("expected no stations, got %d", len(stations))
	}
}

func TestImages(t *testing.T) {
	doc := loadDocument(t, "listing.html")
	cover, plan, gallery := Images(doc)

	if cover != "https://img01.suumo.com/front/gazo/fr/bukken/001/cover.jpg" {
		t.Errorf("cover = %q", cover)
	}
	if plan != "https://img01.suumo.com/front/gazo/fr/bukken/001/plan.jpg" {
		t.Errorf("plan = %q", plan)
	}
	if len(gallery) != 2 {
		t.Fatalf("gallery size = %d; want 2 (relative URL skipped)", len(gallery))
	}
	if gallery[0] != "https://img01.suumo.com/front/gazo/fr/bukken/001/gallery1.jpg" {
		t.Errorf("gallery[0] = %q", gallery[0])
	}
	if gallery[1] != "https://img01.suumo.com/front/gazo/fr/bukken/001/gallery2.jpg" {
		t.Errorf("gallery[1] = %q", gallery[1])
	}
}

func TestImagesEmptyGallery(t *testing.T) {
	doc := docFromString(t, "<html><body><ul id=\"js-view_gallery-list\"></ul></body></html>")
	cover, plan, gallery := Images(doc)
	if cover != "" || plan != "" || len(gallery) != 0 {
		t.Errorf("empty gallery: cover=%q plan=%q gallery=%v", cover, plan, gallery)
	}
}

func TestParseListing(t *testing.T) {
	doc := loadDocument(t, "listing.html")
	url := "https://suumo.jp/chintai/jnc_000012345678/"

	listing := ParseListing(doc, url)

	if listing.URL != url {
		t.Errorf("URL = %q", listing.URL)
	}
	if listing.Name != "ガーデン玉堤 2階 1LDK" {
		t.Errorf("Name = %q", listing.Name)
	}
	if listing.Rent != "164,000" || listing.ManagementFee != "10,000" {
		t.Errorf("rent/fee = %q/%q", listing.Rent, listing.ManagementFee)
	}
	if listing.Layout != "1LDK" || listing.Size != "41" {
		t.Errorf("layout/size = %q/%q", listing.Layout, listing.Size)
	}
	if listing.Category != "マンション" {
		t.Errorf("category = %q", listing.Category)
	}
	if listing.Ward != "世田谷" || listing.Street != "玉堤２" {
		t.Errorf("ward/street = %q/%q", listing.Ward, listing.Street)
	}
	if listing.Deposit != "164,000" || listing.KeyMoney != "82,000" {
		t.Errorf("deposit/key money = %q/%q", listing.Deposit, listing.KeyMoney)
	}
	if len(listing.Stations) != 2 {
		t.Errorf("stations = %d; want 2", len(listing.Stations))
	}
	if listing.CoverImage == "" || listing.PlanImage == "" || len(listing.Gallery) != 2 {
		t.Errorf("images: cover=%q plan=%q gallery=%d", listing.CoverImage, listing.PlanImage, len(listing.Gallery))
	}
}

// A page with none of the structural anchors still parses into a
// Listing full of defaults instead of failing the run.
func TestParseListingSparsePage(t *testing.T) {
	doc := docFromString(t, "<html><body><p>campaign page</p></body></html>")
	listing := ParseListing(doc, "https://suumo.jp/chintai/jnc_000000000000/")

	if listing.Name != "" {
		t.Errorf("Name = %q; want empty", listing.Name)
	}
	if listing.Rent != "0" || listing.ManagementFee != "0" {
		t.Errorf("rent/fee = %q/%q; want 0/0", listing.Rent, listing.ManagementFee)
	}
	if listing.Layout != "N/A" || listing.Size != "N/A" {
		t.Errorf("layout/size = %q/%q; want N/A/N/A", listing.Layout, listing.Size)
	}
	if listing.Ward != "" || listing.Street != "" {
		t.Errorf("ward/street = %q/%q; want empty", listing.Ward, listing.Street)
	}
	if len(listing.Stations) != 0 {
		t.Errorf("stations = %d; want 0", len(listing.Stations))
	}
	if listing.CoverImage != "" || len(listing.Gallery) != 0 {
		t.Errorf("images: cover=%q gallery=%d; want none", listing.CoverImage, len(listing.Gallery))
	}
}
