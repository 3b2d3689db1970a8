package scrape

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"suumosync/internal/models"
	"suumosync/internal/normalize"
)

// Extractors read one value each from the parsed page, anchored on class
// names and header-cell labels rather than positional indexes, so a
// layout drift breaks one extractor instead of the whole parse. Missing
// anchors never error; each extractor falls back to its default.

var (
	nonNumericRe = regexp.MustCompile(`[^\d.]`)
	walkTailRe   = regexp.MustCompile(`(?:歩|徒歩)[\s\p{Zs}]*\d+[\s\p{Zs}]*分.*`)
	wardRe       = regexp.MustCompile(`^(.+?)区(.*)`)
)

// Name returns the listing heading text, empty when the page has none.
func Name(doc *goquery.Document) string {
	return normalize.Spaces(doc.Find("h1.section_h1-header-title").First().Text())
}

// RentAndFee returns the monthly rent and the management fee, both as
// comma-grouped yen strings. The fee is scanned from the note spans and
// matches either the 管理費 or the 共益費 label; no match means "0".
func RentAndFee(doc *goquery.Document) (rent, fee string) {
	rent = normalize.Price(doc.Find("span.property_view_note-emphasis").First().Text())

	fee = "0"
	doc.Find("div.property_view_note-info > div.property_view_note-list > span").EachWithBreak(func(_ int, sp *goquery.Selection) bool {
		t := sp.Text()
		if strings.Contains(t, "管理費") || strings.Contains(t, "共益費") {
			fee = normalize.Price(normalize.Spaces(t))
			return false
		}
		return true
	})
	return rent, fee
}

// DepositAndKeyMoney scans the note spans for the 敷金 and 礼金 amounts.
// Either missing means "0".
func DepositAndKeyMoney(doc *goquery.Document) (deposit, keyMoney string) {
	deposit, keyMoney = "0", "0"
	doc.Find("div.property_view_note-list span").Each(func(_ int, sp *goquery.Selection) {
		t := normalize.Spaces(sp.Text())
		switch {
		case strings.Contains(t, "敷金"):
			deposit = normalize.Price(t)
		case strings.Contains(t, "礼金"):
			keyMoney = normalize.Price(t)
		}
	})
	return deposit, keyMoney
}

// LayoutAndSize returns the floor-plan name and the floor size. The size
// keeps only digits and dots, then rounds to the nearest whole unit.
// Either row missing yields "N/A".
func LayoutAndSize(doc *goquery.Document) (layout, size string) {
	layout, size = "N/A", "N/A"

	if v := tableValue(doc, "間取り"); v != "" {
		layout = v
	}
	if raw := tableValue(doc, "専有面積"); raw != "" {
		if num := nonNumericRe.ReplaceAllString(raw, ""); num != "" {
			if f, err := strconv.ParseFloat(num, 64); err == nil {
				size = strconv.Itoa(int(math.Round(f)))
			}
		}
	}
	return layout, size
}

// Category returns the building-type cell text (建物種別), empty when the
// row is absent. Mapping to the English category is the caller's job.
func Category(doc *goquery.Document) string {
	return tableValue(doc, "建物種別")
}

// Address returns the location cell (所在地) of the property view table,
// empty when the row is absent.
func Address(doc *goquery.Document) string {
	var addr string
	doc.Find("table.property_view_table tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		th := tr.Find("th").First()
		if !strings.Contains(normalize.Spaces(th.Text()), "所在地") {
			return true
		}
		addr = normalize.Spaces(tr.Find("td").First().Text())
		return false
	})
	return addr
}

// SplitAddress splits a source-language address into the ward name (区
// suffix stripped) and the street remainder. The 東京都 prefix is dropped
// first. When no ward pattern matches, the ward is empty and the whole
// input is treated as street text.
func SplitAddress(addr string) (ward, street string) {
	if addr == "" {
		return "", ""
	}

	t := strings.Replace(addr, "東京都", "", 1)
	m := wardRe.FindStringSubmatch(t)
	if m == nil {
		return "", addr
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
}

// Stations returns up to two station accesses from the 駅徒歩 row. Each
// entry keeps the segment after the last line separator, takes the walk
// minutes from the 歩N分 phrase, and strips that phrase plus the 駅
// marker to leave the bare station name.
func Stations(doc *goquery.Document) []models.StationAccess {
	var items []models.StationAccess

	row := findRowByLabel(doc, "駅徒歩")
	if row == nil {
		return items
	}

	row.Find("div.property_view_table-read").EachWithBreak(func(_ int, div *goquery.Selection) bool {
		raw := normalize.Spaces(div.Text())
		if raw == "" {
			return true
		}

		// The line reads "line / station walk-minutes"; only the last
		// segment names the station.
		if i := strings.LastIndex(raw, "/"); i >= 0 {
			raw = raw[i+1:]
		}
		raw = normalize.Spaces(raw)

		var minutes *int
		if n, ok := normalize.Minutes(raw); ok {
			minutes = &n
		}

		name := strings.TrimSpace(walkTailRe.ReplaceAllString(raw, ""))
		name = strings.TrimSpace(strings.ReplaceAll(name, "駅", ""))
		if name == "" {
			return true
		}

		items = append(items, models.StationAccess{Name: name, Minutes: minutes})
		return len(items) < 2
	})

	return items
}

// Images collects the gallery images with absolute HTTP URLs in DOM
// order: the first is the cover, the second the floor plan, the rest the
// gallery. data-src wins over src when both are present.
func Images(doc *goquery.Document) (cover, plan string, gallery []string) {
	var urls []string
	doc.Find("ul#js-view_gallery-list img").Each(func(_ int, img *goquery.Selection) {
		src, ok := img.Attr("data-src")
		if !ok || src == "" {
			src, _ = img.Attr("src")
		}
		if strings.HasPrefix(src, "http") {
			urls = append(urls, src)
		}
	})

	if len(urls) > 0 {
		cover = urls[0]
	}
	if len(urls) > 1 {
		plan = urls[1]
	}
	if len(urls) > 2 {
		gallery = urls[2:]
	}
	return cover, plan, gallery
}

// ParseListing runs every extractor against the document and assembles
// the transient Listing for one run.
func ParseListing(doc *goquery.Document, url string) *models.Listing {
	rent, fee := RentAndFee(doc)
	deposit, keyMoney := DepositAndKeyMoney(doc)
	layout, size := LayoutAndSize(doc)
	ward, street := SplitAddress(Address(doc))
	cover, plan, gallery := Images(doc)

	return &models.Listing{
		URL:           url,
		Name:          Name(doc),
		Rent:          rent,
		ManagementFee: fee,
		Layout:        layout,
		Size:          size,
		Category:      Category(doc),
		Ward:          ward,
		Street:        street,
		Deposit:       deposit,
		KeyMoney:      keyMoney,
		Stations:      Stations(doc),
		CoverImage:    cover,
		PlanImage:     plan,
		Gallery:       gallery,
	}
}

// tableValue finds the first header cell containing label and returns
// the text of the value cell in the same row.
func tableValue(doc *goquery.Document, label string) string {
	row := findRowByLabel(doc, label)
	if row == nil {
		return ""
	}
	return normalize.Spaces(row.Text())
}

// findRowByLabel returns the td paired with the first th whose text
// contains label, or nil when no header matches.
func findRowByLabel(doc *goquery.Document, label string) *goquery.Selection {
	var td *goquery.Selection
	doc.Find("th").EachWithBreak(func(_ int, th *goquery.Selection) bool {
		if !strings.Contains(th.Text(), label) {
			return true
		}
		td = th.Parent().Find("td").First()
		return false
	})
	return td
}
