package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"suumosync/internal/config"
	"suumosync/internal/logger"
	"suumosync/internal/models"
	"suumosync/internal/normalize"
	"suumosync/internal/scrape"
	"suumosync/internal/translate"
)

// MaxStations is how many station-access rows a record carries.
const MaxStations = 2

// Service-level errors
var (
	ErrFetchFailed = errors.New("listing fetch failed")
	ErrStoreFailed = errors.New("record store request failed")
)

// PageFetcher retrieves a listing page as a parsed document.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// Translator converts source-language text, degrading to the input on
// failure.
type Translator interface {
	Translate(ctx context.Context, text string) translate.Result
}

// ReferenceResolver maps extracted values onto record IDs in the
// reference tables.
type ReferenceResolver interface {
	StationID(ctx context.Context, name string) (string, error)
	AreaID(ctx context.Context, ward string) (string, error)
	LayoutID(ctx context.Context, layout string) (string, error)
	CategoryID(ctx context.Context, name string) (string, error)
	KindID(ctx context.Context, name string) (string, error)
	PriceRangeID(ctx context.Context, label string) (string, error)
}

// RecordStore creates rows in the record store.
type RecordStore interface {
	CreateRecord(ctx context.Context, tableID string, fields any) (string, error)
}

// ListingService defines the interface for listing business logic operations.
type ListingService interface {
	// Preview scrapes one listing page and assembles the outbound record
	// without writing it anywhere.
	// Returns ErrFetchFailed when the page cannot be retrieved or parsed.
	// Returns ErrStoreFailed when a reference lookup fails.
	Preview(ctx context.Context, url string) (*models.ListingRecord, error)

	// Submit creates the record in the main listings table and returns
	// the new record's ID.
	// Returns ErrStoreFailed when the create fails.
	Submit(ctx context.Context, record *models.ListingRecord) (string, error)
}

// listingService is the concrete implementation of ListingService.
type listingService struct {
	fetcher    PageFetcher
	translator Translator
	resolver   ReferenceResolver
	store      RecordStore
	tables     config.TablesConfig
	log        *logger.Logger
}

// NewListingService creates a new instance of ListingService.
func NewListingService(fetcher PageFetcher, translator Translator, resolver ReferenceResolver, store RecordStore, tables config.TablesConfig, log *logger.Logger) ListingService {
	return &listingService{
		fetcher:    fetcher,
		translator: translator,
		resolver:   resolver,
		store:      store,
		tables:     tables,
		log:        log,
	}
}

// Preview runs the full scrape-translate-resolve pipeline for one URL.
// Missing page fragments degrade to their defaults; fetch and reference
// lookup failures abort the run.
func (s *listingService) Preview(ctx context.Context, url string) (*models.ListingRecord, error) {
	s.log.Info("Scraping listing", map[string]interface{}{
		"url": url,
	})

	// Fetch and parse the page once
	doc, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		s.log.Error("Failed to fetch listing page", err, map[string]interface{}{
			"url": url,
		})
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	listing := scrape.ParseListing(doc, url)

	s.log.Debug("Listing parsed", map[string]interface{}{
		"name":     listing.Name,
		"rent":     listing.Rent,
		"layout":   listing.Layout,
		"ward":     listing.Ward,
		"stations": len(listing.Stations),
	})

	// Translate the display fields. A page without a heading still gets
	// a name the store can show.
	name := listing.Name
	if name == "" {
		name = "N/A"
	}
	name = s.translator.Translate(ctx, name).Text
	street := s.translator.Translate(ctx, listing.Street).Text

	// Resolve reference links
	layoutID, err := s.resolver.LayoutID(ctx, listing.Layout)
	if err != nil {
		s.log.Error("Failed to resolve layout", err, map[string]interface{}{
			"layout": listing.Layout,
		})
		return nil, fmt.Errorf("%w: %w", ErrStoreFailed, err)
	}

	areaID, err := s.resolver.AreaID(ctx, listing.Ward)
	if err != nil {
		s.log.Error("Failed to resolve area", err, map[string]interface{}{
			"ward": listing.Ward,
		})
		return nil, fmt.Errorf("%w: %w", ErrStoreFailed, err)
	}

	stationIDs := make([]string, MaxStations)
	stationMinutes := make([]*int, MaxStations)
	for i, st := range listing.Stations {
		if i >= MaxStations {
			break
		}
		id, err := s.resolver.StationID(ctx, st.Name)
		if err != nil {
			s.log.Error("Failed to resolve station", err, map[string]interface{}{
				"station": st.Name,
			})
			return nil, fmt.Errorf("%w: %w", ErrStoreFailed, err)
		}
		stationIDs[i] = id
		stationMinutes[i] = st.Minutes
	}

	var categoryID string
	if en, ok := normalize.CategoryEN(listing.Category); ok {
		categoryID, err = s.resolver.CategoryID(ctx, en)
		if err != nil {
			s.log.Error("Failed to resolve category", err, map[string]interface{}{
				"category": en,
			})
			return nil, fmt.Errorf("%w: %w", ErrStoreFailed, err)
		}
	}

	var kindID string
	if kind, ok := normalize.KindFromURL(url); ok {
		kindID, err = s.resolver.KindID(ctx, kind)
		if err != nil {
			s.log.Error("Failed to resolve property kind", err, map[string]interface{}{
				"kind": kind,
			})
			return nil, fmt.Errorf("%w: %w", ErrStoreFailed, err)
		}
	}

	rangeLabel := normalize.PriceRangeLabel(yenValue(listing.Rent))
	rangeID, err := s.resolver.PriceRangeID(ctx, rangeLabel)
	if err != nil {
		s.log.Error("Failed to resolve price range", err, map[string]interface{}{
			"range": rangeLabel,
		})
		return nil, fmt.Errorf("%w: %w", ErrStoreFailed, err)
	}

	record := &models.ListingRecord{
		Name:             name,
		Price:            listing.Rent,
		ManagementFee:    listing.ManagementFee,
		Layout:           linkList(layoutID),
		Size:             listing.Size,
		Locations:        linkList(areaID),
		Location:         street,
		Deposit:          listing.Deposit,
		KeyMoney:         listing.KeyMoney,
		CoverImage:       attachmentList(listing.CoverImage),
		PlanImage:        attachmentList(listing.PlanImage),
		Images:           attachments(listing.Gallery),
		AccessOneStation: linkList(stationIDs[0]),
		AccessOneMinutes: stationMinutes[0],
		AccessTwoStation: linkList(stationIDs[1]),
		AccessTwoMinutes: stationMinutes[1],
		Categories:       linkList(categoryID),
		Type:             linkList(kindID),
		PriceRange:       linkList(rangeID),
	}

	s.log.Info("Listing preview assembled", map[string]interface{}{
		"url":   url,
		"name":  record.Name,
		"price": record.Price,
	})

	return record, nil
}

// Submit writes the assembled record into the main listings table.
func (s *listingService) Submit(ctx context.Context, record *models.ListingRecord) (string, error) {
	s.log.Info("Creating listing record", map[string]interface{}{
		"name": record.Name,
	})

	id, err := s.store.CreateRecord(ctx, s.tables.Listings, record)
	if err != nil {
		s.log.Error("Failed to create listing record", err, map[string]interface{}{
			"name": record.Name,
		})
		return "", fmt.Errorf("%w: %w", ErrStoreFailed, err)
	}

	s.log.Info("Listing record created", map[string]interface{}{
		"record_id": id,
	})

	return id, nil
}

// linkList wraps a resolved record ID for a link field. Unresolved IDs
// become an empty list, never null.
func linkList(id string) []string {
	if id == "" {
		return []string{}
	}
	return []string{id}
}

func attachmentList(url string) []models.Attachment {
	if url == "" {
		return []models.Attachment{}
	}
	return []models.Attachment{{URL: url}}
}

func attachments(urls []string) []models.Attachment {
	out := make([]models.Attachment, 0, len(urls))
	for _, u := range urls {
		out = append(out, models.Attachment{URL: u})
	}
	return out
}

// yenValue reads a comma-grouped yen string as an integer amount.
func yenValue(price string) int {
	n, err := strconv.Atoi(strings.ReplaceAll(price, ",", ""))
	if err != nil {
		return 0
	}
	return n
}
