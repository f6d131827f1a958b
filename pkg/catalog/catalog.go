// Package catalog holds the listings, articles and services the public
// pages render. Everything is kept in memory and filtered by linear scan;
// the data set is tens of items.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"propsite_backend/internal/model"
)

//go:embed data/*.json
var dataFS embed.FS

type Article struct {
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	Excerpt      string    `json:"excerpt"`
	Body         string    `json:"body"`
	Category     string    `json:"category"`
	Author       string    `json:"author"`
	PublishedAt  time.Time `json:"publishedAt"`
	ReadMinutes  int       `json:"readMinutes"`
	HeroImageURL string    `json:"heroImageUrl"`
	Tags         []string  `json:"tags"`
}

type Service struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Summary     string   `json:"summary"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Features    []string `json:"features"`
	Icon        string   `json:"icon"`
}

type Store struct {
	mu       sync.RWMutex
	listings []model.Listing
	articles []Article
	services []Service
}

var Default *Store

// Init loads the embedded fixtures into Default.
func Init() error {
	s, err := Load()
	if err != nil {
		return err
	}
	Default = s
	return nil
}

// Load builds a store from the embedded fixture files.
func Load() (*Store, error) {
	s := &Store{}
	if err := readJSON("data/listings.json", &s.listings); err != nil {
		return nil, err
	}
	if err := readJSON("data/articles.json", &s.articles); err != nil {
		return nil, err
	}
	if err := readJSON("data/services.json", &s.services); err != nil {
		return nil, err
	}

	sort.SliceStable(s.articles, func(i, j int) bool {
		return s.articles[i].PublishedAt.After(s.articles[j].PublishedAt)
	})
	return s, nil
}

// FixtureListings returns the embedded listing fixtures, used by the seeder.
func FixtureListings() ([]model.Listing, error) {
	var listings []model.Listing
	if err := readJSON("data/listings.json", &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

func readJSON(name string, v interface{}) error {
	data, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("catalog: read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("catalog: parse %s: %w", name, err)
	}
	return nil
}

// ReplaceListings swaps the listing array, e.g. for the database rows.
func (s *Store) ReplaceListings(listings []model.Listing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listings = append([]model.Listing(nil), listings...)
}

// UpsertListing replaces the entry with the same slug or appends it.
func (s *Store) UpsertListing(l model.Listing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.listings {
		if s.listings[i].Slug == l.Slug {
			s.listings[i] = l
			return
		}
	}
	s.listings = append(s.listings, l)
}

type ListingFilter struct {
	Type        model.ListingType
	Status      model.ListingStatus
	Suburb      string
	MinPrice    *int64
	MaxPrice    *int64
	MinBedrooms *int
	Featured    *bool
}

func (f ListingFilter) match(l model.Listing) bool {
	if !l.Published {
		return false
	}
	if f.Type != "" && l.Type != f.Type {
		return false
	}
	if f.Status != "" && l.Status != f.Status {
		return false
	}
	if f.Suburb != "" && !strings.EqualFold(l.Suburb, f.Suburb) {
		return false
	}
	if f.MinPrice != nil && l.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && l.Price > *f.MaxPrice {
		return false
	}
	if f.MinBedrooms != nil && l.Bedrooms < *f.MinBedrooms {
		return false
	}
	if f.Featured != nil && l.Featured != *f.Featured {
		return false
	}
	return true
}

func (s *Store) Listings(f ListingFilter) []model.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Listing, 0, len(s.listings))
	for _, l := range s.listings {
		if f.match(l) {
			out = append(out, l)
		}
	}
	return out
}

// ListingBySlug only finds published listings.
func (s *Store) ListingBySlug(slug string) (model.Listing, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.listings {
		if l.Slug == slug && l.Published {
			return l, true
		}
	}
	return model.Listing{}, false
}

// ListingByID only finds published listings.
func (s *Store) ListingByID(id uint) (model.Listing, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.listings {
		if l.ID == id && l.Published {
			return l, true
		}
	}
	return model.Listing{}, false
}

func (s *Store) Suburbs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := map[string]bool{}
	var out []string
	for _, l := range s.listings {
		if !l.Published || l.Suburb == "" || seen[l.Suburb] {
			continue
		}
		seen[l.Suburb] = true
		out = append(out, l.Suburb)
	}
	sort.Strings(out)
	return out
}

// Articles returns articles in the category, or all of them when category
// is empty. Newest first.
func (s *Store) Articles(category string) []Article {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Article, 0, len(s.articles))
	for _, a := range s.articles {
		if category == "" || a.Category == category {
			out = append(out, a)
		}
	}
	return out
}

func (s *Store) ArticleBySlug(slug string) (Article, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.articles {
		if a.Slug == slug {
			return a, true
		}
	}
	return Article{}, false
}

func (s *Store) ArticleCategories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := map[string]bool{}
	var out []string
	for _, a := range s.articles {
		if !seen[a.Category] {
			seen[a.Category] = true
			out = append(out, a.Category)
		}
	}
	sort.Strings(out)
	return out
}

func (s *Store) Services(category string) []Service {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Service, 0, len(s.services))
	for _, sv := range s.services {
		if category == "" || sv.Category == category {
			out = append(out, sv)
		}
	}
	return out
}

func (s *Store) ServiceBySlug(slug string) (Service, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sv := range s.services {
		if sv.Slug == slug {
			return sv, true
		}
	}
	return Service{}, false
}
