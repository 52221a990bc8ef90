// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package api

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tomtom215/reelhouse/internal/database"
	"github.com/tomtom215/reelhouse/internal/models"
)

// fakeStore is an in-memory Store. Lists are ordered by ID. Setting fail
// makes every call return that error.
type fakeStore struct {
	mu sync.Mutex

	accounts     map[string]*models.Account
	countries    map[string]time.Time
	series       map[string]*models.WebSeries
	episodes     map[string]*models.Episode
	feedback     map[string]*models.Feedback
	houses       map[string]*models.ProductionHouse
	producers    map[string]*models.Producer
	affiliations []models.ProducerAffiliation
	telecasts    map[string]*models.Telecast
	contracts    map[string]*models.SeriesContract
	subtitles    []models.SubtitleLanguage
	releases     []models.Release

	fail   error
	nextID atomic.Int64

	// call counters
	seriesReads   atomic.Int64
	feedbackReads atomic.Int64
	writes        atomic.Int64
}

var _ Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	s := &fakeStore{
		accounts:  map[string]*models.Account{},
		countries: map[string]time.Time{},
		series:    map[string]*models.WebSeries{},
		episodes:  map[string]*models.Episode{},
		feedback:  map[string]*models.Feedback{},
		houses:    map[string]*models.ProductionHouse{},
		producers: map[string]*models.Producer{},
		telecasts: map[string]*models.Telecast{},
		contracts: map[string]*models.SeriesContract{},
	}
	// generated ids start above the seeded ones
	s.nextID.Store(1000)
	return s
}

// id returns a sequential identifier with the same width the database uses.
func (s *fakeStore) id(prefix string) string {
	digits := models.DefaultIDDigits
	switch prefix {
	case models.PrefixAccount:
		digits = models.AccountIDDigits
	case models.PrefixProductionHouse:
		digits = models.ProductionHouseIDDigits
	}
	return fmt.Sprintf("%s%0*d", prefix, digits, s.nextID.Add(1))
}

// page slices items for p the way the database does.
func page[T any](items []T, p models.Page) models.Paged[T] {
	total := int64(len(items))
	start := p.Offset()
	if start > len(items) {
		start = len(items)
	}
	end := start + p.PerPage
	if end > len(items) {
		end = len(items)
	}
	return models.NewPaged(append([]T(nil), items[start:end]...), total, p)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// ---------------------------------------------------------------------------
// Accounts and countries
// ---------------------------------------------------------------------------

func (s *fakeStore) addAccount(id, role string, active bool) *models.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := &models.Account{
		AccountID:   id,
		FirstName:   "Test",
		LastName:    role,
		Email:       strings.ToLower(id) + "@example.com",
		AccountType: role,
		IsActive:    active,
	}
	s.accounts[id] = a
	return a
}

func (s *fakeStore) CreateAccount(_ context.Context, a *models.Account) error {
	if s.fail != nil {
		return s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.accounts {
		if existing.Email == a.Email {
			return database.ErrConflict
		}
	}
	if a.CountryName != nil {
		if _, ok := s.countries[*a.CountryName]; !ok {
			s.countries[*a.CountryName] = time.Now()
		}
	}
	a.AccountID = s.id(models.PrefixAccount)
	a.CreatedAt = time.Now()
	cp := *a
	s.accounts[a.AccountID] = &cp
	s.writes.Add(1)
	return nil
}

func (s *fakeStore) GetAccount(_ context.Context, id string) (*models.Account, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *fakeStore) GetAccountByEmail(_ context.Context, email string) (*models.Account, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *fakeStore) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := s.GetAccountByEmail(ctx, email)
	if err == database.ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (s *fakeStore) ListAccounts(_ context.Context, f models.AccountFilter, p models.Page) (models.Paged[models.Account], error) {
	if s.fail != nil {
		return models.Paged[models.Account]{}, s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Account
	for _, id := range sortedKeys(s.accounts) {
		a := s.accounts[id]
		if f.AccountType != "" && a.AccountType != f.AccountType {
			continue
		}
		if f.IsActive != nil && a.IsActive != *f.IsActive {
			continue
		}
		if f.Search != "" && !contains(a.FirstName+" "+a.LastName+" "+a.Email+" "+a.AccountID, f.Search) {
			continue
		}
		out = append(out, *a)
	}
	return page(out, p), nil
}

func (s *fakeStore) mutateAccount(id string, fn func(*models.Account)) (*models.Account, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	fn(a)
	s.writes.Add(1)
	cp := *a
	return &cp, nil
}

func (s *fakeStore) SetAccountRole(_ context.Context, id, role string) (*models.Account, error) {
	return s.mutateAccount(id, func(a *models.Account) { a.AccountType = role })
}

func (s *fakeStore) SetAccountActive(_ context.Context, id string, active bool) (*models.Account, error) {
	return s.mutateAccount(id, func(a *models.Account) { a.IsActive = active })
}

func (s *fakeStore) SetAccountPassword(_ context.Context, id, hash string) error {
	_, err := s.mutateAccount(id, func(a *models.Account) { a.PasswordHash = hash })
	return err
}

func (s *fakeStore) DeleteAccount(_ context.Context, id string) error {
	if s.fail != nil {
		return s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[id]; !ok {
		return database.ErrNotFound
	}
	delete(s.accounts, id)
	for fid, f := range s.feedback {
		if f.AccountID == id {
			delete(s.feedback, fid)
		}
	}
	s.writes.Add(1)
	return nil
}

func (s *fakeStore) CountAccountsByCountry(_ context.Context, country string) (int64, error) {
	if s.fail != nil {
		return 0, s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, a := range s.accounts {
		if a.CountryName != nil && *a.CountryName == country {
			n++
		}
	}
	return n, nil
}

func (s *fakeStore) ListCountries(_ context.Context) ([]models.Country, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Country
	for _, name := range sortedKeys(s.countries) {
		out = append(out, models.Country{CountryName: name, CreatedAt: s.countries[name]})
	}
	return out, nil
}

func (s *fakeStore) CreateCountry(_ context.Context, name string) (*models.Country, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.countries[name]; ok {
		return nil, database.ErrConflict
	}
	s.countries[name] = time.Now()
	s.writes.Add(1)
	return &models.Country{CountryName: name, CreatedAt: s.countries[name]}, nil
}

func (s *fakeStore) DeleteCountry(_ context.Context, name string) error {
	if s.fail != nil {
		return s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.countries[name]; !ok {
		return database.ErrNotFound
	}
	for _, r := range s.releases {
		if r.CountryName == name {
			return database.ErrInUse
		}
	}
	delete(s.countries, name)
	s.writes.Add(1)
	return nil
}

// ---------------------------------------------------------------------------
// Series and episodes
// ---------------------------------------------------------------------------

// withRating fills the rating the way the database view does: mean of the
// series' feedback rounded to one decimal, nil without feedback.
func (s *fakeStore) withRating(ws models.WebSeries) models.WebSeries {
	var sum, n int
	for _, f := range s.feedback {
		if f.WebSeriesID == ws.WebSeriesID {
			sum += f.Rating
			n++
		}
	}
	ws.Rating = nil
	if n > 0 {
		avg := math.Round(float64(sum)/float64(n)*10) / 10
		ws.Rating = &avg
	}
	return ws
}

func (s *fakeStore) ListSeries(_ context.Context, f models.SeriesFilter, p models.Page) (models.Paged[models.WebSeries], error) {
	s.seriesReads.Add(1)
	if s.fail != nil {
		return models.Paged[models.WebSeries]{}, s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.WebSeries
	for _, id := range sortedKeys(s.series) {
		ws := s.series[id]
		if f.Type != "" && ws.Type != f.Type {
			continue
		}
		if f.Search != "" && !contains(ws.Title+" "+ws.WebSeriesID, f.Search) {
			continue
		}
		out = append(out, s.withRating(*ws))
	}
	return page(out, p), nil
}

func (s *fakeStore) GetSeries(_ context.Context, id string) (*models.WebSeries, error) {
	s.seriesReads.Add(1)
	if s.fail != nil {
		return nil, s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ws, ok := s.series[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	out := s.withRating(*ws)
	for _, eid := range sortedKeys(s.episodes) {
		if e := s.episodes[eid]; e.WebSeriesID == id {
			out.Episodes = append(out.Episodes, *e)
		}
	}
	return &out, nil
}

func (s *fakeStore) CreateSeries(_ context.Context, ws *models.WebSeries) error {
	if s.fail != nil {
		return s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.houses[ws.HouseID]; !ok {
		return database.ErrInvalidReference
	}
	ws.WebSeriesID = s.id(models.PrefixWebSeries)
	ws.CreatedAt = time.Now()
	cp := *ws
	s.series[ws.WebSeriesID] = &cp
	s.writes.Add(1)
	return nil
}

func (s *fakeStore) UpdateSeries(_ context.Context, id string, mutate func(*models.WebSeries)) (*models.WebSeries, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ws, ok := s.series[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	mutate(ws)
	s.writes.Add(1)
	out := s.withRating(*ws)
	return &out, nil
}

func (s *fakeStore) DeleteSeries(_ context.Context, id string) error {
	if s.fail != nil {
		return s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.series[id]; !ok {
		return database.ErrNotFound
	}
	delete(s.series, id)
	for eid, e := range s.episodes {
		if e.WebSeriesID == id {
			delete(s.episodes, eid)
		}
	}
	for fid, f := range s.feedback {
		if f.WebSeriesID == id {
			delete(s.feedback, fid)
		}
	}
	s.writes.Add(1)
	return nil
}

func (s *fakeStore) ListEpisodes(_ context.Context, f models.EpisodeFilter, p models.Page) (models.Paged[models.Episode], error) {
	if s.fail != nil {
		return models.Paged[models.Episode]{}, s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Episode
	for _, id := range sortedKeys(s.episodes) {
		e := s.episodes[id]
		if f.WebSeriesID != "" && e.WebSeriesID != f.WebSeriesID {
			continue
		}
		out = append(out, *e)
	}
	return page(out, p), nil
}

func (s *fakeStore) GetEpisode(_ context.Context, id string) (*models.Episode, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.episodes[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (s *fakeStore) CreateEpisode(_ context.Context, e *models.Episode) error {
	if s.fail != nil {
		return s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.series[e.WebSeriesID]; !ok {
		return database.ErrInvalidReference
	}
	e.EpisodeID = s.id(models.PrefixEpisode)
	cp := *e
	s.episodes[e.EpisodeID] = &cp
	s.writes.Add(1)
	return nil
}

func (s *fakeStore) UpdateEpisode(_ context.Context, id string, mutate func(*models.Episode)) (*models.Episode, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.episodes[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	mutate(e)
	s.writes.Add(1)
	cp := *e
	return &cp, nil
}

func (s *fakeStore) DeleteEpisode(_ context.Context, id string) error {
	if s.fail != nil {
		return s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.episodes[id]; !ok {
		return database.ErrNotFound
	}
	delete(s.episodes, id)
	s.writes.Add(1)
	return nil
}

// ---------------------------------------------------------------------------
// Feedback
// ---------------------------------------------------------------------------

func (s *fakeStore) ListFeedback(_ context.Context, f models.FeedbackFilter, p models.Page) (models.Paged[models.Feedback], error) {
	s.feedbackReads.Add(1)
	if s.fail != nil {
		return models.Paged[models.Feedback]{}, s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Feedback
	for _, id := range sortedKeys(s.feedback) {
		fb := s.feedback[id]
		if f.WebSeriesID != "" && fb.WebSeriesID != f.WebSeriesID {
			continue
		}
		if f.Search != "" && !contains(fb.FeedbackText+" "+fb.FeedbackID, f.Search) {
			continue
		}
		out = append(out, *fb)
	}
	return page(out, p), nil
}

func (s *fakeStore) GetFeedback(_ context.Context, id string) (*models.Feedback, error) {
	s.feedbackReads.Add(1)
	if s.fail != nil {
		return nil, s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fb, ok := s.feedback[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *fb
	return &cp, nil
}

func (s *fakeStore) FeedbackExists(_ context.Context, accountID, seriesID string) (bool, error) {
	if s.fail != nil {
		return false, s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, fb := range s.feedback {
		if fb.AccountID == accountID && fb.WebSeriesID == seriesID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) CreateFeedback(_ context.Context, fb *models.Feedback) (*models.Feedback, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.series[fb.WebSeriesID]; !ok {
		return nil, database.ErrInvalidReference
	}
	for _, existing := range s.feedback {
		if existing.AccountID == fb.AccountID && existing.WebSeriesID == fb.WebSeriesID {
			return nil, database.ErrConflict
		}
	}
	fb.FeedbackID = s.id(models.PrefixFeedback)
	fb.CreatedAt = time.Now()
	cp := *fb
	s.feedback[fb.FeedbackID] = &cp
	s.writes.Add(1)
	out := cp
	return &out, nil
}

func (s *fakeStore) UpdateFeedback(_ context.Context, id string, mutate func(*models.Feedback)) (*models.Feedback, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fb, ok := s.feedback[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	mutate(fb)
	s.writes.Add(1)
	cp := *fb
	return &cp, nil
}

func (s *fakeStore) DeleteFeedback(_ context.Context, id string) error {
	if s.fail != nil {
		return s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.feedback[id]; !ok {
		return database.ErrNotFound
	}
	delete(s.feedback, id)
	s.writes.Add(1)
	return nil
}

// ---------------------------------------------------------------------------
// Production houses and producers
// ---------------------------------------------------------------------------

func (s *fakeStore) ListProductionHouses(_ context.Context, search string, p models.Page) (models.Paged[models.ProductionHouse], error) {
	if s.fail != nil {
		return models.Paged[models.ProductionHouse]{}, s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.ProductionHouse
	for _, id := range sortedKeys(s.houses) {
		if h := s.houses[id]; search == "" || contains(h.Name+" "+h.HouseID, search) {
			out = append(out, *h)
		}
	}
	return page(out, p), nil
}

func (s *fakeStore) GetProductionHouse(_ context.Context, id string) (*models.ProductionHouse, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.houses[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *h
	for _, sid := range sortedKeys(s.series) {
		if ws := s.series[sid]; ws.HouseID == id {
			cp.WebSeries = append(cp.WebSeries, *ws)
		}
	}
	return &cp, nil
}

func (s *fakeStore) CreateProductionHouse(_ context.Context, h *models.ProductionHouse) error {
	if s.fail != nil {
		return s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if h.HouseID == "" {
		h.HouseID = s.id(models.PrefixProductionHouse)
	}
	cp := *h
	s.houses[h.HouseID] = &cp
	s.writes.Add(1)
	return nil
}

func (s *fakeStore) UpdateProductionHouse(_ context.Context, id string, mutate func(*models.ProductionHouse)) (*models.ProductionHouse, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.houses[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	mutate(h)
	s.writes.Add(1)
	cp := *h
	return &cp, nil
}

func (s *fakeStore) DeleteProductionHouse(_ context.Context, id string) error {
	if s.fail != nil {
		return s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.houses[id]; !ok {
		return database.ErrNotFound
	}
	for _, ws := range s.series {
		if ws.HouseID == id {
			return database.ErrInUse
		}
	}
	delete(s.houses, id)
	s.writes.Add(1)
	return nil
}

func (s *fakeStore) ListProducers(_ context.Context, search string, p models.Page) (models.Paged[models.Producer], error) {
	if s.fail != nil {
		return models.Paged[models.Producer]{}, s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Producer
	for _, id := range sortedKeys(s.producers) {
		if pr := s.producers[id]; search == "" || contains(pr.FirstName+" "+pr.LastName+" "+pr.Email, search) {
			out = append(out, *pr)
		}
	}
	return page(out, p), nil
}

func (s *fakeStore) GetProducer(_ context.Context, id string) (*models.Producer, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	pr, ok := s.producers[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *pr
	return &cp, nil
}

func (s *fakeStore) ProducerEmailTaken(_ context.Context, email, exceptID string) (bool, error) {
	if s.fail != nil {
		return false, s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, pr := range s.producers {
		if pr.Email == email && pr.ProducerID != exceptID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) CreateProducer(_ context.Context, pr *models.Producer) error {
	if s.fail != nil {
		return s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	pr.ProducerID = s.id(models.PrefixProducer)
	cp := *pr
	s.producers[pr.ProducerID] = &cp
	s.writes.Add(1)
	return nil
}

func (s *fakeStore) UpdateProducer(_ context.Context, id string, mutate func(*models.Producer)) (*models.Producer, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	pr, ok := s.producers[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	mutate(pr)
	s.writes.Add(1)
	cp := *pr
	return &cp, nil
}

func (s *fakeStore) DeleteProducer(_ context.Context, id string) error {
	if s.fail != nil {
		return s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.producers[id]; !ok {
		return database.ErrNotFound
	}
	delete(s.producers, id)
	s.writes.Add(1)
	return nil
}

// ---------------------------------------------------------------------------
// Relationship tables
// ---------------------------------------------------------------------------

func (s *fakeStore) ListAffiliations(_ context.Context, f models.AffiliationFilter, p models.Page) (models.Paged[models.ProducerAffiliation], error) {
	if s.fail != nil {
		return models.Paged[models.ProducerAffiliation]{}, s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.ProducerAffiliation
	for _, a := range s.affiliations {
		if (f.ProducerID == "" || a.ProducerID == f.ProducerID) && (f.HouseID == "" || a.HouseID == f.HouseID) {
			out = append(out, a)
		}
	}
	return page(out, p), nil
}

func (s *fakeStore) CreateAffiliation(_ context.Context, a *models.ProducerAffiliation) error {
	if s.fail != nil {
		return s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.producers[a.ProducerID]; !ok {
		return database.ErrInvalidReference
	}
	if _, ok := s.houses[a.HouseID]; !ok {
		return database.ErrInvalidReference
	}
	for _, existing := range s.affiliations {
		if existing.ProducerID == a.ProducerID && existing.HouseID == a.HouseID {
			return database.ErrConflict
		}
	}
	s.affiliations = append(s.affiliations, *a)
	s.writes.Add(1)
	return nil
}

func (s *fakeStore) DeleteAffiliation(_ context.Context, producerID, houseID string) error {
	if s.fail != nil {
		return s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.affiliations {
		if a.ProducerID == producerID && a.HouseID == houseID {
			s.affiliations = append(s.affiliations[:i], s.affiliations[i+1:]...)
			s.writes.Add(1)
			return nil
		}
	}
	return database.ErrNotFound
}

func (s *fakeStore) ListTelecasts(_ context.Context, f models.TelecastFilter, p models.Page) (models.Paged[models.Telecast], error) {
	if s.fail != nil {
		return models.Paged[models.Telecast]{}, s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Telecast
	for _, id := range sortedKeys(s.telecasts) {
		if t := s.telecasts[id]; f.EpisodeID == "" || t.EpisodeID == f.EpisodeID {
			out = append(out, *t)
		}
	}
	return page(out, p), nil
}

func (s *fakeStore) CreateTelecast(_ context.Context, t *models.Telecast) error {
	if s.fail != nil {
		return s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.episodes[t.EpisodeID]; !ok {
		return database.ErrInvalidReference
	}
	t.TelecastID = s.id(models.PrefixTelecast)
	if t.TechInterruption == "" {
		t.TechInterruption = "N"
	}
	cp := *t
	s.telecasts[t.TelecastID] = &cp
	s.writes.Add(1)
	return nil
}

func (s *fakeStore) UpdateTelecast(_ context.Context, id string, mutate func(*models.Telecast)) (*models.Telecast, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.telecasts[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	mutate(t)
	s.writes.Add(1)
	cp := *t
	return &cp, nil
}

func (s *fakeStore) DeleteTelecast(_ context.Context, id string) error {
	if s.fail != nil {
		return s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.telecasts[id]; !ok {
		return database.ErrNotFound
	}
	delete(s.telecasts, id)
	s.writes.Add(1)
	return nil
}

func (s *fakeStore) ListContracts(_ context.Context, f models.ContractFilter, p models.Page) (models.Paged[models.SeriesContract], error) {
	if s.fail != nil {
		return models.Paged[models.SeriesContract]{}, s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.SeriesContract
	for _, id := range sortedKeys(s.contracts) {
		c := s.contracts[id]
		if (f.WebSeriesID == "" || c.WebSeriesID == f.WebSeriesID) && (f.Status == "" || c.Status == f.Status) {
			out = append(out, *c)
		}
	}
	return page(out, p), nil
}

func (s *fakeStore) CreateContract(_ context.Context, c *models.SeriesContract) error {
	if s.fail != nil {
		return s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.series[c.WebSeriesID]; !ok {
		return database.ErrInvalidReference
	}
	c.ContractID = s.id(models.PrefixContract)
	if c.SignedDate.IsZero() {
		c.SignedDate = c.StartDate
	}
	c.SyncAliases()
	cp := *c
	s.contracts[c.ContractID] = &cp
	s.writes.Add(1)
	return nil
}

func (s *fakeStore) UpdateContract(_ context.Context, id string, mutate func(*models.SeriesContract)) (*models.SeriesContract, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contracts[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	mutate(c)
	c.SyncAliases()
	s.writes.Add(1)
	cp := *c
	return &cp, nil
}

func (s *fakeStore) DeleteContract(_ context.Context, id string) error {
	if s.fail != nil {
		return s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contracts[id]; !ok {
		return database.ErrNotFound
	}
	delete(s.contracts, id)
	s.writes.Add(1)
	return nil
}

func (s *fakeStore) ListSubtitles(_ context.Context, f models.SubtitleFilter, p models.Page) (models.Paged[models.SubtitleLanguage], error) {
	if s.fail != nil {
		return models.Paged[models.SubtitleLanguage]{}, s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.SubtitleLanguage
	for _, l := range s.subtitles {
		if f.WebSeriesID == "" || l.WebSeriesID == f.WebSeriesID {
			out = append(out, l)
		}
	}
	return page(out, p), nil
}

func (s *fakeStore) CreateSubtitle(_ context.Context, l *models.SubtitleLanguage) error {
	if s.fail != nil {
		return s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.series[l.WebSeriesID]; !ok {
		return database.ErrInvalidReference
	}
	for _, existing := range s.subtitles {
		if existing.WebSeriesID == l.WebSeriesID && existing.Language == l.Language {
			return database.ErrConflict
		}
	}
	l.SubtitleLanguageID = s.id(models.PrefixSubtitle)
	s.subtitles = append(s.subtitles, *l)
	s.writes.Add(1)
	return nil
}

func (s *fakeStore) DeleteSubtitle(_ context.Context, seriesID, language string) error {
	if s.fail != nil {
		return s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.subtitles {
		if l.WebSeriesID == seriesID && l.Language == language {
			s.subtitles = append(s.subtitles[:i], s.subtitles[i+1:]...)
			s.writes.Add(1)
			return nil
		}
	}
	return database.ErrNotFound
}

func (s *fakeStore) ListReleases(_ context.Context, f models.ReleaseFilter, p models.Page) (models.Paged[models.Release], error) {
	if s.fail != nil {
		return models.Paged[models.Release]{}, s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Release
	for _, r := range s.releases {
		if (f.WebSeriesID == "" || r.WebSeriesID == f.WebSeriesID) && (f.CountryName == "" || r.CountryName == f.CountryName) {
			out = append(out, r)
		}
	}
	return page(out, p), nil
}

func (s *fakeStore) CreateRelease(_ context.Context, r *models.Release) error {
	if s.fail != nil {
		return s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.series[r.WebSeriesID]; !ok {
		return database.ErrInvalidReference
	}
	for _, existing := range s.releases {
		if existing.WebSeriesID == r.WebSeriesID && existing.CountryName == r.CountryName {
			return database.ErrConflict
		}
	}
	if _, ok := s.countries[r.CountryName]; !ok {
		s.countries[r.CountryName] = time.Now()
	}
	s.releases = append(s.releases, *r)
	s.writes.Add(1)
	return nil
}

func (s *fakeStore) UpdateReleaseDate(_ context.Context, seriesID, country string, date models.Date) (*models.Release, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.releases {
		if s.releases[i].WebSeriesID == seriesID && s.releases[i].CountryName == country {
			s.releases[i].ReleaseDate = date
			s.writes.Add(1)
			cp := s.releases[i]
			return &cp, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *fakeStore) DeleteRelease(_ context.Context, seriesID, country string) error {
	if s.fail != nil {
		return s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.releases {
		if r.WebSeriesID == seriesID && r.CountryName == country {
			s.releases = append(s.releases[:i], s.releases[i+1:]...)
			s.writes.Add(1)
			return nil
		}
	}
	return database.ErrNotFound
}

// ---------------------------------------------------------------------------
// Admin
// ---------------------------------------------------------------------------

func (s *fakeStore) Stats(_ context.Context) (*models.SystemStats, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var st models.SystemStats
	for _, a := range s.accounts {
		st.Users.Total++
		switch a.AccountType {
		case models.RoleCustomer:
			st.Users.Customers++
		case models.RoleEmployee:
			st.Users.Employees++
		case models.RoleAdmin:
			st.Users.Admins++
		}
		if a.IsActive {
			st.Users.Active++
		}
	}
	st.Series.Total = int64(len(s.series))
	st.Series.TotalEpisodes = int64(len(s.episodes))
	var sum int
	for _, f := range s.feedback {
		st.Feedback.Total++
		sum += f.Rating
	}
	if st.Feedback.Total > 0 {
		st.Feedback.AverageRating = math.Round(float64(sum)/float64(st.Feedback.Total)*100) / 100
	}
	return &st, nil
}

func (s *fakeStore) RecentActivity(_ context.Context) ([]models.ActivityLog, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	return nil, nil
}

func (s *fakeStore) Vacuum(_ context.Context) error {
	return s.fail
}

func (s *fakeStore) Ping(_ context.Context) error {
	return s.fail
}
