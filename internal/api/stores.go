// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package api

import (
	"context"

	"github.com/tomtom215/reelhouse/internal/models"
)

// Store interfaces consumed by the handlers. *database.DB implements all of
// them; tests substitute in-memory fakes. Missing rows are reported as
// database.ErrNotFound and constraint violations as the other database
// sentinels.

// AccountStore persists viewer accounts.
type AccountStore interface {
	CreateAccount(ctx context.Context, a *models.Account) error
	GetAccount(ctx context.Context, accountID string) (*models.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ListAccounts(ctx context.Context, f models.AccountFilter, page models.Page) (models.Paged[models.Account], error)
	SetAccountRole(ctx context.Context, accountID, role string) (*models.Account, error)
	SetAccountActive(ctx context.Context, accountID string, active bool) (*models.Account, error)
	SetAccountPassword(ctx context.Context, accountID, passwordHash string) error
	DeleteAccount(ctx context.Context, accountID string) error
	CountAccountsByCountry(ctx context.Context, country string) (int64, error)
}

// CountryStore persists countries.
type CountryStore interface {
	ListCountries(ctx context.Context) ([]models.Country, error)
	CreateCountry(ctx context.Context, name string) (*models.Country, error)
	DeleteCountry(ctx context.Context, name string) error
}

// SeriesStore persists web series.
type SeriesStore interface {
	ListSeries(ctx context.Context, f models.SeriesFilter, page models.Page) (models.Paged[models.WebSeries], error)
	GetSeries(ctx context.Context, id string) (*models.WebSeries, error)
	CreateSeries(ctx context.Context, s *models.WebSeries) error
	UpdateSeries(ctx context.Context, id string, mutate func(*models.WebSeries)) (*models.WebSeries, error)
	DeleteSeries(ctx context.Context, id string) error
}

// EpisodeStore persists episodes.
type EpisodeStore interface {
	ListEpisodes(ctx context.Context, f models.EpisodeFilter, page models.Page) (models.Paged[models.Episode], error)
	GetEpisode(ctx context.Context, id string) (*models.Episode, error)
	CreateEpisode(ctx context.Context, e *models.Episode) error
	UpdateEpisode(ctx context.Context, id string, mutate func(*models.Episode)) (*models.Episode, error)
	DeleteEpisode(ctx context.Context, id string) error
}

// FeedbackStore persists viewer feedback.
type FeedbackStore interface {
	ListFeedback(ctx context.Context, f models.FeedbackFilter, page models.Page) (models.Paged[models.Feedback], error)
	GetFeedback(ctx context.Context, id string) (*models.Feedback, error)
	FeedbackExists(ctx context.Context, accountID, seriesID string) (bool, error)
	CreateFeedback(ctx context.Context, f *models.Feedback) (*models.Feedback, error)
	UpdateFeedback(ctx context.Context, id string, mutate func(*models.Feedback)) (*models.Feedback, error)
	DeleteFeedback(ctx context.Context, id string) error
}

// ProductionHouseStore persists production houses.
type ProductionHouseStore interface {
	ListProductionHouses(ctx context.Context, search string, page models.Page) (models.Paged[models.ProductionHouse], error)
	GetProductionHouse(ctx context.Context, id string) (*models.ProductionHouse, error)
	CreateProductionHouse(ctx context.Context, h *models.ProductionHouse) error
	UpdateProductionHouse(ctx context.Context, id string, mutate func(*models.ProductionHouse)) (*models.ProductionHouse, error)
	DeleteProductionHouse(ctx context.Context, id string) error
}

// ProducerStore persists producers.
type ProducerStore interface {
	ListProducers(ctx context.Context, search string, page models.Page) (models.Paged[models.Producer], error)
	GetProducer(ctx context.Context, id string) (*models.Producer, error)
	ProducerEmailTaken(ctx context.Context, email, exceptID string) (bool, error)
	CreateProducer(ctx context.Context, p *models.Producer) error
	UpdateProducer(ctx context.Context, id string, mutate func(*models.Producer)) (*models.Producer, error)
	DeleteProducer(ctx context.Context, id string) error
}

// RelationStore persists the relationship tables: affiliations, telecasts,
// contracts, subtitle languages and releases.
type RelationStore interface {
	ListAffiliations(ctx context.Context, f models.AffiliationFilter, page models.Page) (models.Paged[models.ProducerAffiliation], error)
	CreateAffiliation(ctx context.Context, a *models.ProducerAffiliation) error
	DeleteAffiliation(ctx context.Context, producerID, houseID string) error

	ListTelecasts(ctx context.Context, f models.TelecastFilter, page models.Page) (models.Paged[models.Telecast], error)
	CreateTelecast(ctx context.Context, t *models.Telecast) error
	UpdateTelecast(ctx context.Context, id string, mutate func(*models.Telecast)) (*models.Telecast, error)
	DeleteTelecast(ctx context.Context, id string) error

	ListContracts(ctx context.Context, f models.ContractFilter, page models.Page) (models.Paged[models.SeriesContract], error)
	CreateContract(ctx context.Context, c *models.SeriesContract) error
	UpdateContract(ctx context.Context, id string, mutate func(*models.SeriesContract)) (*models.SeriesContract, error)
	DeleteContract(ctx context.Context, id string) error

	ListSubtitles(ctx context.Context, f models.SubtitleFilter, page models.Page) (models.Paged[models.SubtitleLanguage], error)
	CreateSubtitle(ctx context.Context, l *models.SubtitleLanguage) error
	DeleteSubtitle(ctx context.Context, seriesID, language string) error

	ListReleases(ctx context.Context, f models.ReleaseFilter, page models.Page) (models.Paged[models.Release], error)
	CreateRelease(ctx context.Context, r *models.Release) error
	UpdateReleaseDate(ctx context.Context, seriesID, country string, date models.Date) (*models.Release, error)
	DeleteRelease(ctx context.Context, seriesID, country string) error
}

// AdminStore serves the admin dashboard and maintenance endpoints.
type AdminStore interface {
	Stats(ctx context.Context) (*models.SystemStats, error)
	RecentActivity(ctx context.Context) ([]models.ActivityLog, error)
	Vacuum(ctx context.Context) error
}

// Store is everything the handlers need from persistence.
type Store interface {
	AccountStore
	CountryStore
	SeriesStore
	EpisodeStore
	FeedbackStore
	ProductionHouseStore
	ProducerStore
	RelationStore
	AdminStore
	Ping(ctx context.Context) error
}
