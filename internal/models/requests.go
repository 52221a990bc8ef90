// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package models

// Request bodies. Create requests use plain fields with "required"; update
// requests use pointers so that an absent field is left unchanged. String
// length limits follow the column widths in the schema.

// RegisterRequest is the body of POST /api/auth/register. AccountType is
// accepted for compatibility but self-registration always yields a Customer.
type RegisterRequest struct {
	FirstName   string  `json:"first_name" validate:"required,notblank,max=30"`
	MiddleName  *string `json:"middle_name" validate:"omitempty,max=30"`
	LastName    string  `json:"last_name" validate:"required,notblank,max=30"`
	Email       string  `json:"email" validate:"required,email,max=64"`
	Password    string  `json:"password" validate:"required,password"`
	Street      string  `json:"street" validate:"required,notblank,max=64"`
	City        string  `json:"city" validate:"required,notblank,max=64"`
	State       string  `json:"state" validate:"required,notblank,max=64"`
	CountryName string  `json:"country_name" validate:"required,notblank,max=64"`
	AccountType string  `json:"account_type"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateSeriesRequest is the body of POST /api/series.
type CreateSeriesRequest struct {
	Title       string `json:"title" validate:"required,notblank,max=64"`
	NumEpisodes int    `json:"num_episodes" validate:"gte=0"`
	Type        string `json:"type" validate:"required,notblank,max=15"`
	HouseID     string `json:"house_id" validate:"required,max=10"`
}

// UpdateSeriesRequest is the body of PUT /api/series/{id}.
type UpdateSeriesRequest struct {
	Title       *string `json:"title" validate:"omitempty,notblank,max=64"`
	NumEpisodes *int    `json:"num_episodes" validate:"omitempty,gte=0"`
	Type        *string `json:"type" validate:"omitempty,notblank,max=15"`
}

// CreateEpisodeRequest is the body of POST /api/episodes.
type CreateEpisodeRequest struct {
	EpisodeNumber   string  `json:"episode_number" validate:"required,max=10"`
	Title           *string `json:"title" validate:"omitempty,max=64"`
	WebSeriesID     string  `json:"webseries_id" validate:"required,max=10"`
	DurationMinutes *int    `json:"duration_minutes" validate:"omitempty,gte=0"`
	ReleaseDate     *string `json:"release_date" validate:"omitempty,date"`
}

// UpdateEpisodeRequest is the body of PUT /api/episodes/{id}.
type UpdateEpisodeRequest struct {
	Title           *string `json:"title" validate:"omitempty,max=64"`
	DurationMinutes *int    `json:"duration_minutes" validate:"omitempty,gte=0"`
	ReleaseDate     *string `json:"release_date" validate:"omitempty,date"`
}

// CreateFeedbackRequest is the body of POST /api/feedback. The 128 character
// limit on FeedbackText applies after trimming.
type CreateFeedbackRequest struct {
	Rating       *int   `json:"rating" validate:"required,min=1,max=5"`
	FeedbackText string `json:"feedback_text" validate:"required,notblank,trimmax=128"`
	WebSeriesID  string `json:"webseries_id" validate:"required,max=10"`
}

// UpdateFeedbackRequest is the body of PUT /api/feedback/{id}.
type UpdateFeedbackRequest struct {
	Rating       *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	FeedbackText *string `json:"feedback_text" validate:"omitempty,notblank,trimmax=128"`
}

// CreateProductionHouseRequest is the body of POST /api/production-houses.
type CreateProductionHouseRequest struct {
	Name            string `json:"name" validate:"required,notblank,max=64"`
	YearEstablished string `json:"year_established" validate:"required,max=10"`
	Street          string `json:"street" validate:"required,notblank,max=64"`
	City            string `json:"city" validate:"required,notblank,max=64"`
	State           string `json:"state" validate:"required,notblank,max=64"`
	Nationality     string `json:"nationality" validate:"required,notblank,max=20"`
}

// UpdateProductionHouseRequest is the body of PUT /api/production-houses/{id}.
type UpdateProductionHouseRequest struct {
	Name            *string `json:"name" validate:"omitempty,notblank,max=64"`
	YearEstablished *string `json:"year_established" validate:"omitempty,max=10"`
	Street          *string `json:"street" validate:"omitempty,notblank,max=64"`
	City            *string `json:"city" validate:"omitempty,notblank,max=64"`
	State           *string `json:"state" validate:"omitempty,notblank,max=64"`
	Nationality     *string `json:"nationality" validate:"omitempty,notblank,max=20"`
}

// CreateProducerRequest is the body of POST /api/producers.
type CreateProducerRequest struct {
	FirstName   string  `json:"first_name" validate:"required,notblank,max=64"`
	MiddleName  *string `json:"middle_name" validate:"omitempty,max=64"`
	LastName    string  `json:"last_name" validate:"required,notblank,max=64"`
	Phone       int64   `json:"phone" validate:"required,gt=0"`
	Street      string  `json:"street" validate:"required,notblank,max=64"`
	City        string  `json:"city" validate:"required,notblank,max=64"`
	State       string  `json:"state" validate:"required,notblank,max=32"`
	Email       string  `json:"email" validate:"required,email,max=64"`
	Nationality string  `json:"nationality" validate:"required,notblank,max=20"`
}

// UpdateProducerRequest is the body of PUT /api/producers/{id}.
type UpdateProducerRequest struct {
	FirstName   *string `json:"first_name" validate:"omitempty,notblank,max=64"`
	MiddleName  *string `json:"middle_name" validate:"omitempty,max=64"`
	LastName    *string `json:"last_name" validate:"omitempty,notblank,max=64"`
	Phone       *int64  `json:"phone" validate:"omitempty,gt=0"`
	Street      *string `json:"street" validate:"omitempty,notblank,max=64"`
	City        *string `json:"city" validate:"omitempty,notblank,max=64"`
	State       *string `json:"state" validate:"omitempty,notblank,max=32"`
	Email       *string `json:"email" validate:"omitempty,email,max=64"`
	Nationality *string `json:"nationality" validate:"omitempty,notblank,max=20"`
}

// CreateAffiliationRequest is the body of POST /api/producer-affiliations.
type CreateAffiliationRequest struct {
	ProducerID string  `json:"producer_id" validate:"required,max=10"`
	HouseID    string  `json:"house_id" validate:"required,max=10"`
	StartDate  string  `json:"start_date" validate:"required,date"`
	EndDate    *string `json:"end_date" validate:"omitempty,date"`
}

// CreateTelecastRequest is the body of POST /api/telecasts.
type CreateTelecastRequest struct {
	StartDate        string `json:"start_date" validate:"required,datetime_local"`
	EndDate          string `json:"end_date" validate:"required,datetime_local"`
	TechInterruption string `json:"tech_interruption" validate:"omitempty,yn"`
	TotalViewers     int64  `json:"total_viewers" validate:"gte=0"`
	EpisodeID        string `json:"episode_id" validate:"required,max=10"`
}

// UpdateTelecastRequest is the body of PUT /api/telecasts/{id}.
type UpdateTelecastRequest struct {
	StartDate        *string `json:"start_date" validate:"omitempty,datetime_local"`
	EndDate          *string `json:"end_date" validate:"omitempty,datetime_local"`
	TechInterruption *string `json:"tech_interruption" validate:"omitempty,yn"`
	TotalViewers     *int64  `json:"total_viewers" validate:"omitempty,gte=0"`
}

// CreateContractRequest is the body of POST /api/contracts. Either
// ChargePerEpisode or its alias ContractAmount must be set; SignedDate
// defaults to StartDate.
type CreateContractRequest struct {
	WebSeriesID      string   `json:"webseries_id" validate:"required,max=10"`
	SignedDate       *string  `json:"signed_date" validate:"omitempty,date"`
	StartDate        string   `json:"start_date" validate:"required,date"`
	EndDate          string   `json:"end_date" validate:"required,date"`
	ContractStatus   string   `json:"contract_status" validate:"required,notblank,max=16"`
	ChargePerEpisode *float64 `json:"charge_per_episode" validate:"omitempty,gte=0"`
	ContractAmount   *float64 `json:"contract_amount" validate:"omitempty,gte=0"`
}

// Charge returns the charge per episode, preferring the canonical field.
func (r *CreateContractRequest) Charge() (float64, bool) {
	return pickCharge(r.ChargePerEpisode, r.ContractAmount)
}

// UpdateContractRequest is the body of PUT /api/contracts/{id}.
type UpdateContractRequest struct {
	SignedDate       *string  `json:"signed_date" validate:"omitempty,date"`
	StartDate        *string  `json:"start_date" validate:"omitempty,date"`
	EndDate          *string  `json:"end_date" validate:"omitempty,date"`
	ContractStatus   *string  `json:"contract_status" validate:"omitempty,notblank,max=16"`
	ChargePerEpisode *float64 `json:"charge_per_episode" validate:"omitempty,gte=0"`
	ContractAmount   *float64 `json:"contract_amount" validate:"omitempty,gte=0"`
}

// Charge returns the charge per episode, preferring the canonical field.
func (r *UpdateContractRequest) Charge() (float64, bool) {
	return pickCharge(r.ChargePerEpisode, r.ContractAmount)
}

func pickCharge(canonical, alias *float64) (float64, bool) {
	if canonical != nil {
		return *canonical, true
	}
	if alias != nil {
		return *alias, true
	}
	return 0, false
}

// CreateSubtitleRequest is the body of POST /api/subtitle-languages.
type CreateSubtitleRequest struct {
	WebSeriesID string `json:"webseries_id" validate:"required,max=10"`
	Language    string `json:"language" validate:"required,notblank,max=20"`
}

// CreateReleaseRequest is the body of POST /api/releases.
type CreateReleaseRequest struct {
	WebSeriesID string `json:"webseries_id" validate:"required,max=10"`
	CountryName string `json:"country_name" validate:"required,notblank,max=64"`
	ReleaseDate string `json:"release_date" validate:"required,date"`
}

// UpdateReleaseRequest is the body of PUT /api/releases/{webseries_id}/{country_name}.
type UpdateReleaseRequest struct {
	ReleaseDate *string `json:"release_date" validate:"omitempty,date"`
}

// ChangeRoleRequest is the body of PUT /api/admin/users/{id}/role.
type ChangeRoleRequest struct {
	AccountType string `json:"account_type" validate:"required,role"`
}

// ChangeStatusRequest is the body of PUT /api/admin/users/{id}/status.
type ChangeStatusRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// ResetPasswordRequest is the body of POST /api/admin/users/{id}/reset-password.
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,password"`
}

// CreateCountryRequest is the body of POST /api/admin/countries.
type CreateCountryRequest struct {
	CountryName string `json:"country_name" validate:"required,notblank,max=64"`
}
