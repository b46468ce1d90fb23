package service

import (
	"strings"

	"github.com/iliyamo/fyyur-booking/internal/model"
)

// VenueInput is the submitted venue form.  Every field is rewritten on
// update.
type VenueInput struct {
	Name               string   `json:"name" form:"name" validate:"required"`
	City               string   `json:"city" form:"city" validate:"required,max=120"`
	State              string   `json:"state" form:"state" validate:"required,usstate"`
	Address            string   `json:"address" form:"address" validate:"required,max=120"`
	Phone              string   `json:"phone" form:"phone" validate:"max=120"`
	Genres             []string `json:"genres" form:"genres" validate:"required,min=1,dive,genre"`
	ImageLink          string   `json:"image_link" form:"image_link" validate:"required,max=500"`
	FacebookLink       string   `json:"facebook_link" form:"facebook_link" validate:"omitempty,url,max=120"`
	WebsiteLink        string   `json:"website_link" form:"website_link" validate:"omitempty,url,max=120"`
	SeekingTalent      bool     `json:"seeking_talent" form:"seeking_talent"`
	SeekingDescription string   `json:"seeking_description" form:"seeking_description" validate:"max=120"`
}

// ArtistInput is the submitted artist form.
type ArtistInput struct {
	Name               string   `json:"name" form:"name" validate:"required"`
	City               string   `json:"city" form:"city" validate:"required,max=120"`
	State              string   `json:"state" form:"state" validate:"required,usstate"`
	Phone              string   `json:"phone" form:"phone" validate:"max=120"`
	Genres             []string `json:"genres" form:"genres" validate:"required,min=1,dive,genre"`
	ImageLink          string   `json:"image_link" form:"image_link" validate:"required,max=500"`
	FacebookLink       string   `json:"facebook_link" form:"facebook_link" validate:"omitempty,url,max=120"`
	WebsiteLink        string   `json:"website_link" form:"website_link" validate:"omitempty,url,max=120"`
	SeekingVenue       bool     `json:"seeking_venue" form:"seeking_venue"`
	SeekingDescription string   `json:"seeking_description" form:"seeking_description" validate:"max=120"`
}

// ShowInput is the submitted show form.  StartTime is RFC 3339 or
// "YYYY-MM-DD HH:MM:SS".
type ShowInput struct {
	VenueID   int64  `json:"venue_id" form:"venue_id" validate:"gt=0"`
	ArtistID  int64  `json:"artist_id" form:"artist_id" validate:"gt=0"`
	StartTime string `json:"start_time" form:"start_time" validate:"required"`
}

func (in *VenueInput) normalize() {
	trim(&in.Name, &in.City, &in.State, &in.Address, &in.Phone, &in.ImageLink,
		&in.FacebookLink, &in.WebsiteLink, &in.SeekingDescription)
	in.State = strings.ToUpper(in.State)
	in.Genres = trimAll(in.Genres)
}

func (in *ArtistInput) normalize() {
	trim(&in.Name, &in.City, &in.State, &in.Phone, &in.ImageLink,
		&in.FacebookLink, &in.WebsiteLink, &in.SeekingDescription)
	in.State = strings.ToUpper(in.State)
	in.Genres = trimAll(in.Genres)
}

func (in VenueInput) venue(id uint64) *model.Venue {
	return &model.Venue{
		ID:                 id,
		Name:               in.Name,
		City:               in.City,
		State:              in.State,
		Address:            in.Address,
		Phone:              in.Phone,
		Genres:             in.Genres,
		ImageLink:          in.ImageLink,
		FacebookLink:       in.FacebookLink,
		WebsiteLink:        in.WebsiteLink,
		SeekingTalent:      in.SeekingTalent,
		SeekingDescription: in.SeekingDescription,
	}
}

func (in ArtistInput) artist(id uint64) *model.Artist {
	return &model.Artist{
		ID:                 id,
		Name:               in.Name,
		City:               in.City,
		State:              in.State,
		Phone:              in.Phone,
		Genres:             in.Genres,
		ImageLink:          in.ImageLink,
		FacebookLink:       in.FacebookLink,
		WebsiteLink:        in.WebsiteLink,
		SeekingVenue:       in.SeekingVenue,
		SeekingDescription: in.SeekingDescription,
	}
}

func trim(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}

// trimAll trims every entry and drops the empty ones, keeping order.
func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
