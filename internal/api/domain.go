package api

import (
	"github.com/mwhitfield/placard/internal/announcements"
	"github.com/mwhitfield/placard/internal/signatories"
	"github.com/mwhitfield/placard/internal/users"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Announcements announcements.System
	Signatories   signatories.System
	Users         users.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	usersSystem := users.New(
		runtime.Database.Connection(),
		users.NewTokens(runtime.Auth.Secret, runtime.Auth.TokenTTLDuration()),
		runtime.Logger,
	)

	signatoriesSystem := signatories.New(
		runtime.Database.Connection(),
		runtime.Logger,
	)

	announcementsSystem := announcements.New(
		runtime.Database.Connection(),
		runtime.Storage,
		signatoriesSystem,
		runtime.Logger,
		runtime.Pagination,
	)

	return &Domain{
		Announcements: announcementsSystem,
		Signatories:   signatoriesSystem,
		Users:         usersSystem,
	}
}
