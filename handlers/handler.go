package handlers

import (
	"log/slog"

	"cafe-ordering-api/catalog"
	"cafe-ordering-api/checkout"
	"cafe-ordering-api/session"
	"cafe-ordering-api/tables"
	"cafe-ordering-api/tracking"
	"cafe-ordering-api/users"
)

// Handler carries the services behind every HTTP endpoint.
type Handler struct {
	Catalog   *catalog.Catalog
	Tables    *tables.Directory
	Sessions  *session.Store
	Checkout  *checkout.Service
	Tracking  *tracking.Service
	Users     *users.Service
	JWTSecret []byte
	Log       *slog.Logger
}
