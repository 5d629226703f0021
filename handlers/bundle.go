package handlers

import (
	"servicelink/services/auth"
)

// HandlerBundle groups the endpoint handlers and what the route middleware needs.
type HandlerBundle struct {
	AuthService auth.AuthService
	AdminKey    string

	Auth         *AuthHandler
	Location     *LocationHandler
	Workers      *WorkerHandler
	Booking      *BookingHandler
	Notification *NotificationHandler
	Admin        *AdminHandler
}
