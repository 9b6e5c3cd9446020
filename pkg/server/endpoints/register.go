package endpoints

import (
	"coride/pkg/server"
)

// Route families for cache keying. A mutation on a family invalidates every
// cached read of that family, never individual keys.
const (
	usersFamily          = "users"
	activitiesFamily     = "activities"
	travelsFamily        = "travels"
	vehiclesFamily       = "vehicles"
	vehicleOptionsFamily = "vehicle-options"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterLoginEndpoint(srv)
	RegisterStatusEndpoint(srv)
	RegisterUsersEndpoints(srv)
	RegisterActivitiesEndpoints(srv)
	RegisterTravelsEndpoints(srv)
	RegisterVehiclesEndpoints(srv)
	RegisterVehicleOptionsEndpoints(srv)
}
