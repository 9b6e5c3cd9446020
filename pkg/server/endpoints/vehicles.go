package endpoints

import (
	"net/http"
	"strconv"

	"coride/pkg/model"
	"coride/pkg/server"
	"coride/pkg/server/middleware"
)

// RegisterVehiclesEndpoints registers the per-user vehicle routes.
func RegisterVehiclesEndpoints(s *server.Server) {
	auth := middleware.NewAuthenticator(s.Tokens)
	cacheAside := middleware.NewCacheAside(s.Cache, s.Config.CacheKeyPrefix)

	vehicles := model.NewMapper[model.Vehicle](s.DB, model.VehicleBinding)

	s.API.Handle("/user/{id:[0-9]+}/vehicles",
		chain(handleListUserVehicles(vehicles), auth.VerifyOwner, cacheAside.ReadThrough(vehiclesFamily))).Methods("GET")
	s.API.Handle("/user/{id:[0-9]+}/vehicles",
		chain(handleSaveUserVehicle(vehicles), auth.VerifyOwner, cacheAside.Invalidate(vehiclesFamily))).Methods("POST")
	s.API.Handle("/user/{id:[0-9]+}/vehicles",
		chain(handleDeleteUserVehicle(vehicles), auth.VerifyOwner, cacheAside.Invalidate(vehiclesFamily))).Methods("DELETE")

	s.API.Handle("/user/{userId:[0-9]+}/vehicle/{vehicleId:[0-9]+}",
		chain(handleUpdateUserVehicle(vehicles), auth.VerifyOwner, cacheAside.Invalidate(vehiclesFamily))).Methods("PATCH")
}

func handleListUserVehicles(vehicles *model.Mapper[model.Vehicle, *model.Vehicle]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid user id")
			return
		}

		filter := model.Filter{}.Where("user_id", strconv.Itoa(id))
		results, err := vehicles.FindAll(r.Context(), filter)
		if err != nil {
			respondWithModelError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, results)
	}
}

func handleSaveUserVehicle(vehicles *model.Mapper[model.Vehicle, *model.Vehicle]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := pathID(r, "id")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid user id")
			return
		}

		var vehicle model.Vehicle
		if err := decodeBody(r, &vehicle); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		vehicle.UserID = userID

		if err := vehicles.Save(r.Context(), &vehicle); err != nil {
			respondWithModelError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, vehicle)
	}
}

func handleUpdateUserVehicle(vehicles *model.Mapper[model.Vehicle, *model.Vehicle]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := pathID(r, "userId")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid user id")
			return
		}
		vehicleID, err := pathID(r, "vehicleId")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid vehicle id")
			return
		}

		var vehicle model.Vehicle
		if err := decodeBody(r, &vehicle); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		vehicle.ID = vehicleID
		vehicle.UserID = userID

		if err := vehicles.Save(r.Context(), &vehicle); err != nil {
			respondWithModelError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, vehicle)
	}
}

func handleDeleteUserVehicle(vehicles *model.Mapper[model.Vehicle, *model.Vehicle]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := pathID(r, "id")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid user id")
			return
		}

		var payload idPayload
		if err := decodeBody(r, &payload); err != nil || payload.ID == 0 {
			respondWithError(w, http.StatusBadRequest, "vehicle id is required")
			return
		}

		vehicle, err := vehicles.FindOne(r.Context(), payload.ID)
		if err != nil {
			respondWithModelError(w, err)
			return
		}
		if vehicle.UserID != userID {
			respondWithError(w, http.StatusUnauthorized, "vehicle does not belong to this user")
			return
		}

		if err := vehicles.Delete(r.Context(), vehicle); err != nil {
			respondWithModelError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
