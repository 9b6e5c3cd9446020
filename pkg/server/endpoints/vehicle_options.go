package endpoints

import (
	"net/http"

	"coride/pkg/model"
	"coride/pkg/server"
	"coride/pkg/server/middleware"
)

// RegisterVehicleOptionsEndpoints registers the vehicle option catalog.
func RegisterVehicleOptionsEndpoints(s *server.Server) {
	auth := middleware.NewAuthenticator(s.Tokens)
	cacheAside := middleware.NewCacheAside(s.Cache, s.Config.CacheKeyPrefix)

	options := model.NewMapper[model.VehicleOption](s.DB, model.VehicleOptionBinding)

	s.API.Handle("/vehicle-options",
		chain(handleListVehicleOptions(options), auth.Verify, cacheAside.ReadThrough(vehicleOptionsFamily))).Methods("GET")
	// Mutations also flush the user family, since per-user option lists
	// embed catalog rows.
	s.API.Handle("/vehicle-options",
		chain(handleSaveVehicleOption(options), auth.Verify, cacheAside.Invalidate(vehicleOptionsFamily, usersFamily))).Methods("POST")
	s.API.Handle("/vehicle-options",
		chain(handleDeleteVehicleOption(options), auth.Verify, cacheAside.Invalidate(vehicleOptionsFamily, usersFamily))).Methods("DELETE")

	s.API.Handle("/vehicle-option/{id:[0-9]+}",
		chain(handleGetVehicleOption(options), auth.Verify, cacheAside.ReadThrough(vehicleOptionsFamily))).Methods("GET")
}

func handleListVehicleOptions(options *model.Mapper[model.VehicleOption, *model.VehicleOption]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results, err := options.FindAll(r.Context(), filterFromQuery(r, options.Binding()))
		if err != nil {
			respondWithModelError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, results)
	}
}

func handleGetVehicleOption(options *model.Mapper[model.VehicleOption, *model.VehicleOption]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid vehicle option id")
			return
		}

		option, err := options.FindOne(r.Context(), id)
		if err != nil {
			respondWithModelError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, option)
	}
}

func handleSaveVehicleOption(options *model.Mapper[model.VehicleOption, *model.VehicleOption]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var option model.VehicleOption
		if err := decodeBody(r, &option); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := options.Save(r.Context(), &option); err != nil {
			respondWithModelError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, option)
	}
}

func handleDeleteVehicleOption(options *model.Mapper[model.VehicleOption, *model.VehicleOption]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload idPayload
		if err := decodeBody(r, &payload); err != nil || payload.ID == 0 {
			respondWithError(w, http.StatusBadRequest, "vehicle option id is required")
			return
		}

		option := model.VehicleOption{ID: payload.ID}
		if err := options.Delete(r.Context(), &option); err != nil {
			respondWithModelError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
