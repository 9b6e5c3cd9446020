package endpoints

import (
	"net/http"
	"strconv"

	"gorm.io/gorm"

	"coride/pkg/model"
	"coride/pkg/server"
	"coride/pkg/server/middleware"
)

// RegisterTravelsEndpoints registers the travel resource. Reading travels is
// open to any authenticated caller; creating, updating and deleting them is
// bound to the owning user's identity.
func RegisterTravelsEndpoints(s *server.Server) {
	db := s.DB

	auth := middleware.NewAuthenticator(s.Tokens)
	cacheAside := middleware.NewCacheAside(s.Cache, s.Config.CacheKeyPrefix)

	travels := model.NewMapper[model.Travel](db, model.TravelBinding)

	s.API.Handle("/travels",
		chain(handleListTravels(travels), auth.Verify, cacheAside.ReadThrough(travelsFamily))).Methods("GET")
	s.API.Handle("/travels/search",
		chain(handleSearchTravels(db), auth.Verify, cacheAside.ReadThrough(travelsFamily))).Methods("GET")
	s.API.Handle("/travel/{id:[0-9]+}",
		chain(handleGetTravel(travels), auth.Verify, cacheAside.ReadThrough(travelsFamily))).Methods("GET")

	s.API.Handle("/travels/user/{id:[0-9]+}",
		chain(handleListTravelsForUser(travels), auth.VerifyOwner, cacheAside.ReadThrough(travelsFamily))).Methods("GET")
	s.API.Handle("/travels/user/{id:[0-9]+}",
		chain(handleSaveTravelForUser(travels), auth.VerifyOwner, cacheAside.Invalidate(travelsFamily))).Methods("POST")
	s.API.Handle("/travels/user/{id:[0-9]+}",
		chain(handleDeleteTravelForUser(travels), auth.VerifyOwner, cacheAside.Invalidate(travelsFamily))).Methods("DELETE")

	s.API.Handle("/travel/{travelId:[0-9]+}/user/{userId:[0-9]+}",
		chain(handleUpdateTravelForUser(travels), auth.VerifyOwner, cacheAside.Invalidate(travelsFamily))).Methods("PATCH")
}

func handleListTravels(travels *model.Mapper[model.Travel, *model.Travel]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results, err := travels.FindAll(r.Context(), filterFromQuery(r, travels.Binding()))
		if err != nil {
			respondWithModelError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, results)
	}
}

// handleSearchTravels serves GET /travels/search?lat=...&long=... for the
// front end's departure-point lookup.
func handleSearchTravels(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
		long, longErr := strconv.ParseFloat(r.URL.Query().Get("long"), 64)
		if latErr != nil || longErr != nil {
			respondWithError(w, http.StatusBadRequest, "lat and long query parameters are required")
			return
		}

		results, err := model.SearchByDeparture(r.Context(), db, lat, long)
		if err != nil {
			respondWithModelError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, results)
	}
}

func handleGetTravel(travels *model.Mapper[model.Travel, *model.Travel]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid travel id")
			return
		}

		travel, err := travels.FindOne(r.Context(), id)
		if err != nil {
			respondWithModelError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, travel)
	}
}

func handleListTravelsForUser(travels *model.Mapper[model.Travel, *model.Travel]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid user id")
			return
		}

		filter := model.Filter{}.Where("user_id", strconv.Itoa(id))
		results, err := travels.FindAll(r.Context(), filter)
		if err != nil {
			respondWithModelError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, results)
	}
}

func handleSaveTravelForUser(travels *model.Mapper[model.Travel, *model.Travel]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := pathID(r, "id")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid user id")
			return
		}

		var travel model.Travel
		if err := decodeBody(r, &travel); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		travel.UserID = userID

		if err := travels.Save(r.Context(), &travel); err != nil {
			respondWithModelError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, travel)
	}
}

func handleUpdateTravelForUser(travels *model.Mapper[model.Travel, *model.Travel]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		travelID, err := pathID(r, "travelId")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid travel id")
			return
		}
		userID, err := pathID(r, "userId")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid user id")
			return
		}

		var travel model.Travel
		if err := decodeBody(r, &travel); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		travel.ID = travelID
		travel.UserID = userID

		if err := travels.Save(r.Context(), &travel); err != nil {
			respondWithModelError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, travel)
	}
}

// handleDeleteTravelForUser deletes one of the user's own travels. The
// ownership check runs against the stored row, not the request, so a caller
// cannot delete someone else's travel by addressing it through their own
// user route.
func handleDeleteTravelForUser(travels *model.Mapper[model.Travel, *model.Travel]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := pathID(r, "id")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid user id")
			return
		}

		var payload idPayload
		if err := decodeBody(r, &payload); err != nil || payload.ID == 0 {
			respondWithError(w, http.StatusBadRequest, "travel id is required")
			return
		}

		travel, err := travels.FindOne(r.Context(), payload.ID)
		if err != nil {
			respondWithModelError(w, err)
			return
		}
		if travel.UserID != userID {
			respondWithError(w, http.StatusUnauthorized, "travel does not belong to this user")
			return
		}

		if err := travels.Delete(r.Context(), travel); err != nil {
			respondWithModelError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
