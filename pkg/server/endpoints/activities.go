package endpoints

import (
	"net/http"

	"coride/pkg/model"
	"coride/pkg/server"
	"coride/pkg/server/middleware"
)

// RegisterActivitiesEndpoints registers the activity resource. Activities
// are a shared catalog, not bound to a user, so routes only verify the token.
func RegisterActivitiesEndpoints(s *server.Server) {
	auth := middleware.NewAuthenticator(s.Tokens)
	cacheAside := middleware.NewCacheAside(s.Cache, s.Config.CacheKeyPrefix)

	activities := model.NewMapper[model.Activity](s.DB, model.ActivityBinding)

	s.API.Handle("/activities",
		chain(handleListActivities(activities), auth.Verify, cacheAside.ReadThrough(activitiesFamily))).Methods("GET")
	// Mutations also flush the user family, since per-user activity lists
	// embed catalog rows.
	s.API.Handle("/activities",
		chain(handleSaveActivity(activities), auth.Verify, cacheAside.Invalidate(activitiesFamily, usersFamily))).Methods("POST")
	s.API.Handle("/activities",
		chain(handleDeleteActivity(activities), auth.Verify, cacheAside.Invalidate(activitiesFamily, usersFamily))).Methods("DELETE")

	s.API.Handle("/activity/{id:[0-9]+}",
		chain(handleGetActivity(activities), auth.Verify, cacheAside.ReadThrough(activitiesFamily))).Methods("GET")
	s.API.Handle("/activity/{id:[0-9]+}",
		chain(handleSaveActivity(activities), auth.Verify, cacheAside.Invalidate(activitiesFamily, usersFamily))).Methods("PATCH")
}

func handleListActivities(activities *model.Mapper[model.Activity, *model.Activity]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results, err := activities.FindAll(r.Context(), filterFromQuery(r, activities.Binding()))
		if err != nil {
			respondWithModelError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, results)
	}
}

func handleGetActivity(activities *model.Mapper[model.Activity, *model.Activity]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid activity id")
			return
		}

		activity, err := activities.FindOne(r.Context(), id)
		if err != nil {
			respondWithModelError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, activity)
	}
}

func handleSaveActivity(activities *model.Mapper[model.Activity, *model.Activity]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var activity model.Activity
		if err := decodeBody(r, &activity); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if id, err := pathID(r, "id"); err == nil {
			activity.ID = id
		}

		if err := activities.Save(r.Context(), &activity); err != nil {
			respondWithModelError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, activity)
	}
}

func handleDeleteActivity(activities *model.Mapper[model.Activity, *model.Activity]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload idPayload
		if err := decodeBody(r, &payload); err != nil || payload.ID == 0 {
			respondWithError(w, http.StatusBadRequest, "activity id is required")
			return
		}

		activity := model.Activity{ID: payload.ID}
		if err := activities.Delete(r.Context(), &activity); err != nil {
			respondWithModelError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
