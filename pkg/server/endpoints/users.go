package endpoints

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"coride/pkg/model"
	"coride/pkg/server"
	"coride/pkg/server/middleware"
)

// RegisterUsersEndpoints registers the user resource and its junction
// relations (activities, vehicle options, travels joined as passenger).
func RegisterUsersEndpoints(s *server.Server) {
	db := s.DB

	auth := middleware.NewAuthenticator(s.Tokens)
	cacheAside := middleware.NewCacheAside(s.Cache, s.Config.CacheKeyPrefix)

	users := model.NewMapper[model.User](db, model.UserBinding)
	activities := model.NewRelationStore[model.Activity](db, model.UserActivityRelation)
	options := model.NewRelationStore[model.VehicleOption](db, model.UserVehicleOptionRelation)
	passengers := model.NewPassengerStore(db)

	s.API.Handle("/users",
		chain(handleListUsers(users), auth.Verify, cacheAside.ReadThrough(usersFamily))).Methods("GET")
	s.API.Handle("/users",
		chain(handleSaveUser(users), auth.VerifyOwner, cacheAside.Invalidate(usersFamily))).Methods("POST")
	s.API.Handle("/users",
		chain(handleDeleteUser(users), auth.VerifyOwner, cacheAside.Invalidate(usersFamily))).Methods("DELETE")

	s.API.Handle("/user/{id:[0-9]+}",
		chain(handleGetUser(users), auth.VerifyOwner, cacheAside.ReadThrough(usersFamily))).Methods("GET")
	s.API.Handle("/user/{id:[0-9]+}",
		chain(handleSaveUser(users), auth.VerifyOwner, cacheAside.Invalidate(usersFamily))).Methods("PATCH")

	s.API.Handle("/user/{id:[0-9]+}/activities",
		chain(handleListRelated(activities), auth.VerifyOwner, cacheAside.ReadThrough(usersFamily))).Methods("GET")
	s.API.Handle("/user/{id:[0-9]+}/activities",
		chain(handleAddRelation(activities), auth.VerifyOwner, cacheAside.Invalidate(usersFamily))).Methods("POST")
	s.API.Handle("/user/{id:[0-9]+}/activities",
		chain(handleRemoveRelation(activities), auth.VerifyOwner, cacheAside.Invalidate(usersFamily))).Methods("DELETE")

	s.API.Handle("/user/{id:[0-9]+}/vehicle-options",
		chain(handleListRelated(options), auth.VerifyOwner, cacheAside.ReadThrough(usersFamily))).Methods("GET")
	s.API.Handle("/user/{id:[0-9]+}/vehicle-options",
		chain(handleAddRelation(options), auth.VerifyOwner, cacheAside.Invalidate(usersFamily))).Methods("POST")
	s.API.Handle("/user/{id:[0-9]+}/vehicle-options",
		chain(handleRemoveRelation(options), auth.VerifyOwner, cacheAside.Invalidate(usersFamily))).Methods("DELETE")

	s.API.Handle("/user/{id:[0-9]+}/travels",
		chain(handleJoinTravel(passengers), auth.VerifyOwner, cacheAside.Invalidate(travelsFamily, usersFamily))).Methods("POST")
	s.API.Handle("/user/{id:[0-9]+}/travels",
		chain(handleLeaveTravel(passengers), auth.VerifyOwner, cacheAside.Invalidate(travelsFamily, usersFamily))).Methods("DELETE")
}

func handleListUsers(users *model.Mapper[model.User, *model.User]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results, err := users.FindAll(r.Context(), filterFromQuery(r, users.Binding()))
		if err != nil {
			respondWithModelError(w, err)
			return
		}
		for i := range results {
			results[i].Password = ""
		}
		respondWithJSON(w, http.StatusOK, results)
	}
}

func handleGetUser(users *model.Mapper[model.User, *model.User]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid user id")
			return
		}

		user, err := users.FindOne(r.Context(), id)
		if err != nil {
			respondWithModelError(w, err)
			return
		}
		user.Password = ""
		respondWithJSON(w, http.StatusOK, user)
	}
}

// handleSaveUser upserts a user: POST /users inserts (or updates when the
// body carries an id), PATCH /user/{id} updates the addressed row. A
// non-empty password is hashed before it reaches the store.
func handleSaveUser(users *model.Mapper[model.User, *model.User]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var user model.User
		if err := decodeBody(r, &user); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if id, err := pathID(r, "id"); err == nil {
			user.ID = id
		}

		if user.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
			if err != nil {
				respondWithError(w, http.StatusInternalServerError, "failed to hash password")
				return
			}
			user.Password = string(hash)
		}

		if err := users.Save(r.Context(), &user); err != nil {
			respondWithModelError(w, err)
			return
		}

		user.Password = ""
		respondWithJSON(w, http.StatusOK, user)
	}
}

func handleDeleteUser(users *model.Mapper[model.User, *model.User]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload idPayload
		if err := decodeBody(r, &payload); err != nil || payload.ID == 0 {
			respondWithError(w, http.StatusBadRequest, "user id is required")
			return
		}

		user := model.User{ID: payload.ID}
		if err := users.Delete(r.Context(), &user); err != nil {
			respondWithModelError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleListRelated serves GET /user/{id}/<relation>.
func handleListRelated[T any](store *model.RelationStore[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid user id")
			return
		}

		related, err := store.ListRelated(r.Context(), id)
		if err != nil {
			respondWithModelError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, related)
	}
}

// handleAddRelation serves POST /user/{id}/<relation> with {"id": relatedId}.
func handleAddRelation[T any](store *model.RelationStore[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := pathID(r, "id")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid user id")
			return
		}

		var payload idPayload
		if err := decodeBody(r, &payload); err != nil || payload.ID == 0 {
			respondWithError(w, http.StatusBadRequest, "related id is required")
			return
		}

		if err := store.Add(r.Context(), ownerID, payload.ID); err != nil {
			respondWithModelError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}
}

// handleRemoveRelation serves DELETE /user/{id}/<relation> with {"id": relatedId}.
func handleRemoveRelation[T any](store *model.RelationStore[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := pathID(r, "id")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid user id")
			return
		}

		var payload idPayload
		if err := decodeBody(r, &payload); err != nil || payload.ID == 0 {
			respondWithError(w, http.StatusBadRequest, "related id is required")
			return
		}

		if err := store.Remove(r.Context(), ownerID, payload.ID); err != nil {
			respondWithModelError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleJoinTravel(passengers *model.PassengerStore) http.HandlerFunc {
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

		if err := passengers.Join(r.Context(), userID, payload.ID); err != nil {
			respondWithModelError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}
}

func handleLeaveTravel(passengers *model.PassengerStore) http.HandlerFunc {
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

		if err := passengers.Leave(r.Context(), userID, payload.ID); err != nil {
			respondWithModelError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
