package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"leveluplife/controllers"
	"leveluplife/middleware"
	"leveluplife/models"
	"leveluplife/utils"
)

func (a *API) ratingRoutes(r *mux.Router) {
	r.HandleFunc("/ratings", a.createRating).Methods(http.MethodPost)
	r.HandleFunc("/ratings", a.listRatings).Methods(http.MethodGet)
	r.HandleFunc("/ratings/{id}", a.getRating).Methods(http.MethodGet)
	r.HandleFunc("/ratings/{id}", a.updateRating).Methods(http.MethodPatch)
	r.HandleFunc("/ratings/{id}", a.deleteRating).Methods(http.MethodDelete)
}

func (a *API) ratings(r *http.Request) *controllers.RatingController {
	return controllers.NewRatingController(a.session(r), a.log)
}

func (a *API) createRating(w http.ResponseWriter, r *http.Request) {
	var in models.RatingCreate
	if err := middleware.ValidateJSON(w, r, &in); err != nil {
		return
	}
	rating, err := a.ratings(r).CreateRating(in)
	if err != nil {
		a.fail(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, rating)
}

func (a *API) listRatings(w http.ResponseWriter, r *http.Request) {
	offset, limit, err := page(r)
	if err != nil {
		a.fail(w, err)
		return
	}
	ratings, err := a.ratings(r).GetRatings(offset, limit)
	if err != nil {
		a.fail(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, ratings)
}

func (a *API) getRating(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	rating, err := a.ratings(r).GetRatingByID(id)
	if err != nil {
		a.fail(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, rating)
}

func (a *API) updateRating(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	var in models.RatingUpdate
	if err := middleware.ValidateJSON(w, r, &in); err != nil {
		return
	}
	rating, err := a.ratings(r).UpdateRating(id, in)
	if err != nil {
		a.fail(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, rating)
}

func (a *API) deleteRating(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	if err := a.ratings(r).DeleteRating(id); err != nil {
		a.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
