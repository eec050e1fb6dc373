package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"leveluplife/controllers"
	"leveluplife/middleware"
	"leveluplife/models"
	"leveluplife/utils"
)

// Reaction routes require a bearer token.
func (a *API) reactionRoutes(r *mux.Router) {
	r.Handle("/reactions", a.protected(a.createReaction)).Methods(http.MethodPost)
	r.Handle("/reactions", a.protected(a.listReactions)).Methods(http.MethodGet)
	r.Handle("/reactions/{id}", a.protected(a.getReaction)).Methods(http.MethodGet)
	r.Handle("/reactions/{id}", a.protected(a.updateReaction)).Methods(http.MethodPatch)
	r.Handle("/reactions/{id}", a.protected(a.deleteReaction)).Methods(http.MethodDelete)
}

func (a *API) reactions(r *http.Request) *controllers.ReactionController {
	return controllers.NewReactionController(a.session(r), a.log)
}

func (a *API) createReaction(w http.ResponseWriter, r *http.Request) {
	var in models.ReactionCreate
	if err := middleware.ValidateJSON(w, r, &in); err != nil {
		return
	}
	reaction, err := a.reactions(r).CreateReaction(in)
	if err != nil {
		a.fail(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, reaction)
}

func (a *API) listReactions(w http.ResponseWriter, r *http.Request) {
	offset, limit, err := page(r)
	if err != nil {
		a.fail(w, err)
		return
	}
	reactions, err := a.reactions(r).GetReactions(offset, limit)
	if err != nil {
		a.fail(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reactions)
}

func (a *API) getReaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	reaction, err := a.reactions(r).GetReactionByID(id)
	if err != nil {
		a.fail(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reaction)
}

func (a *API) updateReaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	var in models.ReactionUpdate
	if err := middleware.ValidateJSON(w, r, &in); err != nil {
		return
	}
	reaction, err := a.reactions(r).UpdateReaction(id, in)
	if err != nil {
		a.fail(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reaction)
}

func (a *API) deleteReaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	if err := a.reactions(r).DeleteReaction(id); err != nil {
		a.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
