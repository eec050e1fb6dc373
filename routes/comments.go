package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"leveluplife/controllers"
	"leveluplife/middleware"
	"leveluplife/models"
	"leveluplife/utils"
)

// Comment routes require a bearer token.
func (a *API) commentRoutes(r *mux.Router) {
	r.Handle("/comments", a.protected(a.createComment)).Methods(http.MethodPost)
	r.Handle("/comments", a.protected(a.listComments)).Methods(http.MethodGet)
	r.Handle("/comments/{id}", a.protected(a.getComment)).Methods(http.MethodGet)
	r.Handle("/comments/{id}", a.protected(a.updateComment)).Methods(http.MethodPatch)
	r.Handle("/comments/{id}", a.protected(a.deleteComment)).Methods(http.MethodDelete)
}

func (a *API) comments(r *http.Request) *controllers.CommentController {
	return controllers.NewCommentController(a.session(r), a.log)
}

func (a *API) createComment(w http.ResponseWriter, r *http.Request) {
	var in models.CommentCreate
	if err := middleware.ValidateJSON(w, r, &in); err != nil {
		return
	}
	comment, err := a.comments(r).CreateComment(in)
	if err != nil {
		a.fail(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, comment)
}

func (a *API) listComments(w http.ResponseWriter, r *http.Request) {
	offset, limit, err := page(r)
	if err != nil {
		a.fail(w, err)
		return
	}
	comments, err := a.comments(r).GetComments(offset, limit)
	if err != nil {
		a.fail(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, comments)
}

func (a *API) getComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	comment, err := a.comments(r).GetCommentByID(id)
	if err != nil {
		a.fail(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, comment)
}

func (a *API) updateComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	var in models.CommentUpdate
	if err := middleware.ValidateJSON(w, r, &in); err != nil {
		return
	}
	comment, err := a.comments(r).UpdateComment(id, in)
	if err != nil {
		a.fail(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, comment)
}

func (a *API) deleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	if err := a.comments(r).DeleteComment(id); err != nil {
		a.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
