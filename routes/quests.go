package routes

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"leveluplife/controllers"
	"leveluplife/middleware"
	"leveluplife/models"
	"leveluplife/utils"
)

// Quest routes require a bearer token.
func (a *API) questRoutes(r *mux.Router) {
	r.Handle("/quests", a.protected(a.createQuest)).Methods(http.MethodPost)
	r.Handle("/quests", a.protected(a.listQuests)).Methods(http.MethodGet)
	r.Handle("/quests/{id}", a.protected(a.getQuest)).Methods(http.MethodGet)
	r.Handle("/quests/{id}", a.protected(a.updateQuest)).Methods(http.MethodPatch)
	r.Handle("/quests/{id}", a.protected(a.deleteQuest)).Methods(http.MethodDelete)
	r.Handle("/quests/{id}/link_user", a.protected(a.assignQuest)).Methods(http.MethodPatch)
	r.Handle("/quests/{id}/unlink_user/{user_id}", a.protected(a.removeQuest)).Methods(http.MethodDelete)
}

func (a *API) quests(r *http.Request) *controllers.QuestController {
	return controllers.NewQuestController(a.session(r), a.log)
}

func (a *API) createQuest(w http.ResponseWriter, r *http.Request) {
	var in models.QuestCreate
	if err := middleware.ValidateJSON(w, r, &in); err != nil {
		return
	}
	quest, err := a.quests(r).CreateQuest(in)
	if err != nil {
		a.fail(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, quest)
}

func (a *API) listQuests(w http.ResponseWriter, r *http.Request) {
	offset, limit, err := page(r)
	if err != nil {
		a.fail(w, err)
		return
	}
	quests, err := a.quests(r).GetQuests(offset, limit)
	if err != nil {
		a.fail(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, quests)
}

func (a *API) getQuest(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	quest, err := a.quests(r).GetQuestByID(id)
	if err != nil {
		a.fail(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, quest)
}

func (a *API) updateQuest(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	var in models.QuestUpdate
	if err := middleware.ValidateJSON(w, r, &in); err != nil {
		return
	}
	quest, err := a.quests(r).UpdateQuest(id, in)
	if err != nil {
		a.fail(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, quest)
}

func (a *API) deleteQuest(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	if err := a.quests(r).DeleteQuest(id); err != nil {
		a.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// assignQuest starts the quest now; it ends after the quest type's duration.
func (a *API) assignQuest(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	var in models.UserQuestLinkCreate
	if err := middleware.ValidateJSON(w, r, &in); err != nil {
		return
	}
	quests := a.quests(r)
	quest, err := quests.GetQuestByID(id)
	if err != nil {
		a.fail(w, err)
		return
	}
	start := time.Now().UTC()
	out, err := quests.AssignQuestToUser(id, in, start, quest.Type.EndDate(start))
	if err != nil {
		a.fail(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, out)
}

func (a *API) removeQuest(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	userID, err := pathUUID(r, "user_id")
	if err != nil {
		a.fail(w, err)
		return
	}
	if err := a.quests(r).RemoveQuestFromUser(id, userID); err != nil {
		a.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
