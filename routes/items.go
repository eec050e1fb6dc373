package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"leveluplife/controllers"
	"leveluplife/middleware"
	"leveluplife/models"
	"leveluplife/utils"
)

func (a *API) itemRoutes(r *mux.Router) {
	r.HandleFunc("/items", a.createItem).Methods(http.MethodPost)
	r.HandleFunc("/items", a.listItems).Methods(http.MethodGet)
	r.HandleFunc("/items/type/name", a.getItemByName).Methods(http.MethodGet)
	r.HandleFunc("/items/{id}", a.getItem).Methods(http.MethodGet)
	r.HandleFunc("/items/{id}", a.updateItem).Methods(http.MethodPatch)
	r.HandleFunc("/items/{id}", a.deleteItem).Methods(http.MethodDelete)
	r.HandleFunc("/items/{id}/link_user", a.giveItem).Methods(http.MethodPatch)
	r.HandleFunc("/items/{id}/unlink_user/{user_id}", a.removeItem).Methods(http.MethodDelete)
}

func (a *API) items(r *http.Request) *controllers.ItemController {
	return controllers.NewItemController(a.session(r), a.log)
}

func (a *API) createItem(w http.ResponseWriter, r *http.Request) {
	var in models.ItemCreate
	if err := middleware.ValidateJSON(w, r, &in); err != nil {
		return
	}
	item, err := a.items(r).CreateItem(in)
	if err != nil {
		a.fail(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, item)
}

func (a *API) listItems(w http.ResponseWriter, r *http.Request) {
	offset, limit, err := page(r)
	if err != nil {
		a.fail(w, err)
		return
	}
	items, err := a.items(r).GetItems(offset, limit)
	if err != nil {
		a.fail(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, items)
}

func (a *API) getItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	item, err := a.items(r).GetItemByID(id)
	if err != nil {
		a.fail(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, item)
}

func (a *API) getItemByName(w http.ResponseWriter, r *http.Request) {
	name, err := requiredQuery(r, "item_name")
	if err != nil {
		a.fail(w, err)
		return
	}
	item, err := a.items(r).GetItemByName(name)
	if err != nil {
		a.fail(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, item)
}

func (a *API) updateItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	var in models.ItemUpdate
	if err := middleware.ValidateJSON(w, r, &in); err != nil {
		return
	}
	item, err := a.items(r).UpdateItem(id, in)
	if err != nil {
		a.fail(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, item)
}

func (a *API) deleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	if err := a.items(r).DeleteItem(id); err != nil {
		a.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) giveItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	var in models.UserItemLinkCreate
	if err := middleware.ValidateJSON(w, r, &in); err != nil {
		return
	}
	item, err := a.items(r).GiveItemToUser(id, in)
	if err != nil {
		a.fail(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, item)
}

func (a *API) removeItem(w http.ResponseWriter, r *http.Request) {
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
	if err := a.items(r).RemoveItemFromUser(id, userID); err != nil {
		a.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
