package routes

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"leveluplife/controllers"
	"leveluplife/middleware"
	"leveluplife/models"
	"leveluplife/utils"
)

// image kinds accepted by PUT /users/{id}/images/{kind}
const (
	imageProfilePicture  = "profile_picture"
	imageBackgroundImage = "background_image"
)

func (a *API) userRoutes(r *mux.Router) {
	r.HandleFunc("/users", a.createUser).Methods(http.MethodPost)
	r.HandleFunc("/users", a.listUsers).Methods(http.MethodGet)

	// registered before /users/{id}
	r.HandleFunc("/users/type/username", a.getUserByUsername).Methods(http.MethodGet)
	r.HandleFunc("/users/type/email", a.getUserByEmail).Methods(http.MethodGet)
	r.HandleFunc("/users/type/tribe", a.listUsersByTribe).Methods(http.MethodGet)

	r.HandleFunc("/users/{id}", a.getUser).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}", a.updateUser).Methods(http.MethodPatch)
	r.HandleFunc("/users/{id}", a.deleteUser).Methods(http.MethodDelete)
	r.HandleFunc("/users/{id}/password", a.updateUserPassword).Methods(http.MethodPatch)
	r.HandleFunc("/users/{id}/items/{item_id}/equip", a.equipItem).Methods(http.MethodPost)
	r.HandleFunc("/users/{id}/quests", a.listUserQuests).Methods(http.MethodGet)
	r.Handle("/users/{id}/images/{kind}", a.protected(a.uploadUserImage)).Methods(http.MethodPut)
}

func (a *API) users(r *http.Request) *controllers.UserController {
	return controllers.NewUserController(a.session(r), a.log)
}

func (a *API) createUser(w http.ResponseWriter, r *http.Request) {
	var in models.UserCreate
	if err := middleware.ValidateJSON(w, r, &in); err != nil {
		return
	}
	user, err := a.users(r).CreateUser(in)
	if err != nil {
		a.fail(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, user)
}

func (a *API) listUsers(w http.ResponseWriter, r *http.Request) {
	offset, limit, err := page(r)
	if err != nil {
		a.fail(w, err)
		return
	}
	views, err := a.users(r).GetUsers(offset, limit)
	if err != nil {
		a.fail(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, views)
}

func (a *API) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	view, err := a.users(r).GetUserView(id)
	if err != nil {
		a.fail(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, view)
}

func (a *API) getUserByUsername(w http.ResponseWriter, r *http.Request) {
	username, err := requiredQuery(r, "user_username")
	if err != nil {
		a.fail(w, err)
		return
	}
	user, err := a.users(r).GetUserByUsername(username)
	if err != nil {
		a.fail(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, user)
}

func (a *API) getUserByEmail(w http.ResponseWriter, r *http.Request) {
	email, err := requiredQuery(r, "user_email")
	if err != nil {
		a.fail(w, err)
		return
	}
	user, err := a.users(r).GetUserByEmail(email)
	if err != nil {
		a.fail(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, user)
}

func (a *API) listUsersByTribe(w http.ResponseWriter, r *http.Request) {
	tribe, err := requiredQuery(r, "user_tribe")
	if err != nil {
		a.fail(w, err)
		return
	}
	offset, limit, err := page(r)
	if err != nil {
		a.fail(w, err)
		return
	}
	users, err := a.users(r).GetUsersByTribe(tribe, offset, limit)
	if err != nil {
		a.fail(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, users)
}

func (a *API) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	var in models.UserUpdate
	if err := middleware.ValidateJSON(w, r, &in); err != nil {
		return
	}
	user, err := a.users(r).UpdateUser(id, in)
	if err != nil {
		a.fail(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, user)
}

func (a *API) updateUserPassword(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	var in models.UserUpdatePassword
	if err := middleware.ValidateJSON(w, r, &in); err != nil {
		return
	}
	user, err := a.users(r).UpdateUserPassword(id, in)
	if err != nil {
		a.fail(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, user)
}

func (a *API) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	if err := a.users(r).DeleteUser(id); err != nil {
		a.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// equipItem toggles the equipped flag; ?equipped defaults to true.
func (a *API) equipItem(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	itemID, err := pathUUID(r, "item_id")
	if err != nil {
		a.fail(w, err)
		return
	}
	equipped := true
	if v := r.URL.Query().Get("equipped"); v != "" {
		if equipped, err = strconv.ParseBool(v); err != nil {
			a.fail(w, models.ValidationError("equipped must be a boolean"))
			return
		}
	}
	view, err := a.users(r).EquipItemToUser(userID, itemID, equipped)
	if err != nil {
		a.fail(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, view)
}

func (a *API) listUserQuests(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	quests, err := a.quests(r).GetUserQuests(id)
	if err != nil {
		a.fail(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, quests)
}

// uploadUserImage stores the multipart "file" field and points the user's
// profile_picture or background_image at the stored object.
func (a *API) uploadUserImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	kind := mux.Vars(r)["kind"]
	if kind != imageProfilePicture && kind != imageBackgroundImage {
		a.fail(w, models.ValidationError("kind must be one of [profile_picture background_image]"))
		return
	}
	if a.storage == nil {
		a.fail(w, models.StorageUnavailableError())
		return
	}
	users := a.users(r)
	if _, err := users.GetUserByID(id); err != nil {
		a.fail(w, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		a.fail(w, models.ValidationError("file is required"))
		return
	}
	defer file.Close()

	key := utils.ImageObjectKey(id.String(), kind, header.Filename)
	contentType := utils.ContentTypeFor(key)
	if !strings.HasPrefix(contentType, "image/") {
		a.fail(w, models.ValidationError("file must be an image"))
		return
	}
	url, err := a.storage.Upload(r.Context(), key, file, contentType)
	if err != nil {
		if errors.Is(err, utils.ErrStorageDisabled) {
			a.fail(w, models.StorageUnavailableError())
			return
		}
		a.fail(w, err)
		return
	}

	var in models.UserUpdate
	if kind == imageProfilePicture {
		in.ProfilePicture = &url
	} else {
		in.BackgroundImage = &url
	}
	user, err := users.UpdateUser(id, in)
	if err != nil {
		a.fail(w, err)
		return
	}
	a.log.Info("uploaded user image", zap.String("user_id", id.String()), zap.String("kind", kind), zap.String("key", key))
	utils.WriteJSON(w, http.StatusOK, user)
}
