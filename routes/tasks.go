package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"leveluplife/controllers"
	"leveluplife/middleware"
	"leveluplife/models"
	"leveluplife/utils"
)

func (a *API) taskRoutes(r *mux.Router) {
	r.HandleFunc("/tasks", a.createTask).Methods(http.MethodPost)
	r.HandleFunc("/tasks", a.listTasks).Methods(http.MethodGet)
	r.HandleFunc("/tasks/type/title", a.getTaskByTitle).Methods(http.MethodGet)
	r.HandleFunc("/tasks/{id}", a.getTask).Methods(http.MethodGet)
	r.HandleFunc("/tasks/{id}", a.updateTask).Methods(http.MethodPatch)
	r.HandleFunc("/tasks/{id}", a.deleteTask).Methods(http.MethodDelete)
}

func (a *API) tasks(r *http.Request) *controllers.TaskController {
	return controllers.NewTaskController(a.session(r), a.log)
}

func (a *API) createTask(w http.ResponseWriter, r *http.Request) {
	var in models.TaskCreate
	if err := middleware.ValidateJSON(w, r, &in); err != nil {
		return
	}
	task, err := a.tasks(r).CreateTask(in)
	if err != nil {
		a.fail(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, task)
}

func (a *API) listTasks(w http.ResponseWriter, r *http.Request) {
	offset, limit, err := page(r)
	if err != nil {
		a.fail(w, err)
		return
	}
	tasks, err := a.tasks(r).GetTasks(offset, limit)
	if err != nil {
		a.fail(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, tasks)
}

func (a *API) getTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	task, err := a.tasks(r).GetTaskByID(id)
	if err != nil {
		a.fail(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, task)
}

func (a *API) getTaskByTitle(w http.ResponseWriter, r *http.Request) {
	title, err := requiredQuery(r, "task_title")
	if err != nil {
		a.fail(w, err)
		return
	}
	task, err := a.tasks(r).GetTaskByTitle(title)
	if err != nil {
		a.fail(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, task)
}

func (a *API) updateTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	var in models.TaskUpdate
	if err := middleware.ValidateJSON(w, r, &in); err != nil {
		return
	}
	task, err := a.tasks(r).UpdateTask(id, in)
	if err != nil {
		a.fail(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, task)
}

func (a *API) deleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	if err := a.tasks(r).DeleteTask(id); err != nil {
		a.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
