package middleware

import (
	"encoding/json"
	"mime"
	"net/http"

	"leveluplife/models"
	"leveluplife/utils"
)

// ValidateJSON decodes the JSON body into dst and validates it. On failure it
// has already written the error response.
func ValidateJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err != nil || mt != "application/json" {
		e := models.UnsupportedMediaTypeError()
		utils.WriteJSON(w, e.StatusCode, e)
		return e
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		e := models.ValidationError("Invalid JSON body: " + err.Error())
		utils.WriteJSON(w, e.StatusCode, e)
		return e
	}
	if err := utils.ValidateStruct(dst); err != nil {
		utils.WriteJSON(w, http.StatusUnprocessableEntity, err)
		return err
	}
	return nil
}
