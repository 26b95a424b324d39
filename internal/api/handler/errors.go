package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/scrabblegame-go/internal/api/apierr"
	"github.com/mcoot/scrabblegame-go/internal/model"
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// roomNumber reads the {number} path variable
func roomNumber(r *http.Request) (model.RoomNumber, error) {
	n, err := strconv.Atoi(mux.Vars(r)["number"])
	if err != nil || n <= 0 {
		return 0, apierr.NewInvalidRequestError("Room number must be a positive integer.")
	}
	return model.RoomNumber(n), nil
}
