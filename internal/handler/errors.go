package handler

import (
	"net/http"

	ierr "smartbook/internal/errors"
	"smartbook/pkg/response"

	"github.com/gin-gonic/gin"
)

// respondError renders err with the status of its sentinel and the
// user-facing hint and reportable details. Server errors keep both out
// of the body.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	status := ierr.HTTPStatusFromErr(err)
	if status >= http.StatusInternalServerError {
		c.JSON(status, response.ErrorWithCode(status, ierr.Code(err), http.StatusText(status)))
		return
	}

	resp := response.ErrorWithCode(status, ierr.Code(err), ierr.DisplayMessage(err))
	resp.Details = ierr.Details(err)
	c.JSON(status, resp)
}

func respondBindError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, response.ErrorWithCode(http.StatusBadRequest, ierr.ErrCodeValidation, "Invalid request payload: "+err.Error()))
}
