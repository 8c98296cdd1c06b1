package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/devlinkhq/devlink/internal/domain/apperr"
	"github.com/devlinkhq/devlink/pkg/response"
)

// fail maps an application error onto the response envelope. Validation
// errors carry their field details; everything else just carries the message.
func fail(c *gin.Context, err error) {
	e := apperr.From(err)
	var details interface{}
	if len(e.Fields) > 0 {
		details = e.Fields
	}
	response.Fail(c, e.HTTPStatus(), e.Msg, details)
}
