package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-management/internal/interface/middleware"
	"github.com/oksasatya/go-user-management/pkg/apperror"
	"github.com/oksasatya/go-user-management/pkg/response"
)

// respondError maps err onto the status and message callers see. Unclassified
// errors are logged in full and reported with the generic message only.
func respondError(c *gin.Context, logger logrus.FieldLogger, err error) {
	status := apperror.HTTPStatus(err)
	msg := apperror.PublicMessage(err)
	l := middleware.Logger(c, logger).WithField("status", status)

	if apperror.KindOf(err) == apperror.KindInternal {
		l.WithError(err).Error("request failed")
		response.Error[any](c, status, msg, nil)
		return
	}

	l.WithField("reason", msg).Info("request rejected")
	var details any
	if lines := strings.Split(msg, "\n"); len(lines) > 1 {
		details = lines
	}
	response.Error[any](c, status, msg, details)
}

// pathID parses a user id path parameter. Anything that is not an integer is
// reported like an out-of-range id.
func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, apperror.BadRequest("Invalid user id.")
	}
	return id, nil
}
