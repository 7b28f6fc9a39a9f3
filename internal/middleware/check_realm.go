package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/waselkoz/jobSphere/internal/utilities"
)

// CheckRealm will protect endpoint from user that is not in the allowed
// realms. The allowed-realm table per endpoint lives in routes.go.
func CheckRealm(realms ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, err := utilities.ExtractUser(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Error: err.Error(),
			})
			return
		}

		if !utilities.Contains(realms, user.Realm) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, utilities.ErrorResponse{
				Error: fmt.Sprintf("Realm %s is not authorized to access this route", user.Realm),
			})
		}
	}
}
