package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wapjude/CP-2-Document-Mangement-system/internal/domain/access"
	"github.com/wapjude/CP-2-Document-Mangement-system/internal/domain/services"
	"github.com/wapjude/CP-2-Document-Mangement-system/internal/interfaces/dto"
	"github.com/wapjude/CP-2-Document-Mangement-system/pkg/errors"
)

// TokenHeader carries the opaque session token on every request.
const TokenHeader = "x-access-token"

const actorKey = "actor"

func respondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, dto.MessageResponse{Message: message})
}

func handleServiceError(c *gin.Context, err error) {
	switch e := err.(type) {
	case *errors.BadRequestError:
		respondWithError(c, http.StatusBadRequest, e.Message)
	case *errors.UnauthenticatedError:
		respondWithError(c, http.StatusUnauthorized, e.Message)
	case *errors.UnauthorizedError:
		respondWithError(c, http.StatusUnauthorized, e.Message)
	case *errors.NotFoundError:
		respondWithError(c, http.StatusNotFound, e.Message)
	case *errors.InternalError:
		respondWithError(c, http.StatusInternalServerError, e.Message)
	default:
		respondWithError(c, http.StatusInternalServerError, "internal server error")
	}
}

// AuthRequired resolves the token header into an actor and aborts with
// 401 when it cannot.
func AuthRequired(authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := authSvc.ValidateToken(c.Request.Context(), c.GetHeader(TokenHeader))
		if err != nil {
			handleServiceError(c, err)
			c.Abort()
			return
		}

		c.Set(actorKey, access.ActorFromUser(user))
		c.Next()
	}
}

func currentActor(c *gin.Context) access.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(access.Actor); ok {
			return actor
		}
	}
	return access.Actor{}
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, "+TokenHeader)
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
