package app

import (
	httpMW "github.com/yungbote/studyplan-backend/internal/http/middleware"
	"github.com/yungbote/studyplan-backend/internal/platform/authtoken"
	"github.com/yungbote/studyplan-backend/internal/platform/ctxutil"
	"github.com/yungbote/studyplan-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

// noSecret rejects every token when JWT_SECRET_KEY is unset.
type noSecret struct{}

func (noSecret) Parse(string) (*ctxutil.Principal, error) { return nil, authtoken.ErrMissingSecret }

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	var verifier httpMW.TokenVerifier = noSecret{}
	if services.Tokens != nil {
		verifier = services.Tokens
	}
	return Middleware{Auth: httpMW.NewAuthMiddleware(log, verifier)}
}
