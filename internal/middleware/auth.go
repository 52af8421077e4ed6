package middleware

import (
	"crypto/hmac"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/pixelforge-studio/studio-api/internal/config"
	"github.com/pixelforge-studio/studio-api/internal/modules/serializer"
	"github.com/pixelforge-studio/studio-api/internal/pkg/credentials"
)

// ClientIDKey is the gin context key the portal middleware stores the
// authenticated client id under.
const ClientIDKey = "client_id"

// AdminAuth returns a middleware that authenticates requests against the
// configured admin bearer credential. The presented secret is compared by
// HMAC lookup key; when argon2 verification is enabled the secret is
// additionally checked against a PHC hash derived at startup.
func AdminAuth(cfg *config.Config) gin.HandlerFunc {
	expectedSecret, configured := credentials.ParseBearer(cfg.Admin.APIToken, cfg.Admin.TokenPrefix)
	var (
		expectedLookup string
		expectedPHC    string
	)
	if configured {
		expectedLookup = credentials.LookupKey(cfg.Admin.SecretPepper, expectedSecret)
		if cfg.Admin.EnableArgon2Verification {
			phc, err := credentials.Hash(expectedSecret, cfg.Admin.SecretPepper)
			if err == nil {
				expectedPHC = phc
			}
		}
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		_, authSpan := otel.Tracer("middleware").Start(ctx, "admin_auth",
			trace.WithAttributes(attribute.String("middleware", "admin_auth")))

		if !configured {
			authSpan.SetAttributes(attribute.Bool("authenticated", false))
			authSpan.End()
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}

		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			authSpan.SetAttributes(attribute.Bool("authenticated", false))
			authSpan.End()
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}
		raw := strings.TrimPrefix(auth, "Bearer ")

		secret, ok := credentials.ParseBearer(raw, cfg.Admin.TokenPrefix)
		if !ok {
			authSpan.SetAttributes(attribute.Bool("authenticated", false))
			authSpan.End()
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}

		lookup := credentials.LookupKey(cfg.Admin.SecretPepper, secret)
		if !hmac.Equal([]byte(lookup), []byte(expectedLookup)) {
			authSpan.SetAttributes(attribute.Bool("authenticated", false))
			authSpan.End()
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}

		if cfg.Admin.EnableArgon2Verification && expectedPHC != "" {
			_, verifySpan := otel.Tracer("middleware").Start(ctx, "admin_auth.verify_secret")
			pass, err := credentials.Verify(secret, cfg.Admin.SecretPepper, expectedPHC)
			verifySpan.End()
			if err != nil || !pass {
				authSpan.SetAttributes(attribute.Bool("authenticated", false))
				authSpan.End()
				c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
				return
			}
		}

		authSpan.SetAttributes(attribute.Bool("authenticated", true))
		authSpan.End()
		c.Next()
	}
}

// ClientAuth returns a middleware that authenticates portal requests with the
// session token issued at login. The client id lands in the context under
// ClientIDKey; handlers scope every query by it.
func ClientAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		_, authSpan := otel.Tracer("middleware").Start(ctx, "client_auth",
			trace.WithAttributes(attribute.String("middleware", "client_auth")))

		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			authSpan.SetAttributes(attribute.Bool("authenticated", false))
			authSpan.End()
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}
		raw := strings.TrimPrefix(auth, "Bearer ")

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(cfg.Portal.JWTSecret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			authSpan.SetAttributes(attribute.Bool("authenticated", false))
			authSpan.End()
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}

		clientID, err := strconv.ParseInt(claims.Subject, 10, 64)
		if err != nil || clientID <= 0 {
			authSpan.SetAttributes(attribute.Bool("authenticated", false))
			authSpan.End()
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}

		rootSpan := trace.SpanFromContext(c.Request.Context())
		if rootSpan.SpanContext().IsValid() {
			rootSpan.SetAttributes(attribute.Int64("client_id", clientID))
		}

		authSpan.SetAttributes(
			attribute.Int64("client_id", clientID),
			attribute.Bool("authenticated", true),
		)
		authSpan.End()

		c.Set(ClientIDKey, clientID)
		c.Next()
	}
}

// ClientID reads the authenticated client id set by ClientAuth.
func ClientID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ClientIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
