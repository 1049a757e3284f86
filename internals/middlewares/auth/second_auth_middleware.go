package auth

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"kursusku_backend/internals/configs"
	helperAuth "kursusku_backend/internals/helpers/auth"

	"gorm.io/gorm"
)

// SecondAuthMiddleware: auth opsional. Kalau token tidak ada / tidak valid,
// request tetap lanjut sebagai anonymous (tanpa user_id di Locals).
// Dipasang di route publik yang hasilnya bisa di-enrich kalau user login
// (mis. flag is_purchased di detail formasi).
func SecondAuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			cookieToken := c.Cookies("access_token")
			if cookieToken != "" {
				authHeader = "Bearer " + cookieToken
			}
		}

		// Jika tetap tidak ada token, lanjutkan tanpa user context
		if authHeader == "" {
			return c.Next()
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			log.Println("[WARNING] Format token tidak valid, lanjut sebagai anonymous")
			return c.Next()
		}

		tokenString := tokenParts[1]

		// Cek blacklist
		if bl, err := helperAuth.IsBlacklisted(c.Context(), db, tokenString, configs.JWTSecret); err == nil && bl {
			log.Println("[WARNING] Token ada di blacklist, lanjut sebagai anonymous")
			return c.Next()
		}

		// Parse & validasi token
		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET kosong, lanjut sebagai anonymous")
			return c.Next()
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		}); err != nil {
			log.Println("[WARNING] Gagal parse token, lanjut sebagai anonymous:", err)
			return c.Next()
		}

		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			log.Println("[WARNING] Token expired, lanjut sebagai anonymous")
			return c.Next()
		}

		idStr, _ := claims["id"].(string)
		userID, err := uuid.Parse(strings.TrimSpace(idStr))
		if err != nil || userID == uuid.Nil {
			return c.Next()
		}

		c.Locals("user_id", userID.String())
		storeBasicClaimsToLocals(c, claims)
		return c.Next()
	}
}
