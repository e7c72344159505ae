package api

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/bloggify-frontend/internal/models"
	"github.com/gin-gonic/gin"
)

const (
	ctxKeyFlash = "flash"
	flashMaxAge = 2 * time.Minute
)

// ErrInvalidFlash is returned for a flash cookie that fails verification
var ErrInvalidFlash = errors.New("invalid flash cookie")

// FlashCodec signs one-shot notifications into a cookie value
type FlashCodec struct {
	secret     []byte
	cookieName string
	secure     bool
}

// NewFlashCodec creates a codec
func NewFlashCodec(secret []byte, cookieName string, secure bool) *FlashCodec {
	return &FlashCodec{secret: secret, cookieName: cookieName, secure: secure}
}

// Encode renders the flash as base64(json).base64(hmac)
func (fc *FlashCodec) Encode(f models.Flash) (string, error) {
	b, err := json.Marshal(f)
	if err != nil {
		return "", err
	}
	payload := base64.RawURLEncoding.EncodeToString(b)
	return payload + "." + fc.sign(payload), nil
}

// Decode verifies and parses a cookie value produced by Encode
func (fc *FlashCodec) Decode(v string) (*models.Flash, error) {
	payload, sig, ok := strings.Cut(v, ".")
	if !ok || !hmac.Equal([]byte(fc.sign(payload)), []byte(sig)) {
		return nil, ErrInvalidFlash
	}
	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalidFlash
	}
	var f models.Flash
	if err := json.Unmarshal(raw, &f); err != nil || strings.TrimSpace(f.Message) == "" {
		return nil, ErrInvalidFlash
	}
	return &f, nil
}

func (fc *FlashCodec) sign(payload string) string {
	mac := hmac.New(sha256.New, fc.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// flashMiddleware moves a pending flash from its cookie into the request context.
// The cookie is cleared even when it does not verify.
func flashMiddleware(fc *FlashCodec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if v, err := c.Cookie(fc.cookieName); err == nil && v != "" {
			if f, err := fc.Decode(v); err == nil {
				c.Set(ctxKeyFlash, f)
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(fc.cookieName, "", -1, "/", "", fc.secure, true)
		}
		c.Next()
	}
}

// setFlash stores a flash for the next rendered page
func setFlash(c *gin.Context, fc *FlashCodec, kind models.FlashKind, message string) {
	val, err := fc.Encode(models.Flash{Kind: kind, Message: message})
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(fc.cookieName, val, int(flashMaxAge.Seconds()), "/", "", fc.secure, true)
}

// setSuccess flashes the server's message, or fallback when the server sent none
func setSuccess(c *gin.Context, fc *FlashCodec, message, fallback string) {
	if strings.TrimSpace(message) == "" {
		message = fallback
	}
	setFlash(c, fc, models.FlashSuccess, message)
}

// currentFlash returns the flash read from the request, if any
func currentFlash(c *gin.Context) *models.Flash {
	if v, ok := c.Get(ctxKeyFlash); ok {
		if f, ok := v.(*models.Flash); ok {
			return f
		}
	}
	return nil
}
