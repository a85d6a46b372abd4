// File: refugio/handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// HandlerBundle aggregates every route handler plus the shared auth cache the
// admin middleware checks tokens against.
type HandlerBundle struct {
	AuthCache *redis.Client

	ListProperties  gin.HandlerFunc
	GetAvailability gin.HandlerFunc
	GetPricing      gin.HandlerFunc

	StartSelection gin.HandlerFunc
	SelectDate     gin.HandlerFunc
	GetSelection   gin.HandlerFunc
	ClearSelection gin.HandlerFunc

	CreateInquiry gin.HandlerFunc

	AdminLogin     gin.HandlerFunc
	AdminLogout    gin.HandlerFunc
	BlockDates     gin.HandlerFunc
	ListBlocks     gin.HandlerFunc
	RemoveBlock    gin.HandlerFunc
	UpdatePricing  gin.HandlerFunc
	RegisterDevice gin.HandlerFunc
}
