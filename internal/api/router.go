package api

import (
	"cems/internal/domain"
	"cems/internal/middleware"
	"cems/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// route pairs a handler with the roles allowed to call it. The table
// in NewRouter is the single place authorization policy lives.
type route struct {
	method  string
	path    string
	roles   []string
	handler gin.HandlerFunc
}

// NewRouter builds the gin engine with every API route registered.
// A nil redis client disables caching, which the tests rely on.
func NewRouter(jwtSecret string, gormDB *gorm.DB, redisClient *redis.Client) *gin.Engine {
	events := service.NewEventService(gormDB)
	registrations := service.NewRegistrationService(gormDB)
	interests := service.NewInterestService(gormDB, events)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.RequestID())

	root := r.Group("/api")

	// Public routes
	root.POST("/auth/signup", SignupHandler(gormDB, jwtSecret))
	root.POST("/auth/login", LoginHandler(gormDB, jwtSecret))
	root.GET("/events", middleware.OptionalAuthMiddleware(jwtSecret),
		ListEventsHandler(events, registrations, redisClient))
	root.GET("/events/:id", GetEventHandler(events))

	// Authenticated routes, each declaring its allowed roles
	anyRole := []string{domain.RoleStudent, domain.RoleOrganizer, domain.RoleAdmin}
	authed := root.Group("")
	authed.Use(middleware.JWTAuthMiddleware(jwtSecret))

	for _, rt := range []route{
		{"GET", "/events/recommended", anyRole, RecommendedEventsHandler(interests)},
		{"POST", "/events", []string{domain.RoleOrganizer, domain.RoleAdmin}, CreateEventHandler(events, redisClient)},
		{"POST", "/events/:id/register", []string{domain.RoleStudent}, RegisterEventHandler(registrations, redisClient)},
		{"POST", "/events/:id/approve", []string{domain.RoleAdmin}, ApproveEventHandler(events, redisClient)},
		{"POST", "/events/:id/reject", []string{domain.RoleAdmin}, RejectEventHandler(events, redisClient)},
		{"GET", "/users", []string{domain.RoleAdmin}, ListUsersHandler(gormDB)},
		{"PUT", "/users/:id", anyRole, UpdateUserHandler(gormDB, jwtSecret)},
		{"POST", "/interests/analyze", anyRole, AnalyzeInterestsHandler(interests)},
		{"GET", "/dashboard/stats", anyRole, DashboardStatsHandler(gormDB, redisClient)},
	} {
		authed.Handle(rt.method, rt.path, middleware.RequireRoles(rt.roles...), rt.handler)
	}

	return r
}
