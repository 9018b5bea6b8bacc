package server

import (
	"github.com/gin-gonic/gin"
	"github.com/kettleops/bulkrest/internal/bulk"
	"github.com/kettleops/bulkrest/internal/config"
	"github.com/kettleops/bulkrest/internal/notify"
	"github.com/kettleops/bulkrest/internal/resource"
	"github.com/kettleops/bulkrest/internal/store"
)

// NewRouter builds the Gin router with the configured API handlers.
func NewRouter(cfg *config.Config, schema *resource.Schema, contacts *store.ContactStore, coord *bulk.Coordinator, notifier *notify.Notifier) *gin.Engine {
	router := gin.Default()
	router.Use(requestIDMiddleware())

	handler := newHandler(cfg, schema, contacts, coord, notifier)

	router.GET(HealthEndpoint, handler.health)

	api := router.Group("/")
	if cfg.APIToken != "" {
		api.Use(authMiddleware(cfg.APIToken))
	}
	api.GET(ContactsPath, handler.listContacts)
	api.POST(ContactsPath, handler.createContacts)
	api.PUT(ContactsPath, handler.updateContacts)
	api.PATCH(ContactsPath, handler.patchContacts)
	api.DELETE(ContactsPath, handler.destroyContacts)

	return router
}
