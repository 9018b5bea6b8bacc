package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kettleops/bulkrest/internal/bulk"
	"github.com/kettleops/bulkrest/internal/config"
	"github.com/kettleops/bulkrest/internal/notify"
	"github.com/kettleops/bulkrest/internal/resource"
	"github.com/kettleops/bulkrest/internal/store"
	"github.com/kettleops/bulkrest/internal/utils"
	"go.uber.org/zap"
)

// filterableFields are the query parameters GET/DELETE accept as
// queryset filters.
var filterableFields = []string{"group", "email"}

// Handler bundles request-time dependencies for the API routes.
type Handler struct {
	cfg      *config.Config
	schema   *resource.Schema
	contacts *store.ContactStore
	coord    *bulk.Coordinator
	notifier *notify.Notifier
}

// newHandler constructs a Handler with attached dependencies.
func newHandler(cfg *config.Config, schema *resource.Schema, contacts *store.ContactStore, coord *bulk.Coordinator, notifier *notify.Notifier) *Handler {
	return &Handler{
		cfg:      cfg,
		schema:   schema,
		contacts: contacts,
		coord:    coord,
		notifier: notifier,
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "status": StatusHealthy})
}

// listContacts returns the filtered collection.
func (h *Handler) listContacts(c *gin.Context) {
	qs := h.filteredQueryset(c, h.contacts.Query())
	contacts, err := h.contacts.List(c.Request.Context(), qs)
	if err != nil {
		renderFatal(c, err)
		return
	}
	records := make([]map[string]any, len(contacts))
	for i := range contacts {
		records[i] = contacts[i].Representation()
	}
	c.JSON(http.StatusOK, records)
}

// createContacts dispatches on the body's structural kind, decided once
// before any serializer logic: an object takes the single-record path,
// an array the bulk path.
func (h *Handler) createContacts(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, bulk.Detail(bulk.NonFieldKey, MessageMalformedBody, CodeParseError))
		return
	}

	switch bulk.DetectKind(raw) {
	case bulk.BodyObject:
		h.createSingle(c, raw)
	case bulk.BodyList:
		records, err := bulk.DecodeList(raw)
		if err != nil {
			renderFatal(c, err)
			return
		}
		result, err := h.coord.BulkCreate(c.Request.Context(), records)
		if err != nil {
			renderFatal(c, err)
			return
		}
		h.emitSummary(c, "bulk_create", result)
		renderResult(c, result, http.StatusCreated)
	default:
		c.JSON(http.StatusBadRequest, bulk.Detail(bulk.NonFieldKey, MessageMalformedBody, CodeParseError))
	}
}

// createSingle is the non-bulk create path.
func (h *Handler) createSingle(c *gin.Context, raw []byte) {
	record, err := bulk.DecodeObject(raw)
	if err != nil {
		renderFatal(c, err)
		return
	}

	opCtx := bulk.OperationContext{Operation: bulk.OpCreate, LookupField: h.schema.LookupField()}
	value, detail := h.schema.ValidateRecord(opCtx, record)
	if len(detail) > 0 {
		c.JSON(http.StatusBadRequest, detail)
		return
	}

	entity, err := h.contacts.Create(c.Request.Context(), value)
	if err != nil {
		renderFatal(c, err)
		return
	}
	c.JSON(http.StatusCreated, entity.Representation())
}

func (h *Handler) updateContacts(c *gin.Context) {
	h.bulkUpdate(c, false)
}

func (h *Handler) patchContacts(c *gin.Context) {
	h.bulkUpdate(c, true)
}

// bulkUpdate expects a JSON array of records, each carrying the lookup
// field. Anything else is a whole-request shape error.
func (h *Handler) bulkUpdate(c *gin.Context, partial bool) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, bulk.Detail(bulk.NonFieldKey, MessageMalformedBody, CodeParseError))
		return
	}

	records, err := bulk.DecodeList(raw)
	if err != nil {
		renderFatal(c, err)
		return
	}

	result, err := h.coord.BulkUpdate(c.Request.Context(), records, partial)
	if err != nil {
		renderFatal(c, err)
		return
	}
	h.emitSummary(c, "bulk_update", result)
	renderResult(c, result, http.StatusOK)
}

// destroyContacts deletes the filtered selection, optionally narrowed
// by an explicit ids selector.
func (h *Handler) destroyContacts(c *gin.Context) {
	base := h.contacts.Query()
	filtered := h.filteredQueryset(c, base)

	deleted, err := h.coord.BulkDestroy(c.Request.Context(), base, filtered, c.Query("ids"))
	if err != nil {
		renderFatal(c, err)
		return
	}

	if h.notifier != nil {
		summary := notify.Summary{
			Operation: "bulk_destroy",
			Resource:  h.schema.Resource(),
			Total:     int(deleted),
			Succeeded: int(deleted),
			RequestID: c.GetString(RequestIDKey),
		}
		go h.notifier.Notify(context.Background(), summary)
	}
	c.Status(http.StatusNoContent)
}

// filteredQueryset applies the whitelisted query-parameter filters.
// When none are present the base queryset comes back unchanged, which
// is what the destructive-scope guard keys on.
func (h *Handler) filteredQueryset(c *gin.Context, qs bulk.Queryset) bulk.Queryset {
	for _, field := range filterableFields {
		if value := c.Query(field); value != "" {
			qs = qs.Filter(field, []any{value})
		}
	}
	return qs
}

// emitSummary fires the audit webhook for a finished bulk mutation.
func (h *Handler) emitSummary(c *gin.Context, operation string, result *bulk.Result) {
	if h.notifier == nil {
		return
	}
	total, succeeded, failed := resultCounts(result)
	summary := notify.Summary{
		Operation: operation,
		Resource:  h.schema.Resource(),
		Total:     total,
		Succeeded: succeeded,
		Failed:    failed,
		RequestID: c.GetString(RequestIDKey),
	}
	utils.Logger.Debug("Emitting bulk summary",
		zap.String(utils.FieldOperation, operation),
		zap.Int(utils.FieldTotal, total))
	go h.notifier.Notify(context.Background(), summary)
}
