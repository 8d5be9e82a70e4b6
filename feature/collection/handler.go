package collection

import (
	"bytes"
	"errors"
	"io"

	"nft-toolkit/core/entry"
	"nft-toolkit/core/logger"
	"nft-toolkit/core/metadata"
	"nft-toolkit/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the collection workflow.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the collection routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/collection")
	group.Get("/status", h.HandleStatus)
	group.Get("/entries", h.HandleEntries)
	group.Post("/import", h.HandleImport)
	group.Post("/process", h.HandleProcess)
	group.Get("/rarity", h.HandleRarity)
	group.Post("/images", h.HandleAssignImages)
	group.Post("/images/upload", h.HandleUploadImages)
	group.Post("/metadata/upload", h.HandleUploadMetadata)
	group.Delete("/metadata/uris", h.HandleClearMetadataURIs)
	group.Get("/template", h.HandleGetTemplate)
	group.Put("/template", h.HandleSaveTemplate)
	group.Post("/template/generate", h.HandleGenerateTemplate)
	group.Get("/traits", h.HandleTraits)
	group.Get("/nft", h.HandleGetCollectionMetadata)
	group.Post("/nft", h.HandleGenerateCollectionMetadata)
	group.Post("/nft/image", h.HandleUploadCollectionImage)
	group.Post("/nft/upload", h.HandleUploadCollectionMetadata)
	group.Get("/export", h.HandleExport)
	group.Get("/reconcile", h.HandleReconcile)
	group.Post("/reconcile", h.HandleApplyReconcile)
	group.Delete("/", h.HandleClear)
}

// fail logs err and writes it as a JSON error with a status derived from it.
func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, entry.ErrNoTemplate), errors.Is(err, ErrNoCollectionMetadata):
		status = fiber.StatusNotFound
	case errors.Is(err, metadata.ErrInvalidTemplate), errors.Is(err, ErrInvalidCSV):
		status = fiber.StatusBadRequest
	case errors.Is(err, ErrNoStorage):
		status = fiber.StatusConflict
	}

	l := logger.WithRayID(h.service.logger, c)
	if status == fiber.StatusInternalServerError {
		l.Error(msg, zap.Error(err))
	} else {
		l.Warn(msg, zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// HandleStatus reports the collection progress.
// @Summary Collection Status
// @Description Counts entries, uploaded images and uploaded metadata, and reports whether the collection is ready.
// @Tags collection
// @Produce json
// @Success 200 {object} Status
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /collection/status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	status, err := h.service.Status(c.Context())
	if err != nil {
		return h.fail(c, "Status failed", err)
	}
	return c.JSON(status)
}

// HandleEntries lists entries.
// @Summary List Entries
// @Description Returns the saved entries. The q parameter keeps entries with a field value fuzzily matching it.
// @Tags collection
// @Produce json
// @Param q query string false "Filter query"
// @Success 200 {array} entry.Entry
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /collection/entries [get]
func (h *Handler) HandleEntries(c *fiber.Ctx) error {
	entries, err := h.service.Entries(c.Context(), c.Query("q"))
	if err != nil {
		return h.fail(c, "Loading entries failed", err)
	}
	return c.JSON(entries)
}

// HandleImport imports a CSV document.
// @Summary Import CSV
// @Description Replaces all entries with the rows of a CSV document, sent as the request body or as the multipart field "file".
// @Tags collection
// @Accept text/csv
// @Produce json
// @Success 200 {object} ImportResult
// @Failure 400 {object} map[string]string "Invalid CSV"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /collection/import [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	var body io.Reader = bytes.NewReader(c.Body())
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return h.fail(c, "Opening upload failed", err)
		}
		defer f.Close()
		body = f
	}

	result, err := h.service.ImportCSV(c.Context(), body)
	if err != nil {
		return h.fail(c, "Import failed", err)
	}
	logger.WithRayID(h.service.logger, c).Info("CSV imported", zap.Int("entries", result.Entries))
	return c.JSON(result)
}

// HandleProcess regenerates all metadata.
// @Summary Process Entries
// @Description Applies the template to every entry and saves the generated metadata.
// @Tags collection
// @Produce json
// @Success 200 {array} entry.Entry
// @Failure 404 {object} map[string]string "No template"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /collection/process [post]
func (h *Handler) HandleProcess(c *fiber.Ctx) error {
	entries, err := h.service.Process(c.Context())
	if err != nil {
		return h.fail(c, "Processing failed", err)
	}
	return c.JSON(entries)
}

// HandleRarity reports value frequencies.
// @Summary Rarity Report
// @Description Counts how often each value of each field occurs across all entries.
// @Tags collection
// @Produce json
// @Success 200 {object} map[string]map[string]int
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /collection/rarity [get]
func (h *Handler) HandleRarity(c *fiber.Ctx) error {
	rarity, err := h.service.Rarity(c.Context())
	if err != nil {
		return h.fail(c, "Rarity failed", err)
	}
	return c.JSON(rarity)
}

type assignRequest struct {
	Paths []string `json:"paths"`
}

// HandleAssignImages attaches local image files to entries.
// @Summary Assign Images
// @Description Attaches image files on the server to entries by the number in each file name.
// @Tags collection
// @Accept json
// @Produce json
// @Success 200 {object} AssignResult
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /collection/images [post]
func (h *Handler) HandleAssignImages(c *fiber.Ctx) error {
	var req assignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	result, err := h.service.AssignImages(c.Context(), req.Paths)
	if err != nil {
		return h.fail(c, "Assigning images failed", err)
	}
	return c.JSON(result)
}

// HandleUploadImages uploads pending images.
// @Summary Upload Images
// @Description Uploads every local image in batches and records the URIs.
// @Tags collection
// @Produce json
// @Success 200 {object} UploadReport
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /collection/images/upload [post]
func (h *Handler) HandleUploadImages(c *fiber.Ctx) error {
	report, err := h.service.UploadImages(c.Context())
	if err != nil {
		return h.fail(c, "Image upload failed", err)
	}
	return c.JSON(report)
}

// HandleUploadMetadata uploads pending metadata.
// @Summary Upload Metadata
// @Description Regenerates and uploads every metadata document without a URI, in batches.
// @Tags collection
// @Produce json
// @Success 200 {object} UploadReport
// @Failure 404 {object} map[string]string "No template"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /collection/metadata/upload [post]
func (h *Handler) HandleUploadMetadata(c *fiber.Ctx) error {
	report, err := h.service.UploadMetadata(c.Context())
	if err != nil {
		return h.fail(c, "Metadata upload failed", err)
	}
	return c.JSON(report)
}

// HandleClearMetadataURIs forgets uploaded metadata URIs.
// @Summary Clear Metadata URIs
// @Description Forces the next metadata upload to send every document again.
// @Tags collection
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /collection/metadata/uris [delete]
func (h *Handler) HandleClearMetadataURIs(c *fiber.Ctx) error {
	if err := h.service.ClearMetadataURIs(c.Context()); err != nil {
		return h.fail(c, "Clearing metadata URIs failed", err)
	}
	return c.JSON(fiber.Map{"status": "cleared"})
}

// HandleGetTemplate returns the template.
// @Summary Get Template
// @Tags collection
// @Produce json
// @Success 200 {object} metadata.Metadata
// @Failure 404 {object} map[string]string "No template"
// @Router /collection/template [get]
func (h *Handler) HandleGetTemplate(c *fiber.Ctx) error {
	tmpl, err := h.service.Template(c.Context())
	if err != nil {
		return h.fail(c, "Loading template failed", err)
	}
	return c.JSON(tmpl)
}

// HandleSaveTemplate replaces the template.
// @Summary Save Template
// @Description Validates and saves a JSON template, then regenerates all metadata.
// @Tags collection
// @Accept json
// @Produce json
// @Success 200 {object} metadata.Metadata
// @Failure 400 {object} map[string]string "Invalid template"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /collection/template [put]
func (h *Handler) HandleSaveTemplate(c *fiber.Ctx) error {
	tmpl, err := h.service.SaveTemplate(c.Context(), c.Body())
	if err != nil {
		return h.fail(c, "Saving template failed", err)
	}
	return c.JSON(tmpl)
}

// HandleGenerateTemplate builds a template from parameters.
// @Summary Generate Template
// @Description Builds a template with one attribute per trait, saves it and regenerates all metadata.
// @Tags collection
// @Accept json
// @Produce json
// @Param params body metadata.TemplateParams true "Template parameters"
// @Success 200 {object} metadata.Metadata
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /collection/template/generate [post]
func (h *Handler) HandleGenerateTemplate(c *fiber.Ctx) error {
	params := metadata.DefaultTemplateParams()
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&params); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
	}
	tmpl, err := h.service.GenerateTemplate(c.Context(), params)
	if err != nil {
		return h.fail(c, "Generating template failed", err)
	}
	return c.JSON(tmpl)
}

// HandleTraits lists the template traits.
// @Summary List Traits
// @Tags collection
// @Produce json
// @Success 200 {array} metadata.Trait
// @Failure 404 {object} map[string]string "No template"
// @Router /collection/traits [get]
func (h *Handler) HandleTraits(c *fiber.Ctx) error {
	traits, err := h.service.Traits(c.Context())
	if err != nil {
		return h.fail(c, "Loading traits failed", err)
	}
	return c.JSON(traits)
}

// HandleGetCollectionMetadata returns the collection NFT metadata.
// @Summary Get Collection NFT Metadata
// @Tags collection
// @Produce json
// @Success 200 {object} metadata.CollectionMetadata
// @Failure 404 {object} map[string]string "Not generated"
// @Router /collection/nft [get]
func (h *Handler) HandleGetCollectionMetadata(c *fiber.Ctx) error {
	m, err := h.service.CollectionMetadata(c.Context())
	if err != nil {
		return h.fail(c, "Loading collection metadata failed", err)
	}
	return c.JSON(m)
}

// HandleGenerateCollectionMetadata builds the collection NFT metadata.
// @Summary Generate Collection NFT Metadata
// @Tags collection
// @Accept json
// @Produce json
// @Param params body metadata.CollectionParams true "Collection parameters"
// @Success 200 {object} metadata.CollectionMetadata
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /collection/nft [post]
func (h *Handler) HandleGenerateCollectionMetadata(c *fiber.Ctx) error {
	var params metadata.CollectionParams
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&params); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
	}
	m, err := h.service.GenerateCollectionMetadata(c.Context(), params)
	if err != nil {
		return h.fail(c, "Generating collection metadata failed", err)
	}
	return c.JSON(m)
}

// HandleUploadCollectionImage uploads the collection NFT image.
// @Summary Upload Collection Image
// @Description Uploads the multipart field "file" and returns its URI and content type.
// @Tags collection
// @Accept mpfd
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /collection/nft/image [post]
func (h *Handler) HandleUploadCollectionImage(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing file"})
	}
	f, err := fh.Open()
	if err != nil {
		return h.fail(c, "Opening upload failed", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return h.fail(c, "Reading upload failed", err)
	}
	uri, contentType, err := h.service.UploadCollectionImage(c.Context(), fh.Filename, data)
	if err != nil {
		return h.fail(c, "Collection image upload failed", err)
	}
	return c.JSON(fiber.Map{"uri": uri, "type": contentType})
}

// HandleUploadCollectionMetadata uploads the collection NFT metadata.
// @Summary Upload Collection NFT Metadata
// @Tags collection
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Not generated"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /collection/nft/upload [post]
func (h *Handler) HandleUploadCollectionMetadata(c *fiber.Ctx) error {
	uri, err := h.service.UploadCollectionMetadata(c.Context())
	if err != nil {
		return h.fail(c, "Collection metadata upload failed", err)
	}
	return c.JSON(fiber.Map{"uri": uri})
}

// HandleExport downloads all metadata as a zip archive.
// @Summary Export Metadata
// @Description Returns a zip archive with one {index}.json document per processed entry.
// @Tags collection
// @Produce application/zip
// @Success 200 {file} file
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /collection/export [get]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	var buf bytes.Buffer
	n, err := h.service.Export(c.Context(), &buf)
	if err != nil {
		return h.fail(c, "Export failed", err)
	}
	logger.WithRayID(h.service.logger, c).Info("Exported metadata", zap.Int("documents", n))

	c.Set(fiber.HeaderContentType, "application/zip")
	c.Attachment("metadata.zip")
	return c.Send(buf.Bytes())
}

// HandleClear deletes all collection state.
// @Summary Clear Collection
// @Tags collection
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /collection [delete]
func (h *Handler) HandleClear(c *fiber.Ctx) error {
	if err := h.service.Clear(c.Context()); err != nil {
		return h.fail(c, "Clear failed", err)
	}
	return c.JSON(fiber.Map{"status": "cleared"})
}

// HandleReconcile compares recorded uploads with the objects in the bucket.
// @Summary Reconcile Uploads
// @Description Reports recorded uploads missing from the bucket and bucket objects unknown to the collection. Nothing is changed.
// @Tags collection
// @Produce json
// @Param reset query bool false "Plan resets of missing uploads"
// @Param purge query bool false "Plan deletion of orphaned objects"
// @Success 200 {object} reconcile.ReconcilePlan
// @Failure 409 {object} map[string]string "No storage bucket attached"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /collection/reconcile [get]
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	opts := reconcile.ReconcileOptions{
		DryRun:  true,
		DoReset: c.QueryBool("reset"),
		DoPurge: c.QueryBool("purge"),
	}
	plan, _, err := h.service.Reconcile(c.Context(), opts)
	if err != nil {
		return h.fail(c, "Reconcile failed", err)
	}
	return c.JSON(plan)
}

// HandleApplyReconcile runs the reconcile actions selected by the query.
// @Summary Apply Reconcile
// @Description Resets uploads whose object is missing so the next upload run sends them again, and deletes orphaned objects.
// @Tags collection
// @Produce json
// @Param reset query bool false "Reset missing uploads"
// @Param purge query bool false "Delete orphaned objects"
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} map[string]string "No storage bucket attached"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /collection/reconcile [post]
func (h *Handler) HandleApplyReconcile(c *fiber.Ctx) error {
	opts := reconcile.ReconcileOptions{
		DoReset:   c.QueryBool("reset"),
		DoPurge:   c.QueryBool("purge"),
		Confirmed: true,
	}
	plan, executed, err := h.service.Reconcile(c.Context(), opts)
	if err != nil {
		return h.fail(c, "Reconcile failed", err)
	}
	logger.WithRayID(h.service.logger, c).Info("Applied reconcile plan", zap.Int("executed", executed))
	return c.JSON(fiber.Map{"executed": executed, "summary": plan.Summary})
}
