package controllers

import (
	"errors"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studentportal/internal/app/models/dto"
	"github.com/yigit/studentportal/internal/app/services"
	"github.com/yigit/studentportal/internal/app/web"
	"github.com/yigit/studentportal/internal/middleware"
	"github.com/yigit/studentportal/internal/pkg/apperrors"
)

// DocumentController lists and serves the student's stored documents
type DocumentController struct {
	documentService *services.DocumentService
}

// NewDocumentController creates a new DocumentController
func NewDocumentController(documentService *services.DocumentService) *DocumentController {
	return &DocumentController{documentService: documentService}
}

// Page renders the documents list; a listing failure shows an empty list with a banner
func (c *DocumentController) Page(ctx *gin.Context) {
	_, studentID, ok := sessionStudent(ctx, false)
	if !ok {
		return
	}
	view, err := c.documentService.ListDocuments(ctx.Request.Context(), studentID, ctx.Query("q"))
	page := newPage(ctx, "Documents", view)
	if err != nil {
		page.Error = MsgDocumentsFailed
	}
	ctx.HTML(http.StatusOK, web.TemplateDocuments, page)
}

// Download streams one document as an attachment
func (c *DocumentController) Download(ctx *gin.Context) {
	_, studentID, ok := sessionStudent(ctx, false)
	if !ok {
		return
	}
	name := ctx.Param("name")
	content, err := c.documentService.Download(ctx.Request.Context(), studentID, name)
	if err != nil {
		redirectWithFlash(ctx, "/documents", FlashError, MsgDownloadFailed)
		return
	}
	writeAttachment(ctx, name, content)
}

// ListAPI returns the documents as JSON
func (c *DocumentController) ListAPI(ctx *gin.Context) {
	_, studentID, ok := sessionStudent(ctx, true)
	if !ok {
		return
	}
	view, err := c.documentService.ListDocuments(ctx.Request.Context(), studentID, ctx.Query("q"))
	if err != nil {
		ctx.JSON(http.StatusBadGateway, dto.NewFailureResponse(
			dto.NewErrorDetail(dto.ErrorCodeExternalServiceError, MsgDocumentsFailed)))
		return
	}
	respond(ctx, http.StatusOK, view, "")
}

// DownloadAPI streams a document or answers with a JSON error
func (c *DocumentController) DownloadAPI(ctx *gin.Context) {
	_, studentID, ok := sessionStudent(ctx, true)
	if !ok {
		return
	}
	name := ctx.Param("name")
	content, err := c.documentService.Download(ctx.Request.Context(), studentID, name)
	if err != nil {
		if errors.Is(err, apperrors.ErrDocumentNotFound) {
			middleware.HandleAPIError(ctx, apperrors.NewResourceNotFoundError(MsgDownloadFailed))
			return
		}
		middleware.HandleAPIError(ctx, err)
		return
	}
	writeAttachment(ctx, name, content)
}

func writeAttachment(ctx *gin.Context, name string, content []byte) {
	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	ctx.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	ctx.Data(http.StatusOK, contentType, content)
}
