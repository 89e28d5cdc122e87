package controller

import (
	"aiact_backend/internal/model"
	"aiact_backend/internal/service"
	"aiact_backend/internal/util"
	"io"

	"github.com/gin-gonic/gin"
)

type DocumentController struct {
	DocumentService *service.DocumentService
}

func NewDocumentController(documentService *service.DocumentService) *DocumentController {
	return &DocumentController{DocumentService: documentService}
}

// Upload godoc
// @Summary Upload an evidence document
// @Description Multipart upload; type is stopping_proof, safeguard or other
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Use case id"
// @Param type formData string true "Document type"
// @Param file formData file true "File"
// @Success 201 {object} util.Response{data=model.ProofDocument}
// @Failure 400 {object} util.Response
// @Router /api/usecases/{id}/documents [post]
func (c *DocumentController) Upload(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	docType := model.DocumentType(ctx.PostForm("type"))
	switch docType {
	case model.DocStoppingProof, model.DocSafeguard, model.DocOther:
	default:
		util.BadRequest(ctx, "Invalid document type")
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "Missing file")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	contentType, err := util.ValidateMimeType(file, util.AllowedDocumentMimeTypes)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	doc, err := c.DocumentService.Upload(ctx.Param("id"), claims, docType, fileHeader.Filename, file, fileHeader.Size, contentType)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, doc)
}

// List godoc
// @Summary Documents of a use case
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Use case id"
// @Success 200 {object} util.Response{data=[]model.ProofDocument}
// @Router /api/usecases/{id}/documents [get]
func (c *DocumentController) List(ctx *gin.Context) {
	docs, err := c.DocumentService.List(ctx.Param("id"), util.GetUserFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, docs)
}

// Delete godoc
// @Summary Delete a document
// @Tags documents
// @Security BearerAuth
// @Param docId path string true "Document id"
// @Success 204
// @Failure 404 {object} util.Response
// @Router /api/documents/{docId} [delete]
func (c *DocumentController) Delete(ctx *gin.Context) {
	if err := c.DocumentService.Delete(ctx.Param("docId"), util.GetUserFromContext(ctx)); err != nil {
		respondError(ctx, err)
		return
	}
	util.NoContent(ctx)
}
