package httphandler

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"

	"github.com/aria-network/rwa-gateway/common/errs"
	"github.com/aria-network/rwa-gateway/modules/workflow/workflow"
)

type selectDocumentResult struct {
	DocumentName string `json:"documentName"`
}

type selectDocumentResponse = HttpResponse[selectDocumentResult]

func (h *HttpHandler) SelectDocument(ctx *fiber.Ctx) (err error) {
	fileHeader, err := ctx.FormFile("document")
	if err != nil {
		return errs.NewPublicError("multipart field 'document' is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "can't open uploaded document")
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return errors.Wrap(err, "can't read uploaded document")
	}

	document := workflow.Document{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(fiber.HeaderContentType),
		Content:     content,
	}
	if err := h.controller.SelectDocument(document); err != nil {
		return errors.WithStack(asPublicError(err))
	}

	resp := selectDocumentResponse{
		Result: &selectDocumentResult{
			DocumentName: document.FileName,
		},
	}

	return errors.WithStack(ctx.JSON(resp))
}
