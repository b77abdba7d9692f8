package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/serroba/qr-code-manager/internal/analytics"
	"github.com/serroba/qr-code-manager/internal/auth"
	"github.com/serroba/qr-code-manager/internal/messaging"
	"github.com/serroba/qr-code-manager/internal/qrcode"
	"go.uber.org/zap"
)

const (
	msgCreated   = "QR code created successfully."
	msgExists    = "QR code already exists."
	msgAvailable = "QR code available"
)

// QRCodeHandler manages stored QR code images.
type QRCodeHandler struct {
	storage        qrcode.Storage
	generator      *qrcode.Generator
	baseAPIURL     string
	downloadURL    string
	publishCreated messaging.Publish[analytics.QRCodeCreatedEvent]
	publishDeleted messaging.Publish[analytics.QRCodeDeletedEvent]
	logger         *zap.Logger
}

// NewQRCodeHandler creates a QR code handler. Links point at baseAPIURL and
// images are served below downloadURL.
func NewQRCodeHandler(
	storage qrcode.Storage,
	generator *qrcode.Generator,
	baseAPIURL string,
	downloadURL string,
	publishCreated messaging.Publish[analytics.QRCodeCreatedEvent],
	publishDeleted messaging.Publish[analytics.QRCodeDeletedEvent],
	logger *zap.Logger,
) *QRCodeHandler {
	return &QRCodeHandler{
		storage:        storage,
		generator:      generator,
		baseAPIURL:     baseAPIURL,
		downloadURL:    downloadURL,
		publishCreated: publishCreated,
		publishDeleted: publishDeleted,
		logger:         logger,
	}
}

func (h *QRCodeHandler) Create(ctx context.Context, req *CreateQRCodeRequest) (*CreateQRCodeResponse, error) {
	u, err := qrcode.ValidateAndNormalize(req.Body.URL)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity("invalid url", err)
	}

	style := qrcode.Style{
		FillColor: req.Body.FillColor,
		BackColor: req.Body.BackColor,
		Size:      req.Body.Size,
	}
	filename := qrcode.Filename(u)
	if err := qrcode.CheckFilename(filename); err != nil {
		return nil, huma.Error422UnprocessableEntity("url too long", err)
	}

	exists, err := h.storage.Exists(ctx, filename)
	if err != nil {
		h.logger.Error("failed to check qr code", zap.String("filename", filename), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to check qr code")
	}

	if exists {
		return nil, huma.Error409Conflict(msgExists)
	}

	png, err := h.generator.PNG(u, style)
	if err != nil {
		if errors.Is(err, qrcode.ErrInvalidColor) ||
			errors.Is(err, qrcode.ErrInvalidSize) ||
			errors.Is(err, qrcode.ErrContentTooLong) {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}

		h.logger.Error("failed to render qr code", zap.String("url", string(u)), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to render qr code")
	}

	if err := h.storage.Save(ctx, filename, png); err != nil {
		if errors.Is(err, qrcode.ErrExists) {
			return nil, huma.Error409Conflict(msgExists)
		}

		if errors.Is(err, qrcode.ErrNameTooLong) {
			return nil, huma.Error422UnprocessableEntity("url too long", err)
		}

		h.logger.Error("failed to save qr code", zap.String("filename", filename), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to save qr code")
	}

	meta := RequestMetaFromContext(ctx)
	event := &analytics.QRCodeCreatedEvent{
		EventID:   uuid.NewString(),
		Filename:  filename,
		URL:       string(u),
		FillColor: style.FillColor,
		BackColor: style.BackColor,
		Size:      style.Size,
		Actor:     actor(ctx),
		CreatedAt: time.Now().UTC(),
		ClientIP:  meta.ClientIP,
		UserAgent: meta.UserAgent,
	}

	if err := h.publishCreated(ctx, event); err != nil {
		h.logger.Error("failed to publish qr code created event",
			zap.String("filename", filename),
			zap.Error(err),
		)
	}

	download := h.downloadLink(filename)

	resp := &CreateQRCodeResponse{}
	resp.Body.Message = msgCreated
	resp.Body.QRCodeURL = download
	resp.Body.Links = qrcode.BuildLinks(qrcode.ActionCreate, filename, h.baseAPIURL, download)

	return resp, nil
}

func (h *QRCodeHandler) List(ctx context.Context, _ *struct{}) (*ListQRCodesResponse, error) {
	names, err := h.storage.List(ctx)
	if err != nil {
		h.logger.Error("failed to list qr codes", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to list qr codes")
	}

	items := make([]QRCodeItem, 0, len(names))

	for _, name := range names {
		u, err := qrcode.ParseFilename(name)
		if err != nil {
			h.logger.Warn("skipping undecodable qr code file", zap.String("filename", name), zap.Error(err))

			continue
		}

		download := h.downloadLink(name)
		items = append(items, QRCodeItem{
			Message:   msgAvailable,
			URL:       string(u),
			QRCodeURL: download,
			Links:     qrcode.BuildLinks(qrcode.ActionList, name, h.baseAPIURL, download),
		})
	}

	return &ListQRCodesResponse{Body: items}, nil
}

func (h *QRCodeHandler) Delete(ctx context.Context, req *FilenameRequest) (*struct{}, error) {
	u, err := qrcode.ParseFilename(req.Filename)
	if err != nil {
		return nil, huma.Error400BadRequest("invalid qr code filename", err)
	}

	if qrcode.CheckFilename(req.Filename) != nil {
		return nil, huma.Error404NotFound("qr code not found")
	}

	if err := h.storage.Delete(ctx, req.Filename); err != nil {
		if errors.Is(err, qrcode.ErrNotFound) {
			return nil, huma.Error404NotFound("qr code not found")
		}

		h.logger.Error("failed to delete qr code", zap.String("filename", req.Filename), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to delete qr code")
	}

	meta := RequestMetaFromContext(ctx)
	event := &analytics.QRCodeDeletedEvent{
		EventID:   uuid.NewString(),
		Filename:  req.Filename,
		URL:       string(u),
		Actor:     actor(ctx),
		DeletedAt: time.Now().UTC(),
		ClientIP:  meta.ClientIP,
		UserAgent: meta.UserAgent,
	}

	if err := h.publishDeleted(ctx, event); err != nil {
		h.logger.Error("failed to publish qr code deleted event",
			zap.String("filename", req.Filename),
			zap.Error(err),
		)
	}

	return nil, nil
}

func (h *QRCodeHandler) Download(ctx context.Context, req *FilenameRequest) (*DownloadResponse, error) {
	if _, err := qrcode.ParseFilename(req.Filename); err != nil {
		return nil, huma.Error400BadRequest("invalid qr code filename", err)
	}

	if qrcode.CheckFilename(req.Filename) != nil {
		return nil, huma.Error404NotFound("qr code not found")
	}

	png, err := h.storage.Load(ctx, req.Filename)
	if err != nil {
		if errors.Is(err, qrcode.ErrNotFound) {
			return nil, huma.Error404NotFound("qr code not found")
		}

		h.logger.Error("failed to load qr code", zap.String("filename", req.Filename), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to load qr code")
	}

	return &DownloadResponse{
		ContentType:  "image/png",
		CacheControl: "public, max-age=3600",
		Body:         png,
	}, nil
}

func (h *QRCodeHandler) downloadLink(filename string) string {
	return fmt.Sprintf("%s/%s", h.downloadURL, filename)
}

func actor(ctx context.Context) string {
	if identity, ok := auth.IdentityFromContext(ctx); ok {
		return identity.Username
	}

	return ""
}
