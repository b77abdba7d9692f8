package analytics

import "time"

const (
	TopicQRCodeCreated = "qrcode.created"
	TopicQRCodeDeleted = "qrcode.deleted"
)

// QRCodeCreatedEvent is emitted after a QR code image has been stored.
type QRCodeCreatedEvent struct {
	EventID   string    `json:"eventId"`
	Filename  string    `json:"filename"`
	URL       string    `json:"url"`
	FillColor string    `json:"fillColor"`
	BackColor string    `json:"backColor"`
	Size      int       `json:"size"`
	Actor     string    `json:"actor"`
	CreatedAt time.Time `json:"createdAt"`
	ClientIP  string    `json:"clientIp"`
	UserAgent string    `json:"userAgent"`
}

// QRCodeDeletedEvent is emitted after a QR code image has been removed.
type QRCodeDeletedEvent struct {
	EventID   string    `json:"eventId"`
	Filename  string    `json:"filename"`
	URL       string    `json:"url"`
	Actor     string    `json:"actor"`
	DeletedAt time.Time `json:"deletedAt"`
	ClientIP  string    `json:"clientIp"`
	UserAgent string    `json:"userAgent"`
}
