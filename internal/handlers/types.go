package handlers

import "github.com/serroba/qr-code-manager/internal/qrcode"

// TokenRequest carries the form-encoded username and password.
type TokenRequest struct {
	RawBody []byte `contentType:"application/x-www-form-urlencoded"`
}

// TokenResponse is returned for a successful login.
type TokenResponse struct {
	Body struct {
		AccessToken string `doc:"Signed bearer token" example:"eyJhbGciOiJIUzI1NiJ9..." json:"access_token"`
		TokenType   string `doc:"Always bearer" example:"bearer" json:"token_type"`
	}
}

// CreateQRCodeRequest is the request body for creating a QR code.
type CreateQRCodeRequest struct {
	Body struct {
		URL       string `doc:"The URL to encode" example:"https://example.com" json:"url"`
		FillColor string `default:"red" doc:"Module color" example:"black" json:"fill_color,omitempty"`
		BackColor string `default:"white" doc:"Background color" example:"#ffffff" json:"back_color,omitempty"`
		Size      int    `default:"10" doc:"Pixels per module" json:"size,omitempty" maximum:"40" minimum:"1"`
	}
}

// CreateQRCodeResponse is the response for a newly stored QR code.
type CreateQRCodeResponse struct {
	Body struct {
		Message   string        `doc:"Human readable outcome" example:"QR code created successfully." json:"message"`
		QRCodeURL string        `doc:"Public download URL" example:"http://localhost:8888/downloads/aHR0cHM6Ly9leGFtcGxlLmNvbQ.png" json:"qr_code_url"`
		Links     []qrcode.Link `doc:"Follow-up actions" json:"links"`
	}
}

// QRCodeItem describes one stored QR code.
type QRCodeItem struct {
	Message   string        `doc:"Human readable status" example:"QR code available" json:"message"`
	URL       string        `doc:"The encoded URL" example:"https://example.com" json:"url"`
	QRCodeURL string        `doc:"Public download URL" example:"http://localhost:8888/downloads/aHR0cHM6Ly9leGFtcGxlLmNvbQ.png" json:"qr_code_url"`
	Links     []qrcode.Link `doc:"Follow-up actions" json:"links"`
}

// ListQRCodesResponse lists every stored QR code.
type ListQRCodesResponse struct {
	Body []QRCodeItem
}

// FilenameRequest addresses a stored QR code by filename.
type FilenameRequest struct {
	Filename string `doc:"Stored QR code filename" example:"aHR0cHM6Ly9leGFtcGxlLmNvbQ.png" path:"filename"`
}

// DownloadResponse carries the PNG bytes of a stored QR code.
type DownloadResponse struct {
	ContentType  string `header:"Content-Type"`
	CacheControl string `header:"Cache-Control"`
	Body         []byte
}
