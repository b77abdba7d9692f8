package qrcode

import (
	"fmt"
	"net/http"
)

// Action identifies the operation a response was produced for.
type Action string

const (
	ActionList   Action = "list"
	ActionCreate Action = "create"
	ActionDelete Action = "delete"
)

// Link describes a follow-up action a client may take on a QR code.
type Link struct {
	Rel    string `doc:"Link relation"        example:"view"      json:"rel"`
	Href   string `doc:"Target URL"           example:"/qr-codes" json:"href"`
	Action string `doc:"HTTP method to use"   example:"GET"       json:"action"`
	Type   string `doc:"Expected media type"  example:"image/png" json:"type"`
}

// BuildLinks returns the hypermedia links for a stored QR code.
// The view link always points at downloadURL and precedes the delete link.
// Unknown actions produce no links.
func BuildLinks(action Action, storedFilename, baseAPIURL, downloadURL string) []Link {
	links := []Link{}

	switch action {
	case ActionList, ActionCreate:
		links = append(links, Link{
			Rel:    "view",
			Href:   downloadURL,
			Action: http.MethodGet,
			Type:   "image/png",
		})
	case ActionDelete:
	default:
		return links
	}

	links = append(links, Link{
		Rel:    "delete",
		Href:   fmt.Sprintf("%s/qr-codes/%s", baseAPIURL, storedFilename),
		Action: http.MethodDelete,
		Type:   "application/json",
	})

	return links
}
