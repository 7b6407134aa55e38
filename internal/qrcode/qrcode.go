package qrcode

import (
	"fmt"
	"net/url"

	qr "github.com/skip2/go-qrcode"
)

// Generate creates a QR code PNG image for the given URL.
func Generate(link string) ([]byte, error) {
	return qr.Encode(link, qr.Medium, 256)
}

// JoinURL is the seat page a phone opens to join a table.
func JoinURL(host, tableID string) string {
	return fmt.Sprintf("http://%s/seat.html?table=%s", host, url.QueryEscape(tableID))
}
