// Package render turns an order's idempotency token into something a
// staff scanner can read.
package render

import (
	"github.com/skip2/go-qrcode"
)

const DefaultQRSize = 256

// QRCodePNG encodes the token as-is. The scanner looks the token up
// server-side, so nothing else goes into the payload.
func QRCodePNG(token string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultQRSize
	}
	return qrcode.Encode(token, qrcode.Medium, size)
}
