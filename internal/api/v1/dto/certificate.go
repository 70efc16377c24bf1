package dto

// CertificateGenerateRequestDTO is the payload for generating a certificate PDF.
type CertificateGenerateRequestDTO struct {
	CertificateID string `json:"certificateId" validate:"required"`
}

// PubSubPushDTO is the Google Pub/Sub push delivery envelope. Message data
// is base64 in the wire format; encoding/json decodes it into the byte slice.
type PubSubPushDTO struct {
	Message struct {
		Data      []byte `json:"data"`
		MessageID string `json:"messageId"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// CompletionEventDTO is the payload carried inside a completion push message.
type CompletionEventDTO struct {
	CertificateID string `json:"certificateId" validate:"required"`
}
