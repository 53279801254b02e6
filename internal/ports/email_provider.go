package ports

import "context"

// EmailParams is one outgoing message. Body is sent as text/plain unless IsHTML is set.
type EmailParams struct {
	To      string
	Subject string
	Body    string
	IsHTML  bool
}

// EmailProvider delivers weather alert emails
type EmailProvider interface {
	SendEmail(ctx context.Context, params EmailParams) error
}
