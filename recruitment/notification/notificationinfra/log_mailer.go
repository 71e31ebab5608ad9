package notificationinfra

import (
	"context"

	"github.com/google/uuid"
	"github.com/talencee/careers/pkg/logx"
	"github.com/talencee/careers/recruitment/notification"
)

// LogMailer writes messages to the log instead of sending them. It is the
// transport when no SMTP host is configured.
type LogMailer struct{}

var _ notification.Mailer = LogMailer{}

func (LogMailer) Send(_ context.Context, msg *notification.Message) (string, error) {
	id := "log-" + uuid.NewString()
	logx.With(
		"message_id", id,
		"to", msg.To,
		"subject", msg.Subject,
		"attachments", len(msg.Attachments),
	).Info("email not sent, log transport")
	return id, nil
}
