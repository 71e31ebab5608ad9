package notificationinfra

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/talencee/careers/pkg/fsx"
	"github.com/talencee/careers/recruitment/notification"
)

// SESAPI is the part of the SES client the mailer needs
type SESAPI interface {
	SendRawEmail(ctx context.Context, params *ses.SendRawEmailInput, optFns ...func(*ses.Options)) (*ses.SendRawEmailOutput, error)
}

// SESMailer sends raw MIME messages through Amazon SES so attachments survive
type SESMailer struct {
	client   SESAPI
	composer *composer
}

var _ notification.Mailer = (*SESMailer)(nil)

func NewSESMailer(client SESAPI, files fsx.FileSystem) *SESMailer {
	return &SESMailer{
		client:   client,
		composer: newComposer(files),
	}
}

// Send returns the SES message id
func (m *SESMailer) Send(ctx context.Context, msg *notification.Message) (string, error) {
	raw, _, err := m.composer.compose(ctx, msg)
	if err != nil {
		return "", err
	}

	out, err := m.client.SendRawEmail(ctx, &ses.SendRawEmailInput{
		Source:       aws.String(envelopeAddress(msg.From)),
		Destinations: []string{envelopeAddress(msg.To)},
		RawMessage:   &types.RawMessage{Data: raw},
	})
	if err != nil {
		return "", notification.ErrSendFailed(err).WithDetail("to", msg.To)
	}
	return aws.ToString(out.MessageId), nil
}
