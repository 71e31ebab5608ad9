package notificationinfra

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"net/textproto"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/talencee/careers/pkg/fsx"
	"github.com/talencee/careers/recruitment/notification"
	"github.com/talencee/careers/recruitment/upload"
)

// composer renders a notification.Message into RFC 5322 bytes. Attachments
// are read from files at compose time.
type composer struct {
	files fsx.FileSystem
	now   func() time.Time
}

func newComposer(files fsx.FileSystem) *composer {
	return &composer{files: files, now: time.Now}
}

// messageID builds <unixnano.random@domain> using the sender domain
func (c *composer) messageID(from string) string {
	domain := "localhost"
	if addr, err := mail.ParseAddress(from); err == nil {
		if i := strings.LastIndex(addr.Address, "@"); i >= 0 {
			domain = addr.Address[i+1:]
		}
	}
	return fmt.Sprintf("<%d.%s@%s>", c.now().UnixNano(), uuid.NewString()[:8], domain)
}

func (c *composer) compose(ctx context.Context, msg *notification.Message) ([]byte, string, error) {
	id := c.messageID(msg.From)

	var buf bytes.Buffer
	header := func(k, v string) { fmt.Fprintf(&buf, "%s: %s\r\n", k, v) }
	header("From", msg.From)
	header("To", msg.To)
	header("Subject", mime.QEncoding.Encode("utf-8", msg.Subject))
	header("Date", c.now().Format(time.RFC1123Z))
	header("Message-ID", id)
	header("MIME-Version", "1.0")

	if len(msg.Attachments) == 0 {
		header("Content-Type", "text/plain; charset=UTF-8")
		header("Content-Transfer-Encoding", "quoted-printable")
		buf.WriteString("\r\n")
		if err := writeQuotedPrintable(&buf, msg.Body); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), id, nil
	}

	mw := multipart.NewWriter(&buf)
	header("Content-Type", "multipart/mixed; boundary="+mw.Boundary())
	buf.WriteString("\r\n")

	text, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {"text/plain; charset=UTF-8"},
		"Content-Transfer-Encoding": {"quoted-printable"},
	})
	if err != nil {
		return nil, "", err
	}
	if err := writeQuotedPrintable(text, msg.Body); err != nil {
		return nil, "", err
	}

	for _, att := range msg.Attachments {
		data, err := fsx.ReadFile(ctx, c.files, att.Path.String())
		if err != nil {
			return nil, "", notification.ErrAttachmentUnreadable(err).
				WithDetail("path", att.Path.String())
		}

		part, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {fmt.Sprintf("%s; name=%q", upload.ContentTypeOf(att.Filename), att.Filename)},
			"Content-Disposition":       {fmt.Sprintf("attachment; filename=%q", att.Filename)},
			"Content-Transfer-Encoding": {"base64"},
		})
		if err != nil {
			return nil, "", err
		}
		if err := writeBase64Lines(part, data); err != nil {
			return nil, "", err
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), id, nil
}

func writeQuotedPrintable(w io.Writer, body string) error {
	qp := quotedprintable.NewWriter(w)
	if _, err := qp.Write([]byte(body)); err != nil {
		return err
	}
	return qp.Close()
}

// writeBase64Lines wraps base64 output at 76 columns
func writeBase64Lines(w io.Writer, data []byte) error {
	enc := base64.StdEncoding.EncodeToString(data)
	for len(enc) > 76 {
		if _, err := fmt.Fprintf(w, "%s\r\n", enc[:76]); err != nil {
			return err
		}
		enc = enc[76:]
	}
	_, err := fmt.Fprintf(w, "%s\r\n", enc)
	return err
}
