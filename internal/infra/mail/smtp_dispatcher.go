// Package mail implements the outbound mail dispatcher over SMTP.
package mail

import (
	"context"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"storefront/config"
	"storefront/internal/domain/service"
)

const defaultDialTimeout = 10 * time.Second

// smtpDispatcher sends fully rendered messages through a single SMTP relay.
// There is no retry queue: a failed send surfaces to the caller.
type smtpDispatcher struct {
	addr     string
	host     string
	from     string
	username string
	password string
}

// NewSMTPDispatcher is the constructor for smtpDispatcher.
func NewSMTPDispatcher(cfg *config.Config) (service.MailDispatcher, error) {
	if cfg.Mail == nil || cfg.Mail.Host == "" || cfg.Mail.From == "" {
		return nil, errors.New("mail host and from address must be provided")
	}

	return &smtpDispatcher{
		addr:     net.JoinHostPort(cfg.Mail.Host, strconv.Itoa(cfg.Mail.Port)),
		host:     cfg.Mail.Host,
		from:     cfg.Mail.From,
		username: cfg.Mail.Username,
		password: cfg.Mail.Password,
	}, nil
}

// Send delivers one message. The connection honors the context deadline so a
// hung relay cannot stall the request past its timeout.
func (d *smtpDispatcher) Send(ctx context.Context, mail *service.Mail) error {
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(defaultDialTimeout)
	}

	conn, err := net.DialTimeout("tcp", d.addr, time.Until(deadline))
	if err != nil {
		return errors.Wrap(err, "failed to dial smtp relay")
	}
	if err := conn.SetDeadline(deadline); err != nil {
		conn.Close()

		return errors.Wrap(err, "failed to set smtp deadline")
	}

	client, err := smtp.NewClient(conn, d.host)
	if err != nil {
		conn.Close()

		return errors.Wrap(err, "failed to create smtp client")
	}
	defer client.Close()

	if d.username != "" {
		if err := client.Auth(smtp.PlainAuth("", d.username, d.password, d.host)); err != nil {
			return errors.Wrap(err, "smtp authentication failed")
		}
	}

	if err := client.Mail(d.from); err != nil {
		return errors.Wrap(err, "smtp MAIL FROM failed")
	}
	if err := client.Rcpt(mail.To); err != nil {
		return errors.Wrap(err, "smtp RCPT TO failed")
	}

	writer, err := client.Data()
	if err != nil {
		return errors.Wrap(err, "smtp DATA failed")
	}
	if _, err := writer.Write(buildMessage(d.from, mail)); err != nil {
		writer.Close()

		return errors.Wrap(err, "failed to write smtp message body")
	}
	if err := writer.Close(); err != nil {
		return errors.Wrap(err, "failed to finish smtp message")
	}

	return errors.Wrap(client.Quit(), "smtp QUIT failed")
}

// buildMessage renders a multipart/alternative MIME message with the text
// part first so clients that cannot render HTML fall back to it.
func buildMessage(from string, mail *service.Mail) []byte {
	const boundary = "storefront-mail-boundary"

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", mail.To)
	// Q-encode so non-ASCII subjects survive relays that strip 8-bit headers.
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", mail.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")

	if mail.HTML == "" {
		b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
		b.WriteString(mail.Text)

		return []byte(b.String())
	}

	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)
	fmt.Fprintf(&b, "--%s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s\r\n", boundary, mail.Text)
	fmt.Fprintf(&b, "--%s\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s\r\n", boundary, mail.HTML)
	fmt.Fprintf(&b, "--%s--\r\n", boundary)

	return []byte(b.String())
}
