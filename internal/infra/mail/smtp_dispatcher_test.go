package mail

import (
	"mime"
	"strings"
	"testing"

	"storefront/config"
	"storefront/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSMTPDispatcher_RequiresHostAndFrom(t *testing.T) {
	_, err := NewSMTPDispatcher(&config.Config{})
	assert.Error(t, err)

	_, err = NewSMTPDispatcher(&config.Config{
		Mail: &config.MailConfig{Host: "smtp.example.com", Port: 587},
	})
	assert.Error(t, err)

	_, err = NewSMTPDispatcher(&config.Config{
		Mail: &config.MailConfig{Host: "smtp.example.com", Port: 587, From: "noreply@example.com"},
	})
	assert.NoError(t, err)
}

func TestBuildMessage_PlainTextOnly(t *testing.T) {
	msg := string(buildMessage("noreply@example.com", &service.Mail{
		To:      "user@example.com",
		Subject: "hello",
		Text:    "plain body",
	}))

	assert.Contains(t, msg, "From: noreply@example.com\r\n")
	assert.Contains(t, msg, "To: user@example.com\r\n")
	assert.Contains(t, msg, "Subject: hello\r\n")
	assert.Contains(t, msg, "Content-Type: text/plain; charset=UTF-8")
	assert.NotContains(t, msg, "multipart/alternative")
	assert.Contains(t, msg, "plain body")
}

func TestBuildMessage_EncodesNonASCIISubject(t *testing.T) {
	subject := "重設密碼驗證碼"
	msg := string(buildMessage("noreply@example.com", &service.Mail{
		To:      "user@example.com",
		Subject: subject,
		Text:    "plain body",
	}))

	start := strings.Index(msg, "Subject: ")
	require.GreaterOrEqual(t, start, 0)
	line := msg[start+len("Subject: "):]
	line = line[:strings.Index(line, "\r\n")]

	// Raw UTF-8 must never appear in the header, and the encoded word must
	// round-trip back to the original subject.
	assert.NotContains(t, line, subject)
	assert.True(t, strings.HasPrefix(line, "=?utf-8?q?"), "subject not q-encoded: %q", line)

	decoded, err := new(mime.WordDecoder).DecodeHeader(line)
	require.NoError(t, err)
	assert.Equal(t, subject, decoded)
}

func TestBuildMessage_MultipartPutsTextBeforeHTML(t *testing.T) {
	msg := string(buildMessage("noreply@example.com", &service.Mail{
		To:      "user@example.com",
		Subject: "hello",
		Text:    "plain body",
		HTML:    "<p>html body</p>",
	}))

	require.Contains(t, msg, "multipart/alternative")
	assert.Less(t, strings.Index(msg, "text/plain"), strings.Index(msg, "text/html"))
	assert.Contains(t, msg, "plain body")
	assert.Contains(t, msg, "<p>html body</p>")
}
