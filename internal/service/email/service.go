// internal/service/email/service.go
package email

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"net/smtp"
)

// Detail is one label/value row in a message's detail table.
type Detail struct {
	Label string
	Value string
}

// Message is a quote-lifecycle notification. The heading, paragraphs and
// detail rows are rendered into the shared CCTV Pro shell; all values are
// HTML-escaped, so customer input is safe to pass through.
type Message struct {
	Heading    string
	Paragraphs []string
	Details    []Detail
	Highlight  string
	RTL        bool
}

var shell = template.Must(template.New("email").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8" />
<style>
body { font-family: Arial, sans-serif; background-color: #f6f8fa; padding: 30px; }
.container { max-width: 600px; margin: auto; background: #fff; border-radius: 10px; overflow: hidden; box-shadow: 0 2px 5px rgba(0,0,0,0.1); }
.header { background: #1a2b4c; color: white; text-align: center; padding: 20px; font-size: 22px; font-weight: bold; }
.body { padding: 25px; color: #333; line-height: 1.6; }
.details { width: 100%; border-collapse: collapse; margin: 18px 0; }
.details td { padding: 8px 10px; border-bottom: 1px solid #e8ebef; }
.details td.label { color: #777; width: 40%; }
.highlight { font-size: 20px; font-weight: bold; color: #1a2b4c; }
.footer { background: #f1f1f1; color: #555; text-align: center; padding: 15px; font-size: 13px; }
</style>
</head>
<body>
<div class="container">
<div class="header">CCTV Pro</div>
<div class="body"{{if .RTL}} dir="rtl"{{end}}>
<h2>{{.Heading}}</h2>
{{range .Paragraphs}}<p>{{.}}</p>
{{end}}{{if .Details}}<table class="details">
{{range .Details}}<tr><td class="label">{{.Label}}</td><td>{{.Value}}</td></tr>
{{end}}</table>
{{end}}{{if .Highlight}}<p class="highlight">{{.Highlight}}</p>
{{end}}</div>
<div class="footer"><p>&copy; 2026 CCTV Pro. All rights reserved.</p></div>
</div>
</body>
</html>
`))

func (m *Message) render() (string, error) {
	var buf bytes.Buffer
	if err := shell.Execute(&buf, m); err != nil {
		return "", fmt.Errorf("failed to render email: %w", err)
	}
	return buf.String(), nil
}

// EmailSender delivers rendered messages via SMTP.
type EmailSender struct {
	smtpHost string
	smtpPort string
	username string
	password string
	fromName string
	secure   bool
}

// NewEmailSender creates a new SMTP email sender.
func NewEmailSender(host, port, user, pass, fromName string, secure bool) *EmailSender {
	return &EmailSender{
		smtpHost: host,
		smtpPort: port,
		username: user,
		password: pass,
		fromName: fromName,
		secure:   secure,
	}
}

// Send renders the message and delivers it to a single recipient.
func (e *EmailSender) Send(to, subject string, m *Message) error {
	body, err := m.render()
	if err != nil {
		return err
	}

	from := fmt.Sprintf("%s <%s>", e.fromName, e.username)
	msg := []byte(
		fmt.Sprintf("From: %s\r\n", from) +
			fmt.Sprintf("To: %s\r\n", to) +
			fmt.Sprintf("Subject: %s\r\n", subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=\"utf-8\"\r\n" +
			"\r\n" +
			body,
	)

	serverAddr := e.smtpHost + ":" + e.smtpPort

	tlsConfig := &tls.Config{
		InsecureSkipVerify: false,
		ServerName:         e.smtpHost,
	}

	if e.secure {
		// Port 465 - implicit TLS
		conn, err := tls.Dial("tcp", serverAddr, tlsConfig)
		if err != nil {
			return fmt.Errorf("tls dial failed: %w", err)
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, e.smtpHost)
		if err != nil {
			return fmt.Errorf("smtp client failed: %w", err)
		}
		defer client.Quit()

		auth := smtp.PlainAuth("", e.username, e.password, e.smtpHost)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("auth failed: %w", err)
		}

		return e.sendMail(client, to, msg)
	}

	// Port 587 - STARTTLS
	auth := smtp.PlainAuth("", e.username, e.password, e.smtpHost)
	if err := smtp.SendMail(serverAddr, auth, e.username, []string{to}, msg); err != nil {
		return fmt.Errorf("send mail failed: %w", err)
	}

	return nil
}

func (e *EmailSender) sendMail(client *smtp.Client, to string, msg []byte) error {
	if err := client.Mail(e.username); err != nil {
		return fmt.Errorf("MAIL FROM failed: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("RCPT TO failed: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("DATA failed: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("write failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close failed: %w", err)
	}
	return nil
}
