package mailer

import (
	"io"

	"gopkg.in/gomail.v2"
)

// Attachment is a single in-memory file to attach to a message.
type Attachment struct {
	Filename string
	Content  []byte
}

// Message is one outbound email. Text is required; HTML, ReplyTo and the
// attachment are optional.
type Message struct {
	FromName   string
	To         string
	ReplyTo    string
	Subject    string
	Text       string
	HTML       string
	Attachment *Attachment
}

// Mailer dispatches messages over SMTP. Send is synchronous and makes no
// retry; a transport failure is the caller's problem. Exactly one message
// goes out per successful call.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func New(host string, port int, user, pass string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   user,
	}
}

func (m *Mailer) Send(msg Message) error {
	return m.dialer.DialAndSend(m.compose(msg))
}

func (m *Mailer) compose(msg Message) *gomail.Message {
	gm := gomail.NewMessage()
	gm.SetAddressHeader("From", m.from, msg.FromName)
	gm.SetHeader("To", msg.To)
	if msg.ReplyTo != "" {
		gm.SetHeader("Reply-To", msg.ReplyTo)
	}
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.Text)
	if msg.HTML != "" {
		gm.AddAlternative("text/html", msg.HTML)
	}
	if msg.Attachment != nil {
		content := msg.Attachment.Content
		gm.Attach(msg.Attachment.Filename, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(content)
			return err
		}))
	}
	return gm
}
