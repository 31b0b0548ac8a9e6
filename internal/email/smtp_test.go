package email

import (
	"net"
	"strconv"
	"strings"
	"testing"
)

func TestSMTPChannelConfigured(t *testing.T) {
	tests := []struct {
		name string
		cfg  SMTPConfig
		want bool
	}{
		{"complete", SMTPConfig{Host: "smtp.example.com", Username: "u", Password: "p"}, true},
		{"missing host", SMTPConfig{Username: "u", Password: "p"}, false},
		{"missing username", SMTPConfig{Host: "smtp.example.com", Password: "p"}, false},
		{"missing password", SMTPConfig{Host: "smtp.example.com", Username: "u"}, false},
		{"empty", SMTPConfig{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewSMTPChannel(tt.cfg).Configured(); got != tt.want {
				t.Errorf("Configured() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSMTPChannelDefaultPort(t *testing.T) {
	ch := NewSMTPChannel(SMTPConfig{Host: "smtp.example.com"})
	if ch.cfg.Port != 587 {
		t.Errorf("port = %d, want 587", ch.cfg.Port)
	}
}

func TestSMTPChannelConnectionRefusedHint(t *testing.T) {
	// Grab a port that nothing is listening on.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	port := l.Addr().(*net.TCPAddr).Port
	l.Close()

	ch := NewSMTPChannel(SMTPConfig{
		Host:     "127.0.0.1",
		Port:     port,
		Username: "u",
		Password: "p",
	})

	err = ch.Send(Message{To: "alice@example.com"})
	if err == nil {
		t.Fatal("expected dial error")
	}
	if !strings.Contains(err.Error(), "MAIL_API_KEY") {
		t.Errorf("refused connection should point at the API channel, got: %v", err)
	}
}

func TestBuildMIME(t *testing.T) {
	msg := buildMIME("noreply@example.com", "Chore Chart", Message{
		To:             "alice@example.com",
		Subject:        "Chore Reminder: Dishes",
		TextBody:       "You have been assigned a chore.",
		AttachmentName: "invite.ics",
		AttachmentMIME: "text/calendar",
		Attachment:     []byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"),
	})

	s := string(msg)
	for _, want := range []string{
		"From: Chore Chart <noreply@example.com>\r\n",
		"To: alice@example.com\r\n",
		"Subject: Chore Reminder: Dishes\r\n",
		"MIME-Version: 1.0\r\n",
		"multipart/mixed",
		"You have been assigned a chore.",
		`Content-Disposition: attachment; filename="invite.ics"`,
		"Content-Transfer-Encoding: base64",
		"--chorechart-mime-boundary--\r\n",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("message missing %q", want)
		}
	}
}

func TestWrapBase64FoldsLongLines(t *testing.T) {
	data := make([]byte, 300)
	for i := range data {
		data[i] = byte(i)
	}

	wrapped := wrapBase64(data)
	for i, line := range strings.Split(wrapped, "\r\n") {
		if len(line) > 76 {
			t.Errorf("line %d is %d chars, want <= 76", i, len(line))
		}
	}
	if !strings.Contains(wrapped, "\r\n") {
		t.Error("expected folded output for " + strconv.Itoa(len(data)) + " bytes")
	}
}
