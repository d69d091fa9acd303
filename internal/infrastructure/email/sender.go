package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type EmailSender struct {
	apiKey      string
	senderEmail string
	senderName  string
	frontend    string
}

func NewEmailSender(apiKey, senderEmail, frontend string) *EmailSender {
	return &EmailSender{
		apiKey:      apiKey,
		senderEmail: senderEmail,
		senderName:  "EduFlix",
		frontend:    frontend,
	}
}

// SendGrid request format
type sgEmail struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}
type sgContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}
type sgRequest struct {
	Personalizations []struct {
		To []sgEmail `json:"to"`
	} `json:"personalizations"`
	From    sgEmail     `json:"from"`
	Subject string      `json:"subject"`
	Content []sgContent `json:"content"`
}

func (s *EmailSender) SendCertificateEmail(toEmail, studentName, courseName, certificateURL string) error {
	body := sgRequest{
		Personalizations: []struct {
			To []sgEmail `json:"to"`
		}{
			{To: []sgEmail{{Email: toEmail, Name: studentName}}},
		},
		From: sgEmail{
			Email: s.senderEmail,
			Name:  s.senderName,
		},
		Subject: fmt.Sprintf("¡Felicidades! Has completado %s", courseName),
		Content: []sgContent{
			{
				Type: "text/html",
				Value: fmt.Sprintf(`
				<html>
				<head>
					<style>
						body {
							font-family: Arial, sans-serif;
							background-color: #f3f4f6;
							margin: 0;
							padding: 0;
							color: #111827;
						}
						.container {
							max-width: 600px;
							margin: 50px auto;
							background-color: #ffffff;
							padding: 30px;
							border-radius: 12px;
							box-shadow: 0 4px 20px rgba(0, 0, 0, 0.1);
							text-align: center;
						}
						h3 {
							color: #1e40af;
							margin-bottom: 20px;
						}
						p {
							color: #4b5563;
							font-size: 16px;
							line-height: 1.5;
						}
						.button {
							display: inline-block;
							margin: 30px 0;
							padding: 15px 30px;
							background-color: #1e40af;
							color: #ffffff;
							text-decoration: none;
							font-weight: bold;
							font-size: 16px;
							border-radius: 6px;
						}
						.footer {
							font-size: 12px;
							color: #888888;
							margin-top: 20px;
						}
					</style>
				</head>
				<body>
					<div class="container">
						<h3>¡Felicidades, %s!</h3>
						<p>Has completado el curso <strong>%s</strong> y tu certificado ya está listo.</p>
						<a href="%s" class="button">Ver mi certificado</a>
						<p class="footer">También puedes encontrarlo en tu perfil: %s/profile</p>
					</div>
				</body>
				</html>
				`, studentName, courseName, certificateURL, s.frontend),
			},
		},
	}

	bodyBytes, _ := json.Marshal(body)

	req, err := http.NewRequest(
		"POST",
		"https://api.sendgrid.com/v3/mail/send",
		bytes.NewBuffer(bodyBytes),
	)
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// SendGrid при успехе отвечает 202
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("sendgrid error: status=%d body=%s", resp.StatusCode, body)
	}

	return nil
}
