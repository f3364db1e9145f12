package email

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"inactivity-reminder/shared"
)

// Subjects vary with workout history: a returning-user nudge versus a
// first-workout invitation.
const (
	subjectReturning = "Time to get back in the game"
	subjectFirstTime = "Your first workout is waiting"
)

// Renderer produces the personalized subject and HTML body for a candidate.
type Renderer struct {
	appName   string
	baseURL   string
	returning *template.Template
	firstTime *template.Template
}

// NewRenderer builds a renderer with the service's branding.
func NewRenderer(appName, baseURL string) *Renderer {
	return &Renderer{
		appName:   appName,
		baseURL:   strings.TrimRight(baseURL, "/"),
		returning: template.Must(template.New("returning").Parse(returningBody)),
		firstTime: template.Must(template.New("first_time").Parse(firstTimeBody)),
	}
}

type bodyData struct {
	AppName        string
	DaysLabel      string
	WorkoutURL     string
	UnsubscribeURL string
}

// Render picks the tone from the candidate's workout history and
// interpolates the inactivity duration.
func (r *Renderer) Render(c shared.Candidate) (subject, html string, err error) {
	tmpl, subject := r.firstTime, subjectFirstTime
	if c.HasWorkoutHistory {
		tmpl, subject = r.returning, subjectReturning
	}

	data := bodyData{
		AppName:        r.appName,
		DaysLabel:      daysLabel(c.DaysSinceLastActivity),
		WorkoutURL:     r.baseURL + "/workout",
		UnsubscribeURL: r.baseURL + "/unsubscribe",
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("render %s template: %w", tmpl.Name(), err)
	}
	return subject, buf.String(), nil
}

// daysLabel formats the inactivity duration with correct plural wording:
// "1 day", "0 days", "5 days".
func daysLabel(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

const returningBody = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Time to get back in the game</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body { font-family: 'Helvetica Neue', Arial, sans-serif; background-color: #f5f5f5; }
        .container { max-width: 600px; margin: 0 auto; background-color: #ffffff; }
        .content { padding: 40px 30px; }
        .greeting { font-size: 24px; font-weight: 600; color: #2c2c2c; margin-bottom: 20px; }
        .message { font-size: 16px; color: #555555; line-height: 1.6; margin-bottom: 30px; }
        .stats { background-color: #f8f8f8; padding: 20px; border-left: 4px solid #2c2c2c; margin: 30px 0; }
        .stats-label { font-size: 14px; color: #888888; text-transform: uppercase; letter-spacing: 0.5px; }
        .stats-value { font-size: 18px; font-weight: 600; color: #2c2c2c; margin-top: 5px; }
        .cta-container { text-align: center; margin: 40px 0; }
        .cta-button { display: inline-block; background-color: #2c2c2c; color: #ffffff; padding: 16px 32px; text-decoration: none; font-weight: 600; letter-spacing: 0.5px; }
        .footer { background-color: #f8f8f8; padding: 30px; text-align: center; }
        .footer-text { font-size: 14px; color: #888888; margin-bottom: 10px; }
        .unsubscribe { font-size: 12px; color: #aaaaaa; }
        .unsubscribe a { color: #888888; text-decoration: none; }
    </style>
</head>
<body>
    <div class="container">
        <div class="content">
            <div class="greeting">Hey</div>

            <div class="message">
                We noticed you haven't trained in a while. Your next workout is waiting for you.
            </div>

            <div class="stats">
                <div class="stats-label">Last Activity</div>
                <div class="stats-value">{{.DaysLabel}} ago</div>
            </div>

            <div class="message">
                The best time to get back is now. Consistency is everything.
            </div>

            <div class="cta-container">
                <a href="{{.WorkoutURL}}" class="cta-button">BACK TO TRAINING</a>
            </div>
        </div>

        <div class="footer">
            <div class="footer-text">{{.AppName}}</div>
            <div class="unsubscribe">
                <a href="{{.UnsubscribeURL}}">Unsubscribe</a>
            </div>
        </div>
    </div>
</body>
</html>
`

const firstTimeBody = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Your first workout is waiting</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body { font-family: 'Helvetica Neue', Arial, sans-serif; background-color: #f5f5f5; }
        .container { max-width: 600px; margin: 0 auto; background-color: #ffffff; }
        .content { padding: 40px 30px; }
        .greeting { font-size: 24px; font-weight: 600; color: #2c2c2c; margin-bottom: 20px; }
        .message { font-size: 16px; color: #555555; line-height: 1.6; margin-bottom: 30px; }
        .stats { background-color: #f8f8f8; padding: 20px; border-left: 4px solid #2c2c2c; margin: 30px 0; }
        .stats-label { font-size: 14px; color: #888888; text-transform: uppercase; letter-spacing: 0.5px; }
        .stats-value { font-size: 18px; font-weight: 600; color: #2c2c2c; margin-top: 5px; }
        .cta-container { text-align: center; margin: 40px 0; }
        .cta-button { display: inline-block; background-color: #2c2c2c; color: #ffffff; padding: 16px 32px; text-decoration: none; font-weight: 600; letter-spacing: 0.5px; }
        .footer { background-color: #f8f8f8; padding: 30px; text-align: center; }
        .footer-text { font-size: 14px; color: #888888; margin-bottom: 10px; }
        .unsubscribe { font-size: 12px; color: #aaaaaa; }
        .unsubscribe a { color: #888888; text-decoration: none; }
    </style>
</head>
<body>
    <div class="container">
        <div class="content">
            <div class="greeting">Hey</div>

            <div class="message">
                Your training plan is ready, but you haven't logged your first workout yet.
                It only takes one session to get started.
            </div>

            <div class="stats">
                <div class="stats-label">Member For</div>
                <div class="stats-value">{{.DaysLabel}}</div>
            </div>

            <div class="message">
                The hardest part is showing up. We'll take care of the rest.
            </div>

            <div class="cta-container">
                <a href="{{.WorkoutURL}}" class="cta-button">START TRAINING</a>
            </div>
        </div>

        <div class="footer">
            <div class="footer-text">{{.AppName}}</div>
            <div class="unsubscribe">
                <a href="{{.UnsubscribeURL}}">Unsubscribe</a>
            </div>
        </div>
    </div>
</body>
</html>
`
