package mailer

import (
	"bytes"
	"html/template"

	"github.com/pacemaker/core/internal/ports"
)

var progressTmpl = template.Must(template.New("progress").Parse(`<!DOCTYPE html>
<html>
  <body style="background-color:#0f172a;color:#ffffff;font-family:sans-serif;margin:0;padding:0;">
    <div style="margin:40px auto;max-width:465px;border:1px solid #334155;border-radius:16px;background-color:#1e293b;padding:20px;">
      <h1 style="font-size:24px;font-weight:bold;text-align:center;color:#818cf8;margin:30px 0;">PaceMaker &#9201;</h1>
      <h2 style="font-size:20px;font-weight:normal;text-align:center;margin:30px 0;">Hi <strong>{{.Username}}</strong>,</h2>
      <p style="font-size:14px;line-height:24px;color:#cbd5e1;">Here is your daily update for <strong>{{.GoalTitle}}</strong>.</p>
      <div style="margin:24px 0;padding:16px;background-color:rgba(15,23,42,0.5);border-radius:8px;border:1px solid #334155;">
        <p style="font-size:16px;line-height:26px;color:#fde047;font-weight:500;margin:0;">&quot;{{.Message}}&quot;</p>
      </div>
      <div style="margin:24px 0;">
        <p style="font-size:12px;color:#94a3b8;text-transform:uppercase;letter-spacing:2px;margin-bottom:8px;font-weight:bold;">Current Progress</p>
        <div style="width:100%;background-color:#334155;border-radius:9999px;height:16px;overflow:hidden;">
          <div style="background:linear-gradient(to right,#6366f1,#a855f7);height:100%;border-radius:9999px;width:{{.ProgressPercent}}%;"></div>
        </div>
        <p style="text-align:right;font-size:12px;color:#94a3b8;margin-top:4px;">{{.ProgressPercent}}% Complete</p>
      </div>
      <p style="text-align:center;font-size:12px;color:#64748b;margin-top:32px;">Keep moving forward at your own pace.</p>
    </div>
  </body>
</html>`))

var loginTmpl = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html>
  <body style="background-color:#0f172a;color:#ffffff;font-family:sans-serif;margin:0;padding:0;">
    <div style="margin:40px auto;max-width:465px;border:1px solid #334155;border-radius:16px;background-color:#1e293b;padding:20px;">
      <h1 style="font-size:24px;font-weight:bold;text-align:center;color:#818cf8;margin:30px 0;">PaceMaker &#9201;</h1>
      <p style="font-size:14px;line-height:24px;color:#cbd5e1;">{{.Body}}</p>
      <div style="text-align:center;margin:32px 0;">
        <a href="{{.Link}}" style="background-color:#4f46e5;border-radius:9999px;color:#ffffff;padding:16px 32px;font-weight:bold;text-decoration:none;">Sign In</a>
      </div>
    </div>
  </body>
</html>`))

type loginEmailData struct {
	Body string
	Link string
}

func renderProgressEmail(update ports.ProgressUpdate) (string, error) {
	var buf bytes.Buffer
	if err := progressTmpl.Execute(&buf, update); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderLoginEmail(data loginEmailData) (string, error) {
	var buf bytes.Buffer
	if err := loginTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
