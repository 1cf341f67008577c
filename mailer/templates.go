package mailer

import "strings"

// welcomeEmailTemplate carries exactly two substitution tokens:
// {{name}} and {{intro}}.
const welcomeEmailTemplate = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
  </head>
  <body style="margin:0;padding:0;background-color:#0f1014;font-family:Arial,Helvetica,sans-serif;">
    <table role="presentation" width="100%" cellpadding="0" cellspacing="0" style="background-color:#0f1014;padding:32px 0;">
      <tr>
        <td align="center">
          <table role="presentation" width="600" cellpadding="0" cellspacing="0" style="background-color:#17181c;border-radius:8px;padding:40px;">
            <tr>
              <td style="color:#fdd458;font-size:24px;font-weight:bold;padding-bottom:24px;">
                Welcome aboard, {{name}}!
              </td>
            </tr>
            <tr>
              <td style="color:#d1d5db;font-size:16px;line-height:24px;padding-bottom:24px;">
                {{intro}}
              </td>
            </tr>
            <tr>
              <td style="color:#d1d5db;font-size:16px;line-height:24px;padding-bottom:24px;">
                Your dashboard is ready: watchlists, live charts and market
                movers are one sign-in away.
              </td>
            </tr>
            <tr>
              <td style="color:#6b7280;font-size:12px;line-height:18px;border-top:1px solid #2a2b31;padding-top:24px;">
                You are receiving this email because you signed up for a
                Stocks Watcher account.
              </td>
            </tr>
          </table>
        </td>
      </tr>
    </table>
  </body>
</html>`

// RenderWelcomeEmail substitutes the recipient name and intro text into the
// welcome template.
func RenderWelcomeEmail(name, intro string) string {
	body := strings.Replace(welcomeEmailTemplate, "{{name}}", name, 1)
	return strings.Replace(body, "{{intro}}", intro, 1)
}
