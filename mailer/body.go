package mailer

import (
	"fmt"

	"registration-api/models"
)

// Field values are interpolated into the bodies as-is, matching what the
// admin page and confirmation emails have always shown.

func confirmationText(reg models.Registration) string {
	return fmt.Sprintf(
		"Hi %s,\n\nThank you for registering. Event: %s.\n\nRegards,\nThe Events Team\n",
		reg.Name, orNA(reg.EventID),
	)
}

func confirmationHTML(reg models.Registration) string {
	return fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; color:#222;">
  <h2>Registration Received</h2>
  <p>Hi %s,</p>
  <p>Thank you for registering. We have received your registration details:</p>
  <table cellspacing="0" cellpadding="6" border="0">
    <tr><td><strong>Event</strong></td><td>%s</td></tr>
    <tr><td><strong>Phone</strong></td><td>%s</td></tr>
    <tr><td><strong>Message</strong></td><td>%s</td></tr>
    <tr><td><strong>Registered At</strong></td><td>%s</td></tr>
  </table>
  <p>We will contact you with further details.</p>
  <p>Regards,<br/>The Events Team</p>
</body>
</html>`,
		reg.Name, orNA(reg.EventID), orNA(reg.Phone), orNA(reg.Message), reg.CreatedAt,
	)
}

func adminHTML(reg models.Registration) string {
	return fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; color:#222;">
  <h2>New Registration Received</h2>
  <p>A new registration was submitted:</p>
  <ul>
    <li><strong>ID:</strong> %d</li>
    <li><strong>Name:</strong> %s</li>
    <li><strong>Email:</strong> %s</li>
    <li><strong>Phone:</strong> %s</li>
    <li><strong>Event:</strong> %s</li>
    <li><strong>Message:</strong> %s</li>
    <li><strong>At:</strong> %s</li>
  </ul>
</body>
</html>`,
		reg.ID, reg.Name, reg.Email, orNA(reg.Phone), orNA(reg.EventID), orNA(reg.Message), reg.CreatedAt,
	)
}

func orNA(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}
