package mailer

// HTML bodies for transactional email. Placeholders in curly braces are
// substituted before sending.

const verificationEmailTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Verify Your Email</h2>
  <p>Thanks for signing up! Enter the code below to verify your email address:</p>
  <p style="font-size: 32px; font-weight: bold; letter-spacing: 6px;">{verificationCode}</p>
  <p>This code expires in 24 hours.</p>
  <p>If you didn't create an account, you can safely ignore this email.</p>
</body>
</html>`

const welcomeEmailTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Welcome, {username}!</h2>
  <p>Your email has been verified and your account is ready.</p>
  <p>Start uploading tracks and building playlists right away.</p>
</body>
</html>`

const passwordResetRequestTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Password Reset Request</h2>
  <p>We received a request to reset your password. Click the link below to choose a new one:</p>
  <p><a href="{resetURL}">Reset your password</a></p>
  <p>This link expires in 1 hour. If you didn't request a reset, ignore this email.</p>
</body>
</html>`

const passwordResetSuccessTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Password Reset Successful</h2>
  <p>Your password has been changed. If this wasn't you, contact support immediately.</p>
</body>
</html>`
