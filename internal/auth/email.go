package auth

import (
	"fmt"
	"strings"

	"github.com/quillcms/quill/internal/collection"
	"github.com/quillcms/quill/internal/domain"
	"github.com/quillcms/quill/internal/mail"
)

func (s *Service) resetEmail(c *collection.Collection, req collection.RequestContext, token string, u *domain.User) (mail.Message, error) {
	url := strings.TrimRight(s.serverURL, "/") + s.adminRoute + "/reset/" + token
	ectx := collection.EmailContext{Req: req, Token: token, User: u}

	html := defaultResetHTML(url)
	if c.Auth != nil && c.Auth.GenerateEmailHTML != nil {
		h, err := c.Auth.GenerateEmailHTML(ectx)
		if err != nil {
			return mail.Message{}, err
		}
		html = h
	}

	subject := s.translator.T(req.Locale, "authentication:resetYourPassword")
	if c.Auth != nil && c.Auth.GenerateEmailSubject != nil {
		sub, err := c.Auth.GenerateEmailSubject(ectx)
		if err != nil {
			return mail.Message{}, err
		}
		subject = sub
	}

	return mail.Message{
		To:      []string{u.Email},
		Subject: subject,
		HTML:    html,
	}, nil
}

func defaultResetHTML(url string) string {
	return fmt.Sprintf(`<p>You are receiving this because you (or someone else) have requested the reset of the password for your account. Please click on the following link, or paste it into your browser to complete the process:</p>
<p><a href="%[1]s">%[1]s</a></p>
<p>If you did not request this, please ignore this email and your password will remain unchanged.</p>
<hr>
<p>Está recibiendo esto porque usted (u otra persona) ha solicitado restablecer la contraseña de su cuenta. Haga clic en el siguiente enlace o péguelo en su navegador para completar el proceso:</p>
<p><a href="%[1]s">%[1]s</a></p>
<p>Si no solicitó esto, ignore este correo y su contraseña permanecerá sin cambios.</p>`, url)
}
