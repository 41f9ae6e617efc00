package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dchest/captcha"
)

// NewCaptchaHandler mints a captcha id so the login page can refresh its
// challenge without a full reload.
func NewCaptchaHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"id": captcha.New()})
}

// captchaImageServer serves /captcha/img/{id}.png.
func captchaImageServer() http.Handler {
	return captcha.Server(captcha.StdWidth, captcha.StdHeight)
}

func newCaptchaID() string {
	return captcha.New()
}

func verifyCaptcha(r *http.Request) bool {
	return captcha.VerifyString(r.FormValue("captcha_id"), r.FormValue("captcha_solution"))
}
