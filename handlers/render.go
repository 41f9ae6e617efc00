package handlers

import (
	"html/template"
	"net/http"

	"dbexport/config"
	"dbexport/i18n"

	"github.com/gorilla/csrf"
)

func renderTemplate(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	lang := i18n.DetectLanguage(r)

	funcMap := template.FuncMap{
		"T": func(key string) string {
			return i18n.T(lang, key)
		},
	}

	tmpl, err := template.New(name).Funcs(funcMap).ParseFiles("templates/layout.html", "templates/"+name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if data == nil {
		data = map[string]any{}
	}
	if _, exists := data["AppName"]; !exists {
		data["AppName"] = config.AppConfig.AppName
	}
	data["Lang"] = lang
	data["csrfField"] = csrf.TemplateField(r)

	tmpl.ExecuteTemplate(w, "layout", data)
}
